package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntVerdictCoercesPlainNumber(t *testing.T) {
	v := ClaimVerdictOut{Verdict: "72"}
	assert.Equal(t, 72, v.IntVerdict())
}

func TestIntVerdictCoercesPercentSuffix(t *testing.T) {
	v := ClaimVerdictOut{Verdict: "85%"}
	assert.Equal(t, 85, v.IntVerdict())
}

func TestIntVerdictCoercesFloatString(t *testing.T) {
	v := ClaimVerdictOut{Verdict: "72.6"}
	assert.Equal(t, 72, v.IntVerdict())
}

func TestIntVerdictClampsAboveHundred(t *testing.T) {
	v := ClaimVerdictOut{Verdict: "150"}
	assert.Equal(t, 100, v.IntVerdict())
}

func TestIntVerdictClampsBelowZero(t *testing.T) {
	v := ClaimVerdictOut{Verdict: "-20"}
	assert.Equal(t, 0, v.IntVerdict())
}

func TestIntVerdictFallsBackToFiftyOnGarbage(t *testing.T) {
	v := ClaimVerdictOut{Verdict: "not a number"}
	assert.Equal(t, 50, v.IntVerdict())
}

func TestIntConfidenceUsesSameCoercion(t *testing.T) {
	v := ClaimVerdictOut{Confidence: "  90  "}
	assert.Equal(t, 90, v.IntConfidence())
}

func TestSingleContextVerdictSchemaParseStrictRejectsEmptyClaimVerdicts(t *testing.T) {
	_, err := SingleContextVerdictSchema{}.ParseStrict([]byte(`{"verdictSummary":"x","claimVerdicts":[]}`))
	assert.Error(t, err)
}

func TestSingleContextVerdictSchemaParseStrictAcceptsWellFormedPayload(t *testing.T) {
	out, err := SingleContextVerdictSchema{}.ParseStrict([]byte(`{"verdictSummary":"x","claimVerdicts":[{"claimId":"c1","verdict":70,"confidence":80,"reasoning":"r"}]}`))
	require.NoError(t, err)
	v, ok := out.(SingleContextVerdict)
	require.True(t, ok)
	assert.Len(t, v.ClaimVerdicts, 1)
	assert.Equal(t, "c1", v.ClaimVerdicts[0].ClaimID)
}

func TestSingleContextVerdictSchemaParseLenientToleratesStringNumerics(t *testing.T) {
	out, err := SingleContextVerdictSchema{}.ParseLenient([]byte(`{"verdictSummary":"x","claimVerdicts":[{"claimId":"c1","verdict":"72%","confidence":"80","reasoning":"r"}]}`))
	require.NoError(t, err)
	v, ok := out.(SingleContextVerdict)
	require.True(t, ok)
	assert.Equal(t, 72, v.ClaimVerdicts[0].IntVerdict())
}

func TestMultiContextVerdictSchemaParseStrictRejectsEmptyClaimVerdicts(t *testing.T) {
	_, err := MultiContextVerdictSchema{}.ParseStrict([]byte(`{"verdictSummary":"x","claimVerdicts":[]}`))
	assert.Error(t, err)
}

func TestArticleVerdictSchemaParseStrictRejectsEmptyClaimVerdicts(t *testing.T) {
	_, err := ArticleVerdictSchema{}.ParseStrict([]byte(`{"articleAnalysis":{"thesisSupported":true},"claimVerdicts":[]}`))
	assert.Error(t, err)
}

func TestArticleVerdictSchemaParseStrictAcceptsWellFormedPayload(t *testing.T) {
	out, err := ArticleVerdictSchema{}.ParseStrict([]byte(`{"articleAnalysis":{"thesisSupported":true,"articleVerdict":65},"claimVerdicts":[{"claimId":"c1","verdict":65,"confidence":80,"reasoning":"r"}]}`))
	require.NoError(t, err)
	v, ok := out.(ArticleVerdict)
	require.True(t, ok)
	assert.True(t, v.ArticleAnalysis.ThesisSupported)
}
