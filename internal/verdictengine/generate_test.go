package verdictengine

import (
	"context"
	"testing"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmadapter"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmgateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verdictCounter struct{}

func (verdictCounter) RecordLLMCall(int) {}

func newVerdictGateway(responses map[string]string) *llmgateway.Gateway {
	client := llmadapter.NewFakeClient(8192)
	for task, resp := range responses {
		client.Responses[task] = resp
	}
	return llmgateway.New(client, llmgateway.DefaultTiering(true), verdictCounter{}, false)
}

func TestSelectModeDispatchesOnInputTypeAndContextCount(t *testing.T) {
	assert.Equal(t, ModeArticle, SelectMode(domain.DetectedArticle, true, 2))
	assert.Equal(t, ModeMultiContext, SelectMode(domain.DetectedClaim, true, 2))
	assert.Equal(t, ModeSingleContext, SelectMode(domain.DetectedClaim, false, 1))
	assert.Equal(t, ModeSingleContext, SelectMode(domain.DetectedClaim, true, 1))
}

func TestGenerateSingleContextFillsMissingVerdicts(t *testing.T) {
	resp := `{"verdictSummary":"mostly true","claimVerdicts":[{"claimId":"SC1","verdict":"80","confidence":"70","reasoning":"supported by evidence"}]}`
	gw := newVerdictGateway(map[string]string{"verdict": resp})
	state := domain.NewResearchState("claim", domain.InputText, "")
	state.Understanding = &domain.ClaimUnderstanding{
		SubClaims: []domain.SubClaim{
			{ID: "SC1", Text: "first claim"},
			{ID: "SC2", Text: "second claim with no returned verdict"},
		},
	}

	verdicts, article, err := Generate(context.Background(), gw, state, ModeSingleContext)
	require.NoError(t, err)
	assert.Nil(t, article)
	require.Len(t, verdicts, 2)
	assert.Equal(t, 80, verdicts[0].TruthPercentage)
	assert.Equal(t, 50, verdicts[1].TruthPercentage)
	assert.Equal(t, "No verdict returned by LLM", verdicts[1].Reasoning)
}

func TestGenerateMultiContextUsesContextFallbackForMissingClaim(t *testing.T) {
	resp := `{"verdictSummary":"s","analysisContextAnswers":[{"contextId":"CTX_1","answer":"75"}],"claimVerdicts":[]}`
	gw := newVerdictGateway(map[string]string{"verdict": resp})
	state := domain.NewResearchState("claim", domain.InputText, "")
	state.Understanding = &domain.ClaimUnderstanding{
		AnalysisContexts: []domain.AnalysisContext{{ID: "CTX_1", Name: "context one"}},
		SubClaims: []domain.SubClaim{
			{ID: "SC1", Text: "claim in context one", ContextID: "CTX_1"},
		},
	}

	verdicts, _, err := Generate(context.Background(), gw, state, ModeMultiContext)
	require.NoError(t, err)
	require.Len(t, verdicts, 1)
	assert.Equal(t, 75, verdicts[0].TruthPercentage)
}

func TestGenerateArticleParsesArticleAnalysis(t *testing.T) {
	resp := `{"claimVerdicts":[{"claimId":"SC1","verdict":"90","confidence":"80","reasoning":"r"}],"articleAnalysis":{"thesisSupported":true,"articleVerdict":"88"}}`
	gw := newVerdictGateway(map[string]string{"verdict": resp})
	state := domain.NewResearchState("claim", domain.InputText, "")
	state.Understanding = &domain.ClaimUnderstanding{
		SubClaims: []domain.SubClaim{{ID: "SC1", Text: "claim"}},
	}

	verdicts, article, err := Generate(context.Background(), gw, state, ModeArticle)
	require.NoError(t, err)
	require.NotNil(t, article)
	assert.True(t, article.ThesisSupported)
	assert.Equal(t, 88, article.ArticleVerdict)
	require.Len(t, verdicts, 1)
	assert.Equal(t, 90, verdicts[0].TruthPercentage)
}

func TestGenerateSynthesizesFailureOnCompleteFailure(t *testing.T) {
	gw := newVerdictGateway(map[string]string{"verdict": "not json at all, no braces here"})
	state := domain.NewResearchState("claim", domain.InputText, "")
	state.Understanding = &domain.ClaimUnderstanding{
		SubClaims: []domain.SubClaim{{ID: "SC1", Text: "claim"}},
	}

	verdicts, article, err := Generate(context.Background(), gw, state, ModeSingleContext)
	require.NoError(t, err)
	assert.Nil(t, article)
	require.Len(t, verdicts, 1)
	assert.Equal(t, 50, verdicts[0].TruthPercentage)
	require.Len(t, state.AnalysisWarnings, 1)
	assert.Equal(t, "structured_output_failure", state.AnalysisWarnings[0].Type)
}
