package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
)

func TestNormalizeClassificationAcceptsValidValue(t *testing.T) {
	safe, rec := NormalizeClassification("harmPotential", "high", "claim-1", "some text")
	assert.Equal(t, "high", safe)
	assert.Nil(t, rec)
}

func TestNormalizeClassificationFallsBackOnMissingValue(t *testing.T) {
	safe, rec := NormalizeClassification("harmPotential", "", "claim-1", "some text")
	assert.Equal(t, "medium", safe)
	require.NotNil(t, rec)
	assert.Equal(t, "missing", rec.Reason)
	assert.Equal(t, "harmPotential", rec.Field)
	assert.Equal(t, "claim-1", rec.Location)
	assert.Equal(t, "medium", rec.DefaultUsed)
}

func TestNormalizeClassificationFallsBackOnInvalidValue(t *testing.T) {
	safe, rec := NormalizeClassification("factualBasis", "bogus", "claim-2", "some text")
	assert.Equal(t, "unknown", safe)
	require.NotNil(t, rec)
	assert.Equal(t, "invalid", rec.Reason)
}

func TestNormalizeClassificationTruncatesLongText(t *testing.T) {
	longText := make([]byte, 150)
	for i := range longText {
		longText[i] = 'a'
	}
	_, rec := NormalizeClassification("evidenceBasis", "", "loc", string(longText))
	require.NotNil(t, rec)
	assert.Len(t, rec.Text, 100)
}

func TestNormalizeClassificationUnknownFieldPassesThrough(t *testing.T) {
	safe, rec := NormalizeClassification("notAField", "whatever", "loc", "text")
	assert.Equal(t, "whatever", safe)
	assert.Nil(t, rec)
}

func TestSweepNormalizesEvidenceItemFields(t *testing.T) {
	state := domain.NewResearchState("claim", domain.InputText, "job-1")
	state.EvidenceItems = append(state.EvidenceItems, domain.EvidenceItem{
		ID:              "e1",
		Statement:       "the bridge collapsed",
		SourceAuthority: "",
		EvidenceBasis:   "bogus",
	})

	Sweep(state, "post-extraction")

	assert.Equal(t, domain.AuthoritySecondary, state.EvidenceItems[0].SourceAuthority)
	assert.Equal(t, domain.BasisAnecdotal, state.EvidenceItems[0].EvidenceBasis)
	assert.Len(t, state.FallbackRecords, 2)
}

func TestSweepLeavesValidEvidenceFieldsUntouched(t *testing.T) {
	state := domain.NewResearchState("claim", domain.InputText, "job-1")
	state.EvidenceItems = append(state.EvidenceItems, domain.EvidenceItem{
		ID:              "e1",
		SourceAuthority: domain.AuthorityPrimary,
		EvidenceBasis:   domain.BasisScientific,
	})

	Sweep(state, "post-extraction")

	assert.Equal(t, domain.AuthorityPrimary, state.EvidenceItems[0].SourceAuthority)
	assert.Equal(t, domain.BasisScientific, state.EvidenceItems[0].EvidenceBasis)
	assert.Empty(t, state.FallbackRecords)
}

func TestSweepNormalizesSubClaimHarmPotentialAndKeyFactorFactualBasis(t *testing.T) {
	state := domain.NewResearchState("claim", domain.InputText, "job-1")
	state.Understanding = &domain.ClaimUnderstanding{
		SubClaims: []domain.SubClaim{{ID: "c1", Text: "the policy passed", HarmPotential: ""}},
		KeyFactors: []domain.KeyFactor{{ID: "kf1", Name: "legality", FactualBasis: "bogus"}},
	}

	Sweep(state, "final")

	assert.Equal(t, domain.Level("medium"), state.Understanding.SubClaims[0].HarmPotential)
	assert.Equal(t, "unknown", state.Understanding.KeyFactors[0].FactualBasis)
	assert.Len(t, state.FallbackRecords, 2)
}

func TestSweepNilUnderstandingSkipsClaimChecks(t *testing.T) {
	state := domain.NewResearchState("claim", domain.InputText, "job-1")
	assert.NotPanics(t, func() {
		Sweep(state, "post-extraction")
	})
	assert.Empty(t, state.FallbackRecords)
}
