package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
)

func TestPruneTangentialBaselessClaimsKeepsNonTangentialRegardlessOfEvidence(t *testing.T) {
	verdicts := []domain.ClaimVerdict{
		{ClaimID: "c1", ThesisRelevance: domain.RelevanceDirect},
	}
	out := PruneTangentialBaselessClaims(verdicts, map[string]domain.EvidenceItem{}, 2)
	assert.Len(t, out, 1)
}

func TestPruneTangentialBaselessClaimsDropsTangentialWithInsufficientEvidence(t *testing.T) {
	verdicts := []domain.ClaimVerdict{
		{ClaimID: "c1", ThesisRelevance: domain.RelevanceTangential, SupportingEvidenceIDs: []string{"e1"}},
	}
	evidence := map[string]domain.EvidenceItem{
		"e1": {ID: "e1", ProbativeValue: domain.ProbativeLow},
	}
	out := PruneTangentialBaselessClaims(verdicts, evidence, 2)
	assert.Empty(t, out)
}

func TestPruneTangentialBaselessClaimsKeepsTangentialWithEnoughQualityEvidence(t *testing.T) {
	verdicts := []domain.ClaimVerdict{
		{ClaimID: "c1", ThesisRelevance: domain.RelevanceTangential, SupportingEvidenceIDs: []string{"e1", "e2"}},
	}
	evidence := map[string]domain.EvidenceItem{
		"e1": {ID: "e1", ProbativeValue: domain.ProbativeHigh},
		"e2": {ID: "e2", ProbativeValue: domain.ProbativeMedium},
	}
	out := PruneTangentialBaselessClaims(verdicts, evidence, 2)
	assert.Len(t, out, 1)
}

func TestPruneOpinionOnlyFactorsDropsOpinionAndUnknown(t *testing.T) {
	factors := []domain.KeyFactor{
		{ID: "f1", FactualBasis: "fact"},
		{ID: "f2", FactualBasis: "opinion"},
		{ID: "f3", FactualBasis: "unknown"},
	}
	out := PruneOpinionOnlyFactors(factors)
	assert.Len(t, out, 1)
	assert.Equal(t, "f1", out[0].ID)
}

func TestWarnOnOpinionAccumulationFiresAboveThreshold(t *testing.T) {
	state := domain.NewResearchState("claim", domain.InputText, "job-1")
	factors := []domain.KeyFactor{
		{ID: "f1", FactualBasis: "opinion"},
		{ID: "f2", FactualBasis: "opinion"},
		{ID: "f3", FactualBasis: "fact"},
	}
	WarnOnOpinionAccumulation(state, factors, 0.5)
	assert.Len(t, state.AnalysisWarnings, 1)
}

func TestWarnOnOpinionAccumulationSkipsBelowThreshold(t *testing.T) {
	state := domain.NewResearchState("claim", domain.InputText, "job-1")
	factors := []domain.KeyFactor{
		{ID: "f1", FactualBasis: "opinion"},
		{ID: "f2", FactualBasis: "fact"},
		{ID: "f3", FactualBasis: "fact"},
	}
	WarnOnOpinionAccumulation(state, factors, 0.5)
	assert.Empty(t, state.AnalysisWarnings)
}

func TestWarnOnOpinionAccumulationSkipsEmptyFactorList(t *testing.T) {
	state := domain.NewResearchState("claim", domain.InputText, "job-1")
	WarnOnOpinionAccumulation(state, nil, 0.1)
	assert.Empty(t, state.AnalysisWarnings)
}
