package research

import (
	"testing"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeEvidenceGapsFlagsNoEvidence(t *testing.T) {
	state := domain.NewResearchState("claim", domain.InputText, "")
	state.Understanding = &domain.ClaimUnderstanding{
		SubClaims: []domain.SubClaim{
			{ID: "SC1", Text: "vaccine trial results published", ThesisRelevance: domain.RelevanceDirect, Centrality: domain.LevelHigh},
		},
	}
	gaps := AnalyzeEvidenceGaps(state)
	require.Len(t, gaps, 1)
	assert.Equal(t, GapNoEvidence, gaps[0].Kind)
	assert.Equal(t, SeverityCritical, gaps[0].Severity, "high centrality no_evidence gap escalates past high to critical")
}

func TestAnalyzeEvidenceGapsSkipsNonDirectClaims(t *testing.T) {
	state := domain.NewResearchState("claim", domain.InputText, "")
	state.Understanding = &domain.ClaimUnderstanding{
		SubClaims: []domain.SubClaim{
			{ID: "SC1", Text: "a tangential remark", ThesisRelevance: domain.RelevanceTangential},
		},
	}
	gaps := AnalyzeEvidenceGaps(state)
	assert.Empty(t, gaps)
}

func TestAnalyzeEvidenceGapsFlagsNoCounterEvidence(t *testing.T) {
	state := domain.NewResearchState("claim", domain.InputText, "")
	state.Understanding = &domain.ClaimUnderstanding{
		SubClaims: []domain.SubClaim{
			{ID: "SC1", Text: "vaccine trial results published widely", ThesisRelevance: domain.RelevanceDirect},
		},
	}
	state.EvidenceItems = []domain.EvidenceItem{
		{Statement: "vaccine trial results published widely this year", ClaimDirection: domain.DirectionSupports, ProbativeValue: domain.ProbativeHigh},
	}
	gaps := AnalyzeEvidenceGaps(state)
	require.Len(t, gaps, 1)
	assert.Equal(t, GapNoCounterEvidence, gaps[0].Kind)
}
