package research

import (
	"testing"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseState() *domain.ResearchState {
	state := domain.NewResearchState("claim text", domain.InputText, "")
	state.Understanding = &domain.ClaimUnderstanding{
		MainThesis: "claim text",
		SubClaims: []domain.SubClaim{
			{ID: "SC1", Text: "central claim about the topic", ClaimRole: domain.RoleCore, IsCentral: true, ThesisRelevance: domain.RelevanceDirect},
		},
	}
	return state
}

func TestDecideNextResearchRequestsCentralClaimCoverageFirst(t *testing.T) {
	state := baseState()
	decision := DecideNextResearch(state, Thresholds{MinEvidenceItemsRequired: 8, MinCategories: 3, CurrentYear: 2026})
	assert.False(t, decision.Complete)
	assert.Equal(t, "central_claim_coverage", decision.Focus)
	assert.Equal(t, "SC1", decision.TargetClaimID)
}

func TestDecideNextResearchCompletesWhenAllGatesPass(t *testing.T) {
	state := baseState()
	state.CentralClaimsSearched["SC1"] = struct{}{}
	state.ContradictionSearchPerformed = true
	state.DecisionMakerSearchPerformed = true
	state.RecentClaimsSearched = true
	for i := 0; i < 8; i++ {
		state.EvidenceItems = append(state.EvidenceItems, domain.EvidenceItem{
			Statement: "central claim about the topic supported by evidence",
			Category:  []string{"a", "b", "c"}[i%3],
		})
	}
	decision := DecideNextResearch(state, Thresholds{MinEvidenceItemsRequired: 8, MinCategories: 3, CurrentYear: 2026})
	require.True(t, decision.Complete)
}

func TestDecideNextResearchFallsThroughToContradictionSearch(t *testing.T) {
	state := baseState()
	state.CentralClaimsSearched["SC1"] = struct{}{}
	state.RecentClaimsSearched = true
	decision := DecideNextResearch(state, Thresholds{MinEvidenceItemsRequired: 8, MinCategories: 3, CurrentYear: 2026})
	assert.Equal(t, "contradiction_search", decision.Focus)
	assert.True(t, state.ContradictionSearchPerformed)
}
