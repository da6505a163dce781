package claimengine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
)

func newStateWithClaims(claims ...domain.SubClaim) *domain.ResearchState {
	state := domain.NewResearchState("claim", domain.InputText, "job-1")
	state.Understanding = &domain.ClaimUnderstanding{SubClaims: claims}
	return state
}

func TestValidateThesisRelevanceWarnsOnLowConfidence(t *testing.T) {
	state := newStateWithClaims(domain.SubClaim{ID: "c1", ThesisRelevanceConfidence: 50, ThesisRelevance: domain.RelevanceDirect})
	ValidateThesisRelevance(state, DefaultThesisRelevanceConfig())
	assert.Len(t, state.AnalysisWarnings, 1)
}

func TestValidateThesisRelevanceDowngradesBelowAutoThreshold(t *testing.T) {
	state := newStateWithClaims(domain.SubClaim{ID: "c1", ThesisRelevanceConfidence: 40, ThesisRelevance: domain.RelevanceDirect})
	ValidateThesisRelevance(state, DefaultThesisRelevanceConfig())
	assert.Equal(t, domain.RelevanceTangential, state.Understanding.SubClaims[0].ThesisRelevance)
}

func TestValidateThesisRelevanceLeavesHighConfidenceClaimsAlone(t *testing.T) {
	state := newStateWithClaims(domain.SubClaim{ID: "c1", ThesisRelevanceConfidence: 95, ThesisRelevance: domain.RelevanceDirect})
	ValidateThesisRelevance(state, DefaultThesisRelevanceConfig())
	assert.Empty(t, state.AnalysisWarnings)
	assert.Equal(t, domain.RelevanceDirect, state.Understanding.SubClaims[0].ThesisRelevance)
}

func TestValidateThesisRelevanceNilUnderstandingIsNoOp(t *testing.T) {
	state := domain.NewResearchState("claim", domain.InputText, "job-1")
	assert.NotPanics(t, func() {
		ValidateThesisRelevance(state, DefaultThesisRelevanceConfig())
	})
}

func TestEnforceThesisRelevanceInvariantsPromotesHighOverlapTangential(t *testing.T) {
	state := newStateWithClaims(domain.SubClaim{ID: "c1", Text: "the city council approved the annual budget", ThesisRelevance: domain.RelevanceTangential})
	state.Understanding.MainThesis = "the city council approved the annual budget unanimously"
	EnforceThesisRelevanceInvariants(state, DefaultThesisRelevanceConfig())
	assert.Equal(t, domain.RelevanceDirect, state.Understanding.SubClaims[0].ThesisRelevance)
}

func TestEnforceThesisRelevanceInvariantsForcesCentralClaimsToDirect(t *testing.T) {
	state := newStateWithClaims(domain.SubClaim{ID: "c1", Text: "unrelated text", IsCentral: true, ThesisRelevance: domain.RelevanceTangential})
	state.Understanding.MainThesis = "something else entirely"
	EnforceThesisRelevanceInvariants(state, DefaultThesisRelevanceConfig())
	assert.Equal(t, domain.RelevanceDirect, state.Understanding.SubClaims[0].ThesisRelevance)
}

func TestEnforceThesisRelevanceInvariantsClearsCentralityForNonDirect(t *testing.T) {
	state := newStateWithClaims(domain.SubClaim{ID: "c1", Text: "unrelated", ThesisRelevance: domain.RelevanceIrrelevant, Centrality: domain.LevelHigh, IsCentral: false})
	state.Understanding.MainThesis = "something else"
	EnforceThesisRelevanceInvariants(state, DefaultThesisRelevanceConfig())
	c := state.Understanding.SubClaims[0]
	assert.Equal(t, domain.LevelLow, c.Centrality)
	assert.False(t, c.IsCentral)
}

func TestApplyPolicyBDropsIrrelevantClaimsAndReferencesToThem(t *testing.T) {
	state := newStateWithClaims(
		domain.SubClaim{ID: "c1", ThesisRelevance: domain.RelevanceIrrelevant},
		domain.SubClaim{ID: "c2", ThesisRelevance: domain.RelevanceDirect, DependsOn: []string{"c1", "c3"}},
		domain.SubClaim{ID: "c3", ThesisRelevance: domain.RelevanceDirect},
	)
	ApplyPolicyB(state)

	ids := make([]string, 0)
	for _, c := range state.Understanding.SubClaims {
		ids = append(ids, c.ID)
	}
	assert.ElementsMatch(t, []string{"c2", "c3"}, ids)

	for _, c := range state.Understanding.SubClaims {
		if c.ID == "c2" {
			assert.Equal(t, []string{"c3"}, c.DependsOn)
		}
	}
}

func TestApplyPolicyBKeepsTangentialClaims(t *testing.T) {
	state := newStateWithClaims(domain.SubClaim{ID: "c1", ThesisRelevance: domain.RelevanceTangential})
	ApplyPolicyB(state)
	assert.Len(t, state.Understanding.SubClaims, 1)
}

func TestEnsureMinimumDirectCoveragePromotesEligibleClaims(t *testing.T) {
	state := newStateWithClaims(
		domain.SubClaim{ID: "c1", ContextID: "ctx-1", ThesisRelevance: domain.RelevanceDirect},
		domain.SubClaim{ID: "c2", ContextID: "ctx-1", ThesisRelevance: domain.RelevanceTangential, CheckWorthiness: domain.LevelHigh},
		domain.SubClaim{ID: "c3", ContextID: "ctx-1", ThesisRelevance: domain.RelevanceTangential, CheckWorthiness: domain.LevelHigh},
	)
	EnsureMinimumDirectCoverage(state)

	directCount := 0
	for _, c := range state.Understanding.SubClaims {
		if c.ThesisRelevance == domain.RelevanceDirect {
			directCount++
		}
	}
	assert.GreaterOrEqual(t, directCount, 2)
}

func TestEnsureMinimumDirectCoverageSkipsAttributionAndLowCheckWorthiness(t *testing.T) {
	state := newStateWithClaims(
		domain.SubClaim{ID: "c1", ContextID: "ctx-1", ThesisRelevance: domain.RelevanceTangential, ClaimRole: domain.RoleAttribution, CheckWorthiness: domain.LevelHigh},
		domain.SubClaim{ID: "c2", ContextID: "ctx-1", ThesisRelevance: domain.RelevanceTangential, CheckWorthiness: domain.LevelLow},
	)
	EnsureMinimumDirectCoverage(state)

	assert.Equal(t, domain.RelevanceTangential, state.Understanding.SubClaims[0].ThesisRelevance)
	assert.Equal(t, domain.RelevanceTangential, state.Understanding.SubClaims[1].ThesisRelevance)
}
