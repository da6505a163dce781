package research

import (
	"fmt"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/text"
)

// ResearchDecision is DecideNextResearch's output (§4.6).
type ResearchDecision struct {
	Complete              bool
	Focus                 string
	Queries               []string
	Category              string
	TargetContextID       string
	TargetClaimID         string
	IsContradictionSearch bool
	RecencyMatters        bool
}

// Thresholds bundles the config values DecideNextResearch needs, kept
// separate from internal/config so this package doesn't import it.
type Thresholds struct {
	MinEvidenceItemsRequired int
	MinCategories            int
	Deterministic            bool
	CurrentYear              int
	TemporalConfidenceThreshold float64
}

// DecideNextResearch applies §4.6's ordered rule list and returns the next
// action, or Complete=true once every gate passes.
func DecideNextResearch(state *domain.ResearchState, th Thresholds) ResearchDecision {
	if state.Understanding == nil {
		return ResearchDecision{Complete: true}
	}

	// Rule 1: completeness gate (checked last in the ordered list's logic,
	// but evaluated first here since every other rule is a reason it fails).
	if d, ok := completenessGate(state, th); ok {
		return d
	}

	// Rule 2: central claim coverage.
	if d, ok := centralClaimCoverage(state); ok {
		return d
	}

	// Rule 3: claim-level recency.
	if d, ok := claimLevelRecency(state, th); ok {
		return d
	}

	// Rule 4: context coverage.
	if d, ok := contextCoverage(state); ok {
		return d
	}

	// Rule 5: contradiction / inverse-claim / decision-maker conflict /
	// model-suggested queries, each issued at most once, in this order.
	// No legal-framework or general-evidence search is issued.
	if d, ok := fixedOnceSearches(state, th); ok {
		return d
	}

	return ResearchDecision{Complete: true}
}

func completenessGate(state *domain.ResearchState, th Thresholds) (ResearchDecision, bool) {
	if len(state.EvidenceItems) < th.MinEvidenceItemsRequired {
		return ResearchDecision{}, false
	}
	if distinctCategories(state.EvidenceItems) < th.MinCategories {
		return ResearchDecision{}, false
	}
	if !state.ContradictionSearchPerformed {
		return ResearchDecision{}, false
	}
	if requiresInverseClaimSearch(state) && !state.InverseClaimSearchPerformed {
		return ResearchDecision{}, false
	}
	if state.Understanding != nil {
		for _, ctx := range state.Understanding.AnalysisContexts {
			if countEvidenceForContext(state, ctx.ID) == 0 {
				return ResearchDecision{}, false
			}
		}
	}
	return ResearchDecision{Complete: true}, true
}

func centralClaimCoverage(state *domain.ResearchState) (ResearchDecision, bool) {
	for _, claim := range state.Understanding.SubClaims {
		if !claim.IsCentral || claim.ClaimRole != domain.RoleCore {
			continue
		}
		if _, searched := state.CentralClaimsSearched[claim.ID]; searched {
			continue
		}
		if hasMatchingEvidence(state, claim) {
			continue
		}
		state.CentralClaimsSearched[claim.ID] = struct{}{}
		return ResearchDecision{
			Focus:           "central_claim_coverage",
			Queries:         []string{claim.Text},
			TargetContextID: claim.ContextID,
			TargetClaimID:   claim.ID,
		}, true
	}
	return ResearchDecision{}, false
}

func claimLevelRecency(state *domain.ResearchState, th Thresholds) (ResearchDecision, bool) {
	if state.RecentClaimsSearched {
		return ResearchDecision{}, false
	}
	threshold := th.TemporalConfidenceThreshold
	if threshold <= 0 {
		threshold = 0.6
	}
	for _, claim := range state.Understanding.SubClaims {
		ctx, _ := state.ContextByID(claim.ContextID)
		var ctxPtr *domain.AnalysisContext
		if claim.ContextID != "" {
			ctxPtr = &ctx
		}
		if !IsRecencySensitive(claim.Text, ctxPtr, state.Understanding.TemporalContext, th.CurrentYear, threshold) {
			continue
		}
		if hasMatchingEvidence(state, claim) {
			continue
		}
		state.RecentClaimsSearched = true
		return ResearchDecision{
			Focus:           "claim_recency",
			Queries:         []string{claim.Text},
			TargetContextID: claim.ContextID,
			TargetClaimID:   claim.ID,
			RecencyMatters:  true,
		}, true
	}
	return ResearchDecision{}, false
}

func contextCoverage(state *domain.ResearchState) (ResearchDecision, bool) {
	for _, ctx := range state.Understanding.AnalysisContexts {
		if countEvidenceForContext(state, ctx.ID) >= 2 {
			continue
		}
		entity := ctx.ShortName
		if entity == "" {
			entity = ctx.Name
		}
		return ResearchDecision{
			Focus:           "context_coverage",
			Queries:         []string{entity},
			TargetContextID: ctx.ID,
		}, true
	}
	return ResearchDecision{}, false
}

func fixedOnceSearches(state *domain.ResearchState, th Thresholds) (ResearchDecision, bool) {
	if !state.ContradictionSearchPerformed {
		state.ContradictionSearchPerformed = true
		return ResearchDecision{
			Focus:                 "contradiction_search",
			Queries:               []string{fmt.Sprintf("%s false OR disputed", state.Understanding.MainThesis)},
			IsContradictionSearch: true,
		}, true
	}
	if requiresInverseClaimSearch(state) && !state.InverseClaimSearchPerformed {
		state.InverseClaimSearchPerformed = true
		return ResearchDecision{
			Focus:                 "inverse_claim_search",
			Queries:               []string{inverseQuery(state.Understanding.MainThesis)},
			IsContradictionSearch: true,
		}, true
	}
	if !state.DecisionMakerSearchPerformed {
		state.DecisionMakerSearchPerformed = true
		return ResearchDecision{
			Focus:   "decision_maker_conflict",
			Queries: []string{state.Understanding.MainThesis + " conflict of interest"},
		}, true
	}
	if !th.Deterministic && len(state.Understanding.ResearchQueries) > 0 {
		q := state.Understanding.ResearchQueries[0]
		state.Understanding.ResearchQueries = state.Understanding.ResearchQueries[1:]
		return ResearchDecision{Focus: "model_suggested", Queries: []string{q}}, true
	}
	return ResearchDecision{}, false
}

func requiresInverseClaimSearch(state *domain.ResearchState) bool {
	if state.Understanding == nil {
		return false
	}
	for _, claim := range state.Understanding.SubClaims {
		if claim.IsCounterClaim {
			return true
		}
	}
	return false
}

func distinctCategories(items []domain.EvidenceItem) int {
	seen := map[string]struct{}{}
	for _, item := range items {
		if item.Category != "" {
			seen[item.Category] = struct{}{}
		}
	}
	return len(seen)
}

func countEvidenceForContext(state *domain.ResearchState, contextID string) int {
	count := 0
	for _, item := range state.EvidenceItems {
		if item.ContextID == contextID {
			count++
		}
	}
	return count
}

func hasMatchingEvidence(state *domain.ResearchState, claim domain.SubClaim) bool {
	for _, item := range state.EvidenceItems {
		if claim.ContextID != "" && item.ContextID != "" && item.ContextID != claim.ContextID {
			continue
		}
		if text.OverlapCount(claim.Text, item.Statement) >= 2 {
			return true
		}
	}
	return false
}
