package contextengine

import (
	"sort"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/text"
)

// PruneByCoverage removes contexts with zero claims AND zero evidence,
// except it never prunes down to zero contexts when only one remains
// (§4.3). Orphaned assignments to pruned contexts are cleared.
func PruneByCoverage(state *domain.ResearchState) {
	if state.Understanding == nil || len(state.Understanding.AnalysisContexts) <= 1 {
		return
	}

	claimCount := map[string]int{}
	for _, c := range state.Understanding.SubClaims {
		if c.ContextID != "" {
			claimCount[c.ContextID]++
		}
	}
	evidenceCount := map[string]int{}
	for _, e := range state.EvidenceItems {
		if e.ContextID != "" {
			evidenceCount[e.ContextID]++
		}
	}

	var kept []domain.AnalysisContext
	pruned := map[string]struct{}{}
	for _, c := range state.Understanding.AnalysisContexts {
		if claimCount[c.ID] == 0 && evidenceCount[c.ID] == 0 {
			pruned[c.ID] = struct{}{}
			continue
		}
		kept = append(kept, c)
	}
	if len(kept) == 0 {
		return
	}
	state.Understanding.AnalysisContexts = kept
	state.Understanding.RequiresSeparateAnalysis = len(kept) > 1

	for i := range state.Understanding.SubClaims {
		if _, ok := pruned[state.Understanding.SubClaims[i].ContextID]; ok {
			state.Understanding.SubClaims[i].ContextID = ""
		}
	}
	for i := range state.EvidenceItems {
		if _, ok := pruned[state.EvidenceItems[i].ContextID]; ok {
			state.EvidenceItems[i].ContextID = ""
		}
	}
}

// AssignUnassigned implements the §4.3 unassigned backstop: when >=2
// contexts exist and some direct/tangential claims have no contextId,
// assign them to the best-matching existing context by text similarity to
// the context signature, with a deterministic lexicographic tiebreak.
// Never creates a new "General" context.
func AssignUnassigned(state *domain.ResearchState) {
	if state.Understanding == nil || len(state.Understanding.AnalysisContexts) < 2 {
		return
	}
	contexts := append([]domain.AnalysisContext{}, state.Understanding.AnalysisContexts...)
	sort.Slice(contexts, func(i, j int) bool { return contexts[i].ID < contexts[j].ID })

	for i := range state.Understanding.SubClaims {
		c := &state.Understanding.SubClaims[i]
		if c.ContextID != "" {
			continue
		}
		if c.ThesisRelevance == domain.RelevanceIrrelevant {
			continue
		}
		best, bestScore := "", -1.0
		for _, ctx := range contexts {
			signature := ctx.Name + " " + ctx.Subject + " " + ctx.AssessedStatement
			score := text.Jaccard(c.Text, signature)
			if score > bestScore || (score == bestScore && ctx.ID < best) {
				best, bestScore = ctx.ID, score
			}
		}
		c.ContextID = best
	}
}
