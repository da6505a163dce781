// Package contextengine implements C4: the AnalysisContext model's
// canonicalization, deduplication, evidence-driven refinement, coverage
// pruning, and the unassigned-claim backstop (§4.3). Grounded on
// insightify/internal/common/delta's before/after remap-and-reconcile
// pattern, adapted from JSON-path deltas to context-id remaps.
package contextengine

import (
	"fmt"
	"sort"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
)

// Remap maps a pre-transform context id to its post-transform survivor id.
// Closed under transitive merges: Remap.Resolve chases until stable (§9).
type Remap map[string]string

// Resolve follows the remap chain to a fixed point, guarding against cycles.
func (r Remap) Resolve(id string) string {
	seen := map[string]struct{}{}
	for {
		next, ok := r[id]
		if !ok || next == id {
			return id
		}
		if _, loop := seen[next]; loop {
			return id
		}
		seen[id] = struct{}{}
		id = next
	}
}

// Canonicalize assigns stable CTX_1..CTX_N ids (or CTX_SEED_* for
// heuristic seeds), preserving input order, and returns a remap from any
// pre-existing (LLM-assigned or placeholder) id to the canonical one.
// Pure and deterministic on a given contexts slice (§4.3).
func Canonicalize(contexts []domain.AnalysisContext, seed bool) ([]domain.AnalysisContext, Remap) {
	remap := Remap{}
	out := make([]domain.AnalysisContext, len(contexts))
	prefix := "CTX_"
	if seed {
		prefix = "CTX_SEED_"
	}
	for i, c := range contexts {
		newID := fmt.Sprintf("%s%d", prefix, i+1)
		if c.ID != "" && c.ID != newID {
			remap[c.ID] = newID
		}
		c.ID = newID
		out[i] = c
	}
	return out, remap
}

// RewriteReferences applies a remap to every context-id reference held by
// claims and evidence items, chasing transitive merges (§9 "orphan
// references / cyclic dedup").
func RewriteReferences(state *domain.ResearchState, remap Remap) {
	if state.Understanding != nil {
		for i := range state.Understanding.SubClaims {
			if id := state.Understanding.SubClaims[i].ContextID; id != "" {
				state.Understanding.SubClaims[i].ContextID = remap.Resolve(id)
			}
		}
	}
	for i := range state.EvidenceItems {
		if id := state.EvidenceItems[i].ContextID; id != "" {
			state.EvidenceItems[i].ContextID = remap.Resolve(id)
		}
	}
}

// Reconcile restores any context still referenced by a claim or evidence
// item but missing from the current contexts slice (from a prior, now-
// stale transform), else clears the dangling reference (§9).
func Reconcile(state *domain.ResearchState, priorByID map[string]domain.AnalysisContext) {
	if state.Understanding == nil {
		return
	}
	present := map[string]struct{}{}
	for _, c := range state.Understanding.AnalysisContexts {
		present[c.ID] = struct{}{}
	}

	restore := func(id string) bool {
		if id == "" {
			return true
		}
		if _, ok := present[id]; ok {
			return true
		}
		if ctx, ok := priorByID[id]; ok {
			state.Understanding.AnalysisContexts = append(state.Understanding.AnalysisContexts, ctx)
			present[id] = struct{}{}
			return true
		}
		return false
	}

	for i := range state.Understanding.SubClaims {
		id := state.Understanding.SubClaims[i].ContextID
		if !restore(id) {
			state.Understanding.SubClaims[i].ContextID = ""
		}
	}
	for i := range state.EvidenceItems {
		id := state.EvidenceItems[i].ContextID
		if !restore(id) {
			state.EvidenceItems[i].ContextID = ""
		}
	}

	sort.Slice(state.Understanding.AnalysisContexts, func(i, j int) bool {
		return state.Understanding.AnalysisContexts[i].ID < state.Understanding.AnalysisContexts[j].ID
	})
}

func indexByID(contexts []domain.AnalysisContext) map[string]domain.AnalysisContext {
	m := make(map[string]domain.AnalysisContext, len(contexts))
	for _, c := range contexts {
		m[c.ID] = c
	}
	return m
}
