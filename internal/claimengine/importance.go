// Package claimengine implements C5: atomic decomposition, importance
// normalization, thesis-relevance policy, counter-claim detection, and
// supplemental backfill (§4.4). Grounded on the deterministic post-process
// style of insightify/internal/common/utils (pure functions over slices).
package claimengine

import (
	"sort"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
)

const maxCentralPerContext = 2

// NormalizeImportance is the deterministic post-process run after every
// LLM write to claims (§4.4): attribution/source/timing claims are forced
// to low centrality, isCentral is re-derived, and a hard cap of 1-2
// centrality=high claims per context is enforced by deterministic demotion
// of the claims that exceed it (demote claims appearing later in the
// surviving order first).
func NormalizeImportance(claims []domain.SubClaim) []domain.SubClaim {
	out := make([]domain.SubClaim, len(claims))
	copy(out, claims)

	for i := range out {
		switch out[i].ClaimRole {
		case domain.RoleAttribution, domain.RoleSource, domain.RoleTiming:
			out[i].Centrality = domain.LevelLow
		}
		out[i].IsCentral = out[i].Centrality == domain.LevelHigh
	}

	perContextCentralIdx := map[string][]int{}
	for i, c := range out {
		if c.IsCentral {
			perContextCentralIdx[c.ContextID] = append(perContextCentralIdx[c.ContextID], i)
		}
	}
	for _, idxs := range perContextCentralIdx {
		if len(idxs) <= maxCentralPerContext {
			continue
		}
		sort.Ints(idxs)
		for _, idx := range idxs[maxCentralPerContext:] {
			out[idx].Centrality = domain.LevelMedium
			out[idx].IsCentral = false
		}
	}
	return out
}
