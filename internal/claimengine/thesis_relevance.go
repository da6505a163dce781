package claimengine

import (
	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/text"
)

// ThesisRelevanceConfig bundles the configurable thresholds (§4.4).
type ThesisRelevanceConfig struct {
	LowConfidenceThreshold   int // default 70
	AutoDowngradeThreshold   int // default 60
	PromotionOverlapThreshold float64 // default 0.5
}

func DefaultThesisRelevanceConfig() ThesisRelevanceConfig {
	return ThesisRelevanceConfig{LowConfidenceThreshold: 70, AutoDowngradeThreshold: 60, PromotionOverlapThreshold: 0.5}
}

// ValidateThesisRelevance logs a warning for low-confidence relevance
// calls and demotes direct->tangential below the auto-downgrade threshold
// (§4.4).
func ValidateThesisRelevance(state *domain.ResearchState, cfg ThesisRelevanceConfig) {
	if state.Understanding == nil {
		return
	}
	for i := range state.Understanding.SubClaims {
		c := &state.Understanding.SubClaims[i]
		if c.ThesisRelevanceConfidence < cfg.LowConfidenceThreshold {
			state.AddWarning("thesis_relevance_low_confidence", "warning", map[string]any{
				"claimId":    c.ID,
				"confidence": c.ThesisRelevanceConfidence,
			})
		}
		if c.ThesisRelevanceConfidence < cfg.AutoDowngradeThreshold && c.ThesisRelevance == domain.RelevanceDirect {
			c.ThesisRelevance = domain.RelevanceTangential
		}
	}
}

// EnforceThesisRelevanceInvariants promotes tangential claims with high
// thesis-overlap to direct, and enforces that central claims are direct
// and non-direct claims have centrality=low, isCentral=false (§4.4).
func EnforceThesisRelevanceInvariants(state *domain.ResearchState, cfg ThesisRelevanceConfig) {
	if state.Understanding == nil {
		return
	}
	thesis := state.Understanding.MainThesis
	if thesis == "" {
		thesis = state.OriginalInput
	}
	for i := range state.Understanding.SubClaims {
		c := &state.Understanding.SubClaims[i]
		if c.ThesisRelevance == domain.RelevanceTangential {
			if text.Jaccard(c.Text, thesis) >= cfg.PromotionOverlapThreshold {
				c.ThesisRelevance = domain.RelevanceDirect
			}
		}
		if c.IsCentral && c.ThesisRelevance != domain.RelevanceDirect {
			c.ThesisRelevance = domain.RelevanceDirect
		}
		if c.ThesisRelevance != domain.RelevanceDirect {
			c.Centrality = domain.LevelLow
			c.IsCentral = false
		}
	}
}

// ApplyPolicyB drops irrelevant claims entirely (and any dependsOn
// references to them), keeping tangential claims for display only (§4.4
// Policy B).
func ApplyPolicyB(state *domain.ResearchState) {
	if state.Understanding == nil {
		return
	}
	var kept []domain.SubClaim
	dropped := map[string]struct{}{}
	for _, c := range state.Understanding.SubClaims {
		if c.ThesisRelevance == domain.RelevanceIrrelevant {
			dropped[c.ID] = struct{}{}
			continue
		}
		kept = append(kept, c)
	}
	for i := range kept {
		var deps []string
		for _, d := range kept[i].DependsOn {
			if _, isDropped := dropped[d]; !isDropped {
				deps = append(deps, d)
			}
		}
		kept[i].DependsOn = deps
	}
	state.Understanding.SubClaims = kept
}

// EnsureMinimumDirectCoverage promotes eligible claims (not
// attribution/source/timing, not checkWorthiness=low) so every context has
// at least 2 direct claims where enough eligible claims exist (§4.4). It
// runs on every input; it does not check whether the input is compound or
// comparative.
func EnsureMinimumDirectCoverage(state *domain.ResearchState) {
	if state.Understanding == nil {
		return
	}
	directCountByContext := map[string]int{}
	for _, c := range state.Understanding.SubClaims {
		if c.ThesisRelevance == domain.RelevanceDirect {
			directCountByContext[c.ContextID]++
		}
	}
	for i := range state.Understanding.SubClaims {
		c := &state.Understanding.SubClaims[i]
		if directCountByContext[c.ContextID] >= 2 {
			continue
		}
		if c.ThesisRelevance == domain.RelevanceDirect {
			continue
		}
		if c.ClaimRole == domain.RoleAttribution || c.ClaimRole == domain.RoleSource || c.ClaimRole == domain.RoleTiming {
			continue
		}
		if c.CheckWorthiness == domain.LevelLow {
			continue
		}
		c.ThesisRelevance = domain.RelevanceDirect
		directCountByContext[c.ContextID]++
	}
}
