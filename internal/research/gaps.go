package research

import (
	"fmt"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/text"
)

type GapKind string

const (
	GapNoEvidence        GapKind = "no_evidence"
	GapNoCounterEvidence GapKind = "no_counter_evidence"
	GapLowQuality        GapKind = "low_quality"
	GapOutdated           GapKind = "outdated"
)

type GapSeverity string

const (
	SeverityCritical GapSeverity = "critical"
	SeverityHigh     GapSeverity = "high"
	SeverityMedium   GapSeverity = "medium"
	SeverityLow      GapSeverity = "low"
)

// EvidenceGap describes one detected coverage hole for a direct claim.
type EvidenceGap struct {
	ClaimID        string
	Kind           GapKind
	Severity       GapSeverity
	SuggestedQueries []string
}

// AnalyzeEvidenceGaps classifies each direct claim's gaps per §4.6's
// gap-driven phase: no_evidence/no_counter_evidence/low_quality, with
// severity boosted for high-centrality claims. No gap is classified as
// GapOutdated.
func AnalyzeEvidenceGaps(state *domain.ResearchState) []EvidenceGap {
	if state.Understanding == nil {
		return nil
	}
	var gaps []EvidenceGap
	for _, claim := range state.Understanding.SubClaims {
		if claim.ThesisRelevance != domain.RelevanceDirect {
			continue
		}
		matching := matchingEvidence(claim, state.EvidenceItems)
		if len(matching) == 0 {
			gaps = append(gaps, EvidenceGap{
				ClaimID:  claim.ID,
				Kind:     GapNoEvidence,
				Severity: severityFor(claim, SeverityHigh),
				SuggestedQueries: []string{claim.Text, inverseQuery(claim.Text)},
			})
			continue
		}
		if !hasCounterEvidence(matching) {
			gaps = append(gaps, EvidenceGap{
				ClaimID:  claim.ID,
				Kind:     GapNoCounterEvidence,
				Severity: severityFor(claim, SeverityMedium),
				SuggestedQueries: []string{inverseQuery(claim.Text)},
			})
		}
		if allLowProbative(matching) {
			gaps = append(gaps, EvidenceGap{
				ClaimID:  claim.ID,
				Kind:     GapLowQuality,
				Severity: severityFor(claim, SeverityMedium),
				SuggestedQueries: []string{claim.Text},
			})
		}
	}
	return gaps
}

func matchingEvidence(claim domain.SubClaim, items []domain.EvidenceItem) []domain.EvidenceItem {
	var out []domain.EvidenceItem
	for _, item := range items {
		if claim.ContextID != "" && item.ContextID != "" && item.ContextID != claim.ContextID {
			continue
		}
		if text.OverlapCount(claim.Text, item.Statement) >= 2 {
			out = append(out, item)
		}
	}
	return out
}

func hasCounterEvidence(items []domain.EvidenceItem) bool {
	for _, item := range items {
		if item.ClaimDirection == domain.DirectionContradicts {
			return true
		}
	}
	return false
}

func allLowProbative(items []domain.EvidenceItem) bool {
	for _, item := range items {
		if item.ProbativeValue != domain.ProbativeLow {
			return false
		}
	}
	return true
}

// severityFor boosts severity by one tier for high-centrality claims,
// capping at critical, per §4.6 ("high centrality -> higher severity").
func severityFor(claim domain.SubClaim, base GapSeverity) GapSeverity {
	if claim.Centrality != domain.LevelHigh {
		return base
	}
	switch base {
	case SeverityMedium:
		return SeverityHigh
	case SeverityHigh:
		return SeverityCritical
	default:
		return base
	}
}

func inverseQuery(claimText string) string {
	return fmt.Sprintf("%s false OR disputed OR debunked", claimText)
}
