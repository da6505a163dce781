package calibration

import "github.com/robertschaub/FactHarbor-sub001/internal/domain"

// PruneTangentialBaselessClaims implements §4.8 "Tangential pruning": drops
// tangential-relevance verdicts whose claim lacks at least minEvidence
// items of high/medium probative value.
func PruneTangentialBaselessClaims(verdicts []domain.ClaimVerdict, evidenceByID map[string]domain.EvidenceItem, minEvidence int) []domain.ClaimVerdict {
	out := make([]domain.ClaimVerdict, 0, len(verdicts))
	for _, v := range verdicts {
		if v.ThesisRelevance != domain.RelevanceTangential {
			out = append(out, v)
			continue
		}
		if qualityEvidenceCount(v.SupportingEvidenceIDs, evidenceByID) >= minEvidence {
			out = append(out, v)
		}
	}
	return out
}

func qualityEvidenceCount(ids []string, evidenceByID map[string]domain.EvidenceItem) int {
	count := 0
	for _, id := range ids {
		item, ok := evidenceByID[id]
		if !ok {
			continue
		}
		if item.ProbativeValue == domain.ProbativeHigh || item.ProbativeValue == domain.ProbativeMedium {
			count++
		}
	}
	return count
}

// PruneOpinionOnlyFactors implements §4.8 "Opinion pruning": drops key
// factors whose factualBasis is "opinion" or "unknown".
func PruneOpinionOnlyFactors(factors []domain.KeyFactor) []domain.KeyFactor {
	out := make([]domain.KeyFactor, 0, len(factors))
	for _, f := range factors {
		if f.FactualBasis == "opinion" || f.FactualBasis == "unknown" {
			continue
		}
		out = append(out, f)
	}
	return out
}

// WarnOnOpinionAccumulation implements the "Opinion-accumulation monitor":
// emits an info warning when the fraction of opinion-basis factors (judged
// against the ORIGINAL, pre-pruning factor list) exceeds the threshold.
func WarnOnOpinionAccumulation(state *domain.ResearchState, originalFactors []domain.KeyFactor, threshold float64) {
	if len(originalFactors) == 0 {
		return
	}
	opinionCount := 0
	for _, f := range originalFactors {
		if f.FactualBasis == "opinion" {
			opinionCount++
		}
	}
	fraction := float64(opinionCount) / float64(len(originalFactors))
	if fraction > threshold {
		state.AddWarning("opinion_accumulation", "info", map[string]any{
			"opinionFactors": opinionCount,
			"totalFactors":   len(originalFactors),
			"fraction":       fraction,
		})
	}
}
