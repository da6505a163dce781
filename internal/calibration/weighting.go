package calibration

import "github.com/robertschaub/FactHarbor-sub001/internal/domain"

// DefaultUnknownSourceScore is used when a cited evidence item's source has
// no trackRecordScore (§4.8 step 7). It doubles as the neutral baseline
// trackRecordScore: P7 requires that a source reported at exactly this
// score, with zero (unreported) confidence in that score, leaves
// avgEffectiveWeight at 1.0 so ApplyEvidenceWeighting is the identity on
// TruthPercentage.
const DefaultUnknownSourceScore = 0.5

// defaultProbativeFactor is probativeConfidenceFactor's neutral (medium)
// entry; the other entries are normalized against it below so a
// medium-probative item never moves the weight off 1.0 by itself.
const defaultProbativeFactor = 0.75

var probativeConfidenceFactor = map[domain.ProbativeValue]float64{
	domain.ProbativeHigh:   1.0,
	domain.ProbativeMedium: defaultProbativeFactor,
	domain.ProbativeLow:    0.5,
}

// ApplyEvidenceWeighting implements §4.8 step 7: adjustedTruth = 50 +
// (originalTruth - 50) * avgEffectiveWeight, where avgEffectiveWeight
// averages, over the claim's supporting evidence items, a per-item weight
// combining the normalized source trackRecordScore, a probative-value
// confidence factor, and directional consensus among those same items.
// The computed weight is recorded on the verdict's EvidenceWeight field.
func ApplyEvidenceWeighting(v *domain.ClaimVerdict, evidenceByID map[string]domain.EvidenceItem, sourceByID map[string]domain.FetchedSource) {
	items := resolveEvidence(v.SupportingEvidenceIDs, evidenceByID)
	avgWeight := avgEffectiveWeight(items, sourceByID)
	v.EvidenceWeight = avgWeight
	original := v.TruthPercentage
	v.TruthPercentage = int(50 + (float64(original)-50)*avgWeight)
	v.Verdict = v.TruthPercentage
}

func resolveEvidence(ids []string, byID map[string]domain.EvidenceItem) []domain.EvidenceItem {
	out := make([]domain.EvidenceItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			out = append(out, item)
		}
	}
	return out
}

func avgEffectiveWeight(items []domain.EvidenceItem, sourceByID map[string]domain.FetchedSource) float64 {
	if len(items) == 0 {
		return DefaultUnknownSourceScore
	}
	supporting := 0
	for _, item := range items {
		if item.ClaimDirection != domain.DirectionContradicts {
			supporting++
		}
	}
	contradicting := len(items) - supporting
	majority := supporting
	if contradicting > majority {
		majority = contradicting
	}
	consensus := float64(majority) / float64(len(items))

	total := 0.0
	for _, item := range items {
		total += itemEffectiveWeight(item, sourceByID) * consensus
	}
	return total / float64(len(items))
}

// itemEffectiveWeight scores one evidence item's source reliability and
// probative value as a deviation from neutral (1.0), per §4.8 step 7 / P7:
// a trackRecordScore of exactly DefaultUnknownSourceScore, or a score
// reported with zero confidence (nothing is known about how trustworthy the
// score itself is), never moves the weight off 1.0 — it takes a
// confidently-reported score above or below the default to pull the weight
// up or down. Probative value is normalized the same way around its medium
// (default) entry.
func itemEffectiveWeight(item domain.EvidenceItem, sourceByID map[string]domain.FetchedSource) float64 {
	sourceScore := DefaultUnknownSourceScore
	sourceConfidence := 0.0
	if src, ok := sourceByID[item.SourceID]; ok && src.TrackRecordScore != nil {
		sourceScore = *src.TrackRecordScore
		sourceConfidence = src.TrackRecordConfidence
	}
	scoreFactor := 1.0 + (sourceScore-DefaultUnknownSourceScore)*2*sourceConfidence

	probative := probativeConfidenceFactor[item.ProbativeValue]
	if probative == 0 {
		probative = defaultProbativeFactor
	}
	probativeFactor := probative / defaultProbativeFactor

	return scoreFactor * probativeFactor
}
