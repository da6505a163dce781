package calibration

import "github.com/robertschaub/FactHarbor-sub001/internal/domain"

// ClassifyGate4 implements §4.8 step 9 / GLOSSARY "Gate 4": a post-verdict
// confidence-tier classification plus a publishable flag, derived from
// evidence count, average source quality, and directional agreement. It
// never alters TruthPercentage. Central claims are always publishable.
func ClassifyGate4(v *domain.ClaimVerdict, evidenceByID map[string]domain.EvidenceItem, sourceByID map[string]domain.FetchedSource) {
	items := resolveEvidence(v.SupportingEvidenceIDs, evidenceByID)
	count := len(items)
	avgQuality := averageSourceQuality(items, sourceByID)
	agreement := directionalAgreement(items)

	tier := domain.TierInsufficient
	switch {
	case count >= 4 && avgQuality >= 0.7 && agreement >= 0.75:
		tier = domain.TierHigh
	case count >= 2 && avgQuality >= 0.5 && agreement >= 0.6:
		tier = domain.TierMedium
	case count >= 1:
		tier = domain.TierLow
	}
	v.ConfidenceTier = tier

	v.Publishable = v.IsCentral || tier == domain.TierHigh || tier == domain.TierMedium
}

func averageSourceQuality(items []domain.EvidenceItem, sourceByID map[string]domain.FetchedSource) float64 {
	if len(items) == 0 {
		return DefaultUnknownSourceScore
	}
	total := 0.0
	for _, item := range items {
		score := DefaultUnknownSourceScore
		if src, ok := sourceByID[item.SourceID]; ok && src.TrackRecordScore != nil {
			score = *src.TrackRecordScore
		}
		total += score
	}
	return total / float64(len(items))
}

func directionalAgreement(items []domain.EvidenceItem) float64 {
	if len(items) == 0 {
		return 0
	}
	supports, contradicts := 0, 0
	for _, item := range items {
		switch item.ClaimDirection {
		case domain.DirectionSupports:
			supports++
		case domain.DirectionContradicts:
			contradicts++
		}
	}
	directional := supports + contradicts
	if directional == 0 {
		return 0.5
	}
	majority := supports
	if contradicts > majority {
		majority = contradicts
	}
	return float64(majority) / float64(directional)
}
