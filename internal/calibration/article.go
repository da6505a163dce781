package calibration

import "github.com/robertschaub/FactHarbor-sub001/internal/domain"

const (
	articleOverrideTruth   = 35
	articleOverrideReason  = "Central claim(s) refuted despite N accurate supporting evidence"
	centralRefutedCeiling  = dependencyFailureThreshold
	nonCentralSupportFloor = 72
	minSupportedNonCentral = 2
)

// ApplyArticleOverride implements §4.8 "Article override": if any central
// claim is refuted (<43%), at least two non-central claims are supported
// (>=72%), and the plain average across eligible claims is >= 50, the
// article-level verdict is forced to 35 with a fixed reason string (scenario
// 4 in §8).
func ApplyArticleOverride(analysis *domain.ArticleAnalysis, verdicts []domain.ClaimVerdict) {
	if analysis == nil {
		return
	}
	hasCentralRefuted := false
	supportedNonCentral := 0
	sum, count := 0, 0
	for _, v := range verdicts {
		if !eligibleForAggregation(v) {
			continue
		}
		sum += aggregationValue(v)
		count++
		if v.IsCentral && v.TruthPercentage < centralRefutedCeiling {
			hasCentralRefuted = true
		}
		if !v.IsCentral && v.TruthPercentage >= nonCentralSupportFloor {
			supportedNonCentral++
		}
	}
	if count == 0 {
		return
	}
	average := float64(sum) / float64(count)
	if hasCentralRefuted && supportedNonCentral >= minSupportedNonCentral && average >= 50 {
		analysis.ArticleVerdict = articleOverrideTruth
		analysis.VerdictDiffersFromClaimAverage = true
		analysis.VerdictDifferenceReason = articleOverrideReason
	}
}

// ApplyMultiContextReliabilitySignal implements §4.8 "Multi-context
// reliability signal": when >= 2 contexts exist, mark the overall article
// verdict's reliability as low so clients de-emphasize the averaged figure,
// while still computing and returning it for display.
func ApplyMultiContextReliabilitySignal(analysis *domain.ArticleAnalysis, contextCount int) {
	if analysis == nil {
		return
	}
	if contextCount >= 2 {
		analysis.ArticleVerdictReliability = "low"
	}
}
