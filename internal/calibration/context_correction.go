package calibration

import "github.com/robertschaub/FactHarbor-sub001/internal/domain"

const factorCorrectionFloor = 72

// ApplyFactorBasedContextCorrection implements §4.8 step 5 (multi-context
// only): when the claim's host context has at least one fact-based
// ("positive") key factor and no evidence contradicting the claim within
// that context, a low truth percentage is lifted to the floor. Skipped
// when an inversion already fired this pass, or the claim is a
// counter-claim (an inverted-at-aggregation claim reads "backwards" and
// a floor lift here would push it the wrong direction for display).
func ApplyFactorBasedContextCorrection(v *domain.ClaimVerdict, contexts []domain.AnalysisContext, factors []domain.KeyFactor, evidence []domain.EvidenceItem, alreadyInverted bool) bool {
	if alreadyInverted || v.IsCounterClaim || v.ContextID == "" {
		return false
	}
	if v.TruthPercentage >= factorCorrectionFloor {
		return false
	}
	if !contextHasPositiveFactor(v.ContextID, factors) {
		return false
	}
	if contextHasEvidencedNegative(v.ContextID, evidence) {
		return false
	}
	v.TruthPercentage = factorCorrectionFloor
	v.Verdict = factorCorrectionFloor
	return true
}

func contextHasPositiveFactor(contextID string, factors []domain.KeyFactor) bool {
	for _, f := range factors {
		if f.ContextID == contextID && f.FactualBasis == "fact" {
			return true
		}
	}
	return false
}

func contextHasEvidencedNegative(contextID string, evidence []domain.EvidenceItem) bool {
	for _, e := range evidence {
		if e.ContextID == contextID && e.ClaimDirection == domain.DirectionContradicts {
			return true
		}
	}
	return false
}
