package calibration

import "github.com/robertschaub/FactHarbor-sub001/internal/domain"

// Apply first runs dependency propagation over all verdicts, then §4.8's
// per-verdict steps in canonical order, ending with the clamp. Step 4
// (counter-claim inversion) is not applied here: it happens only at
// aggregation time, via aggregationValue. This is the entry point the
// orchestrator's Calibrate phase (C12 phase 6) calls for the per-verdict
// steps; each step is exported individually so tests can exercise one step
// in isolation. The aggregation, pruning and article functions of this
// package are not called by Apply.
func Apply(state *domain.ResearchState, verdicts []domain.ClaimVerdict, isMultiContext bool) []domain.ClaimVerdict {
	contexts := state.Understanding.AnalysisContexts
	factors := state.Understanding.KeyFactors

	evidenceByID := make(map[string]domain.EvidenceItem, len(state.EvidenceItems))
	for _, e := range state.EvidenceItems {
		evidenceByID[e.ID] = e
	}
	sourceByID := make(map[string]domain.FetchedSource, len(state.Sources))
	for _, s := range state.Sources {
		sourceByID[s.ID] = s
	}

	out := make([]domain.ClaimVerdict, len(verdicts))
	copy(out, verdicts)

	out = PropagateDependencyFailures(out, state.Understanding.SubClaims)

	for i := range out {
		v := &out[i]

		// Step 1: sanitize reasoning.
		v.Reasoning = SanitizeReasoning(v.Reasoning)

		// Steps 2/3: rating-direction check, regex fallback (mutually exclusive).
		inverted := ApplyRatingDirectionCheck(v)
		if !inverted {
			inverted = ApplyRegexInversionFallback(v)
		}

		// Step 5: factor-based context correction (multi-context only).
		if isMultiContext {
			ApplyFactorBasedContextCorrection(v, contexts, factors, state.EvidenceItems, inverted)
		}

		// Step 6: contestation penalty.
		ApplyContestationPenalty(v, state.EvidenceItems)

		// Step 7: evidence weighting.
		ApplyEvidenceWeighting(v, evidenceByID, sourceByID)

		// Step 8: direction validation.
		ApplyDirectionValidation(state, v)

		// Step 9: Gate 4 classification (does not alter TruthPercentage).
		ClassifyGate4(v, evidenceByID, sourceByID)

		// Step 10: clamp.
		Clamp(v)
	}

	return out
}
