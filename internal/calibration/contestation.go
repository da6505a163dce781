package calibration

import "github.com/robertschaub/FactHarbor-sub001/internal/domain"

const (
	contestationPenaltyEstablished = 12
	contestationPenaltyDisputed    = 8
	establishedCounterSourceCount  = 2
)

// ApplyContestationPenalty implements §4.8 step 6 (claim-verdict mode
// only): counter-evidence from >=2 distinct sources for this claim's
// context is "established" (penalty 12); a single contradicting source is
// "disputed" (penalty 8, the lighter touch since it hasn't been
// corroborated). No counter-evidence leaves the verdict untouched.
func ApplyContestationPenalty(v *domain.ClaimVerdict, evidence []domain.EvidenceItem) int {
	distinctSources := map[string]struct{}{}
	for _, e := range evidence {
		if e.ContextID != v.ContextID || e.ClaimDirection != domain.DirectionContradicts {
			continue
		}
		distinctSources[e.SourceID] = struct{}{}
	}
	if len(distinctSources) == 0 {
		return 0
	}
	penalty := contestationPenaltyDisputed
	if len(distinctSources) >= establishedCounterSourceCount {
		penalty = contestationPenaltyEstablished
	}
	v.TruthPercentage -= penalty
	v.Verdict = v.TruthPercentage
	return penalty
}
