package calibration

import (
	"strings"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
)

// negationCues mirrors claimengine's negation/opposite-polarity heuristic,
// reused here to compare a claim's polarity against its own reasoning text
// (§4.8 step 3), not against a thesis.
var negationCues = []string{
	"not ", "n't ", "never ", "no longer", "fails to", "failed to",
	"cannot", "can't", "disagrees", "contradicts", "opposite of", "rather than",
	"false", "incorrect", "debunked", "no evidence supports",
}

func hasNegationCue(s string) bool {
	lower := strings.ToLower(s)
	for _, cue := range negationCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

// ApplyRatingDirectionCheck implements §4.8 step 2: if ratingConfirmation
// contradicts the numeric verdict, invert it (100 - v). Reports whether it
// fired, so step 3 can be skipped when it did.
func ApplyRatingDirectionCheck(v *domain.ClaimVerdict) bool {
	switch v.RatingConfirmation {
	case domain.RatingRefuted:
		if v.TruthPercentage > 50 {
			invert(v)
			return true
		}
	case domain.RatingSupported:
		if v.TruthPercentage < 50 {
			invert(v)
			return true
		}
	}
	return false
}

// ApplyRegexInversionFallback implements §4.8 step 3: only runs when step 2
// did not fire. Detects negation cues in the claim's own reasoning and
// inverts when they disagree with a high truth percentage (reasoning reads
// as a refutation but the verdict reads as an affirmation, or vice versa).
func ApplyRegexInversionFallback(v *domain.ClaimVerdict) bool {
	reasoningNegated := hasNegationCue(v.Reasoning)
	claimNegated := hasNegationCue(v.ClaimText)
	if reasoningNegated == claimNegated {
		return false
	}
	if v.TruthPercentage > 50 && reasoningNegated {
		invert(v)
		return true
	}
	if v.TruthPercentage < 50 && !reasoningNegated {
		invert(v)
		return true
	}
	return false
}

func invert(v *domain.ClaimVerdict) {
	v.TruthPercentage = 100 - v.TruthPercentage
	v.Verdict = v.TruthPercentage
}
