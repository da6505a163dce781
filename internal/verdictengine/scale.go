// Package verdictengine implements C8: the three verdict-generation modes
// (MultiContext, SingleContext, Article), the shared 7-point truth scale,
// and the robustness chain for filling in missing claim verdicts. Grounded
// on insightify/internal/llm's gateway-facade dispatch pattern, adapted to
// this domain's three fixed call shapes instead of numbered phases.
package verdictengine

import "github.com/robertschaub/FactHarbor-sub001/internal/domain"

const MixedConfidenceThresholdDefault = 60

// VerdictLabel maps a truthPct in [0,100] to the 7-point scale label (§4.7).
// affirmative selects between the TRUE/FALSE wording and the YES/NO
// wording (callers pick based on whether the claim reads as a yes/no
// question or a declarative statement).
func VerdictLabel(truthPct int, confidence int, mixedConfidenceThreshold int, affirmative bool) string {
	if mixedConfidenceThreshold <= 0 {
		mixedConfidenceThreshold = MixedConfidenceThresholdDefault
	}
	switch {
	case truthPct >= 86:
		return pick(affirmative, "TRUE", "YES")
	case truthPct >= 72:
		return pick(affirmative, "MOSTLY-TRUE", "MOSTLY-YES")
	case truthPct >= 58:
		return pick(affirmative, "LEANING-TRUE", "LEANING-YES")
	case truthPct >= 43:
		if confidence >= mixedConfidenceThreshold {
			return "MIXED"
		}
		return "UNVERIFIED"
	case truthPct >= 29:
		return pick(affirmative, "LEANING-FALSE", "LEANING-NO")
	case truthPct >= 15:
		return pick(affirmative, "MOSTLY-FALSE", "MOSTLY-NO")
	default:
		return pick(affirmative, "FALSE", "NO")
	}
}

func pick(affirmative bool, statementWord, questionWord string) string {
	if affirmative {
		return statementWord
	}
	return questionWord
}

// HighlightColorFor maps a truthPct to the highlight color (§4.7).
func HighlightColorFor(truthPct int) domain.HighlightColor {
	switch {
	case truthPct >= 72:
		return domain.HighlightGreen
	case truthPct >= 43:
		return domain.HighlightYellow
	default:
		return domain.HighlightRed
	}
}
