// Package calibration implements C9: the ten-step canonical transform
// applied to every claim verdict, dependency propagation, weighted and
// dedup-weighted aggregation, tangential/opinion pruning, and the article
// override. Grounded on insightify/internal/scoring's fixed-order
// transform pipeline over a shared mutable record, adapted from that
// repo's single numeric score to this domain's per-claim verdict struct.
package calibration

import (
	"regexp"
	"strings"
)

// temporalErrorPatterns flags reasoning text that indicates the LLM
// misread the current date (§4.8 step 1).
var temporalErrorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)temporal error`),
	regexp.MustCompile(`(?i)in the future`),
	regexp.MustCompile(`(?i)date discrepancy`),
	regexp.MustCompile(`(?i)cannot be verified as the (?:date|event) (?:is|has not)`),
	regexp.MustCompile(`(?i)this (?:date|event) (?:is|appears to be) in the future`),
}

const dateEvaluatedPlaceholder = "[date evaluated]"

// SanitizeReasoning strips temporal-misreading phrases from reasoning text,
// replacing each with a fixed placeholder (§4.8 step 1).
func SanitizeReasoning(reasoning string) string {
	out := reasoning
	for _, re := range temporalErrorPatterns {
		out = re.ReplaceAllString(out, dateEvaluatedPlaceholder)
	}
	return strings.TrimSpace(out)
}
