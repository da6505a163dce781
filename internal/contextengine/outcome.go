package contextengine

import (
	"strings"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
)

var vagueOutcomes = map[string]struct{}{
	"": {}, "unknown": {}, "pending": {}, "unclear": {}, "tbd": {},
}

// outcomePhrases is a topic-agnostic phrase list identifying evidence that
// reports a concrete, quantified result, mirroring the configuration-seed-
// data style of evidenceengine's highImpactPhrases.
var outcomePhrases = []string{
	"sentenced to", "fined", "ordered to pay", "damages of", "ruled in favor of",
	"ruled against", "dismissed", "convicted of", "acquitted", "settled for",
	"found liable", "found not liable", "upheld", "overturned", "awarded",
}

// EnrichOutcomes implements the Refine-phase "outcome enrichment" step
// (§4.11 step 4): replaces a vague or empty AnalysisContext.Outcome with
// the first accumulated evidence statement reporting a concrete,
// quantified result. Returns the number of contexts enriched.
func EnrichOutcomes(state *domain.ResearchState) int {
	if state.Understanding == nil {
		return 0
	}
	enriched := 0
	for i := range state.Understanding.AnalysisContexts {
		c := &state.Understanding.AnalysisContexts[i]
		if !isVagueOutcome(c.Outcome) {
			continue
		}
		for _, e := range state.EvidenceForContext(c.ID) {
			if statement, ok := concreteOutcome(e.Statement); ok {
				c.Outcome = statement
				if c.Status == domain.ContextUnknown {
					c.Status = domain.ContextConcluded
				}
				enriched++
				break
			}
		}
	}
	return enriched
}

func isVagueOutcome(outcome string) bool {
	_, vague := vagueOutcomes[strings.ToLower(strings.TrimSpace(outcome))]
	return vague
}

func concreteOutcome(statement string) (string, bool) {
	lower := strings.ToLower(statement)
	for _, phrase := range outcomePhrases {
		if strings.Contains(lower, phrase) {
			return strings.TrimSpace(statement), true
		}
	}
	return "", false
}
