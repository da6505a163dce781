package claimengine

import (
	"strings"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
)

// negationTokens is a topic-agnostic, English-oriented negation/opposite-
// polarity phrase list (§9 open question: replace with a translation-aware
// classifier for multilingual deployments). Configuration seed data, not a
// hidden hard rule.
var negationTokens = []string{
	"not ", "n't ", "never ", "no longer", "fails to", "failed to",
	"cannot", "can't", "disagrees", "contradicts", "opposite of", "rather than",
}

// DetectCounterClaims accepts the LLM's isCounterClaim flag when present;
// otherwise falls back to a deterministic negation/opposite-polarity
// heuristic relative to the thesis (§4.4).
func DetectCounterClaims(claims []domain.SubClaim, thesis string) []domain.SubClaim {
	out := make([]domain.SubClaim, len(claims))
	copy(out, claims)
	thesisHasNegation := containsNegation(thesis)
	for i := range out {
		if out[i].IsCounterClaim {
			continue // LLM already flagged it; accept as-is.
		}
		claimHasNegation := containsNegation(out[i].Text)
		if claimHasNegation != thesisHasNegation && out[i].ThesisRelevance == domain.RelevanceDirect {
			out[i].IsCounterClaim = true
		}
	}
	return out
}

func containsNegation(s string) bool {
	lower := strings.ToLower(s)
	for _, tok := range negationTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}
