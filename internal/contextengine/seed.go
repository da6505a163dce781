package contextengine

import (
	"strings"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
)

// comparativeConnectors is a topic-agnostic, English-oriented list of
// phrases that split a comparative input into two candidate seed contexts
// (§3 "CTX_SEED_*", §4.11 step 2). Configuration seed data, not a hidden
// hard rule; the first connector found wins.
var comparativeConnectors = []string{
	" versus ", " vs. ", " vs ", " compared to ", " compared with ",
}

// IsComparativeInput reports whether the input contains a recognizable
// comparative connector with non-empty text on both sides.
func IsComparativeInput(input string) bool {
	_, _, ok := splitComparative(input)
	return ok
}

// DetectSeedContexts implements the deterministic-mode heuristic seed
// (§4.11 step 2): for a comparative-like input, produce one CTX_SEED_*
// context per side, canonicalized with the seed=true ID scheme. Returns
// nil when the input is not comparative-like.
func DetectSeedContexts(input string) []domain.AnalysisContext {
	left, right, ok := splitComparative(input)
	if !ok {
		return nil
	}
	seeds := []domain.AnalysisContext{
		{Name: left, Subject: left, Status: domain.ContextUnknown},
		{Name: right, Subject: right, Status: domain.ContextUnknown},
	}
	canon, _ := Canonicalize(seeds, true)
	return canon
}

func splitComparative(input string) (left, right string, ok bool) {
	lower := strings.ToLower(input)
	for _, connector := range comparativeConnectors {
		idx := strings.Index(lower, connector)
		if idx <= 0 {
			continue
		}
		left = strings.TrimSpace(input[:idx])
		right = strings.TrimSpace(input[idx+len(connector):])
		if left == "" || right == "" {
			continue
		}
		return left, right, true
	}
	return "", "", false
}
