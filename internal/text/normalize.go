// Package text implements the deterministic string utilities shared across
// the context, claim, and evidence engines: normalization, tokenization,
// Jaccard similarity, and substring position lookup. Grounded on the small
// pure-function style of insightify/internal/common/utils.
package text

import (
	"regexp"
	"strings"
)

var auxRe = regexp.MustCompile(`(?i)^(was|were|is|are|did|do|does|has|have|had|can|could|will|would|should|may|might)\s+(.+)$`)

// predicateStarters is a topic-agnostic list of common predicate openers
// used to find the subject/predicate boundary when no `)` or `,` is present.
// Configuration seed data (§9 open question: this list is English-oriented).
var predicateStarters = []string{
	" unfair", " fair", " guilty", " innocent", " legal", " illegal",
	" true", " false", " accurate", " inaccurate", " correct", " incorrect",
	" better", " worse", " safe", " dangerous", " effective", " ineffective",
	" responsible", " necessary", " justified", " proportionate",
	" based on", " consistent with", " compliant with", " required to",
	" supposed to", " going to", " able to", " likely to",
}

// Normalize converts a raw input into its canonical statement form (§4.1).
// It is deterministic and idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(input string) string {
	s := strings.TrimSpace(input)
	s = strings.TrimSuffix(s, "?")
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".")
	s = strings.TrimSpace(s)

	if m := auxRe.FindStringSubmatch(s); m != nil {
		aux := strings.ToLower(m[1])
		rest := m[2]
		s = toStatement(aux, rest)
	}

	return collapseWhitespace(s)
}

// toStatement implements the subject/predicate split described in §4.1:
// prefer a `)` boundary, then a `,` boundary, then a predicate-starter
// match; otherwise fall back to the generic "It <aux> the case that" form.
func toStatement(aux, rest string) string {
	rest = strings.TrimSpace(rest)

	if idx := strings.Index(rest, ")"); idx >= 0 && idx+1 < len(rest) {
		subject := strings.TrimSpace(rest[:idx+1])
		predicate := strings.TrimSpace(rest[idx+1:])
		if subject != "" && predicate != "" {
			return capitalize(subject) + " " + aux + " " + predicate
		}
	}

	if idx := strings.Index(rest, ","); idx >= 0 && idx+1 < len(rest) {
		subject := strings.TrimSpace(rest[:idx])
		predicate := strings.TrimSpace(rest[idx+1:])
		if subject != "" && predicate != "" {
			return capitalize(subject) + " " + aux + " " + predicate
		}
	}

	lower := strings.ToLower(rest)
	for _, starter := range predicateStarters {
		if idx := strings.Index(lower, starter); idx > 0 {
			subject := strings.TrimSpace(rest[:idx])
			predicate := strings.TrimSpace(rest[idx:])
			if subject != "" && predicate != "" {
				return capitalize(subject) + " " + aux + " " + predicate
			}
		}
	}

	fallbackAux := "is"
	if aux == "is" || aux == "are" || aux == "was" || aux == "were" {
		fallbackAux = aux
	}
	return "It " + fallbackAux + " the case that " + rest
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - ('a' - 'A')
	}
	return string(r)
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
