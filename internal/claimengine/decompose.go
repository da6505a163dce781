package claimengine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/text"
)

var sentenceSplitRe = regexp.MustCompile(`(?:[.!?]+\s+|[.!?]+$)`)

// HeuristicAtomicClaims derives up to 8 atomic claims from raw input text by
// sentence-segmentation with stopword-filtered keyword extraction (clauses
// with fewer than two meaningful tokens are skipped, so there is no
// minimum count and the result may be empty), used
// both as the decomposition fallback and the supplemental-backfill
// fallback when LLM calls yield nothing (§4.4).
func HeuristicAtomicClaims(input string, startIndex int) []domain.SubClaim {
	sentences := splitSentences(input)
	var claims []domain.SubClaim
	for i, s := range sentences {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if len(text.MeaningfulTokens(s)) < 2 {
			continue
		}
		claims = append(claims, domain.SubClaim{
			ID:              fmt.Sprintf("SC%d", startIndex+i+1),
			Text:            s,
			Type:            domain.ClaimFactual,
			ClaimRole:       domain.RoleCore,
			ThesisRelevance: domain.RelevanceDirect,
			Centrality:      domain.LevelMedium,
			CheckWorthiness: domain.LevelMedium,
			HarmPotential:   domain.LevelMedium,
		})
		if len(claims) >= 8 {
			break
		}
	}
	return claims
}

func splitSentences(input string) []string {
	parts := sentenceSplitRe.Split(input, -1)
	var out []string
	for _, p := range parts {
		// Further split on conjunctions/connectives per §4.4's compound-
		// statement rule, so "X and Y" yields two atomic claims.
		for _, clause := range regexp.MustCompile(`(?i)\s*,?\s*\b(and|which|while)\b\s*`).Split(p, -1) {
			clause = strings.TrimSpace(clause)
			if clause != "" {
				out = append(out, clause)
			}
		}
	}
	return out
}

// NormalizedEqual reports whether two claim texts are duplicates after
// normalization, used by RequestSupplementalSubClaims to reject repeats.
func NormalizedEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
