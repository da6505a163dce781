package research

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
)

var yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// IsRecencySensitive implements §4.6's detection rule: any year within the
// last 3 years appearing in the input or a context's temporal metadata, OR
// an LLM-assigned TemporalContext.IsRecencySensitive above
// temporalConfidenceThreshold.
func IsRecencySensitive(input string, ctx *domain.AnalysisContext, temporal *domain.TemporalContext, currentYear int, temporalConfidenceThreshold float64) bool {
	if containsRecentYear(input, currentYear) {
		return true
	}
	if ctx != nil {
		if yr, ok := ctx.Metadata["temporal"]; ok && containsRecentYear(yr, currentYear) {
			return true
		}
	}
	if temporal != nil && temporal.IsRecencySensitive && temporal.Confidence > temporalConfidenceThreshold {
		return true
	}
	return false
}

func containsRecentYear(text string, currentYear int) bool {
	for _, m := range yearRe.FindAllString(text, -1) {
		yr, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if currentYear-yr >= 0 && currentYear-yr <= 3 {
			return true
		}
	}
	return false
}

// DateRestrictFor maps a recency window (in months) to the search
// provider's dateRestrict code: w (week), m (month), y (year).
func DateRestrictFor(windowMonths int) string {
	switch {
	case windowMonths <= 1:
		return "w"
	case windowMonths <= 6:
		return "m"
	default:
		return "y"
	}
}

var monthQuarterYearRe = regexp.MustCompile(`(?i)\b(Q[1-4]\s*(19|20)\d{2}|(January|February|March|April|May|June|July|August|September|October|November|December)\s+(19|20)\d{2}|(19|20)\d{2})\b`)

// HasRecentEvidence implements the §4.11 recency backstop's evidence-side
// check: true if any evidence item's EvidenceScope.Temporal, or its
// source's title/URL, carries a month/quarter/year marker within
// windowMonths of currentYear. currentMonth is 1-indexed.
func HasRecentEvidence(items []domain.EvidenceItem, sources []domain.FetchedSource, windowMonths, currentYear, currentMonth int) bool {
	sourceByID := make(map[string]domain.FetchedSource, len(sources))
	for _, s := range sources {
		sourceByID[s.ID] = s
	}
	for _, item := range items {
		texts := []string{}
		if item.EvidenceScope != nil {
			texts = append(texts, item.EvidenceScope.Temporal)
		}
		if s, ok := sourceByID[item.SourceID]; ok {
			texts = append(texts, s.Title, s.URL)
		}
		for _, t := range texts {
			if withinRecencyWindow(t, windowMonths, currentYear, currentMonth) {
				return true
			}
		}
	}
	return false
}

func withinRecencyWindow(text string, windowMonths, currentYear, currentMonth int) bool {
	for _, m := range monthQuarterYearRe.FindAllString(text, -1) {
		yr := extractYear(m)
		if yr == 0 {
			continue
		}
		markerMonth := 0
		if t, err := time.Parse("January 2006", strings.Join(strings.Fields(m), " ")); err == nil {
			markerMonth = int(t.Month())
		} else if q := strings.ToUpper(m); strings.HasPrefix(q, "Q") {
			markerMonth = int(q[1]-'0') * 3
		}
		monthsAgo := (currentYear-yr)*12 + currentMonth - markerMonth
		if monthsAgo >= 0 && monthsAgo <= windowMonths {
			return true
		}
	}
	return false
}

func extractYear(s string) int {
	m := yearRe.FindString(s)
	if m == "" {
		return 0
	}
	yr, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return yr
}
