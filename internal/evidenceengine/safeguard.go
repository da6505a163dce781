package evidenceengine

import (
	"strings"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
)

// highImpactPhrases is a topic-agnostic list of phrases indicating an
// outcome severe enough to warrant a reliable source before trusting it
// (§4.5). Configuration seed data, not a hidden hard rule.
var highImpactPhrases = []string{
	"sentenced to", "sentencing", "convicted of", "conviction",
	"prison term", "years in prison", "life imprisonment", "death penalty",
	"executed", "found guilty", "indicted", "incarcerated",
}

const trackRecordSafeThreshold = 0.6

// HighImpactSafeguard drops an evidence item when the source's normalized
// track-record score is known and below trackRecordSafeThreshold AND the
// item's text describes a high-impact outcome. A nil score (unknown bundle)
// never triggers the safeguard.
func HighImpactSafeguard(item domain.EvidenceItem, trackRecordScore *float64) bool {
	if trackRecordScore == nil {
		return true
	}
	if *trackRecordScore >= trackRecordSafeThreshold {
		return true
	}
	return !describesHighImpactOutcome(item.Statement) && !describesHighImpactOutcome(item.SourceExcerpt)
}

func describesHighImpactOutcome(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range highImpactPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
