package evidenceengine

import (
	"net/url"
	"strings"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
)

// lowProbativePhrases flags statements that read as speculation or opinion
// rather than a checkable fact, the deterministic half of the probative
// filter (§4.5). No LLM pre-filter runs in the extraction pipeline: nothing
// calls the evidence_quality task, so this phrase scan and the item's own
// ProbativeValue are the only probative checks.
var lowProbativePhrases = []string{
	"some say", "it is believed", "many feel", "allegedly", "rumored",
	"critics argue", "supporters claim", "it could be argued",
}

// ProbativeFilter reports whether an item should be kept. An item with
// ProbativeValue already "low" is dropped outright; otherwise an item whose
// statement contains one of lowProbativePhrases is dropped as well.
func ProbativeFilter(item domain.EvidenceItem) bool {
	if item.ProbativeValue == domain.ProbativeLow {
		return false
	}
	lower := strings.ToLower(item.Statement)
	for _, phrase := range lowProbativePhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	return true
}

// ProvenanceValidate clears provenance fields that cannot be trusted: a
// SourceURL that url.Parse rejects is emptied, and an excerpt shorter than
// minExcerptLength is emptied. An item with an empty SourceURL is returned
// unchanged. It never drops an item and does not read or set EvidenceScope;
// the caller drops items that then fail ValidProvenance.
func ProvenanceValidate(item domain.EvidenceItem, source domain.FetchedSource) domain.EvidenceItem {
	if item.SourceURL == "" {
		return item
	}
	if _, err := url.Parse(item.SourceURL); err != nil {
		item.SourceURL = ""
	}
	if len(item.SourceExcerpt) < minExcerptLength {
		item.SourceExcerpt = ""
	}
	return item
}

// ValidProvenance reports whether item has the minimum provenance required
// to survive ProvenanceValidate's default-on gate (§4.5).
func ValidProvenance(item domain.EvidenceItem) bool {
	return item.SourceURL != "" && len(item.SourceExcerpt) >= minExcerptLength
}
