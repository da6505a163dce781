package evidenceengine

import (
	"testing"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestProbativeFilterDropsLowProbativeValue(t *testing.T) {
	item := domain.EvidenceItem{Statement: "A plain fact.", ProbativeValue: domain.ProbativeLow}
	assert.False(t, ProbativeFilter(item))
}

func TestProbativeFilterDropsSpeculativePhrasing(t *testing.T) {
	item := domain.EvidenceItem{Statement: "Critics argue the policy failed.", ProbativeValue: domain.ProbativeMedium}
	assert.False(t, ProbativeFilter(item))
}

func TestProbativeFilterKeepsSolidStatement(t *testing.T) {
	item := domain.EvidenceItem{Statement: "The report found a 12% increase in emissions.", ProbativeValue: domain.ProbativeHigh}
	assert.True(t, ProbativeFilter(item))
}

func TestProvenanceValidateClearsUnparseableURL(t *testing.T) {
	item := domain.EvidenceItem{SourceURL: "://not-a-url", SourceExcerpt: "a reasonably long verbatim excerpt here"}
	out := ProvenanceValidate(item, domain.FetchedSource{})
	assert.Empty(t, out.SourceURL)
}

func TestValidProvenanceRequiresURLAndExcerptLength(t *testing.T) {
	ok := domain.EvidenceItem{SourceURL: "https://example.com/a", SourceExcerpt: "a reasonably long verbatim excerpt here"}
	assert.True(t, ValidProvenance(ok))

	noURL := domain.EvidenceItem{SourceExcerpt: "a reasonably long verbatim excerpt here"}
	assert.False(t, ValidProvenance(noURL))

	shortExcerpt := domain.EvidenceItem{SourceURL: "https://example.com/a", SourceExcerpt: "short"}
	assert.False(t, ValidProvenance(shortExcerpt))
}
