package evidenceengine

import (
	"testing"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDedupEvidenceDropsNearDuplicates(t *testing.T) {
	items := []domain.EvidenceItem{
		{Statement: "The agency issued a formal warning letter to the company in March."},
		{Statement: "The agency issued a formal warning letter to the company in March 2023."},
		{Statement: "A completely unrelated statement about different subject matter entirely."},
	}
	kept := DedupEvidence(items)
	assert.Len(t, kept, 2)
	assert.Equal(t, items[0].Statement, kept[0].Statement)
	assert.Equal(t, items[2].Statement, kept[1].Statement)
}

func TestDedupEvidenceKeepsFirstOccurrence(t *testing.T) {
	items := []domain.EvidenceItem{
		{Statement: "Alpha statement one", SourceID: "first"},
		{Statement: "Alpha statement one", SourceID: "second"},
	}
	kept := DedupEvidence(items)
	assert.Len(t, kept, 1)
	assert.Equal(t, "first", kept[0].SourceID)
}

func TestMergeNewEvidenceDedupsAcrossBatches(t *testing.T) {
	existing := []domain.EvidenceItem{{Statement: "Existing statement about a topic"}}
	fresh := []domain.EvidenceItem{
		{Statement: "Existing statement about a topic"},
		{Statement: "Brand new statement about something else"},
	}
	merged := MergeNewEvidence(existing, fresh)
	assert.Len(t, merged, 2)
}
