package evidenceengine

import (
	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/text"
)

// DedupThreshold is the Jaccard similarity above which two evidence
// statements are treated as duplicates (§4.5).
const DedupThreshold = 0.85

// DedupEvidence drops items whose tokenized statement is near-duplicate
// (Jaccard >= DedupThreshold) of an already-kept item's statement. Kept
// items are compared in encounter order so the first occurrence always
// survives.
func DedupEvidence(items []domain.EvidenceItem) []domain.EvidenceItem {
	kept := make([]domain.EvidenceItem, 0, len(items))
	for _, item := range items {
		duplicate := false
		for _, existing := range kept {
			if text.Jaccard(item.Statement, existing.Statement) >= DedupThreshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

// MergeNewEvidence appends newItems to existing, deduping newItems both
// against each other and against everything already collected.
func MergeNewEvidence(existing, newItems []domain.EvidenceItem) []domain.EvidenceItem {
	combined := append(append([]domain.EvidenceItem{}, existing...), newItems...)
	return DedupEvidence(combined)
}
