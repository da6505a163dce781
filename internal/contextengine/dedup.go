package contextengine

import (
	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/text"
)

const (
	weightName       = 0.35
	weightPrimary    = 0.30
	weightAssessed   = 0.20
	weightSubject    = 0.10
	weightSecondary  = 0.05

	overrideAssessedMin = 0.75
	overrideNameMin     = 0.25
	overridePrimaryMin  = 0.15
	overrideSimilarity  = 0.92

	DefaultDedupThreshold = 0.85
)

var primaryMetadataKeys = []string{"institution", "jurisdiction", "methodology", "boundaries", "standardApplied", "court"}
var secondaryMetadataKeys = []string{"geographic", "temporal", "scale"}

// Similarity computes the weighted pairwise similarity between two
// contexts per §4.3: name 0.35, primary metadata 0.30, assessedStatement
// 0.20, subject 0.10, secondary metadata 0.05, with an override raising
// similarity to >=0.92 on a strong assessedStatement+name/primary match.
func Similarity(a, b domain.AnalysisContext) float64 {
	nameSim := text.Jaccard(a.Name, b.Name)
	primarySim := metadataSimilarity(a.Metadata, b.Metadata, primaryMetadataKeys)
	assessedSim := text.Jaccard(a.AssessedStatement, b.AssessedStatement)
	subjectSim := text.Jaccard(a.Subject, b.Subject)
	secondarySim := metadataSimilarity(a.Metadata, b.Metadata, secondaryMetadataKeys)

	score := weightName*nameSim + weightPrimary*primarySim + weightAssessed*assessedSim +
		weightSubject*subjectSim + weightSecondary*secondarySim

	if assessedSim >= overrideAssessedMin && (nameSim >= overrideNameMin || primarySim >= overridePrimaryMin) {
		if score < overrideSimilarity {
			score = overrideSimilarity
		}
	}
	return score
}

func metadataSimilarity(a, b map[string]string, keys []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	matched, total := 0, 0
	for _, k := range keys {
		va, oka := a[k]
		vb, okb := b[k]
		if !oka && !okb {
			continue
		}
		total++
		if oka && okb && text.Jaccard(va, vb) >= 0.6 {
			matched++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total)
}

// Dedup collapses contexts merging at >=threshold into survivors, union-
// merging mergee metadata (survivor's non-empty fields win), and returns
// the kept contexts plus the id remap for downstream reference rewriting.
func Dedup(contexts []domain.AnalysisContext, threshold float64) ([]domain.AnalysisContext, Remap) {
	if threshold <= 0 {
		threshold = DefaultDedupThreshold
	}
	n := len(contexts)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(i, j int) {
		ri, rj := find(i), find(j)
		if ri != rj {
			parent[rj] = ri
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if Similarity(contexts[i], contexts[j]) >= threshold {
				union(i, j)
			}
		}
	}

	groups := map[int][]int{}
	for i := 0; i < n; i++ {
		root := find(i)
		groups[root] = append(groups[root], i)
	}

	var kept []domain.AnalysisContext
	remap := Remap{}
	for _, members := range groups {
		survivorIdx := members[0]
		survivor := contexts[survivorIdx]
		for _, m := range members[1:] {
			mergeMetadata(&survivor, contexts[m])
			remap[contexts[m].ID] = survivor.ID
		}
		kept = append(kept, survivor)
	}
	return kept, remap
}

func mergeMetadata(survivor *domain.AnalysisContext, mergee domain.AnalysisContext) {
	if survivor.Metadata == nil {
		survivor.Metadata = map[string]string{}
	}
	for k, v := range mergee.Metadata {
		if _, exists := survivor.Metadata[k]; !exists && v != "" {
			survivor.Metadata[k] = v
		}
	}
	if survivor.Subject == "" {
		survivor.Subject = mergee.Subject
	}
	if survivor.AssessedStatement == "" {
		survivor.AssessedStatement = mergee.AssessedStatement
	}
}
