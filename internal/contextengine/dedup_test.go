package contextengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
)

func TestSimilarityIdenticalContextsIsOne(t *testing.T) {
	a := domain.AnalysisContext{
		Name:              "City Council Budget Vote",
		Subject:           "budget",
		AssessedStatement: "the council approved the annual budget",
		Metadata:          map[string]string{"institution": "city council", "jurisdiction": "springfield", "geographic": "springfield"},
	}
	assert.InDelta(t, 1.0, Similarity(a, a), 1e-9)
}

func TestSimilarityCompletelyDifferentContextsIsLow(t *testing.T) {
	a := domain.AnalysisContext{
		Name: "City Council Budget Vote", Subject: "budget",
		AssessedStatement: "the council approved the annual budget",
		Metadata:           map[string]string{"institution": "city council"},
	}
	b := domain.AnalysisContext{
		Name: "Regional Rainfall Patterns", Subject: "weather",
		AssessedStatement: "rainfall increased across the valley",
		Metadata:           map[string]string{"institution": "weather service"},
	}
	assert.Less(t, Similarity(a, b), 0.3)
}

func TestSimilarityOverrideFiresOnStrongAssessedAndNameMatch(t *testing.T) {
	a := domain.AnalysisContext{
		Name:              "Springfield Budget",
		Subject:           "unrelated subject text entirely",
		AssessedStatement: "the city council approved the annual municipal budget",
	}
	b := domain.AnalysisContext{
		Name:              "Springfield Budget Vote",
		Subject:           "different subject wording here",
		AssessedStatement: "the city council approved the annual municipal budget",
	}
	assert.GreaterOrEqual(t, Similarity(a, b), overrideSimilarity)
}

func TestDedupMergesContextsAboveThresholdAndBuildsRemap(t *testing.T) {
	a := domain.AnalysisContext{ID: "ctx-1", Name: "Springfield Budget", AssessedStatement: "the council approved the budget"}
	b := domain.AnalysisContext{ID: "ctx-2", Name: "Springfield Budget", AssessedStatement: "the council approved the budget"}
	c := domain.AnalysisContext{ID: "ctx-3", Name: "Unrelated Weather Report", AssessedStatement: "rainfall rose sharply this year"}

	kept, remap := Dedup([]domain.AnalysisContext{a, b, c}, 0.5)

	require.Len(t, kept, 2)
	assert.Equal(t, "ctx-1", remap.Resolve("ctx-2"))
}

func TestDedupBelowThresholdKeepsAllContextsSeparate(t *testing.T) {
	a := domain.AnalysisContext{ID: "ctx-1", Name: "Alpha", AssessedStatement: "alpha statement"}
	b := domain.AnalysisContext{ID: "ctx-2", Name: "Beta", AssessedStatement: "beta statement"}

	kept, remap := Dedup([]domain.AnalysisContext{a, b}, 0.99)

	assert.Len(t, kept, 2)
	assert.Empty(t, remap)
}

func TestDedupUsesDefaultThresholdWhenNonPositive(t *testing.T) {
	a := domain.AnalysisContext{ID: "ctx-1", Name: "Alpha", AssessedStatement: "alpha statement"}
	b := domain.AnalysisContext{ID: "ctx-2", Name: "Alpha", AssessedStatement: "alpha statement"}

	kept, _ := Dedup([]domain.AnalysisContext{a, b}, 0)

	assert.Len(t, kept, 1)
}

func TestRemapResolveFollowsChainAndGuardsAgainstCycles(t *testing.T) {
	remap := Remap{"a": "b", "b": "c"}
	assert.Equal(t, "c", remap.Resolve("a"))

	cyclic := Remap{"x": "y", "y": "x"}
	assert.NotPanics(t, func() {
		cyclic.Resolve("x")
	})
}

func TestMergeMetadataPrefersSurvivorValuesAndFillsGaps(t *testing.T) {
	survivor := domain.AnalysisContext{Metadata: map[string]string{"institution": "city council"}}
	mergee := domain.AnalysisContext{
		Metadata:          map[string]string{"institution": "other", "jurisdiction": "springfield"},
		Subject:           "budget",
		AssessedStatement: "the budget passed",
	}
	mergeMetadata(&survivor, mergee)

	assert.Equal(t, "city council", survivor.Metadata["institution"])
	assert.Equal(t, "springfield", survivor.Metadata["jurisdiction"])
	assert.Equal(t, "budget", survivor.Subject)
	assert.Equal(t, "the budget passed", survivor.AssessedStatement)
}
