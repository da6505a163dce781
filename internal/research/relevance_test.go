package research

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelevanceFilterKeepsHighOverlapDropsUnrelated(t *testing.T) {
	f := &RelevanceFilter{}
	candidates := []SearchCandidate{
		{URL: "https://example.com/a", Title: "Agency audit report released", Snippet: "full audit report text about the agency"},
		{URL: "https://example.com/b", Title: "Completely unrelated cooking recipe", Snippet: "how to bake bread at home"},
	}
	kept := f.Filter(context.Background(), "agency audit report released", nil, candidates)
	assert.Len(t, kept, 1)
	assert.Equal(t, "https://example.com/a", kept[0].URL)
}

func TestRelevanceFilterAmbiguousDefaultsToKeepWithoutLLM(t *testing.T) {
	f := &RelevanceFilter{LLMEnabled: false}
	candidates := []SearchCandidate{
		{URL: "https://example.com/c", Title: "agency report", Snippet: "some text"},
	}
	kept := f.Filter(context.Background(), "agency audit report released widely", nil, candidates)
	assert.Len(t, kept, 1)
}
