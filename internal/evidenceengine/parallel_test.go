package evidenceengine

import (
	"context"
	"testing"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmadapter"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmgateway"
	"github.com/stretchr/testify/assert"
)

func TestExtractAllRunsAllSourcesDespitePartialFailure(t *testing.T) {
	client := llmadapter.NewFakeClient(8192)
	client.Responses["extract_evidence"] = `{"items":[{"statement":"A durable finding from the source text","specificity":"high","sourceExcerpt":"this excerpt is long enough to pass the length gate","probativeValue":"high"}]}`
	gw := llmgateway.New(client, llmgateway.DefaultTiering(true), noopCounter{}, false)

	sources := []domain.FetchedSource{
		{ID: "A", URL: "https://example.com/a", FullText: "x", FetchSuccess: true},
		{ID: "B", FetchSuccess: false}, // unfetched: yields no items, no error
		{ID: "C", URL: "https://example.com/c", FullText: "y", FetchSuccess: true},
	}

	results := ExtractAll(context.Background(), gw, "claim", nil, sources, 2)
	assert.Len(t, results, 3)
	assert.Len(t, results[0].Items, 1)
	assert.Empty(t, results[1].Items)
	assert.Len(t, results[2].Items, 1)

	collected := CollectEvidence(results)
	assert.Len(t, collected, 1, "duplicate statements across sources should be deduped")
}

func TestDynamicSemaphoreShrinkNeverGoesBelowOne(t *testing.T) {
	sem := newDynamicSemaphore(2)
	sem.shrink()
	sem.shrink()
	sem.shrink()
	assert.Equal(t, 1, sem.limit)
}
