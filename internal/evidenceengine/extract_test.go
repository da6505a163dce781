package evidenceengine

import (
	"context"
	"testing"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmadapter"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmgateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, responses map[string]string) *llmgateway.Gateway {
	t.Helper()
	client := llmadapter.NewFakeClient(8192)
	for task, resp := range responses {
		client.Responses[task] = resp
	}
	return llmgateway.New(client, llmgateway.DefaultTiering(true), noopCounter{}, false)
}

type noopCounter struct{}

func (noopCounter) RecordLLMCall(int) {}

func TestExtractFromSourceRejectsLowSpecificityAndShortExcerpts(t *testing.T) {
	resp := `{"items":[
		{"statement":"a","specificity":"low","sourceExcerpt":"this excerpt is long enough to pass"},
		{"statement":"b","specificity":"high","sourceExcerpt":"too short"},
		{"statement":"The agency published a 40 page audit report","specificity":"high","sourceExcerpt":"this excerpt is long enough to pass the length gate","claimDirection":"supports","probativeValue":"high"}
	]}`
	gw := newTestGateway(t, map[string]string{"extract_evidence": resp})
	source := domain.FetchedSource{ID: "S1", URL: "https://example.com/report", Title: "Audit", FullText: "body text", FetchSuccess: true}

	items, err := ExtractFromSource(context.Background(), gw, "the agency was audited", nil, source)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "The agency published a 40 page audit report", items[0].Statement)
	assert.Equal(t, "S1", items[0].SourceID)
}

func TestExtractFromSourceSkipsUnfetchedSource(t *testing.T) {
	gw := newTestGateway(t, nil)
	source := domain.FetchedSource{ID: "S2", FetchSuccess: false}

	items, err := ExtractFromSource(context.Background(), gw, "claim", nil, source)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestExtractFromSourceAppliesHighImpactSafeguard(t *testing.T) {
	resp := `{"items":[
		{"statement":"He was sentenced to 15 years in prison for the offense","specificity":"high","sourceExcerpt":"this excerpt is long enough to pass the length gate","probativeValue":"high"}
	]}`
	gw := newTestGateway(t, map[string]string{"extract_evidence": resp})
	lowScore := 0.2
	source := domain.FetchedSource{ID: "S3", URL: "https://example.com/x", FullText: "body", FetchSuccess: true, TrackRecordScore: &lowScore}

	items, err := ExtractFromSource(context.Background(), gw, "claim", nil, source)
	require.NoError(t, err)
	assert.Empty(t, items)
}
