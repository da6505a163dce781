package research

import (
	"context"
	"testing"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmadapter"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmgateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gapCounter struct{}

func (gapCounter) RecordLLMCall(int) {}

func TestRunGapResearchStopsWhenNoNovelEvidence(t *testing.T) {
	client := llmadapter.NewFakeClient(8192)
	client.Responses["extract_evidence"] = `{"items":[{"statement":"a durable finding about the claim text","specificity":"high","sourceExcerpt":"this excerpt is long enough to pass the length gate","probativeValue":"high"}]}`
	gw := llmgateway.New(client, llmgateway.DefaultTiering(true), gapCounter{}, false)

	state := domain.NewResearchState("claim text", domain.InputText, "")
	state.Understanding = &domain.ClaimUnderstanding{
		SubClaims: []domain.SubClaim{
			{ID: "SC1", Text: "claim text needs more evidence to be confirmed", ThesisRelevance: domain.RelevanceDirect, Centrality: domain.LevelHigh},
		},
	}

	searchCalls := 0
	search := func(ctx context.Context, query, dateRestrict string) ([]SearchCandidate, error) {
		searchCalls++
		return []SearchCandidate{{URL: "https://example.com/one", Title: "result"}}, nil
	}
	fetch := func(ctx context.Context, url string) (domain.FetchedSource, error) {
		return domain.FetchedSource{ID: "S1", URL: url, FullText: "body", FetchSuccess: true}, nil
	}

	added := RunGapResearch(context.Background(), "claim text", state, search, fetch, 2, GapResearchLimits{MaxIterations: 3, MaxQueries: 8}, gw)
	assert.Equal(t, 1, added)
	require.NotEmpty(t, state.EvidenceItems)
	assert.GreaterOrEqual(t, searchCalls, 1)
}

func TestRunGapResearchSkipsAlreadyProcessedURLs(t *testing.T) {
	client := llmadapter.NewFakeClient(8192)
	gw := llmgateway.New(client, llmgateway.DefaultTiering(true), gapCounter{}, false)

	state := domain.NewResearchState("claim text", domain.InputText, "")
	state.Understanding = &domain.ClaimUnderstanding{
		SubClaims: []domain.SubClaim{
			{ID: "SC1", Text: "claim text needs more evidence entirely", ThesisRelevance: domain.RelevanceDirect, Centrality: domain.LevelHigh},
		},
	}
	state.ProcessedURLs[NormalizeURLForDedup("https://example.com/dup")] = struct{}{}

	fetchCalls := 0
	search := func(ctx context.Context, query, dateRestrict string) ([]SearchCandidate, error) {
		return []SearchCandidate{{URL: "https://example.com/dup"}}, nil
	}
	fetch := func(ctx context.Context, url string) (domain.FetchedSource, error) {
		fetchCalls++
		return domain.FetchedSource{FetchSuccess: true}, nil
	}

	added := RunGapResearch(context.Background(), "claim", state, search, fetch, 1, GapResearchLimits{}, gw)
	assert.Equal(t, 0, added)
	assert.Equal(t, 0, fetchCalls)
}
