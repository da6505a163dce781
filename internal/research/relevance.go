package research

import (
	"context"
	"encoding/json"

	"github.com/robertschaub/FactHarbor-sub001/internal/llmadapter"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmgateway"
	"github.com/robertschaub/FactHarbor-sub001/internal/text"
)

// SearchCandidate is one search-result row considered for fetching.
type SearchCandidate struct {
	URL     string
	Title   string
	Snippet string
}

// RelevanceFilter scores candidates before fetch, with optional bounded LLM
// arbitration for ambiguous cases (§4.6).
type RelevanceFilter struct {
	Gateway       *llmgateway.Gateway
	LLMEnabled    bool
	MaxLLMCalls   int
	llmCallsUsed  int
}

const (
	relevanceKeepThreshold   = 3
	relevanceRejectThreshold = 1
)

// Filter scores each candidate by entity/context-token overlap against
// claimText and the context entity strings. Clear keeps/rejects are
// decided heuristically; ambiguous ones get one bounded LLM call each, up
// to MaxLLMCalls per analysis, after which they default to keep (favoring
// recall over precision when the arbitration budget is spent).
func (f *RelevanceFilter) Filter(ctx context.Context, claimText string, contextEntities []string, candidates []SearchCandidate) []SearchCandidate {
	var kept []SearchCandidate
	for _, c := range candidates {
		score := overlapScore(claimText, contextEntities, c)
		switch {
		case score >= relevanceKeepThreshold:
			kept = append(kept, c)
		case score <= relevanceRejectThreshold:
			continue
		default:
			if f.arbitrate(ctx, claimText, c) {
				kept = append(kept, c)
			}
		}
	}
	return kept
}

func overlapScore(claimText string, contextEntities []string, c SearchCandidate) int {
	haystack := c.Title + " " + c.Snippet + " " + c.URL
	score := text.OverlapCount(claimText, haystack)
	for _, entity := range contextEntities {
		if entity == "" {
			continue
		}
		score += text.OverlapCount(entity, haystack)
	}
	return score
}

func (f *RelevanceFilter) arbitrate(ctx context.Context, claimText string, c SearchCandidate) bool {
	if !f.LLMEnabled || f.Gateway == nil || f.llmCallsUsed >= f.MaxLLMCalls {
		return true
	}
	f.llmCallsUsed++
	system := "Decide if the candidate result is relevant to the claim. Respond with JSON {\"relevant\": true|false}."
	user := claimText + "\n\nCandidate: " + c.Title + " — " + c.Snippet + " (" + c.URL + ")"
	raw, err := f.Gateway.Structured(ctx, llmadapter.TaskSearchRelevance, system, user, relevanceSchema{}, llmgateway.Opts{})
	if err != nil {
		return true
	}
	result, ok := raw.(relevanceResult)
	if !ok {
		return true
	}
	return result.Relevant
}

type relevanceResult struct {
	Relevant bool `json:"relevant"`
}

type relevanceSchema struct{}

func (relevanceSchema) ParseStrict(data []byte) (any, error) {
	var r relevanceResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return r, nil
}

func (relevanceSchema) ParseLenient(data []byte) (any, error) {
	return relevanceSchema{}.ParseStrict(data)
}
