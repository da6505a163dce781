package searchadapter

import (
	"context"
	"fmt"
	"strings"
)

// FakeProvider is a deterministic in-memory search stand-in (§1 "external
// collaborators, specified only by interface"). It synthesizes plausible
// results from the query string so the orchestrator's research loop has
// something to fetch in tests and local runs without network access.
type FakeProvider struct {
	// Fixtures maps a query substring (lowercased) to a canned response.
	// When several keys match, which one is used is not defined (map
	// iteration order). Queries with no match get a small synthetic result
	// set.
	Fixtures map[string][]Result
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{Fixtures: map[string][]Result{}}
}

func (f *FakeProvider) Search(ctx context.Context, req Request) (Response, error) {
	q := strings.ToLower(req.Query)
	for key, results := range f.Fixtures {
		if strings.Contains(q, strings.ToLower(key)) {
			return Response{Results: limit(results, req.MaxResults), ProvidersUsed: []string{"fake"}}, nil
		}
	}
	n := req.MaxResults
	if n <= 0 || n > 3 {
		n = 3
	}
	results := make([]Result, 0, n)
	for i := 0; i < n; i++ {
		slug := strings.Join(strings.Fields(q), "-")
		results = append(results, Result{
			Title:   fmt.Sprintf("Result %d for %q", i+1, req.Query),
			Snippet: fmt.Sprintf("Synthetic snippet discussing %s.", req.Query),
			URL:     fmt.Sprintf("https://example.org/%s-%d", slug, i+1),
		})
	}
	return Response{Results: results, ProvidersUsed: []string{"fake"}}, nil
}

func limit(results []Result, n int) []Result {
	if n <= 0 || n >= len(results) {
		return results
	}
	return results[:n]
}
