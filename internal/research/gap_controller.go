package research

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/evidenceengine"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmgateway"
)

// SearchFn issues one query and returns candidate URLs; wired from
// internal/searchadapter by the orchestrator.
type SearchFn func(ctx context.Context, query, dateRestrict string) ([]SearchCandidate, error)

// FetchFn retrieves one URL; wired from internal/fetchadapter.
type FetchFn func(ctx context.Context, url string) (domain.FetchedSource, error)

// GapResearchLimits bounds the separate, post-main-phase gap pass (§4.6).
type GapResearchLimits struct {
	MaxIterations int // default 2
	MaxQueries    int // default 8
}

// RunGapResearch runs at most MaxIterations passes, each issuing queries
// for the highest-severity gaps (critical/high) up to MaxQueries total,
// stopping early once an iteration adds zero novel evidence items. Query
// execution within one iteration is bounded-concurrent via errgroup with
// SetLimit; errors are captured per-query and never returned from the
// group function, since errgroup's Wait is fail-fast and a single query
// failing must not cancel its siblings (same allSettled requirement as
// evidenceengine's extraction fan-out, grounded the same way).
func RunGapResearch(ctx context.Context, claim string, state *domain.ResearchState, search SearchFn, fetch FetchFn, workerLimit int, limits GapResearchLimits, gw *llmgateway.Gateway) int {
	if limits.MaxIterations <= 0 {
		limits.MaxIterations = 2
	}
	if limits.MaxQueries <= 0 {
		limits.MaxQueries = 8
	}
	if workerLimit <= 0 {
		workerLimit = 3
	}

	queriesUsed := 0
	totalAdded := 0
	for iter := 0; iter < limits.MaxIterations; iter++ {
		gaps := AnalyzeEvidenceGaps(state)
		queries := collectGapQueries(gaps, limits.MaxQueries-queriesUsed)
		if len(queries) == 0 {
			break
		}
		queriesUsed += len(queries)

		added := runQueriesBounded(ctx, claim, state, search, fetch, workerLimit, queries, gw)
		totalAdded += added
		if added == 0 {
			break
		}
		if queriesUsed >= limits.MaxQueries {
			break
		}
	}
	return totalAdded
}

func collectGapQueries(gaps []EvidenceGap, budget int) []string {
	if budget <= 0 {
		return nil
	}
	var queries []string
	for _, g := range gaps {
		if g.Severity != SeverityCritical && g.Severity != SeverityHigh {
			continue
		}
		for _, q := range g.SuggestedQueries {
			queries = append(queries, q)
			if len(queries) >= budget {
				return queries
			}
		}
	}
	return queries
}

func runQueriesBounded(ctx context.Context, claim string, state *domain.ResearchState, search SearchFn, fetch FetchFn, workerLimit int, queries []string, gw *llmgateway.Gateway) int {
	var group errgroup.Group
	group.SetLimit(workerLimit)

	type found struct {
		items []domain.EvidenceItem
	}
	resultsCh := make(chan found, len(queries))

	for _, q := range queries {
		q := q
		group.Go(func() error {
			candidates, err := search(ctx, q, "")
			if err != nil {
				resultsCh <- found{}
				return nil
			}
			for _, c := range candidates {
				normalized := NormalizeURLForDedup(c.URL)
				if _, seen := state.ProcessedURLs[normalized]; seen {
					continue
				}
				state.ProcessedURLs[normalized] = struct{}{}
				source, err := fetch(ctx, c.URL)
				if err != nil || !source.FetchSuccess {
					continue
				}
				items, err := evidenceengine.ExtractFromSource(ctx, gw, claim, nil, source)
				if err != nil {
					continue
				}
				resultsCh <- found{items: items}
			}
			return nil
		})
	}
	group.Wait()
	close(resultsCh)

	var all []domain.EvidenceItem
	for r := range resultsCh {
		all = append(all, r.items...)
	}
	deduped := evidenceengine.MergeNewEvidence(state.EvidenceItems, all)
	added := len(deduped) - len(state.EvidenceItems)
	state.EvidenceItems = deduped
	state.Budget.GapQueriesUsed += len(queries)
	state.Budget.GapIterationsUsed++
	if added < 0 {
		added = 0
	}
	return added
}
