package evidenceengine

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
	"github.com/robertschaub/FactHarbor-sub001/internal/llmgateway"
)

// DefaultParallelExtractionLimit is parallelExtractionLimit's default (§4.5).
const DefaultParallelExtractionLimit = 3

// ExtractionResult pairs one source's extracted items with any error, so
// callers can tell a source that yielded nothing from one that failed.
type ExtractionResult struct {
	Source domain.FetchedSource
	Items  []domain.EvidenceItem
	Err    error
}

// dynamicSemaphore is a counting semaphore whose limit can shrink mid-run.
// A plain buffered channel can't do this (its capacity is fixed), so slots
// are tracked under a mutex and condition variable instead.
type dynamicSemaphore struct {
	mu    sync.Mutex
	cond  *sync.Cond
	limit int
	inUse int
}

func newDynamicSemaphore(limit int) *dynamicSemaphore {
	s := &dynamicSemaphore{limit: limit}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *dynamicSemaphore) acquire() {
	s.mu.Lock()
	for s.inUse >= s.limit {
		s.cond.Wait()
	}
	s.inUse++
	s.mu.Unlock()
}

func (s *dynamicSemaphore) release() {
	s.mu.Lock()
	s.inUse--
	s.cond.Broadcast()
	s.mu.Unlock()
}

func (s *dynamicSemaphore) shrink() {
	s.mu.Lock()
	if s.limit > 1 {
		s.limit--
	}
	s.mu.Unlock()
}

// ExtractAll runs ExtractFromSource across sources with a bounded worker
// count, allSettled semantics: one source's failure never cancels or skips
// another. Modeled on the teacher's channel-driven chunk scheduler in
// internal/scheduler, adapted here to a plain concurrency cap since
// extraction has no DAG dependency between sources. errgroup's fail-fast
// Wait is deliberately NOT used: a single source failing must not abort
// siblings already in flight.
//
// On a 429/503/rate-limit error from any worker, the live worker count is
// reduced by one (floor 1) for the remainder of the batch, per §4.5.
func ExtractAll(ctx context.Context, gw *llmgateway.Gateway, claim string, contexts []domain.AnalysisContext, sources []domain.FetchedSource, workerLimit int) []ExtractionResult {
	if workerLimit <= 0 {
		workerLimit = DefaultParallelExtractionLimit
	}
	results := make([]ExtractionResult, len(sources))
	sem := newDynamicSemaphore(workerLimit)
	var wg sync.WaitGroup

	for i, src := range sources {
		sem.acquire()
		wg.Add(1)
		go func(idx int, source domain.FetchedSource) {
			defer wg.Done()
			defer sem.release()

			items, err := ExtractFromSource(ctx, gw, claim, contexts, source)
			if err != nil {
				if isRateLimited(err) {
					sem.shrink()
				}
				log.Printf("evidenceengine: extraction failed for %s: %v", source.URL, err)
				results[idx] = ExtractionResult{Source: source, Err: err}
				return
			}
			results[idx] = ExtractionResult{Source: source, Items: items}
		}(i, src)
	}
	wg.Wait()
	return results
}

func isRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "503") || strings.Contains(msg, "rate limit")
}

// CollectEvidence flattens successful ExtractAll results and dedups them.
func CollectEvidence(results []ExtractionResult) []domain.EvidenceItem {
	var all []domain.EvidenceItem
	for _, r := range results {
		all = append(all, r.Items...)
	}
	return DedupEvidence(all)
}
