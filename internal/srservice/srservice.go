// Package srservice is the external source-reliability contract (§6
// "Source-reliability contract"): prefetch + per-URL track-record lookup,
// plus the evidence-weighting entry point calibration.ApplyEvidenceWeighting
// wraps. The real scoring backend is out of scope (§1); this package is the
// process-wide cache and the fake backend used in its place, grounded on
// the teacher's lru.Cache[string, []ProjectArtifact]-backed store
// (internal/gateway/repository/projectstore/store.go).
package srservice

import (
	"context"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/robertschaub/FactHarbor-sub001/internal/domain"
)

// Backend is the external reliability-scoring collaborator (§6). A real
// implementation calls out to a scoring service; Fake below is a
// deterministic in-memory stand-in for tests and local runs.
type Backend interface {
	Score(ctx context.Context, url string) (score *float64, confidence float64, err error)
}

// Service is the process-wide, write-through-per-URL cache in front of a
// Backend (§5 "Shared-resource policy": "no locking is required because
// reads are pure and the cache is write-through per URL key" — the cache
// itself still needs its own mutex for concurrent Get/Add, which lru.Cache
// already provides internally).
type Service struct {
	backend Backend
	cache   *lru.Cache[string, scored]

	mu           sync.Mutex
	prefetchedAt map[string]struct{}
}

type scored struct {
	score      *float64
	confidence float64
}

// New builds a Service with a bounded LRU cache of up to capacity URLs.
func New(backend Backend, capacity int) *Service {
	if capacity <= 0 {
		capacity = 2048
	}
	cache, _ := lru.New[string, scored](capacity)
	return &Service{backend: backend, cache: cache, prefetchedAt: map[string]struct{}{}}
}

// Prefetch implements §6: batches scoring lookups for a set of URLs before
// any per-URL read, so GetTrackRecordScore never blocks on the backend
// during the hot per-evidence-item path.
func (s *Service) Prefetch(ctx context.Context, urls []string) error {
	for _, raw := range urls {
		url := strings.TrimSpace(raw)
		if url == "" {
			continue
		}
		if _, ok := s.cache.Get(url); ok {
			continue
		}
		score, confidence, err := s.backend.Score(ctx, url)
		if err != nil {
			// Per-URL failures are non-fatal (§7): cache a nil score so
			// downstream weighting falls back to DefaultUnknownSourceScore.
			s.cache.Add(url, scored{score: nil, confidence: 0})
			continue
		}
		s.cache.Add(url, scored{score: score, confidence: confidence})
	}
	return nil
}

// GetTrackRecordScore implements §6: a pure, non-blocking read of whatever
// Prefetch already cached; nil when the URL was never prefetched or the
// backend reported unknown.
func (s *Service) GetTrackRecordScore(url string) *float64 {
	v, ok := s.cache.Get(strings.TrimSpace(url))
	if !ok {
		return nil
	}
	return v.score
}

// GetTrackRecordConfidence mirrors GetTrackRecordScore for the confidence
// component FetchedSource.TrackRecordConfidence carries.
func (s *Service) GetTrackRecordConfidence(url string) float64 {
	v, ok := s.cache.Get(strings.TrimSpace(url))
	if !ok {
		return 0
	}
	return v.confidence
}

// ApplyToSources writes cached scores onto FetchedSource records by URL,
// the glue between Prefetch's cache and the domain model the rest of the
// pipeline reads (§3 FetchedSource.trackRecordScore).
func (s *Service) ApplyToSources(sources []domain.FetchedSource) []domain.FetchedSource {
	out := make([]domain.FetchedSource, len(sources))
	copy(out, sources)
	for i := range out {
		out[i].TrackRecordScore = s.GetTrackRecordScore(out[i].URL)
		out[i].TrackRecordConfidence = s.GetTrackRecordConfidence(out[i].URL)
	}
	return out
}
