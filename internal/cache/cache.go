// Package cache memoizes analysis results behind a content-derived key
// with a time-based freshness policy. The cache is an optimization, never
// a correctness dependency: store failures fall through to live analysis.
package cache

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"policylens/apimodels"
)

// Store is the document-store port the cache service persists through.
// Get returns only records created at or after since; nil, nil is a miss.
type Store interface {
	Get(ctx context.Context, key string, since time.Time) (*apimodels.CachedAnalysis, error)
	Put(ctx context.Context, rec *apimodels.CachedAnalysis) error
}

// Analyzer produces fresh analysis results on cache misses.
type Analyzer interface {
	Analyze(ctx context.Context, req apimodels.AnalysisRequest) (*apimodels.AnalysisResult, error)
}

// Service wraps an Analyzer with read-through/write-through memoization.
// Concurrent requests for the same key are collapsed into one upstream
// call; the shared result is written once and returned to every caller.
type Service struct {
	store    Store
	analyzer Analyzer
	ttl      time.Duration
	group    singleflight.Group
	now      func() time.Time
}

func New(store Store, analyzer Analyzer, ttl time.Duration) *Service {
	return &Service{
		store:    store,
		analyzer: analyzer,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Analyze returns the cached record when a fresh one exists, otherwise runs
// a full analysis, persists it, and returns the new record.
func (s *Service) Analyze(ctx context.Context, req apimodels.AnalysisRequest) (*apimodels.CachedAnalysis, error) {
	key := DeriveKey(req.Company, req.Product, req.URL)

	if rec := s.lookup(ctx, key); rec != nil {
		slog.Info("cache hit", "cacheKey", key)
		return rec, nil
	}

	v, err, shared := s.group.Do(key, func() (any, error) {
		// Re-check inside the flight: a concurrent caller may have written
		// the record while this one waited to enter.
		if rec := s.lookup(ctx, key); rec != nil {
			return rec, nil
		}

		result, err := s.analyzer.Analyze(ctx, req)
		if err != nil {
			return nil, err
		}

		now := s.now()
		rec := &apimodels.CachedAnalysis{
			AnalysisResult: *result,
			CacheKey:       key,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.store.Put(ctx, rec); err != nil {
			// Best effort: the caller still gets its freshly computed result.
			slog.Warn("failed to cache analysis", "cacheKey", key, "error", err)
		}
		return rec, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("coalesced duplicate analysis request", "cacheKey", key)
	}
	return v.(*apimodels.CachedAnalysis), nil
}

// lookup reads the store, treating errors and stale records as misses.
func (s *Service) lookup(ctx context.Context, key string) *apimodels.CachedAnalysis {
	since := s.now().Add(-s.ttl)
	rec, err := s.store.Get(ctx, key, since)
	if err != nil {
		slog.Warn("cache read failed, treating as miss", "cacheKey", key, "error", err)
		return nil
	}
	return rec
}
