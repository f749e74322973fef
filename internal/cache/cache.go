package cache

import (
	"context"
	"sync"
	"time"

	"github.com/sume/estra/internal/endpoint"
)

// Source is anything that can produce a fresh energy summary.
type Source interface {
	Fetch(ctx context.Context) (endpoint.Summary, error)
}

// SummaryCache keeps the last successful energy-summary fetch for a TTL and
// exposes an explicit invalidate, decoupled from any UI-layer caching.
type SummaryCache struct {
	mu        sync.Mutex
	source    Source
	ttl       time.Duration
	data      endpoint.Summary
	fetchedAt time.Time
}

// New wraps source with a TTL cache. ttl <= 0 falls back to 5 minutes.
func New(source Source, ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SummaryCache{source: source, ttl: ttl}
}

// Get returns the cached summary, fetching a fresh one when the entry is
// missing or expired. hit reports whether the entry was served from cache,
// decided under the same lock that serves it. Concurrent callers share a
// single fetch.
func (c *SummaryCache) Get(ctx context.Context) (data endpoint.Summary, hit bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.data != nil && time.Since(c.fetchedAt) < c.ttl {
		return c.data, true, nil
	}

	data, err = c.source.Fetch(ctx)
	if err != nil {
		// Keep any stale entry; the caller still gets the error.
		return nil, false, err
	}

	c.data = data
	c.fetchedAt = time.Now()
	return data, false, nil
}

// Peek returns the cached summary without fetching, or nil when empty or
// expired.
func (c *SummaryCache) Peek() endpoint.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data == nil || time.Since(c.fetchedAt) >= c.ttl {
		return nil
	}
	return c.data
}

// Invalidate drops the cached entry so the next Get fetches fresh data.
func (c *SummaryCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = nil
	c.fetchedAt = time.Time{}
}
