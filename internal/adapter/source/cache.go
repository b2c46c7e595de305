package source

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
)

// Fetcher loads a dataset from somewhere.
type Fetcher interface {
	Fetch(ctx context.Context) (domain.Dataset, error)
}

// CachedSource wraps a Fetcher and serves the last successful result until it
// is older than the TTL. Failures are never cached.
type CachedSource struct {
	inner   Fetcher
	ttl     time.Duration
	clock   clockwork.Clock
	metrics *observability.Metrics

	mu        sync.Mutex
	dataset   domain.Dataset
	fetchedAt time.Time
	valid     bool
}

// NewCachedSource creates a cache decorator around a fetcher. A non-positive
// ttl disables caching.
func NewCachedSource(inner Fetcher, ttl time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *CachedSource {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CachedSource{
		inner:   inner,
		ttl:     ttl,
		clock:   clock,
		metrics: metrics,
	}
}

func (c *CachedSource) Fetch(ctx context.Context) (domain.Dataset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.ttl > 0 && c.clock.Since(c.fetchedAt) < c.ttl {
		c.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return c.dataset, nil
	}
	c.metrics.CacheLookups.WithLabelValues("miss").Inc()

	ds, err := c.inner.Fetch(ctx)
	if err != nil {
		return domain.Dataset{}, err
	}
	c.dataset = ds
	c.fetchedAt = c.clock.Now()
	c.valid = true
	return ds, nil
}
