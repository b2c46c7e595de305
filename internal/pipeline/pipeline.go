package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
)

// DatasetSource loads the upstream dataset.
type DatasetSource interface {
	Fetch(ctx context.Context) (domain.Dataset, error)
}

// Renderer turns a dataset into a chart.
type Renderer interface {
	Render(ctx context.Context, ds domain.Dataset) (*domain.Chart, error)
}

// SummaryPublisher announces a freshly rendered chart.
type SummaryPublisher interface {
	Publish(ctx context.Context, summary domain.ChartSummary) error
}

// SnapshotStore persists datasets for use when the upstream is unavailable.
type SnapshotStore interface {
	Save(ctx context.Context, url string, ds domain.Dataset, fetchedAt time.Time) error
	Latest(ctx context.Context, url string) (domain.Dataset, time.Time, error)
}

// Refresher keeps the current chart up to date by periodically fetching and
// rendering the dataset. Publisher and store are optional.
type Refresher struct {
	url       string
	source    DatasetSource
	renderer  Renderer
	publisher SummaryPublisher
	store     SnapshotStore
	logger    *slog.Logger
	metrics   *observability.Metrics
	interval  time.Duration
	clock     clockwork.Clock

	current atomic.Pointer[domain.Chart]
}

// New creates a Refresher for the dataset at url. Pass nil publisher or store
// to disable summary publishing or snapshots.
func New(
	url string,
	source DatasetSource,
	renderer Renderer,
	publisher SummaryPublisher,
	store SnapshotStore,
	logger *slog.Logger,
	metrics *observability.Metrics,
	interval time.Duration,
) *Refresher {
	return &Refresher{
		url:       url,
		source:    source,
		renderer:  renderer,
		publisher: publisher,
		store:     store,
		logger:    logger,
		metrics:   metrics,
		interval:  interval,
		clock:     clockwork.NewRealClock(),
	}
}

// SetClock replaces the clock driving the refresh ticker and snapshot timestamps.
func (p *Refresher) SetClock(c clockwork.Clock) {
	p.clock = c
}

// Current returns the most recently rendered chart, or nil before the first
// successful refresh.
func (p *Refresher) Current() *domain.Chart {
	return p.current.Load()
}

// SourceURL is the dataset location charts are rendered from.
func (p *Refresher) SourceURL() string {
	return p.url
}

// CheckReadiness returns nil once a chart is available.
func (p *Refresher) CheckReadiness(_ context.Context) error {
	if p.current.Load() == nil {
		return errors.New("no chart rendered yet")
	}
	return nil
}

// Run refreshes immediately and then once per interval until the context is
// cancelled. A failed refresh is logged and retried on the next tick only.
func (p *Refresher) Run(ctx context.Context) error {
	p.logger.Info("refresher started", "url", p.url, "interval", p.interval)
	p.metrics.RefresherRunning.Set(1)
	defer p.metrics.RefresherRunning.Set(0)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	p.refreshAndLog(ctx)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("refresher stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			p.refreshAndLog(ctx)
		}
	}
}

func (p *Refresher) refreshAndLog(ctx context.Context) {
	if err := p.Refresh(ctx); err != nil && ctx.Err() == nil {
		p.logger.Error("refresh failed", "url", p.url, "error", err)
	}
}

// Refresh performs one fetch, render, store and publish cycle. When the fetch
// fails and no chart has been rendered yet, the latest snapshot is rendered
// instead.
func (p *Refresher) Refresh(ctx context.Context) error {
	ds, err := p.source.Fetch(ctx)
	fromSnapshot := false
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		ds, err = p.fallback(ctx, err)
		if err != nil {
			return err
		}
		fromSnapshot = true
	}

	c, err := p.renderer.Render(ctx, ds)
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	p.current.Store(c)

	if fromSnapshot {
		return nil
	}

	now := p.clock.Now()
	p.metrics.LastRefreshSuccess.Set(float64(now.Unix()))
	p.saveSnapshot(ctx, ds, now)
	p.publish(ctx, c)
	p.logger.Info("chart refreshed", "records", len(ds.Records), "cells", len(c.Cells))
	return nil
}

// fallback loads the latest snapshot after fetchErr, but only while there is
// no current chart to keep serving.
func (p *Refresher) fallback(ctx context.Context, fetchErr error) (domain.Dataset, error) {
	if p.store == nil || p.current.Load() != nil {
		return domain.Dataset{}, fetchErr
	}
	ds, fetchedAt, err := p.store.Latest(ctx, p.url)
	if err != nil {
		return domain.Dataset{}, errors.Join(fetchErr, fmt.Errorf("snapshot fallback: %w", err))
	}
	p.metrics.SnapshotFallbacks.Inc()
	p.logger.Warn("upstream fetch failed, rendering stored snapshot",
		"error", fetchErr,
		"snapshot_fetched_at", fetchedAt,
	)
	return ds, nil
}

func (p *Refresher) saveSnapshot(ctx context.Context, ds domain.Dataset, at time.Time) {
	if p.store == nil {
		return
	}
	if err := p.store.Save(ctx, p.url, ds, at); err != nil {
		p.metrics.SnapshotErrors.Inc()
		p.logger.Warn("save snapshot failed", "error", err)
	}
}

func (p *Refresher) publish(ctx context.Context, c *domain.Chart) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(ctx, c.Summary(p.url)); err != nil {
		p.metrics.PublishErrors.Inc()
		p.logger.Warn("publish summary failed", "error", err)
		return
	}
	p.metrics.SummariesPublished.Inc()
}
