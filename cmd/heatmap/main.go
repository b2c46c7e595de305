package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/temperature-heatmap/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/temperature-heatmap/internal/adapter/kafka"
	"github.com/couchcryptid/temperature-heatmap/internal/adapter/source"
	"github.com/couchcryptid/temperature-heatmap/internal/adapter/sqlite"
	"github.com/couchcryptid/temperature-heatmap/internal/config"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
	"github.com/couchcryptid/temperature-heatmap/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Snapshot store (feature-flagged via SNAPSHOT_PATH).
	var store pipeline.SnapshotStore
	var snapshots *sqlite.Store
	if cfg.SnapshotPath != "" {
		snapshots, err = sqlite.Open(cfg.SnapshotPath)
		if err != nil {
			logger.Error("failed to open snapshot store", "path", cfg.SnapshotPath, "error", err)
			os.Exit(1)
		}
		store = snapshots
		stored, err := snapshots.Count(context.Background(), cfg.DatasetURL)
		if err != nil {
			logger.Warn("count stored snapshots failed", "error", err)
		}
		logger.Info("snapshot store enabled", "path", cfg.SnapshotPath, "snapshots", stored)
	} else {
		logger.Info("snapshot store disabled")
	}

	// Summary publishing (feature-flagged via KAFKA_ENABLED).
	var publisher pipeline.SummaryPublisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka summary publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka summary publishing disabled")
	}

	p := newRefresher(cfg, clockwork.NewRealClock(), publisher, store, metrics, logger)

	ready := httpadapter.AllReady(p)
	if snapshots != nil {
		ready = httpadapter.AllReady(p, snapshots)
	}
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, ready, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start refresh loop.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("refresher error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	if snapshots != nil {
		if err := snapshots.Close(); err != nil {
			logger.Error("snapshot store close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// newRefresher wires the dataset client, its cache, and the renderer into a
// refresh loop. The cache and the loop share one clock.
func newRefresher(cfg *config.Config, clock clockwork.Clock, publisher pipeline.SummaryPublisher, store pipeline.SnapshotStore, metrics *observability.Metrics, logger *slog.Logger) *pipeline.Refresher {
	client := source.NewClient(cfg.DatasetURL, cfg.FetchTimeout, metrics, logger)
	cached := source.NewCachedSource(client, cfg.CacheTTL, clock, metrics)
	p := pipeline.New(client.URL(), cached, pipeline.NewRenderer(metrics, logger), publisher, store, logger, metrics, cfg.RefreshInterval)
	p.SetClock(clock)
	return p
}
