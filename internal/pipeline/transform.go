package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
)

// ChartRenderer implements Renderer by building the chart model from a dataset.
type ChartRenderer struct {
	layout  domain.Layout
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewRenderer creates a ChartRenderer using the default layout.
func NewRenderer(metrics *observability.Metrics, logger *slog.Logger) *ChartRenderer {
	return &ChartRenderer{
		layout:  domain.DefaultLayout(),
		metrics: metrics,
		logger:  logger,
	}
}

func (r *ChartRenderer) Render(_ context.Context, ds domain.Dataset) (*domain.Chart, error) {
	start := time.Now()
	c, err := domain.BuildChartWithLayout(ds, r.layout)
	if err != nil {
		r.metrics.RenderErrors.Inc()
		return nil, err
	}
	r.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	r.metrics.ChartsBuilt.Inc()
	r.metrics.CellsRendered.Set(float64(len(c.Cells)))

	r.logger.Debug("chart built",
		"cells", len(c.Cells),
		"years", c.Ranges.YearCount(),
		"min_temp", c.Ranges.MinTemp,
		"max_temp", c.Ranges.MaxTemp,
	)
	return c, nil
}
