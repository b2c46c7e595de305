package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	pngadapter "github.com/couchcryptid/temperature-heatmap/internal/adapter/png"
	"github.com/couchcryptid/temperature-heatmap/internal/adapter/svg"
	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

// ChartProvider supplies the chart currently being served.
type ChartProvider interface {
	Current() *domain.Chart
	SourceURL() string
}

// Server exposes the heat map page and image, the chart model, and health,
// readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	charts     ChartProvider
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /, /heatmap.png, /api/chart,
// /api/summary, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, charts ChartProvider, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		charts: charts,
		logger: logger,
	}

	mux.HandleFunc("GET /{$}", s.withChart(s.handlePage))
	mux.HandleFunc("GET /heatmap.png", s.withChart(s.handlePNG))
	mux.HandleFunc("GET /api/chart", s.withChart(s.handleChart))
	mux.HandleFunc("GET /api/summary", s.withChart(s.handleSummary))
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type chartHandler func(w http.ResponseWriter, r *http.Request, c *domain.Chart)

// withChart answers 503 until the first chart is available.
func (s *Server) withChart(next chartHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := s.charts.Current()
		if c == nil {
			w.Header().Set("Retry-After", "5")
			sharedobs.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  "no chart rendered yet",
			})
			return
		}
		w.Header().Set("Last-Modified", c.RenderedAt.UTC().Format(http.TimeFormat))
		next(w, r, c)
	}
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request, c *domain.Chart) {
	s.writeRendered(w, "text/html; charset=utf-8", c, svg.RenderPage)
}

func (s *Server) handlePNG(w http.ResponseWriter, _ *http.Request, c *domain.Chart) {
	s.writeRendered(w, "image/png", c, pngadapter.Render)
}

func (s *Server) writeRendered(w http.ResponseWriter, contentType string, c *domain.Chart, render func(io.Writer, *domain.Chart) error) {
	var buf bytes.Buffer
	if err := render(&buf, c); err != nil {
		s.logger.Error("render failed", "content_type", contentType, "error", err)
		sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "render failed"})
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Debug("write response failed", "error", err)
	}
}

func (s *Server) handleChart(w http.ResponseWriter, _ *http.Request, c *domain.Chart) {
	sharedobs.WriteJSON(w, http.StatusOK, c)
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request, c *domain.Chart) {
	sharedobs.WriteJSON(w, http.StatusOK, c.Summary(s.charts.SourceURL()))
}

// AllReady combines checkers; the first failure wins.
func AllReady(checkers ...sharedobs.ReadinessChecker) sharedobs.ReadinessChecker {
	return readinessChain(checkers)
}

type readinessChain []sharedobs.ReadinessChecker

func (c readinessChain) CheckReadiness(ctx context.Context) error {
	for _, checker := range c {
		if err := checker.CheckReadiness(ctx); err != nil {
			return err
		}
	}
	return nil
}
