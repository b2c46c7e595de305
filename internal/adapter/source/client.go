package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
)

// maxBodyBytes caps the upstream document size. The reference dataset is ~150 KiB.
const maxBodyBytes = 16 << 20

// Client fetches the temperature dataset over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a dataset client for url.
func NewClient(url string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// URL returns the endpoint this client reads from.
func (c *Client) URL() string { return c.url }

// Fetch downloads and parses the dataset. Every failure is a *domain.FetchError.
func (c *Client) Fetch(ctx context.Context) (domain.Dataset, error) {
	start := time.Now()
	ds, err := c.fetch(ctx)
	c.metrics.FetchDuration.Observe(time.Since(start).Seconds())

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.metrics.FetchRequests.WithLabelValues(outcome).Inc()
	return ds, err
}

func (c *Client) fetch(ctx context.Context) (domain.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.Dataset{}, &domain.FetchError{Op: "fetch", URL: c.url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Dataset{}, &domain.FetchError{Op: "fetch", URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return domain.Dataset{}, &domain.FetchError{Op: "fetch", URL: c.url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.Dataset{}, &domain.FetchError{Op: "fetch", URL: c.url, Err: fmt.Errorf("read body: %w", err)}
	}

	ds, err := domain.ParseDataset(body)
	if err != nil {
		return domain.Dataset{}, &domain.FetchError{Op: "parse", URL: c.url, Err: err}
	}

	c.logger.Debug("dataset fetched", "url", c.url, "records", len(ds.Records), "bytes", len(body))
	return ds, nil
}
