// Command render fetches (or reads) the temperature dataset once and writes the
// heat map as an HTML page or a PNG image.
//
// Usage:
//
//	go run ./cmd/render -out heatmap.html
//	go run ./cmd/render -in data/global-temperature.json -out heatmap.png -format png
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	pngadapter "github.com/couchcryptid/temperature-heatmap/internal/adapter/png"
	"github.com/couchcryptid/temperature-heatmap/internal/adapter/source"
	"github.com/couchcryptid/temperature-heatmap/internal/adapter/svg"
	"github.com/couchcryptid/temperature-heatmap/internal/config"
	"github.com/couchcryptid/temperature-heatmap/internal/domain"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	url := flag.String("url", config.DefaultDatasetURL, "dataset URL to fetch")
	in := flag.String("in", "", "read the dataset from this file instead of -url")
	out := flag.String("out", "", "output path (default stdout)")
	format := flag.String("format", "html", "output format: html or png")
	timeout := flag.Duration("timeout", 10*time.Second, "fetch timeout")
	flag.Parse()

	render, err := rendererFor(*format)
	if err != nil {
		flag.Usage()
		return err
	}

	ds, err := loadDataset(*in, *url, *timeout)
	if err != nil {
		return err
	}

	c, err := domain.BuildChart(ds)
	if err != nil {
		return fmt.Errorf("build chart: %w", err)
	}

	if *out == "" {
		return render(os.Stdout, c)
	}
	if err := writeFile(*out, c, render); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %d cells to %s\n", len(c.Cells), *out)
	return nil
}

// writeFile renders c into path. A failed render leaves no partial file.
func writeFile(path string, c *domain.Chart, render func(io.Writer, *domain.Chart) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f, c); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}

func rendererFor(format string) (func(io.Writer, *domain.Chart) error, error) {
	switch format {
	case "html":
		return svg.RenderPage, nil
	case "png":
		return pngadapter.Render, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want html or png)", format)
	}
}

func loadDataset(path, url string, timeout time.Duration) (domain.Dataset, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return domain.Dataset{}, &domain.FetchError{Op: "read", URL: path, Err: err}
		}
		ds, err := domain.ParseDataset(data)
		if err != nil {
			return domain.Dataset{}, &domain.FetchError{Op: "parse", URL: path, Err: err}
		}
		return ds, nil
	}

	logger := observability.NewLoggerTo(os.Stderr, &config.Config{LogLevel: "warn", LogFormat: "text"})
	client := source.NewClient(url, timeout, observability.NewMetrics(), logger)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return client.Fetch(ctx)
}
