package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrEmptyDataset is returned when a chart is requested for a dataset
// without records. Scale domains are undefined in that case.
var ErrEmptyDataset = errors.New("dataset has no records")

// TemperatureRecord is one monthly observation.
type TemperatureRecord struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"` // 1-12
	Variance float64 `json:"variance"`
}

// Temperature returns the absolute temperature of the record.
func (r TemperatureRecord) Temperature(base float64) float64 {
	return base + r.Variance
}

// Dataset is the upstream document: a base temperature and its monthly variances.
type Dataset struct {
	BaseTemperature float64             `json:"baseTemperature"`
	Records         []TemperatureRecord `json:"monthlyVariance"`
}

// ParseDataset decodes the upstream JSON document. It performs no validation
// beyond well-formedness.
func ParseDataset(data []byte) (Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("parse dataset: %w", err)
	}
	return ds, nil
}

// FetchError reports a failure to fetch or parse the upstream dataset.
type FetchError struct {
	Op         string // "fetch", "read", or "parse"
	URL        string
	StatusCode int // non-zero when the upstream answered with an error status
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: %d %s", e.Op, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap allows errors.Is / errors.As to reach the underlying cause.
func (e *FetchError) Unwrap() error { return e.Err }

// ChartSummary is a compact description of a rendered chart.
type ChartSummary struct {
	Source          string     `json:"source"`
	BaseTemperature float64    `json:"base_temperature"`
	RecordCount     int        `json:"record_count"`
	YearRange       [2]int     `json:"year_range"`
	TempRange       [2]float64 `json:"temp_range"`
	RenderedAt      time.Time  `json:"rendered_at"`
}

// FormatTemperature renders a temperature the way it appears in data-temp
// attributes and tooltips: the shortest decimal that round-trips.
func FormatTemperature(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}
