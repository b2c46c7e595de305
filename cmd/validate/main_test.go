package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/couchcryptid/temperature-heatmap/internal/adapter/svg"
	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

func testDataset() domain.Dataset {
	ds := domain.Dataset{BaseTemperature: 8.66}
	for y := 1753; y <= 1756; y++ {
		for m := 1; m <= 12; m++ {
			ds.Records = append(ds.Records, domain.TemperatureRecord{Year: y, Month: m, Variance: float64(m%5) - 2})
		}
	}
	return ds
}

func renderPage(t *testing.T, ds domain.Dataset) string {
	t.Helper()
	c, err := domain.BuildChart(ds)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, svg.RenderPage(&buf, c))
	return buf.String()
}

func parse(t *testing.T, page string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func failures(phases []*phase) []string {
	var out []string
	for _, p := range phases {
		out = append(out, p.errors...)
	}
	return out
}

func TestValidate_RenderedPagePasses(t *testing.T) {
	ds := testDataset()
	phases, cells := validate(parse(t, renderPage(t, ds)), &ds)

	assert.Len(t, phases, 4)
	assert.Equal(t, 48, cells)
	assert.Empty(t, failures(phases))
}

func TestValidate_MissingLegend(t *testing.T) {
	page := strings.Replace(renderPage(t, testDataset()), `id="legend"`, `id="key"`, 1)
	phases, _ := validate(parse(t, page), nil)

	assert.Contains(t, failures(phases), "missing #legend")
}

func TestValidate_DatasetMismatch(t *testing.T) {
	ds := testDataset()
	page := renderPage(t, ds)
	ds.Records[0].Variance += 1

	phases, _ := validate(parse(t, page), &ds)
	require.Len(t, phases, 4)
	assert.True(t, phases[0].passed())
	assert.False(t, phases[3].passed())
}

func TestValidate_NoCells(t *testing.T) {
	page := strings.ReplaceAll(renderPage(t, testDataset()), `class="cell"`, `class="box"`)
	phases, cells := validate(parse(t, page), nil)

	assert.Zero(t, cells)
	assert.Contains(t, failures(phases), "no rect.cell elements")
}

func TestRun_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	ds := testDataset()
	pagePath := filepath.Join(dir, "heatmap.html")
	require.NoError(t, os.WriteFile(pagePath, []byte(renderPage(t, ds)), 0o644))

	var out bytes.Buffer
	assert.Equal(t, 0, run(&out, pagePath, ""))
	assert.Contains(t, out.String(), "All validations passed.")

	assert.Equal(t, 1, run(&out, filepath.Join(dir, "missing.html"), ""))
}
