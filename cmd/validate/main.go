// Command validate checks a rendered heat map page against the DOM contract
// consumed by automated chart checks: element ids, cell data attributes, the
// six-swatch legend and the hidden tooltip. With -dataset it also verifies
// that every cell matches the corresponding record.
//
// Usage:
//
//	go run ./cmd/render -in data/global-temperature.json -out heatmap.html
//	go run ./cmd/validate -page heatmap.html -dataset data/global-temperature.json
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	pagePath := flag.String("page", "", "path to a rendered heat map HTML page")
	datasetPath := flag.String("dataset", "", "optional dataset JSON the page was rendered from")
	flag.Parse()

	if *pagePath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(os.Stdout, *pagePath, *datasetPath); code != 0 {
		os.Exit(code)
	}
}

func run(out io.Writer, pagePath, datasetPath string) int {
	fmt.Fprintln(out, "=== Heat Map DOM Validation ===")
	fmt.Fprintln(out)

	doc, err := loadPage(pagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load page: %v\n", err)
		return 1
	}

	var ds *domain.Dataset
	if datasetPath != "" {
		data, err := os.ReadFile(datasetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load dataset: %v\n", err)
			return 1
		}
		parsed, err := domain.ParseDataset(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
			return 1
		}
		ds = &parsed
	}

	phases, cells := validate(doc, ds)

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Cells: %d\n", cells)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

func loadPage(path string) (*html.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return html.Parse(f)
}

// validate runs every phase against doc and returns them with the cell count.
func validate(doc *html.Node, ds *domain.Dataset) ([]*phase, int) {
	cells := findAll(doc, func(n *html.Node) bool { return n.Data == "rect" && hasClass(n, "cell") })
	phases := []*phase{
		validateStructure(doc),
		validateCells(cells),
		validateLegend(doc),
	}
	if ds != nil {
		phases = append(phases, validateDatasetParity(cells, *ds))
	}
	return phases, len(cells)
}

// ── Phase 1: structure ──

func validateStructure(doc *html.Node) *phase {
	p := &phase{name: "Phase 1: Page structure"}

	container := single(p, doc, "container")
	if container == nil {
		return p
	}

	for _, id := range []string{"title", "description", "x-axis", "y-axis", "legend"} {
		n := single(p, doc, id)
		if n != nil && !within(container, n) {
			p.errorf("#%s is outside #container", id)
		}
	}

	if x := byID(doc, "x-axis"); len(x) == 1 && x[0].Data != "g" {
		p.errorf("#x-axis is <%s>, want <g>", x[0].Data)
	}
	if y := byID(doc, "y-axis"); len(y) == 1 && y[0].Data != "g" {
		p.errorf("#y-axis is <%s>, want <g>", y[0].Data)
	}
	if l := byID(doc, "legend"); len(l) == 1 && l[0].Data != "svg" {
		p.errorf("#legend is <%s>, want <svg>", l[0].Data)
	}
	if t := byID(doc, "title"); len(t) == 1 && strings.TrimSpace(textOf(t[0])) == "" {
		p.errorf("#title is empty")
	}

	if tooltip := single(p, doc, "tooltip"); tooltip != nil {
		if within(container, tooltip) {
			p.errorf("#tooltip should be outside #container")
		}
		if !strings.Contains(strings.ReplaceAll(attr(tooltip, "style"), " ", ""), "opacity:0") {
			p.errorf("#tooltip should start hidden, style=%q", attr(tooltip, "style"))
		}
	}
	return p
}

func single(p *phase, doc *html.Node, id string) *html.Node {
	nodes := byID(doc, id)
	switch len(nodes) {
	case 0:
		p.errorf("missing #%s", id)
		return nil
	case 1:
		return nodes[0]
	default:
		p.errorf("#%s appears %d times", id, len(nodes))
		return nil
	}
}

// ── Phase 2: cells ──

func validateCells(cells []*html.Node) *phase {
	p := &phase{name: "Phase 2: Cell attributes"}
	if len(cells) == 0 {
		p.errorf("no rect.cell elements")
		return p
	}

	for i, c := range cells {
		if m, err := strconv.Atoi(attr(c, "data-month")); err != nil || m < 0 || m > 11 {
			p.errorf("cell %d: data-month=%q, want 0-11", i, attr(c, "data-month"))
		}
		if _, err := strconv.Atoi(attr(c, "data-year")); err != nil {
			p.errorf("cell %d: data-year=%q is not an integer", i, attr(c, "data-year"))
		}
		if _, err := strconv.ParseFloat(attr(c, "data-temp"), 64); err != nil {
			p.errorf("cell %d: data-temp=%q is not a number", i, attr(c, "data-temp"))
		}
		if fill := attr(c, "fill"); !strings.HasPrefix(fill, "#") {
			p.errorf("cell %d: fill=%q, want a hex color", i, fill)
		}
		for _, k := range []string{"x", "y", "width", "height"} {
			if _, err := strconv.ParseFloat(attr(c, k), 64); err != nil {
				p.errorf("cell %d: %s=%q is not a number", i, k, attr(c, k))
			}
		}
	}
	return p
}

// ── Phase 3: legend ──

func validateLegend(doc *html.Node) *phase {
	p := &phase{name: "Phase 3: Legend"}
	legends := byID(doc, "legend")
	if len(legends) != 1 {
		p.errorf("want exactly one #legend, found %d", len(legends))
		return p
	}
	legend := legends[0]

	swatches := findAll(legend, func(n *html.Node) bool { return n.Data == "rect" })
	if len(swatches) != domain.LegendBucketCount {
		p.errorf("legend has %d swatches, want %d", len(swatches), domain.LegendBucketCount)
	}
	fills := make(map[string]bool)
	for _, s := range swatches {
		fills[attr(s, "fill")] = true
	}
	if len(swatches) > 1 && len(fills) < 2 {
		p.errorf("legend swatches all share one fill")
	}

	titled := false
	for _, t := range findAll(legend, func(n *html.Node) bool { return n.Data == "text" }) {
		if strings.TrimSpace(textOf(t)) == "Legend" {
			titled = true
		}
	}
	if !titled {
		p.errorf("legend has no \"Legend\" title")
	}
	return p
}

// ── Phase 4: dataset parity ──

func validateDatasetParity(cells []*html.Node, ds domain.Dataset) *phase {
	p := &phase{name: "Phase 4: Dataset parity"}
	if len(cells) != len(ds.Records) {
		p.errorf("page has %d cells, dataset has %d records", len(cells), len(ds.Records))
		return p
	}

	c, err := domain.BuildChart(ds)
	if err != nil {
		p.errorf("build chart: %v", err)
		return p
	}

	for i, rec := range ds.Records {
		n := cells[i]
		want := c.Cells[i]
		if got := attr(n, "data-year"); got != strconv.Itoa(rec.Year) {
			p.errorf("cell %d: data-year=%s, want %d", i, got, rec.Year)
		}
		if got := attr(n, "data-month"); got != strconv.Itoa(rec.Month-1) {
			p.errorf("cell %d: data-month=%s, want %d", i, got, rec.Month-1)
		}
		if got := attr(n, "data-temp"); got != want.DataTemp() {
			p.errorf("cell %d: data-temp=%s, want %s", i, got, want.DataTemp())
		}
		if got := attr(n, "fill"); got != want.Fill {
			p.errorf("cell %d: fill=%s, want %s", i, got, want.Fill)
		}
	}
	return p
}

// ── DOM helpers ──

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func byID(doc *html.Node, id string) []*html.Node {
	return findAll(doc, func(n *html.Node) bool { return attr(n, "id") == id })
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func within(ancestor, n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
