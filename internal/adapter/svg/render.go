// Package svg writes a chart as an HTML page holding the heat map SVG, the
// legend SVG, the tooltip element and the script that drives it.
package svg

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strconv"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// tickSize is the length of an axis tick line, as drawn by d3-axis.
const tickSize = 6

var pageTmpl = template.Must(loadTemplatesFromFS(templatesFS, "templates"))

var funcs = template.FuncMap{
	"num":  formatNumber,
	"axis": newAxisView,
}

// loadTemplatesFromFS parses the page templates found in dir.
func loadTemplatesFromFS(fsys fs.FS, dir string) (*template.Template, error) {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return nil, err
	}
	return template.New("page.html").Funcs(funcs).ParseFS(sub, "*.html")
}

type pageView struct {
	Chart *domain.Chart

	TitleX, TitleY             float64
	DescriptionX, DescriptionY float64
	LegendTitleX, LegendTitleY float64

	TooltipOpacity float64
	FadeMS         int64
}

func newPageView(c *domain.Chart) pageView {
	l := c.Layout
	return pageView{
		Chart:          c,
		TitleX:         l.Width/2 - 50,
		TitleY:         l.Pad.Top / 2,
		DescriptionX:   l.Width/2 - 150,
		DescriptionY:   l.Pad.Top - 10,
		LegendTitleX:   l.LegendWidth/2 - 30,
		LegendTitleY:   l.LegendPad.Top,
		TooltipOpacity: domain.TooltipOpacity,
		FadeMS:         domain.TooltipFade.Milliseconds(),
	}
}

// RenderPage writes the complete HTML document for c. Nothing is written to w
// when rendering fails.
func RenderPage(w io.Writer, c *domain.Chart) error {
	if c == nil {
		return errors.New("render page: nil chart")
	}
	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, "page.html", newPageView(c)); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

type axisView struct {
	ID        string
	Transform string
	Anchor    string
	Domain    string
	Left      bool
	Ticks     []tickView
}

type tickView struct {
	Transform string
	Label     string
}

func newAxisView(a domain.Axis) axisView {
	v := axisView{
		ID:        a.ID,
		Transform: translate(a.TranslateX, a.TranslateY),
		Ticks:     make([]tickView, len(a.Ticks)),
	}
	start, end := formatNumber(a.RangeStart), formatNumber(a.RangeEnd)
	if a.Orient == domain.OrientLeft {
		v.Left = true
		v.Anchor = "end"
		v.Domain = fmt.Sprintf("M-%d,%sH0V%sH-%d", tickSize, start, end, tickSize)
	} else {
		v.Anchor = "middle"
		v.Domain = fmt.Sprintf("M%s,%dV0H%sV%d", start, tickSize, end, tickSize)
	}
	for i, t := range a.Ticks {
		tr := translate(t.Pos, 0)
		if v.Left {
			tr = translate(0, t.Pos)
		}
		v.Ticks[i] = tickView{Transform: tr, Label: t.Label}
	}
	return v
}

func translate(x, y float64) string {
	return "translate(" + formatNumber(x) + "," + formatNumber(y) + ")"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
