// Package png rasterizes a chart with the go-chart drawing backend.
package png

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

const (
	titleFontSize = 16
	labelFontSize = 9
)

// Render draws the heat map cells, axis labels and titles of c as a PNG, with
// the legend in a band below the chart canvas. Nothing is written to w when
// rendering fails.
func Render(w io.Writer, c *domain.Chart) error {
	if c == nil {
		return errors.New("render png: nil chart")
	}
	width, height := CanvasSize(c.Layout)
	r, err := chart.PNG(width, height)
	if err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("render png: load font: %w", err)
	}
	r.SetDPI(chart.DefaultDPI)
	r.SetFont(font)

	fillRect(r, 0, 0, float64(width), float64(height), chart.ColorWhite)
	for _, cell := range c.Cells {
		fillRect(r, cell.X, cell.Y, cell.Width, cell.Height, drawing.ColorFromHex(cell.Fill))
	}
	drawAxes(r, c)
	drawTitles(r, c)
	drawLegend(r, c)

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return fmt.Errorf("render png: encode: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// CanvasSize is the image size for a layout: the chart canvas plus the legend
// band underneath it.
func CanvasSize(l domain.Layout) (width, height int) {
	return int(l.Width), int(l.Height + l.LegendHeight)
}

// legendOrigin is where the legend canvas sits in the image.
func legendOrigin(l domain.Layout) (x, y float64) {
	return l.Pad.Left, l.Height
}

func fillRect(r chart.Renderer, x, y, w, h float64, color drawing.Color) {
	left, top := int(math.Floor(x)), int(math.Floor(y))
	right, bottom := int(math.Ceil(x+w)), int(math.Ceil(y+h))
	r.SetFillColor(color)
	r.MoveTo(left, top)
	r.LineTo(right, top)
	r.LineTo(right, bottom)
	r.LineTo(left, bottom)
	r.Close()
	r.Fill()
}

func drawAxes(r chart.Renderer, c *domain.Chart) {
	r.SetFontColor(chart.DefaultTextColor)
	r.SetFontSize(labelFontSize)

	x := c.XAxis
	for _, t := range x.Ticks {
		box := r.MeasureText(t.Label)
		r.Text(t.Label, int(t.Pos)-box.Width()/2, int(x.TranslateY)+box.Height()+6)
	}

	y := c.YAxis
	for _, t := range y.Ticks {
		box := r.MeasureText(t.Label)
		r.Text(t.Label, int(y.TranslateX)-box.Width()-9, int(y.TranslateY+t.Pos)+box.Height()/2)
	}
}

func drawTitles(r chart.Renderer, c *domain.Chart) {
	r.SetFontColor(chart.DefaultTextColor)

	r.SetFontSize(titleFontSize)
	box := r.MeasureText(c.Title)
	r.Text(c.Title, int(c.Layout.Width/2)-box.Width()/2, int(c.Layout.Pad.Top/2))

	r.SetFontSize(labelFontSize)
	box = r.MeasureText(c.Description)
	r.Text(c.Description, int(c.Layout.Width/2)-box.Width()/2, int(c.Layout.Pad.Top-10))
}

func drawLegend(r chart.Renderer, c *domain.Chart) {
	ox, oy := legendOrigin(c.Layout)
	for _, b := range c.Legend.Buckets {
		fillRect(r, ox+b.X, oy+b.Y, b.Width, c.Layout.LegendSwatchHeight, drawing.ColorFromHex(b.Fill))
	}

	r.SetFontColor(chart.DefaultTextColor)
	r.SetFontSize(labelFontSize)
	a := c.Legend.Axis
	for _, t := range a.Ticks {
		box := r.MeasureText(t.Label)
		r.Text(t.Label, int(ox+t.Pos)-box.Width()/2, int(oy+a.TranslateY)+box.Height()+6)
	}

	box := r.MeasureText(c.Legend.Title)
	r.Text(c.Legend.Title, int(ox+c.Layout.LegendWidth/2)-box.Width()/2, int(oy+c.Layout.LegendPad.Top/2))
}
