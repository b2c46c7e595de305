package domain

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Interpolator maps t in [0, 1] to a color.
type Interpolator func(t float64) drawing.Color

// infernoStops samples the inferno color map at t = 0, 0.1, ..., 1.
var infernoStops = []drawing.Color{
	{R: 0x00, G: 0x00, B: 0x04, A: 0xff},
	{R: 0x16, G: 0x0b, B: 0x39, A: 0xff},
	{R: 0x42, G: 0x0a, B: 0x68, A: 0xff},
	{R: 0x6a, G: 0x17, B: 0x6e, A: 0xff},
	{R: 0x93, G: 0x26, B: 0x67, A: 0xff},
	{R: 0xbc, G: 0x37, B: 0x54, A: 0xff},
	{R: 0xdd, G: 0x51, B: 0x3a, A: 0xff},
	{R: 0xf3, G: 0x78, B: 0x19, A: 0xff},
	{R: 0xfc, G: 0xa5, B: 0x0a, A: 0xff},
	{R: 0xf6, G: 0xd7, B: 0x46, A: 0xff},
	{R: 0xfc, G: 0xff, B: 0xa4, A: 0xff},
}

// Inferno is a perceptually uniform dark-to-bright ramp. Values outside
// [0, 1] are clamped.
func Inferno(t float64) drawing.Color {
	return rampAt(infernoStops, t)
}

func rampAt(stops []drawing.Color, t float64) drawing.Color {
	if math.IsNaN(t) || t <= 0 {
		return stops[0]
	}
	if t >= 1 {
		return stops[len(stops)-1]
	}
	pos := t * float64(len(stops)-1)
	i := int(pos)
	frac := pos - float64(i)
	a, b := stops[i], stops[i+1]
	return drawing.Color{
		R: lerpByte(a.R, b.R, frac),
		G: lerpByte(a.G, b.G, frac),
		B: lerpByte(a.B, b.B, frac),
		A: 0xff,
	}
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a)*(1-t) + float64(b)*t))
}

// ColorScale is a sequential scale from a temperature domain onto an interpolator.
type ColorScale struct {
	Min, Max     float64
	Interpolator Interpolator
}

// NewColorScale creates a sequential color scale over [lo, hi] using the inferno ramp.
func NewColorScale(lo, hi float64) ColorScale {
	return ColorScale{Min: lo, Max: hi, Interpolator: Inferno}
}

// At returns the color for temperature v. A degenerate domain yields the
// middle of the ramp.
func (s ColorScale) At(v float64) drawing.Color {
	if s.Max == s.Min {
		return s.Interpolator(0.5)
	}
	return s.Interpolator((v - s.Min) / (s.Max - s.Min))
}

// Hex returns the color for v as a #rrggbb string.
func (s ColorScale) Hex(v float64) string {
	return HexColor(s.At(v))
}

// HexColor formats c as #rrggbb, dropping alpha.
func HexColor(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
