package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func TestInferno_Endpoints(t *testing.T) {
	assert.Equal(t, "#000004", HexColor(Inferno(0)))
	assert.Equal(t, "#fcffa4", HexColor(Inferno(1)))
	assert.Equal(t, "#bc3754", HexColor(Inferno(0.5)))
}

func TestInferno_Clamps(t *testing.T) {
	assert.Equal(t, Inferno(0), Inferno(-3))
	assert.Equal(t, Inferno(1), Inferno(7))
}

func TestInferno_IsOpaque(t *testing.T) {
	for _, v := range []float64{0, 0.13, 0.37, 0.61, 0.99} {
		assert.Equal(t, uint8(0xff), Inferno(v).A, "alpha at %v", v)
	}
}

func TestInferno_BrightensMonotonically(t *testing.T) {
	luma := func(c drawing.Color) float64 {
		return 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
	}
	prev := -1.0
	for i := 0; i <= 20; i++ {
		l := luma(Inferno(float64(i) / 20))
		assert.GreaterOrEqual(t, l, prev, "luma at step %d", i)
		prev = l
	}
}

func TestColorScale(t *testing.T) {
	s := NewColorScale(2, 12)

	assert.Equal(t, "#000004", s.Hex(2))
	assert.Equal(t, "#fcffa4", s.Hex(12))
	assert.Equal(t, "#bc3754", s.Hex(7))
}

func TestColorScale_DegenerateDomain(t *testing.T) {
	s := NewColorScale(8.5, 8.5)
	assert.Equal(t, Inferno(0.5), s.At(8.5))
}
