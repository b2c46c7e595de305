package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearScale_Map(t *testing.T) {
	x := NewLinearScale(1753, 2015, 70, 1450)

	assert.Equal(t, 70.0, x.Map(1753))
	assert.Equal(t, 1450.0, x.Map(2015))
	assert.InDelta(t, 760.0, x.Map(1884), 1e-9)
}

func TestLinearScale_MapInverted(t *testing.T) {
	y := NewLinearScale(1, 12, 400, 50)

	assert.Equal(t, 400.0, y.Map(1))
	assert.Equal(t, 50.0, y.Map(12))
	assert.Greater(t, y.Map(1), y.Map(2), "month 1 must be lowest on screen")
}

func TestLinearScale_DegenerateDomain(t *testing.T) {
	s := NewLinearScale(2000, 2000, 70, 1450)
	assert.Equal(t, 70.0, s.Map(2000))
	assert.Equal(t, 70.0, s.Map(1999))
}

func TestLinearScale_Ticks(t *testing.T) {
	tests := []struct {
		name  string
		scale LinearScale
		want  []float64
	}{
		{
			name:  "years",
			scale: NewLinearScale(1753, 2015, 0, 1),
			want:  []float64{1760, 1780, 1800, 1820, 1840, 1860, 1880, 1900, 1920, 1940, 1960, 1980, 2000},
		},
		{
			name:  "months",
			scale: NewLinearScale(1, 12, 0, 1),
			want:  []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		},
		{
			name:  "reversed domain",
			scale: NewLinearScale(10, 0, 0, 1),
			want:  []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
		},
		{
			name:  "degenerate domain",
			scale: NewLinearScale(5, 5, 0, 1),
			want:  []float64{5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.scale.Ticks(10)); diff != "" {
				t.Errorf("Ticks mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLinearScale_FractionalTicks(t *testing.T) {
	ticks := NewLinearScale(0, 1, 0, 1).Ticks(10)
	require.Len(t, ticks, 11)
	assert.Equal(t, 0.0, ticks[0])
	assert.Equal(t, 0.3, ticks[3])
	assert.Equal(t, 1.0, ticks[10])
}
