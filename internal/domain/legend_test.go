package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegendThresholds(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
	}{
		{"unit steps", 0, 6},
		{"dataset range", 1.684, 13.888},
		{"negative range", -3.2, 4.7},
		{"awkward float range", 0.1, 0.7},
		{"degenerate range", 8.5, 8.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bounds := LegendThresholds(tt.lo, tt.hi)
			require.Len(t, bounds, LegendBucketCount+1)
			assert.Equal(t, tt.lo, bounds[0])
			assert.Equal(t, tt.hi, bounds[LegendBucketCount])
			for i := 1; i < len(bounds); i++ {
				assert.GreaterOrEqual(t, bounds[i], bounds[i-1])
				assert.LessOrEqual(t, bounds[i], tt.hi)
			}
		})
	}
}

func TestLegendThresholds_NearEqualWidth(t *testing.T) {
	bounds := LegendThresholds(1.684, 13.888)
	want := (13.888 - 1.684) / 6
	for i := 1; i < len(bounds); i++ {
		assert.InDelta(t, want, bounds[i]-bounds[i-1], 1e-9)
	}
}

func TestBuildLegend(t *testing.T) {
	l := DefaultLayout()
	r := Ranges{MinYear: 1753, MaxYear: 2015, MinMonth: 1, MaxMonth: 12, MinTemp: 2, MaxTemp: 14}
	legend := buildLegend(l, r, NewColorScale(r.MinTemp, r.MaxTemp))

	assert.Equal(t, "Legend", legend.Title)
	require.Len(t, legend.Buckets, LegendBucketCount)

	wantWidth := (400.0 - 15 - 15) / 6
	for i, b := range legend.Buckets {
		assert.InDelta(t, wantWidth, b.Width, 1e-9)
		assert.InDelta(t, 15+float64(i)*wantWidth, b.X, 1e-9)
		assert.Equal(t, 70.0, b.Y)
		assert.Equal(t, NewColorScale(2, 14).Hex(b.Lower), b.Fill)
	}
	assert.Equal(t, "#000004", legend.Buckets[0].Fill)

	require.Len(t, legend.Axis.Ticks, LegendBucketCount+1)
	assert.Equal(t, 120.0, legend.Axis.TranslateY)
	assert.Equal(t, 15.0, legend.Axis.Ticks[0].Pos)
	assert.Equal(t, 385.0, legend.Axis.Ticks[LegendBucketCount].Pos)
	assert.Equal(t, "2.0", legend.Axis.Ticks[0].Label)
	assert.Equal(t, "14.0", legend.Axis.Ticks[LegendBucketCount].Label)
}

func TestBuildLegend_TickLabelsUseOneDecimal(t *testing.T) {
	legend := buildLegend(DefaultLayout(), Ranges{MinTemp: 1.684, MaxTemp: 13.888}, NewColorScale(1.684, 13.888))

	require.Len(t, legend.Axis.Ticks, LegendBucketCount+1)
	assert.Equal(t, "1.7", legend.Axis.Ticks[0].Label)
	assert.Equal(t, "13.9", legend.Axis.Ticks[LegendBucketCount].Label)
}
