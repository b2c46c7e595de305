package domain

import "strconv"

// LegendBucketCount is the number of discrete swatches in the legend.
const LegendBucketCount = 6

// legendEpsilon keeps the accumulated step from overshooting the maximum.
const legendEpsilon = 0x1p-52

// LegendBucket is one swatch of the legend.
type LegendBucket struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
	Fill  string  `json:"fill"` // color at Lower
}

// Legend is the discretized color key rendered beside the chart.
type Legend struct {
	Title   string         `json:"title"`
	Buckets []LegendBucket `json:"buckets"`
	Axis    Axis           `json:"axis"`
}

// LegendThresholds splits [lo, hi] into LegendBucketCount near-equal
// intervals and returns the LegendBucketCount+1 boundaries.
func LegendThresholds(lo, hi float64) []float64 {
	step := (hi-lo)/LegendBucketCount - legendEpsilon
	if step < 0 {
		step = 0
	}
	bounds := make([]float64, LegendBucketCount+1)
	for i := range LegendBucketCount {
		bounds[i] = lo + float64(i)*step
	}
	bounds[LegendBucketCount] = hi
	return bounds
}

func buildLegend(l Layout, r Ranges, color ColorScale) Legend {
	bounds := LegendThresholds(r.MinTemp, r.MaxTemp)
	width := (l.LegendWidth - l.LegendPad.Left - l.LegendPad.Right) / LegendBucketCount
	y := l.LegendHeight - l.LegendPad.Bottom - l.LegendSwatchHeight

	buckets := make([]LegendBucket, LegendBucketCount)
	for i := range buckets {
		buckets[i] = LegendBucket{
			Lower: bounds[i],
			Upper: bounds[i+1],
			X:     float64(i)*width + l.LegendPad.Left,
			Y:     y,
			Width: width,
			Fill:  color.Hex(bounds[i]),
		}
	}

	scale := NewLinearScale(r.MinTemp, r.MaxTemp, l.LegendPad.Left, l.LegendWidth-l.LegendPad.Right)
	ticks := make([]Tick, len(bounds))
	for i, b := range bounds {
		ticks[i] = Tick{Value: b, Pos: scale.Map(b), Label: strconv.FormatFloat(b, 'f', 1, 64)}
	}

	return Legend{
		Title:   "Legend",
		Buckets: buckets,
		Axis: Axis{
			ID:         "legend-axis",
			Orient:     OrientBottom,
			TranslateY: l.LegendHeight - l.LegendPad.Bottom,
			RangeStart: scale.Range[0],
			RangeEnd:   scale.Range[1],
			Ticks:      ticks,
		},
	}
}
