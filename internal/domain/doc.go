// Package domain models the global land-surface temperature dataset and the
// heat-map chart derived from it.
//
// # Data Source
//
// The dataset is a single JSON document published by the freeCodeCamp project
// reference data repository:
//
//	{
//	  "baseTemperature": 8.66,
//	  "monthlyVariance": [{"year": 1753, "month": 1, "variance": -1.366}, ...]
//	}
//
// Each record holds the deviation in °C from the base temperature for one
// (year, month) pair. The absolute temperature of a record is
// baseTemperature + variance.
//
// # Chart Geometry
//
// The chart is laid out on a fixed 1500×500 canvas with a 400×150 legend.
// Positions come from linear scales:
//
//	x:      year   → [pad.Left, width-pad.Right]
//	y:      month  → [height-pad.Bottom-pad.Top, pad.Top]   (month 1 at the bottom)
//	legend: temp   → [legendPad.Left, legendWidth-legendPad.Right]
//
// A degenerate domain (min == max, e.g. a single record) maps every value to
// the start of the range.
//
// Cell size is derived from the plot area, not from the scales:
//
//	cellWidth  = (width - pad.Left - pad.Right) / yearCount
//	cellHeight = (height - pad.Top - pad.Bottom) / 12
//
// # Colors
//
// Temperatures map linearly onto an inferno-like ramp, sampled at eleven
// control points and interpolated in RGB. The same scale fills cells and
// legend swatches.
//
// # Legend Buckets
//
// The temperature range is split into exactly [LegendBucketCount] intervals.
// The step is (max-min)/6 minus machine epsilon so that accumulated
// boundaries never overshoot max; the final boundary is pinned to max. Exact
// boundary values at floating-point edges are not part of the contract.
//
// # DOM Contract
//
// Rendered pages keep the element identifiers that automated checks rely on:
// #title, #description, #x-axis, #y-axis, #legend, #tooltip and rect.cell
// carrying data-year, data-month (zero-based) and data-temp.
package domain
