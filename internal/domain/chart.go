package domain

import (
	"math"
	"strconv"
	"time"
)

const (
	chartTitle       = "Monthly Heat Map"
	chartDescription = "This chart represents earth surface temperature variation over time"

	// defaultTickCount is the approximate number of ticks per positional axis.
	defaultTickCount = 10
)

// Padding is the space reserved around a canvas' plot area.
type Padding struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Layout fixes canvas sizes and paddings for the chart and its legend.
type Layout struct {
	Width              float64 `json:"width"`
	Height             float64 `json:"height"`
	Pad                Padding `json:"pad"`
	LegendWidth        float64 `json:"legend_width"`
	LegendHeight       float64 `json:"legend_height"`
	LegendPad          Padding `json:"legend_pad"`
	LegendSwatchHeight float64 `json:"legend_swatch_height"`
}

// DefaultLayout is the 1500×500 chart with a 400×150 legend.
func DefaultLayout() Layout {
	return Layout{
		Width:              1500,
		Height:             500,
		Pad:                Padding{Top: 50, Right: 50, Bottom: 50, Left: 70},
		LegendWidth:        400,
		LegendHeight:       150,
		LegendPad:          Padding{Top: 30, Right: 15, Bottom: 30, Left: 15},
		LegendSwatchHeight: 50,
	}
}

// PlotWidth is the horizontal space available to cells.
func (l Layout) PlotWidth() float64 { return l.Width - l.Pad.Left - l.Pad.Right }

// PlotHeight is the vertical space available to cells.
func (l Layout) PlotHeight() float64 { return l.Height - l.Pad.Top - l.Pad.Bottom }

// Orient names the side of the plot an axis is drawn on.
type Orient string

const (
	OrientBottom Orient = "bottom"
	OrientLeft   Orient = "left"
)

// Tick is one labeled mark on an axis.
type Tick struct {
	Value float64 `json:"value"`
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

// Axis is a resolved axis: where it is drawn and which ticks it carries.
type Axis struct {
	ID         string  `json:"id"`
	Orient     Orient  `json:"orient"`
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
	RangeStart float64 `json:"range_start"`
	RangeEnd   float64 `json:"range_end"`
	Ticks      []Tick  `json:"ticks"`
}

// Cell is one rectangle of the heat map.
type Cell struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Temperature float64 `json:"temp"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Fill        string  `json:"fill"`
}

// DataMonth is the zero-based month written to the data-month attribute.
func (c Cell) DataMonth() int { return c.Month - 1 }

// DataTemp is the value written to the data-temp attribute.
func (c Cell) DataTemp() string { return FormatTemperature(c.Temperature) }

// Tooltip is the hover content for this cell.
func (c Cell) Tooltip() string { return TooltipContent(c) }

// Scales bundles the scales a chart was built with.
type Scales struct {
	X      LinearScale
	Y      LinearScale
	Legend LinearScale
	Color  ColorScale
}

// Chart is the fully resolved heat map, ready to be written as SVG or raster.
type Chart struct {
	Layout          Layout    `json:"layout"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	BaseTemperature float64   `json:"base_temperature"`
	Ranges          Ranges    `json:"ranges"`
	Cells           []Cell    `json:"cells"`
	Legend          Legend    `json:"legend"`
	XAxis           Axis      `json:"x_axis"`
	YAxis           Axis      `json:"y_axis"`
	RenderedAt      time.Time `json:"rendered_at"`
	Scales          Scales    `json:"-"`
}

// BuildChart computes the heat map for ds using DefaultLayout.
func BuildChart(ds Dataset) (*Chart, error) {
	return BuildChartWithLayout(ds, DefaultLayout())
}

// BuildChartWithLayout computes ranges, scales, legend, axes and one cell per
// record. It fails with ErrEmptyDataset when ds has no records.
func BuildChartWithLayout(ds Dataset, l Layout) (*Chart, error) {
	r, err := ComputeRanges(ds)
	if err != nil {
		return nil, err
	}

	scales := Scales{
		X:      NewLinearScale(float64(r.MinYear), float64(r.MaxYear), l.Pad.Left, l.Width-l.Pad.Right),
		Y:      NewLinearScale(float64(r.MinMonth), float64(r.MaxMonth), l.Height-l.Pad.Bottom-l.Pad.Top, l.Pad.Top),
		Legend: NewLinearScale(r.MinTemp, r.MaxTemp, l.LegendPad.Left, l.LegendWidth-l.LegendPad.Right),
		Color:  NewColorScale(r.MinTemp, r.MaxTemp),
	}

	cellWidth := l.PlotWidth() / float64(r.YearCount())
	cellHeight := l.PlotHeight() / 12

	cells := make([]Cell, len(ds.Records))
	for i, rec := range ds.Records {
		temp := rec.Temperature(ds.BaseTemperature)
		cells[i] = Cell{
			Year:        rec.Year,
			Month:       rec.Month,
			Temperature: temp,
			X:           scales.X.Map(float64(rec.Year)),
			Y:           scales.Y.Map(float64(rec.Month)),
			Width:       cellWidth,
			Height:      cellHeight,
			Fill:        scales.Color.Hex(temp),
		}
	}

	return &Chart{
		Layout:          l,
		Title:           chartTitle,
		Description:     chartDescription,
		BaseTemperature: ds.BaseTemperature,
		Ranges:          r,
		Cells:           cells,
		Legend:          buildLegend(l, r, scales.Color),
		XAxis:           buildXAxis(l, scales.X),
		YAxis:           buildYAxis(l, scales.Y),
		RenderedAt:      clock.Now().UTC(),
		Scales:          scales,
	}, nil
}

// integerTicks keeps whole-number ticks only; years and months have no
// fractional labels.
func integerTicks(s LinearScale, label func(int) string) []Tick {
	var ticks []Tick
	for _, v := range s.Ticks(defaultTickCount) {
		if v != math.Trunc(v) {
			continue
		}
		ticks = append(ticks, Tick{Value: v, Pos: s.Map(v), Label: label(int(v))})
	}
	return ticks
}

func buildXAxis(l Layout, x LinearScale) Axis {
	ticks := integerTicks(x, strconv.Itoa)
	return Axis{
		ID:         "x-axis",
		Orient:     OrientBottom,
		TranslateY: l.Height - l.Pad.Bottom - l.PlotHeight()/24,
		RangeStart: x.Range[0],
		RangeEnd:   x.Range[1],
		Ticks:      ticks,
	}
}

func buildYAxis(l Layout, y LinearScale) Axis {
	ticks := integerTicks(y, MonthName)
	return Axis{
		ID:         "y-axis",
		Orient:     OrientLeft,
		TranslateX: l.Pad.Left,
		TranslateY: l.PlotHeight() / 24,
		RangeStart: y.Range[0],
		RangeEnd:   y.Range[1],
		Ticks:      ticks,
	}
}

// Summary describes the chart for publishing and the summary endpoint.
func (c *Chart) Summary(source string) ChartSummary {
	return ChartSummary{
		Source:          source,
		BaseTemperature: c.BaseTemperature,
		RecordCount:     len(c.Cells),
		YearRange:       [2]int{c.Ranges.MinYear, c.Ranges.MaxYear},
		TempRange:       [2]float64{c.Ranges.MinTemp, c.Ranges.MaxTemp},
		RenderedAt:      c.RenderedAt,
	}
}
