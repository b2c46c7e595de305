package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRenderTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func freezeClock(t *testing.T) {
	t.Helper()
	SetClock(clockwork.NewFakeClockAt(testRenderTime))
	t.Cleanup(func() { SetClock(nil) })
}

// makeDataset builds a full grid of monthly records for [fromYear, toYear].
func makeDataset(fromYear, toYear int) Dataset {
	ds := Dataset{BaseTemperature: 8.66}
	for y := fromYear; y <= toYear; y++ {
		for m := 1; m <= 12; m++ {
			ds.Records = append(ds.Records, TemperatureRecord{
				Year:     y,
				Month:    m,
				Variance: float64((y-fromYear)%7) - float64(m)/4,
			})
		}
	}
	return ds
}

func TestBuildChart_SingleRecordRoundTrip(t *testing.T) {
	freezeClock(t)
	ds := Dataset{
		BaseTemperature: 8.0,
		Records:         []TemperatureRecord{{Year: 2000, Month: 1, Variance: 0.5}},
	}

	c, err := BuildChart(ds)
	require.NoError(t, err)
	require.Len(t, c.Cells, 1)

	cell := c.Cells[0]
	assert.Equal(t, "8.5", cell.DataTemp())
	assert.Equal(t, 0, cell.DataMonth())
	assert.Equal(t, 2000, cell.Year)
	assert.Equal(t, c.Scales.Color.Hex(8.5), cell.Fill)
	assert.Equal(t, c.Scales.X.Range[0], cell.X)
	assert.Equal(t, c.Scales.Y.Map(1), cell.Y)
	assert.Equal(t, 70.0, cell.X)
	assert.Equal(t, 400.0, cell.Y)
	assert.Equal(t, 1380.0, cell.Width)
	assert.InDelta(t, 400.0/12, cell.Height, 1e-9)
	assert.Equal(t, "Year:2000<br>Month:January<br>Temp:8.5", cell.Tooltip())

	assert.Len(t, c.Legend.Buckets, LegendBucketCount)
	assert.Equal(t, testRenderTime, c.RenderedAt)
}

func TestBuildChart_CellPerRecord(t *testing.T) {
	freezeClock(t)
	for _, years := range [][2]int{{1753, 1753}, {1900, 1909}, {1753, 2015}} {
		ds := makeDataset(years[0], years[1])
		c, err := BuildChart(ds)
		require.NoError(t, err)

		assert.Len(t, c.Cells, len(ds.Records))
		assert.Len(t, c.Legend.Buckets, LegendBucketCount)
		for i, rec := range ds.Records {
			cell := c.Cells[i]
			assert.Equal(t, rec.Year, cell.Year)
			assert.Equal(t, rec.Month-1, cell.DataMonth())
			assert.Equal(t, FormatTemperature(ds.BaseTemperature+rec.Variance), cell.DataTemp())
		}
	}
}

func TestBuildChart_BoundaryMapping(t *testing.T) {
	freezeClock(t)
	c, err := BuildChart(makeDataset(1753, 2015))
	require.NoError(t, err)

	l := c.Layout
	assert.Equal(t, l.Pad.Left, c.Scales.X.Map(1753))
	assert.Equal(t, l.Width-l.Pad.Right, c.Scales.X.Map(2015))
	assert.Equal(t, l.Height-l.Pad.Bottom-l.Pad.Top, c.Scales.Y.Map(1))
	assert.Equal(t, l.Pad.Top, c.Scales.Y.Map(12))

	assert.InDelta(t, 1380.0/263, c.Cells[0].Width, 1e-9)
	assert.InDelta(t, 400.0/12, c.Cells[0].Height, 1e-9)
}

func TestBuildChart_Axes(t *testing.T) {
	freezeClock(t)
	c, err := BuildChart(makeDataset(1753, 2015))
	require.NoError(t, err)

	assert.Equal(t, "x-axis", c.XAxis.ID)
	assert.Equal(t, OrientBottom, c.XAxis.Orient)
	assert.InDelta(t, 500-50-400.0/24, c.XAxis.TranslateY, 1e-9)
	require.NotEmpty(t, c.XAxis.Ticks)
	assert.Equal(t, "1760", c.XAxis.Ticks[0].Label)
	assert.Equal(t, "2000", c.XAxis.Ticks[len(c.XAxis.Ticks)-1].Label)

	assert.Equal(t, "y-axis", c.YAxis.ID)
	assert.Equal(t, OrientLeft, c.YAxis.Orient)
	assert.Equal(t, 70.0, c.YAxis.TranslateX)
	assert.InDelta(t, 400.0/24, c.YAxis.TranslateY, 1e-9)
	require.Len(t, c.YAxis.Ticks, 12)
	assert.Equal(t, "January", c.YAxis.Ticks[0].Label)
	assert.Equal(t, 400.0, c.YAxis.Ticks[0].Pos)
	assert.Equal(t, "December", c.YAxis.Ticks[11].Label)
}

func TestBuildChart_AxesSkipFractionalTicks(t *testing.T) {
	freezeClock(t)
	c, err := BuildChart(Dataset{
		BaseTemperature: 8.66,
		Records: []TemperatureRecord{
			{Year: 1900, Month: 1, Variance: -0.5},
			{Year: 1901, Month: 2, Variance: 0.5},
		},
	})
	require.NoError(t, err)

	var months []string
	for _, tk := range c.YAxis.Ticks {
		months = append(months, tk.Label)
	}
	assert.Equal(t, []string{"January", "February"}, months)

	var years []string
	for _, tk := range c.XAxis.Ticks {
		years = append(years, tk.Label)
	}
	assert.Equal(t, []string{"1900", "1901"}, years)
}

func TestBuildChart_Text(t *testing.T) {
	freezeClock(t)
	c, err := BuildChart(makeDataset(1900, 1901))
	require.NoError(t, err)

	assert.Equal(t, "Monthly Heat Map", c.Title)
	assert.Equal(t, "This chart represents earth surface temperature variation over time", c.Description)
}

func TestBuildChart_EmptyDataset(t *testing.T) {
	c, err := BuildChart(Dataset{BaseTemperature: 8.66})
	assert.ErrorIs(t, err, ErrEmptyDataset)
	assert.Nil(t, c)
}

func TestChart_Summary(t *testing.T) {
	freezeClock(t)
	ds := makeDataset(1900, 1902)
	c, err := BuildChart(ds)
	require.NoError(t, err)

	s := c.Summary("http://example.com/data.json")
	assert.Equal(t, "http://example.com/data.json", s.Source)
	assert.Equal(t, 8.66, s.BaseTemperature)
	assert.Equal(t, 36, s.RecordCount)
	assert.Equal(t, [2]int{1900, 1902}, s.YearRange)
	assert.Equal(t, [2]float64{c.Ranges.MinTemp, c.Ranges.MaxTemp}, s.TempRange)
	assert.Equal(t, testRenderTime, s.RenderedAt)
}

func TestSetClock(t *testing.T) {
	t.Run("set custom clock", func(t *testing.T) {
		SetClock(clockwork.NewFakeClockAt(testRenderTime))
		assert.Equal(t, testRenderTime, clock.Now())
		SetClock(nil)
	})

	t.Run("reset to real clock", func(t *testing.T) {
		SetClock(clockwork.NewFakeClockAt(testRenderTime))
		SetClock(nil)
		assert.True(t, time.Since(clock.Now()) < time.Second)
	})
}
