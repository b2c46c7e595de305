package domain

import (
	"fmt"
	"time"
)

const (
	// TooltipOpacity is the opacity of a visible tooltip.
	TooltipOpacity = 0.9
	// TooltipFade is the duration of the fade-in and fade-out transitions.
	TooltipFade = 200 * time.Millisecond
)

// TooltipContent is the HTML shown when hovering a cell.
func TooltipContent(c Cell) string {
	return fmt.Sprintf("Year:%d<br>Month:%s<br>Temp:%s", c.Year, MonthName(c.Month), FormatTemperature(c.Temperature))
}

// Tooltip models the hover popup. Its state is rebuilt on every Show; nothing
// carries over between hover events apart from the last values written.
type Tooltip struct {
	Opacity float64
	Content string
	Year    int // mirrored into the tooltip's data-year attribute
	Left    float64
	Top     float64
}

// Show reveals the tooltip for c at the given page coordinates.
func (t *Tooltip) Show(c Cell, pageX, pageY float64) {
	t.Opacity = TooltipOpacity
	t.Year = c.Year
	t.Left = pageX
	t.Top = pageY
	t.Content = TooltipContent(c)
}

// Hide fades the tooltip out.
func (t *Tooltip) Hide() {
	t.Opacity = 0
}

// Visible reports whether the tooltip is currently shown.
func (t *Tooltip) Visible() bool {
	return t.Opacity > 0
}
