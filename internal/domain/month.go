package domain

import "time"

// MonthName returns the English name of a 1-based month number.
func MonthName(month int) string {
	return time.Month(month).String()
}
