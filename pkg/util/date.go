package util

import "time"

// LookbackStart returns the start of a trading lookback window ending at ref.
// Fractional years are allowed, e.g. 3.5 years.
func LookbackStart(ref time.Time, years float64) time.Time {
	return ref.Add(-time.Duration(years * 365 * 24 * float64(time.Hour)))
}
