package repository

import "fmt"

const (
	MinLookbackYears     = 1.0
	MaxLookbackYears     = 10.0
	DefaultLookbackYears = 3.5
)

// ClampYears bounds the lookback window to the supported 1..10 year range.
// Zero or negative input falls back to the default.
func ClampYears(years float64) float64 {
	if years <= 0 {
		return DefaultLookbackYears
	}
	if years < MinLookbackYears {
		return MinLookbackYears
	}
	if years > MaxLookbackYears {
		return MaxLookbackYears
	}
	return years
}

// ChannelCacheKey builds the cache key for a channel result. The window and
// the SD multipliers are part of the identity of a computation.
func ChannelCacheKey(symbol string, years, sd1, sd2 float64) string {
	return fmt.Sprintf("channel:%s:%.2f:%.2f:%.2f", symbol, years, sd1, sd2)
}
