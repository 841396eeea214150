package channel

import "Lohas/internal/domain/models"

// Classify buckets the latest price into one of the five valuation bands
// using the latest-date band values. Strict ">" comparisons throughout, so a
// price exactly on a threshold belongs to the cheaper band. The five bands
// partition the real line.
func Classify(price float64, th models.Thresholds, trendLast float64) models.Valuation {
	var band models.Band
	switch {
	// Zero-sigma series collapse all bands onto the trend line. A price
	// sitting exactly on it is fair, not bargain.
	case th.P2SD == th.M2SD && price == th.P2SD:
		band = models.BandFair
	case price > th.P2SD:
		band = models.BandPeak
	case price > th.P1SD:
		band = models.BandElevated
	case price > th.M1SD:
		band = models.BandFair
	case price > th.M2SD:
		band = models.BandLow
	default:
		band = models.BandBargain
	}

	var distPct float64
	if trendLast != 0 {
		distPct = (price - trendLast) / trendLast * 100
	}

	return models.Valuation{
		Band:        band,
		Price:       price,
		TrendLast:   trendLast,
		DistancePct: distPct,
	}
}

// VIXLabel maps a VIX reading to the dashboard's sentiment tag. The 14.5-15.5
// window counts as stable to dodge float comparison on the exact midpoint.
func VIXLabel(vix float64) string {
	switch {
	case vix >= 30:
		return "panic"
	case vix > 15.5:
		return "alert"
	case vix >= 14.5:
		return "stable"
	case vix > 0:
		return "optimistic"
	default:
		return "euphoric"
	}
}
