package channel

import (
	"math"

	"Lohas/internal/domain/models"
)

// Indicators computes the latest values of the secondary indicators layered
// onto the dashboard chart: RSI(14), MACD(12,26,9), stochastic %K/%D,
// Bollinger(20,2), SMA20/SMA60 and BIAS20, plus the signal summary shown in
// the analysis panel. Indicators whose window exceeds the series length stay
// at their zero value and produce no signal.
func Indicators(bars []models.Bar) models.IndicatorSet {
	set := models.IndicatorSet{Signals: []string{}}
	closes := models.Closes(bars)
	if len(closes) < 2 {
		return set
	}
	last := len(closes) - 1

	if rsi, ok := rollingRSI(closes, 14); ok {
		set.RSI = rsi
		if rsi < 30 {
			set.Signals = append(set.Signals, "rsi_oversold")
		} else if rsi > 70 {
			set.Signals = append(set.Signals, "rsi_overbought")
		}
	}

	macd, signal := macdSeries(closes, 12, 26, 9)
	set.MACD = macd[last]
	set.MACDSignal = signal[last]
	set.MACDHist = macd[last] - signal[last]
	if last >= 1 {
		switch {
		case macd[last-1] < signal[last-1] && macd[last] > signal[last]:
			set.Signals = append(set.Signals, "macd_golden_cross")
		case macd[last-1] > signal[last-1] && macd[last] < signal[last]:
			set.Signals = append(set.Signals, "macd_death_cross")
		}
	}

	if k, d, ok := stochKD(bars, 9, 2); ok {
		set.StochK = k
		set.StochD = d
	}

	if mid, ok := lastMean(closes, 20); ok {
		sd := lastStdDev(closes, 20)
		set.BBMiddle = mid
		set.BBUpper = mid + 2*sd
		set.BBLower = mid - 2*sd
		set.SMA20 = mid
		if mid != 0 {
			set.Bias20 = (closes[last] - mid) / mid * 100
			if set.Bias20 < -10 {
				set.Signals = append(set.Signals, "bias_stretched")
			}
		}
	}

	if sma60, ok := lastMean(closes, 60); ok {
		set.SMA60 = sma60
		if closes[last] > sma60 {
			set.Signals = append(set.Signals, "above_sma60")
		} else {
			set.Signals = append(set.Signals, "below_sma60")
		}
	}

	return set
}

// rollingRSI uses plain rolling means of gains and losses over the last
// `period` deltas, the way the product computes it (not Wilder smoothing).
func rollingRSI(closes []float64, period int) (float64, bool) {
	if len(closes) < period+1 {
		return 0, false
	}
	var gain, loss float64
	for i := len(closes) - period; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gain += delta
		} else {
			loss -= delta
		}
	}
	if loss == 0 {
		if gain == 0 {
			// no movement in the window; RSI undefined
			return 0, false
		}
		return 100, true
	}
	rs := gain / loss
	return 100 - 100/(1+rs), true
}

func macdSeries(closes []float64, fast, slow, signalSpan int) (macd, signal []float64) {
	emaFast := emaSpan(closes, fast)
	emaSlow := emaSpan(closes, slow)
	macd = make([]float64, len(closes))
	for i := range closes {
		macd[i] = emaFast[i] - emaSlow[i]
	}
	signal = emaSpan(macd, signalSpan)
	return macd, signal
}

// emaSpan is the span-parameterized exponential moving average seeded with
// the first value (alpha = 2/(span+1)).
func emaSpan(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// stochKD computes the stochastic oscillator: raw %K over a rolling
// high/low window, smoothed twice with a center-of-mass EMA (alpha =
// 1/(1+com)), matching the product's ewm(com=2) smoothing.
func stochKD(bars []models.Bar, window int, com float64) (k, d float64, ok bool) {
	if len(bars) < window {
		return 0, 0, false
	}
	alpha := 1 / (1 + com)
	var kSmooth, dSmooth float64
	seeded := false
	for i := window - 1; i < len(bars); i++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for j := i - window + 1; j <= i; j++ {
			if bars[j].Low < lo {
				lo = bars[j].Low
			}
			if bars[j].High > hi {
				hi = bars[j].High
			}
		}
		raw := 50.0
		if hi != lo {
			raw = 100 * (bars[i].Close - lo) / (hi - lo)
		}
		if !seeded {
			kSmooth, dSmooth = raw, raw
			seeded = true
			continue
		}
		kSmooth = alpha*raw + (1-alpha)*kSmooth
		dSmooth = alpha*kSmooth + (1-alpha)*dSmooth
	}
	return kSmooth, dSmooth, true
}

func lastMean(values []float64, window int) (float64, bool) {
	if len(values) < window {
		return 0, false
	}
	var sum float64
	for i := len(values) - window; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(window), true
}

func lastStdDev(values []float64, window int) float64 {
	mean, ok := lastMean(values, window)
	if !ok {
		return 0
	}
	var sum float64
	for i := len(values) - window; i < len(values); i++ {
		d := values[i] - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(window))
}
