package models

import "time"

// Bar represents one daily OHLCV record as returned by the market data
// gateway. The channel math only consumes Close; highs and lows feed the
// stochastic oscillator.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Closes extracts the closing prices in chronological order.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Band is the valuation bucket of the latest price relative to the channel.
type Band string

const (
	BandPeak     Band = "peak"     // above +2SD
	BandElevated Band = "elevated" // between +1SD and +2SD
	BandFair     Band = "fair"     // between -1SD and +1SD
	BandLow      Band = "low"      // between -2SD and -1SD
	BandBargain  Band = "bargain"  // at or below -2SD
)

// Thresholds are the band values at a single index.
type Thresholds struct {
	P2SD float64 `json:"p2sd"`
	P1SD float64 `json:"p1sd"`
	M1SD float64 `json:"m1sd"`
	M2SD float64 `json:"m2sd"`
}

// Channel is the fitted trend line plus the four parallel bands over the
// whole series. Slices are parallel to the input bars.
type Channel struct {
	Symbol    string      `json:"symbol"`
	Dates     []time.Time `json:"dates"`
	Close     []float64   `json:"close"`
	Trend     []float64   `json:"trend"`
	Upper1    []float64   `json:"upper1"`
	Upper2    []float64   `json:"upper2"`
	Lower1    []float64   `json:"lower1"`
	Lower2    []float64   `json:"lower2"`
	Slope     float64     `json:"slope"`
	Intercept float64     `json:"intercept"`
	Sigma     float64     `json:"sigma"`
	RSquared  float64     `json:"r_squared"`
	SD1       float64     `json:"sd1"`
	SD2       float64     `json:"sd2"`
}

// Latest returns the band values at the last index.
func (c *Channel) Latest() Thresholds {
	last := len(c.Trend) - 1
	return Thresholds{
		P2SD: c.Upper2[last],
		P1SD: c.Upper1[last],
		M1SD: c.Lower1[last],
		M2SD: c.Lower2[last],
	}
}

// LastTrend returns the trend value at the last index.
func (c *Channel) LastTrend() float64 {
	return c.Trend[len(c.Trend)-1]
}

// LastClose returns the latest closing price.
func (c *Channel) LastClose() float64 {
	return c.Close[len(c.Close)-1]
}

// Valuation is the classification of the latest price.
type Valuation struct {
	Band        Band    `json:"band"`
	Price       float64 `json:"price"`
	TrendLast   float64 `json:"trend_last"`
	DistancePct float64 `json:"distance_pct"`
}

// IndicatorSet holds the latest values of the secondary indicators layered
// onto the dashboard chart, plus the derived signal summary.
type IndicatorSet struct {
	RSI        float64  `json:"rsi"`
	MACD       float64  `json:"macd"`
	MACDSignal float64  `json:"macd_signal"`
	MACDHist   float64  `json:"macd_hist"`
	StochK     float64  `json:"stoch_k"`
	StochD     float64  `json:"stoch_d"`
	BBUpper    float64  `json:"bb_upper"`
	BBMiddle   float64  `json:"bb_middle"`
	BBLower    float64  `json:"bb_lower"`
	SMA20      float64  `json:"sma20"`
	SMA60      float64  `json:"sma60"`
	Bias20     float64  `json:"bias20"`
	Signals    []string `json:"signals"`
}

// ChannelResult is the full per-ticker analysis: the unit of caching and the
// payload behind the single-ticker dashboard view.
type ChannelResult struct {
	Symbol     string       `json:"symbol"`
	Years      float64      `json:"years"`
	Channel    *Channel     `json:"channel"`
	Valuation  Valuation    `json:"valuation"`
	Indicators IndicatorSet `json:"indicators"`
	FetchedAt  time.Time    `json:"fetched_at"`
}

// ScanRow is one line of the watchlist scan summary table.
type ScanRow struct {
	Ticker      string   `json:"ticker"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	DistancePct float64  `json:"distance_pct"`
	Band        Band     `json:"band"`
	Signals     []string `json:"signals"`
}
