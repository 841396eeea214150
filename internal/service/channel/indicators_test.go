package channel

import (
	"math"
	"testing"
)

func TestRollingRSIAllGains(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	rsi, ok := rollingRSI(closes, 14)
	if !ok {
		t.Fatalf("expected ok")
	}
	if rsi != 100 {
		t.Fatalf("rsi = %v, want 100 for a series with no losses", rsi)
	}
}

func TestRollingRSIInsufficient(t *testing.T) {
	if _, ok := rollingRSI([]float64{1, 2, 3}, 14); ok {
		t.Fatalf("expected not ok for short series")
	}
}

func TestRollingRSIBounded(t *testing.T) {
	closes := []float64{100, 102, 101, 105, 103, 107, 104, 108, 106, 110, 107, 111, 109, 113, 110, 114}
	rsi, ok := rollingRSI(closes, 14)
	if !ok {
		t.Fatalf("expected ok")
	}
	if rsi < 0 || rsi > 100 {
		t.Fatalf("rsi = %v, want within [0,100]", rsi)
	}
}

func TestLastMean(t *testing.T) {
	v := []float64{1, 2, 3, 4, 5, 6}
	got, ok := lastMean(v, 3)
	if !ok || got != 5 {
		t.Fatalf("lastMean = %v (ok=%v), want 5", got, ok)
	}
	if _, ok := lastMean(v, 7); ok {
		t.Fatalf("expected not ok when window exceeds length")
	}
}

func TestLastStdDevConstant(t *testing.T) {
	v := []float64{5, 5, 5, 5, 5}
	if sd := lastStdDev(v, 5); sd != 0 {
		t.Fatalf("stddev of constant window = %v, want 0", sd)
	}
}

func TestEMASpanConverges(t *testing.T) {
	v := make([]float64, 200)
	for i := range v {
		v[i] = 50
	}
	out := emaSpan(v, 12)
	if math.Abs(out[len(out)-1]-50) > 1e-9 {
		t.Fatalf("ema of constant series = %v, want 50", out[len(out)-1])
	}
}

func TestIndicatorsShortSeries(t *testing.T) {
	set := Indicators(barsFromCloses([]float64{100}))
	if len(set.Signals) != 0 {
		t.Fatalf("short series produced signals: %v", set.Signals)
	}
}

func TestIndicatorsSignals(t *testing.T) {
	// 70 flat bars keep every window satisfied; the close sits on SMA60 so
	// the below_sma60 branch fires (strict > comparison).
	closes := make([]float64, 70)
	for i := range closes {
		closes[i] = 100
	}
	set := Indicators(barsFromCloses(closes))
	found := false
	for _, s := range set.Signals {
		if s == "below_sma60" {
			found = true
		}
		if s == "rsi_oversold" || s == "rsi_overbought" {
			t.Fatalf("flat series produced RSI signal %q", s)
		}
	}
	if !found {
		t.Fatalf("expected below_sma60 signal, got %v", set.Signals)
	}
	if set.BBUpper != set.BBMiddle || set.BBLower != set.BBMiddle {
		t.Fatalf("bollinger bands should collapse on a flat series")
	}
}

func TestStochKDRange(t *testing.T) {
	closes := []float64{10, 11, 12, 11, 13, 12, 14, 13, 15, 14, 16, 15}
	k, d, ok := stochKD(barsFromCloses(closes), 9, 2)
	if !ok {
		t.Fatalf("expected ok")
	}
	if k < 0 || k > 100 || d < 0 || d > 100 {
		t.Fatalf("k=%v d=%v, want within [0,100]", k, d)
	}
}
