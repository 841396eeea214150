package channel

import (
	"errors"
	"math"
	"testing"
	"time"

	"Lohas/internal/domain/models"
)

func barsFromCloses(closes []float64) []models.Bar {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, len(closes))
	for i, c := range closes {
		bars[i] = models.Bar{
			Date:  base.AddDate(0, 0, i),
			Open:  c,
			High:  c,
			Low:   c,
			Close: c,
		}
	}
	return bars
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeLinearSeries(t *testing.T) {
	ch, err := Compute("TEST", barsFromCloses([]float64{10, 20, 30, 40, 50}), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(ch.Slope, 10) {
		t.Fatalf("slope = %v, want 10", ch.Slope)
	}
	if !almostEqual(ch.Intercept, 10) {
		t.Fatalf("intercept = %v, want 10", ch.Intercept)
	}
	if !almostEqual(ch.LastTrend(), 50) {
		t.Fatalf("trend at last index = %v, want 50", ch.LastTrend())
	}
	if !almostEqual(ch.Sigma, 0) {
		t.Fatalf("sigma = %v, want 0", ch.Sigma)
	}
	if !almostEqual(ch.RSquared, 1) {
		t.Fatalf("r² = %v, want 1", ch.RSquared)
	}
	th := ch.Latest()
	for _, v := range []float64{th.P2SD, th.P1SD, th.M1SD, th.M2SD} {
		if !almostEqual(v, 50) {
			t.Fatalf("band value %v, want 50 (all bands collapse on the trend)", v)
		}
	}
	val := Classify(ch.LastClose(), th, ch.LastTrend())
	if val.Band != models.BandFair {
		t.Fatalf("band = %s, want fair", val.Band)
	}
}

func TestComputeConstantSeries(t *testing.T) {
	ch, err := Compute("TEST", barsFromCloses([]float64{42, 42, 42, 42}), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(ch.Slope, 0) {
		t.Fatalf("slope = %v, want 0", ch.Slope)
	}
	if !almostEqual(ch.Sigma, 0) {
		t.Fatalf("sigma = %v, want 0", ch.Sigma)
	}
	for i := range ch.Trend {
		for _, v := range []float64{ch.Trend[i], ch.Upper1[i], ch.Upper2[i], ch.Lower1[i], ch.Lower2[i]} {
			if !almostEqual(v, 42) {
				t.Fatalf("line value at %d = %v, want 42", i, v)
			}
		}
	}
	val := Classify(ch.LastClose(), ch.Latest(), ch.LastTrend())
	if val.Band != models.BandFair {
		t.Fatalf("band = %s, want fair", val.Band)
	}
}

func TestComputeThresholdOrdering(t *testing.T) {
	closes := []float64{100, 103, 99, 108, 95, 110, 102, 97, 111, 104}
	ch, err := Compute("TEST", barsFromCloses(closes), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range ch.Trend {
		if !(ch.Lower2[i] <= ch.Lower1[i] && ch.Lower1[i] <= ch.Trend[i] &&
			ch.Trend[i] <= ch.Upper1[i] && ch.Upper1[i] <= ch.Upper2[i]) {
			t.Fatalf("threshold ordering violated at index %d", i)
		}
	}
	if ch.RSquared < 0 || ch.RSquared > 1 {
		t.Fatalf("r² = %v, want within [0,1]", ch.RSquared)
	}
}

func TestComputeCustomMultipliers(t *testing.T) {
	closes := []float64{100, 104, 98, 107, 96, 109}
	ch, err := Compute("TEST", barsFromCloses(closes), 0.5, 1.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := len(closes) - 1
	if !almostEqual(ch.Upper1[last], ch.Trend[last]+0.5*ch.Sigma) {
		t.Fatalf("upper1 does not honor sd1 multiplier")
	}
	if !almostEqual(ch.Lower2[last], ch.Trend[last]-1.5*ch.Sigma) {
		t.Fatalf("lower2 does not honor sd2 multiplier")
	}
}

func TestComputeInsufficientData(t *testing.T) {
	for _, closes := range [][]float64{nil, {}, {100}} {
		_, err := Compute("TEST", barsFromCloses(closes), 1, 2)
		if !errors.Is(err, models.ErrInsufficientData) {
			t.Fatalf("closes=%v: err = %v, want ErrInsufficientData", closes, err)
		}
	}
}
