package channel

import (
	"math"
	"testing"

	"Lohas/internal/domain/models"
)

var testThresholds = models.Thresholds{P2SD: 120, P1SD: 110, M1SD: 90, M2SD: 80}

func TestClassifyBands(t *testing.T) {
	cases := []struct {
		price float64
		want  models.Band
	}{
		{130, models.BandPeak},
		{120.01, models.BandPeak},
		{120, models.BandElevated}, // exactly on a threshold -> cheaper band
		{115, models.BandElevated},
		{110, models.BandFair},
		{100, models.BandFair},
		{90, models.BandLow},
		{85, models.BandLow},
		{80, models.BandBargain},
		{50, models.BandBargain},
		{-10, models.BandBargain},
	}
	for _, tc := range cases {
		got := Classify(tc.price, testThresholds, 100)
		if got.Band != tc.want {
			t.Fatalf("price %v: band = %s, want %s", tc.price, got.Band, tc.want)
		}
	}
}

func TestClassifyIsTotal(t *testing.T) {
	// Every real price maps to exactly one band, including extremes.
	for _, price := range []float64{math.Inf(-1), -1e12, 0, 1e-9, 1e12, math.Inf(1)} {
		got := Classify(price, testThresholds, 100)
		switch got.Band {
		case models.BandPeak, models.BandElevated, models.BandFair, models.BandLow, models.BandBargain:
		default:
			t.Fatalf("price %v: unexpected band %q", price, got.Band)
		}
	}
}

func TestClassifyDistancePct(t *testing.T) {
	got := Classify(110, testThresholds, 100)
	if math.Abs(got.DistancePct-10) > 1e-9 {
		t.Fatalf("distance = %v, want 10", got.DistancePct)
	}

	// Zero trend value must not divide.
	got = Classify(110, testThresholds, 0)
	if got.DistancePct != 0 {
		t.Fatalf("distance with zero trend = %v, want 0", got.DistancePct)
	}
}

func TestVIXLabel(t *testing.T) {
	cases := []struct {
		vix  float64
		want string
	}{
		{45, "panic"},
		{30, "panic"},
		{22, "alert"},
		{15.6, "alert"},
		{15, "stable"},
		{14.5, "stable"},
		{10, "optimistic"},
		{0, "euphoric"},
	}
	for _, tc := range cases {
		if got := VIXLabel(tc.vix); got != tc.want {
			t.Fatalf("vix %v: label = %q, want %q", tc.vix, got, tc.want)
		}
	}
}
