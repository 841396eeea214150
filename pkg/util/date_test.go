package util

import (
	"testing"
	"time"
)

func TestLookbackStart(t *testing.T) {
	ref := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	got := LookbackStart(ref, 1)
	want := ref.AddDate(-1, 0, 0)
	if diff := got.Sub(want); diff > 24*time.Hour || diff < -24*time.Hour {
		t.Fatalf("one year lookback off by %v", diff)
	}

	half := LookbackStart(ref, 0.5)
	if !half.Before(ref) || !half.After(LookbackStart(ref, 1)) {
		t.Fatalf("half-year start %v not inside the one-year window", half)
	}
}
