package util

import "testing"

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("30", 15); got != 30 {
		t.Fatalf("got %v", got)
	}
	if got := ParseIntDefault("", 15); got != 15 {
		t.Fatalf("got %v", got)
	}
	if got := ParseIntDefault("x", 15); got != 15 {
		t.Fatalf("got %v", got)
	}
}

func TestParseFloatDefault(t *testing.T) {
	if got := ParseFloatDefault("3.5", 1); got != 3.5 {
		t.Fatalf("got %v", got)
	}
	if got := ParseFloatDefault("", 1); got != 1 {
		t.Fatalf("got %v", got)
	}
	if got := ParseFloatDefault("abc", 2); got != 2 {
		t.Fatalf("got %v", got)
	}
}
