package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCSVWatchlistSeedDefaults(t *testing.T) {
	dir := t.TempDir()
	defaults := map[string]string{"2330.TW": "TSMC", "AAPL": "Apple"}
	store, err := NewCSVWatchlistStore(dir, defaults)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer store.Close()

	got, err := store.Load(context.Background(), "alice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got["2330.TW"] != "TSMC" {
		t.Fatalf("expected seeded defaults, got %v", got)
	}

	// File must exist with a header after seeding.
	b, err := os.ReadFile(filepath.Join(dir, "alice.csv"))
	if err != nil {
		t.Fatalf("read seeded file: %v", err)
	}
	if !strings.HasPrefix(string(b), "ticker,name") {
		t.Fatalf("missing header: %q", string(b))
	}
}

func TestCSVWatchlistRoundtrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewCSVWatchlistStore(dir, nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	in := map[string]string{"0050.TW": "Yuanta ETF", "VOO": "Vanguard S&P 500"}
	if err := store.Save(ctx, "bob", in); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "bob")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(in) {
		t.Fatalf("got %d entries, want %d", len(got), len(in))
	}
	for k, v := range in {
		if got[k] != v {
			t.Fatalf("entry %s = %q, want %q", k, got[k], v)
		}
	}
}

func TestCSVWatchlistSaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewCSVWatchlistStore(dir, nil)
	defer store.Close()
	ctx := context.Background()

	_ = store.Save(ctx, "u", map[string]string{"A": "a", "B": "b"})
	_ = store.Save(ctx, "u", map[string]string{"C": "c"})

	got, err := store.Load(ctx, "u")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got["C"] != "c" {
		t.Fatalf("expected overwrite, got %v", got)
	}
}
