package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Lohas/internal/domain/models"
)

func chartJSON(timestamps []int64, closes []string) string {
	ts := ""
	for i, t := range timestamps {
		if i > 0 {
			ts += ","
		}
		ts += fmt.Sprintf("%d", t)
	}
	cl := ""
	for i, c := range closes {
		if i > 0 {
			cl += ","
		}
		cl += c
	}
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],"indicators":{"quote":[{"open":[%s],"high":[%s],"low":[%s],"close":[%s],"volume":[%s]}]}}],"error":null}}`,
		ts, cl, cl, cl, cl, cl)
}

func TestDailyBarsParsesAndSkipsNulls(t *testing.T) {
	now := time.Now().Unix()
	body := chartJSON(
		[]int64{now - 3*86400, now - 2*86400, now - 86400},
		[]string{"100.5", "null", "102.25"},
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("interval") != "1d" {
			t.Errorf("interval = %q, want 1d", r.URL.Query().Get("interval"))
		}
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	bars, err := c.DailyBars(context.Background(), "2330.tw", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2 (null bar skipped)", len(bars))
	}
	if bars[0].Close != 100.5 || bars[1].Close != 102.25 {
		t.Fatalf("unexpected closes: %v %v", bars[0].Close, bars[1].Close)
	}
	if !bars[0].Date.Before(bars[1].Date) {
		t.Fatalf("bars not chronological")
	}
}

func TestDailyBarsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	_, err := c.DailyBars(context.Background(), "BOGUS", 1)
	if !errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
}

func TestDailyBarsHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	_, err := c.DailyBars(context.Background(), "AAPL", 1)
	if !errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
}

func TestCurrentPrice(t *testing.T) {
	now := time.Now().Unix()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartJSON([]int64{now}, []string{"17.42"}))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	price, err := c.CurrentPrice(context.Background(), "^VIX")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 17.42 {
		t.Fatalf("price = %v, want 17.42", price)
	}
}

func TestNormalize(t *testing.T) {
	c := New(WithSymbolMap(map[string]string{"SPX": "^GSPC"}))
	if got := c.Normalize("  2330.tw "); got != "2330.TW" {
		t.Fatalf("Normalize = %q", got)
	}
	if got := c.Normalize("spx"); got != "^GSPC" {
		t.Fatalf("Normalize map = %q", got)
	}
}

func TestRangeForYears(t *testing.T) {
	cases := map[float64]string{0.5: "1y", 1: "1y", 2: "2y", 3.5: "5y", 5: "5y", 10: "10y"}
	for years, want := range cases {
		if got := rangeForYears(years); got != want {
			t.Fatalf("rangeForYears(%v) = %q, want %q", years, got, want)
		}
	}
}
