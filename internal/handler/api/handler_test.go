package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Lohas/internal/domain/models"
	"Lohas/internal/usecase"
	"Lohas/pkg/cache"
	applogger "Lohas/pkg/logger"

	"github.com/labstack/echo/v4"
)

type fakeGateway struct{ failing map[string]bool }

func (g *fakeGateway) DailyBars(ctx context.Context, symbol string, years float64) ([]models.Bar, error) {
	if g.failing[symbol] {
		return nil, models.ErrDataUnavailable
	}
	bars := make([]models.Bar, 80)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		price := 100 + float64(i)
		bars[i] = models.Bar{Date: base.AddDate(0, 0, i), Open: price, High: price + 1, Low: price - 1, Close: price}
	}
	return bars, nil
}

func (g *fakeGateway) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	if g.failing[symbol] {
		return 0, models.ErrDataUnavailable
	}
	return 12.3, nil
}

type fakeStore struct{ data map[string]map[string]string }

func (s *fakeStore) Load(ctx context.Context, user string) (map[string]string, error) {
	out := make(map[string]string)
	for k, v := range s.data[user] {
		out[k] = v
	}
	return out, nil
}

func (s *fakeStore) Save(ctx context.Context, user string, entries map[string]string) error {
	s.data[user] = entries
	return nil
}

func (s *fakeStore) Close() error { return nil }

func newTestHandler(t *testing.T, g *fakeGateway, store *fakeStore) *DashboardHandler {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	analyzer := usecase.NewChannelAnalyzer(g, cache.NewMemoryCache(), nil, l, usecase.AnalyzerConfig{})
	scanner := usecase.NewWatchlistScanner(analyzer, store, nil, nil, l)
	manager := usecase.NewWatchlistManager(store, strings.ToUpper)
	return NewDashboardHandler(l, analyzer, scanner, manager, nil)
}

func doRequest(t *testing.T, h *DashboardHandler, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h.RegisterRoutes(e)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type apiEnvelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestGetChannel(t *testing.T) {
	h := newTestHandler(t, &fakeGateway{}, &fakeStore{data: map[string]map[string]string{}})

	rec := doRequest(t, h, http.MethodGet, "/api/channel?symbol=LIN&years=2", "")
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d, want 200", env.Status)
	}

	var res models.ChannelResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.Valuation.Band != models.BandFair {
		t.Fatalf("band = %s, want fair", res.Valuation.Band)
	}
	if res.Years != 2 {
		t.Fatalf("years = %v, want 2", res.Years)
	}
}

func TestGetChannelMissingSymbol(t *testing.T) {
	h := newTestHandler(t, &fakeGateway{}, &fakeStore{data: map[string]map[string]string{}})

	rec := doRequest(t, h, http.MethodGet, "/api/channel", "")
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", env.Status)
	}
}

func TestGetChannelUpstreamDown(t *testing.T) {
	h := newTestHandler(t, &fakeGateway{failing: map[string]bool{"BAD": true}}, &fakeStore{data: map[string]map[string]string{}})

	rec := doRequest(t, h, http.MethodGet, "/api/channel?symbol=BAD", "")
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", env.Status)
	}
}

func TestWatchlistCRUDAndScan(t *testing.T) {
	store := &fakeStore{data: map[string]map[string]string{}}
	h := newTestHandler(t, &fakeGateway{}, store)

	// Add two entries.
	rec := doRequest(t, h, http.MethodPost, "/api/watchlist", `{"user":"alice","ticker":"lin","name":"Linear"}`)
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusCreated {
		t.Fatalf("add status = %d, want 201", env.Status)
	}
	rec = doRequest(t, h, http.MethodPost, "/api/watchlist", `{"user":"alice","ticker":"XYZ"}`)
	if env := decodeEnvelope(t, rec); env.Status != http.StatusCreated {
		t.Fatalf("add status = %d, want 201", env.Status)
	}

	// List sees both, ticker normalized to upper case.
	rec = doRequest(t, h, http.MethodGet, "/api/watchlist?user=alice", "")
	env = decodeEnvelope(t, rec)
	var entries map[string]string
	if err := json.Unmarshal(env.Data, &entries); err != nil {
		t.Fatalf("decode entries: %v", err)
	}
	if len(entries) != 2 || entries["LIN"] != "Linear" || entries["XYZ"] != "XYZ" {
		t.Fatalf("entries = %v", entries)
	}

	// Scan returns one row per ticker.
	rec = doRequest(t, h, http.MethodGet, "/api/scan?user=alice", "")
	env = decodeEnvelope(t, rec)
	var list struct {
		Rows  []models.ScanRow `json:"rows"`
		Total int64            `json:"total"`
	}
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode scan: %v", err)
	}
	if list.Total != 2 || len(list.Rows) != 2 {
		t.Fatalf("scan rows = %d total = %d, want 2", len(list.Rows), list.Total)
	}

	// Remove one entry.
	rec = doRequest(t, h, http.MethodDelete, "/api/watchlist/LIN?user=alice", "")
	env = decodeEnvelope(t, rec)
	entries = nil
	if err := json.Unmarshal(env.Data, &entries); err != nil {
		t.Fatalf("decode entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries after delete = %v", entries)
	}
}

func TestGetVIX(t *testing.T) {
	h := newTestHandler(t, &fakeGateway{}, &fakeStore{data: map[string]map[string]string{}})

	rec := doRequest(t, h, http.MethodGet, "/api/vix", "")
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d, want 200", env.Status)
	}
	var reading usecase.VIXReading
	if err := json.Unmarshal(env.Data, &reading); err != nil {
		t.Fatalf("decode vix: %v", err)
	}
	if reading.Value != 12.3 || reading.Label != "optimistic" {
		t.Fatalf("reading = %+v", reading)
	}
}
