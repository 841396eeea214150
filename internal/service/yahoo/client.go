package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"Lohas/internal/domain/models"
	xhttp "Lohas/pkg/http"
	"Lohas/pkg/util"

	"github.com/tidwall/gjson"
)

const defaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// Client implements the MarketData gateway against the Yahoo Finance v8
// chart API. All failures surface as models.ErrDataUnavailable; retry
// policy, if any, belongs here and not in the callers.
type Client struct {
	http      *xhttp.Client
	baseURL   string
	userAgent string
	symbolMap map[string]string
}

// Option configures Client.
type Option func(*Client)

// WithBaseURL overrides the chart API base URL (tests point this at a stub).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithSymbolMap sets the internal-symbol to Yahoo-ticker mapping.
func WithSymbolMap(m map[string]string) Option {
	return func(c *Client) { c.symbolMap = m }
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = xhttp.NewClient(xhttp.WithTimeout(d)) }
}

// New creates a Yahoo Finance gateway.
func New(opts ...Option) *Client {
	c := &Client{
		http:      xhttp.NewClient(xhttp.WithTimeout(30 * time.Second)),
		baseURL:   defaultBaseURL,
		userAgent: "Mozilla/5.0",
		symbolMap: map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Normalize upper-cases and trims a free-text ticker and applies the
// configured exchange mapping.
func (c *Client) Normalize(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if mapped, ok := c.symbolMap[s]; ok {
		return mapped
	}
	return s
}

// DailyBars fetches daily closes covering the lookback window, trimmed to
// the window's start date.
func (c *Client) DailyBars(ctx context.Context, symbol string, years float64) ([]models.Bar, error) {
	bars, err := c.chart(ctx, symbol, "1d", rangeForYears(years))
	if err != nil {
		return nil, err
	}
	cutoff := util.LookbackStart(time.Now(), years)
	i := 0
	for i < len(bars) && bars[i].Date.Before(cutoff) {
		i++
	}
	bars = bars[i:]
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s: empty series for window", models.ErrDataUnavailable, symbol)
	}
	return bars, nil
}

// CurrentPrice returns the latest close for a symbol.
func (c *Client) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	bars, err := c.chart(ctx, symbol, "1d", "1d")
	if err != nil {
		return 0, err
	}
	return bars[len(bars)-1].Close, nil
}

// rangeForYears picks the smallest Yahoo range string covering the window.
func rangeForYears(years float64) string {
	switch {
	case years <= 1:
		return "1y"
	case years <= 2:
		return "2y"
	case years <= 5:
		return "5y"
	default:
		return "10y"
	}
}

func (c *Client) chart(ctx context.Context, symbol, interval, rng string) ([]models.Bar, error) {
	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(c.Normalize(symbol))),
		Headers: map[string]string{
			"User-Agent": c.userAgent,
		},
		QueryParams: map[string][]string{
			"interval": {interval},
			"range":    {rng},
		},
	}, &body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrDataUnavailable, symbol, err)
	}

	if apiErr := gjson.GetBytes(body, "chart.error.description"); apiErr.Exists() && apiErr.String() != "" {
		return nil, fmt.Errorf("%w: %s: %s", models.ErrDataUnavailable, symbol, apiErr.String())
	}

	result := gjson.GetBytes(body, "chart.result.0")
	timestamps := result.Get("timestamp").Array()
	if !result.Exists() || len(timestamps) == 0 {
		return nil, fmt.Errorf("%w: %s: no data returned", models.ErrDataUnavailable, symbol)
	}

	quote := result.Get("indicators.quote.0")
	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()
	volumes := quote.Get("volume").Array()

	bars := make([]models.Bar, 0, len(timestamps))
	for i, ts := range timestamps {
		// null bars appear on holidays; skip them
		if i >= len(closes) || closes[i].Type == gjson.Null {
			continue
		}
		bar := models.Bar{
			Date:  time.Unix(ts.Int(), 0),
			Close: closes[i].Float(),
		}
		if i < len(opens) {
			bar.Open = opens[i].Float()
		}
		if i < len(highs) {
			bar.High = highs[i].Float()
		}
		if i < len(lows) {
			bar.Low = lows[i].Float()
		}
		if i < len(volumes) {
			bar.Volume = volumes[i].Float()
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s: all bars null", models.ErrDataUnavailable, symbol)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}
