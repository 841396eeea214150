package stream

import (
	"context"
	"net/http"
	"sort"
	"time"

	domain "Lohas/internal/domain/repository"
	"Lohas/internal/service/channel"
	"Lohas/internal/usecase"
	applogger "Lohas/pkg/logger"

	"github.com/gorilla/websocket"
)

// Quote is one pushed update. The band is the live price classified against
// the cached channel thresholds.
type Quote struct {
	Symbol      string    `json:"symbol"`
	Price       float64   `json:"price"`
	Band        string    `json:"band"`
	DistancePct float64   `json:"distance_pct"`
	Ts          time.Time `json:"ts"`
}

// StreamOptions select what a connection receives. Symbol streams a single
// ticker; otherwise the user's whole watchlist is pushed. Years and Interval
// override the configured defaults when positive.
type StreamOptions struct {
	User     string
	Symbol   string
	Years    float64
	Interval time.Duration
}

// QuotePusher streams periodic quote updates over a websocket. One goroutine
// per connection; the connection closes when the client goes away or a write
// fails.
type QuotePusher struct {
	gateway  domain.MarketData
	analyzer *usecase.ChannelAnalyzer
	store    domain.WatchlistStore
	logger   *applogger.Logger
	interval time.Duration
	upgrader websocket.Upgrader
}

// NewQuotePusher creates the pusher.
func NewQuotePusher(
	gateway domain.MarketData,
	analyzer *usecase.ChannelAnalyzer,
	store domain.WatchlistStore,
	l *applogger.Logger,
	interval time.Duration,
) *QuotePusher {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &QuotePusher{
		gateway:  gateway,
		analyzer: analyzer,
		store:    store,
		logger:   l,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Serve upgrades the connection and pushes quotes until the client leaves.
func (p *QuotePusher) Serve(w http.ResponseWriter, r *http.Request, opts StreamOptions) error {
	if opts.Interval <= 0 {
		opts.Interval = p.interval
	}
	conn, err := p.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Reader only detects close and control frames.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// First push immediately, then on the interval.
	if err := p.push(ctx, conn, opts); err != nil {
		return nil
	}

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := p.push(ctx, conn, opts); err != nil {
				p.logger.Debug("ws: push ended",
					applogger.String("user", opts.User),
					applogger.String("symbol", opts.Symbol),
					applogger.Error(err),
				)
				return nil
			}
		}
	}
}

func (p *QuotePusher) symbols(ctx context.Context, opts StreamOptions) []string {
	if opts.Symbol != "" {
		return []string{opts.Symbol}
	}
	entries, err := p.store.Load(ctx, opts.User)
	if err != nil {
		p.logger.Warn("ws: watchlist load failed",
			applogger.String("user", opts.User),
			applogger.Error(err),
		)
		return nil
	}
	out := make([]string, 0, len(entries))
	for s := range entries {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func (p *QuotePusher) push(ctx context.Context, conn *websocket.Conn, opts StreamOptions) error {
	now := time.Now().UTC()
	for _, symbol := range p.symbols(ctx, opts) {
		price, err := p.gateway.CurrentPrice(ctx, symbol)
		if err != nil {
			continue
		}
		q := Quote{Symbol: symbol, Price: price, Ts: now}
		if res, err := p.analyzer.Analyze(ctx, symbol, opts.Years, 0, 0); err == nil {
			v := channel.Classify(price, res.Channel.Latest(), res.Channel.LastTrend())
			q.Band = string(v.Band)
			q.DistancePct = v.DistancePct
		}
		if err := conn.WriteJSON(q); err != nil {
			return err
		}
	}
	return nil
}
