package api

import (
	"errors"

	"Lohas/internal/domain/models"
	"Lohas/internal/service/stream"
	"Lohas/internal/usecase"
	xhttp "Lohas/pkg/http"
	applogger "Lohas/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardHandler exposes the valuation dashboard over HTTP.
type DashboardHandler struct {
	logger   *applogger.Logger
	analyzer *usecase.ChannelAnalyzer
	scanner  *usecase.WatchlistScanner
	manager  *usecase.WatchlistManager
	pusher   *stream.QuotePusher
}

// NewDashboardHandler creates the handler.
func NewDashboardHandler(
	l *applogger.Logger,
	analyzer *usecase.ChannelAnalyzer,
	scanner *usecase.WatchlistScanner,
	manager *usecase.WatchlistManager,
	pusher *stream.QuotePusher,
) *DashboardHandler {
	return &DashboardHandler{
		logger:   l,
		analyzer: analyzer,
		scanner:  scanner,
		manager:  manager,
		pusher:   pusher,
	}
}

// RegisterRoutes registers all dashboard routes.
func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/channel", h.GetChannel)
	g.GET("/indicators", h.GetIndicators)
	g.GET("/vix", h.GetVIX)
	g.GET("/scan", h.ScanWatchlist)
	g.GET("/watchlist", h.GetWatchlist)
	g.POST("/watchlist", h.AddWatchlistEntry)
	g.DELETE("/watchlist/:ticker", h.RemoveWatchlistEntry)

	e.GET("/ws/quotes", h.StreamQuotes)
}

var _ xhttp.Handler = (*DashboardHandler)(nil)

// respondError maps domain errors to HTTP status codes.
func (h *DashboardHandler) respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrInsufficientData):
		return xhttp.AppErrorResponse(c,
			xhttp.BadRequestError("not enough data points for the requested window").WithError(err))
	case errors.Is(err, models.ErrDataUnavailable):
		return xhttp.AppErrorResponse(c,
			xhttp.BadGatewayError("market data unavailable").WithError(err))
	case errors.Is(err, models.ErrStore):
		h.logger.Error("watchlist store failure", applogger.Error(err))
		return xhttp.AppErrorResponse(c,
			xhttp.InternalError("watchlist storage failure").WithError(err))
	default:
		h.logger.Error("unhandled error", applogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
}
