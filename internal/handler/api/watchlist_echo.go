package api

import (
	"Lohas/internal/domain/models"
	xhttp "Lohas/pkg/http"

	"github.com/labstack/echo/v4"
)

// GetWatchlist returns a user's watchlist entries.
func (h *DashboardHandler) GetWatchlist(c echo.Context) error {
	req := &models.WatchlistGetRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	entries, err := h.manager.List(c.Request().Context(), req.User)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, entries)
}

// AddWatchlistEntry inserts or updates one watchlist entry.
func (h *DashboardHandler) AddWatchlistEntry(c echo.Context) error {
	req := &models.WatchlistAddRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	entries, err := h.manager.Add(c.Request().Context(), req.User, req.Ticker, req.Name)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.CreatedResponse(c, entries)
}

// RemoveWatchlistEntry drops one watchlist entry.
func (h *DashboardHandler) RemoveWatchlistEntry(c echo.Context) error {
	req := &models.WatchlistRemoveRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	entries, err := h.manager.Remove(c.Request().Context(), req.User, req.Ticker)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, entries)
}

// ScanWatchlist runs the batch valuation over a user's watchlist.
func (h *DashboardHandler) ScanWatchlist(c echo.Context) error {
	req := &models.ScanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rows, err := h.scanner.Scan(c.Request().Context(), req.User, req.Years)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}
