package api

import (
	"time"

	"Lohas/internal/domain/models"
	"Lohas/internal/service/stream"
	xhttp "Lohas/pkg/http"

	"github.com/labstack/echo/v4"
)

// StreamQuotes upgrades to a websocket and pushes periodic quote updates,
// either for one symbol or for a user's whole watchlist. Optional query
// params: years (lookback for the band classification) and interval (push
// period in seconds).
func (h *DashboardHandler) StreamQuotes(c echo.Context) error {
	req := &models.StreamRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if req.User == "" && req.Symbol == "" {
		return xhttp.BadRequestResponse(c, "either user or symbol is required")
	}

	return h.pusher.Serve(c.Response(), c.Request(), stream.StreamOptions{
		User:     req.User,
		Symbol:   req.Symbol,
		Years:    xhttp.ParseFloatDefault(c.QueryParam("years"), 0),
		Interval: time.Duration(xhttp.ParseIntDefault(c.QueryParam("interval"), 0)) * time.Second,
	})
}
