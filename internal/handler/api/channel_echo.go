package api

import (
	"Lohas/internal/domain/models"
	xhttp "Lohas/pkg/http"

	"github.com/labstack/echo/v4"
)

// GetChannel returns the trend channel, valuation, and indicators for one
// ticker.
func (h *DashboardHandler) GetChannel(c echo.Context) error {
	req := &models.ChannelRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.Analyze(c.Request().Context(), req.Symbol, req.Years, req.SD1, req.SD2)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// GetIndicators returns only the secondary indicator block for one ticker.
func (h *DashboardHandler) GetIndicators(c echo.Context) error {
	req := &models.IndicatorsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.Analyze(c.Request().Context(), req.Symbol, req.Years, 0, 0)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, res.Indicators)
}

// GetVIX returns the volatility index reading and its sentiment label.
func (h *DashboardHandler) GetVIX(c echo.Context) error {
	reading, err := h.analyzer.VIX(c.Request().Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, reading)
}
