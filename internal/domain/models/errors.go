package models

import "errors"

// Sentinel errors for the three failure classes the dashboard surfaces.
// Layers wrap these with context; handlers map them to HTTP statuses.
var (
	// ErrInsufficientData: fewer than 2 price points, no fit possible.
	ErrInsufficientData = errors.New("insufficient price data")

	// ErrDataUnavailable: the market data gateway could not produce a
	// series (unknown ticker, network failure, empty result).
	ErrDataUnavailable = errors.New("market data unavailable")

	// ErrStore: the watchlist persistence backend failed.
	ErrStore = errors.New("watchlist store failure")
)
