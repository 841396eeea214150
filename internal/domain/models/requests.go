package models

// Requests for the dashboard HTTP endpoints. Defined in domain for
// consistency and reuse.

type ChannelRequest struct {
	Symbol string  `query:"symbol" json:"symbol" validate:"required"`
	Years  float64 `query:"years" json:"years" default:"3.5" validate:"gte=1,lte=10"`
	SD1    float64 `query:"sd1" json:"sd1" default:"1" validate:"gt=0"`
	SD2    float64 `query:"sd2" json:"sd2" default:"2" validate:"gt=0,gtefield=SD1"`
}

type IndicatorsRequest struct {
	Symbol string  `query:"symbol" json:"symbol" validate:"required"`
	Years  float64 `query:"years" json:"years" default:"1" validate:"gte=1,lte=10"`
}

type ScanRequest struct {
	User  string  `query:"user" json:"user" validate:"required"`
	Years float64 `query:"years" json:"years" default:"3.5" validate:"gte=1,lte=10"`
}

type WatchlistGetRequest struct {
	User string `query:"user" json:"user" validate:"required"`
}

type WatchlistAddRequest struct {
	User   string `query:"user" json:"user" validate:"required"`
	Ticker string `query:"ticker" json:"ticker" validate:"required"`
	Name   string `query:"name" json:"name"`
}

type WatchlistRemoveRequest struct {
	User   string `query:"user" json:"user" validate:"required"`
	Ticker string `param:"ticker" json:"ticker" validate:"required"`
}

type StreamRequest struct {
	User   string `query:"user" json:"user"`
	Symbol string `query:"symbol" json:"symbol"`
}
