package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Intervals supported by the intraday series endpoint.
const (
	Interval1Min  = "1min"
	Interval5Min  = "5min"
	Interval15Min = "15min"
	Interval30Min = "30min"
	Interval60Min = "60min"
)

// DefaultInterval is used when no interval is chosen.
const DefaultInterval = Interval1Min

// Intervals lists every supported granularity, finest first.
var Intervals = []string{Interval1Min, Interval5Min, Interval15Min, Interval30Min, Interval60Min}

// IsValidInterval reports whether interval is one of Intervals.
func IsValidInterval(interval string) bool {
	for _, i := range Intervals {
		if i == interval {
			return true
		}
	}
	return false
}

// SeriesPoint is one OHLCV bar of an intraday series.
type SeriesPoint struct {
	Timestamp time.Time       `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    int64           `json:"volume"`
}

// Mover is one row of the gainers/losers ranking.
type Mover struct {
	Rank             int             `json:"rank"`
	Ticker           string          `json:"ticker"`
	Price            decimal.Decimal `json:"price"`
	ChangeAmount     decimal.Decimal `json:"change_amount"`
	ChangePercentage string          `json:"change_percentage"`
	Volume           int64           `json:"volume"`
}

// MarketMovers groups the rankings of one trading session.
type MarketMovers struct {
	LastUpdated string  `json:"last_updated,omitempty"`
	Gainers     []Mover `json:"top_gainers"`
	Losers      []Mover `json:"top_losers"`
	MostActive  []Mover `json:"most_actively_traded,omitempty"`
}

// SavedFile describes a file in the data directory.
type SavedFile struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}
