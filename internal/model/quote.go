package model

import "github.com/shopspring/decimal"

// Quote holds per-ticker price data. Numeric fields are nil when the
// provider had no data for them - absence is a valid state, not an error.
type Quote struct {
	Ticker             string
	Price              *decimal.Decimal
	RegularMarketPrice *decimal.Decimal
	PreviousClose      *decimal.Decimal
	Change             *decimal.Decimal
	ChangePct          *decimal.Decimal
	Volume             *int64
}
