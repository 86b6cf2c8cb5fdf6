package yahooModel

import "github.com/shopspring/decimal"

// RawChartResponse mirrors the chart v8 endpoint payload. Yahoo pads days
// without trades with nulls, hence the pointer elements.
type RawChartResponse struct {
	Chart Chart `json:"chart"`
}

type Chart struct {
	Result []ChartResult `json:"result"`
	Error  any           `json:"error"`
}

type ChartResult struct {
	Timestamp  []int64    `json:"timestamp"`
	Indicators Indicators `json:"indicators"`
}

type Indicators struct {
	Quote []ChartQuote `json:"quote"`
}

type ChartQuote struct {
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// RawQuoteResponse mirrors the quote v7 endpoint payload.
type RawQuoteResponse struct {
	QuoteResponse QuoteResponse `json:"quoteResponse"`
}

type QuoteResponse struct {
	Result []QuoteResult `json:"result"`
	Error  any           `json:"error"`
}

type QuoteResult struct {
	Symbol                     string   `json:"symbol"`
	PreMarketPrice             *float64 `json:"preMarketPrice"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	RegularMarketPreviousClose *float64 `json:"regularMarketPreviousClose"`
}

type Bar struct {
	Timestamp int64
	Close     float64
	Volume    *int64
}

type QuoteSnapshot struct {
	Ticker             string
	PreMarketPrice     *decimal.Decimal
	RegularMarketPrice *decimal.Decimal
	PreviousClose      *decimal.Decimal
}
