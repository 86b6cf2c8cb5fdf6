package model

type ReportTable struct {
	Columns []string
	Rows    [][]string
}

type Dashboard struct {
	Status  MarketStatus
	Mode    MarketMode
	Tickers []string
	Quotes  []Quote
}
