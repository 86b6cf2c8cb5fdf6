package reportConverter

import (
	"github.com/KotFed0t/stock_dashboard/internal/model"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const notAvailable = "N/A"

var volumePrinter = message.NewPrinter(language.English)

// ToReportTable converts quotes into display strings. Column set depends on
// the market mode, missing numeric values render as "N/A".
func ToReportTable(quotes []model.Quote, mode model.MarketMode) model.ReportTable {
	if mode == model.ModePreMarket {
		return preMarketTable(quotes)
	}
	return marketTable(quotes)
}

func marketTable(quotes []model.Quote) model.ReportTable {
	table := model.ReportTable{
		Columns: []string{"Ticker", "Price", "Change", "Change%", "Volume"},
		Rows:    make([][]string, 0, len(quotes)),
	}
	for _, quote := range quotes {
		table.Rows = append(table.Rows, []string{
			quote.Ticker,
			formatPrice(quote.Price),
			formatChange(quote.Change),
			formatChangePct(quote.ChangePct),
			formatVolume(quote.Volume),
		})
	}
	return table
}

func preMarketTable(quotes []model.Quote) model.ReportTable {
	table := model.ReportTable{
		Columns: []string{"Ticker", "Price", "Regular Market Price", "Previous Close", "Change", "Change%"},
		Rows:    make([][]string, 0, len(quotes)),
	}
	for _, quote := range quotes {
		table.Rows = append(table.Rows, []string{
			quote.Ticker,
			formatPrice(quote.Price),
			formatPrice(quote.RegularMarketPrice),
			formatPrice(quote.PreviousClose),
			formatChange(quote.Change),
			formatChangePct(quote.ChangePct),
		})
	}
	return table
}

func formatPrice(d *decimal.Decimal) string {
	if d == nil {
		return notAvailable
	}
	return "$" + d.StringFixed(2)
}

func formatChange(d *decimal.Decimal) string {
	if d == nil {
		return notAvailable
	}
	return sign(*d) + "$" + d.Abs().StringFixed(2)
}

func formatChangePct(d *decimal.Decimal) string {
	if d == nil {
		return notAvailable
	}
	return sign(*d) + d.Abs().StringFixed(2) + "%"
}

func formatVolume(v *int64) string {
	if v == nil {
		return notAvailable
	}
	return volumePrinter.Sprintf("%d", *v)
}

func sign(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-"
	}
	return "+"
}
