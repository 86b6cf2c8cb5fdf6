package stockDashboardService

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KotFed0t/stock_dashboard/config"
	"github.com/KotFed0t/stock_dashboard/internal/converter/reportConverter"
	"github.com/KotFed0t/stock_dashboard/internal/model"
	"github.com/KotFed0t/stock_dashboard/internal/model/yahooModel"
	"github.com/KotFed0t/stock_dashboard/internal/service"
	"github.com/KotFed0t/stock_dashboard/utils"
	"github.com/shopspring/decimal"
)

type YahooApi interface {
	GetDailyBars(ctx context.Context, ticker string, days int) ([]yahooModel.Bar, error)
	GetQuote(ctx context.Context, ticker string) (yahooModel.QuoteSnapshot, error)
}

type MarketClock interface {
	Classify(now time.Time) model.MarketStatus
}

type ReportGenerator interface {
	Generate(ctx context.Context, table model.ReportTable) (fileBytes []byte, fileExtension string, err error)
}

type StockDashboardService struct {
	cfg        *config.Config
	yahooApi   YahooApi
	clock      MarketClock
	generators map[string]ReportGenerator
	now        func() time.Time
}

func New(cfg *config.Config, yahooApi YahooApi, clock MarketClock, csvGenerator, xlsxGenerator ReportGenerator) *StockDashboardService {
	return &StockDashboardService{
		cfg:      cfg,
		yahooApi: yahooApi,
		clock:    clock,
		generators: map[string]ReportGenerator{
			"csv":  csvGenerator,
			"xlsx": xlsxGenerator,
		},
		now: time.Now,
	}
}

func (s *StockDashboardService) GetMarketStatus(ctx context.Context) model.MarketStatus {
	return s.clock.Classify(s.now())
}

// BuildTickerList merges the configured default tickers with user input
// (comma-separated, trimmed, upper-cased) and deduplicates preserving the
// first occurrence. Empty tokens from malformed input are kept as-is.
func (s *StockDashboardService) BuildTickerList(ctx context.Context, userInput string) []string {
	tickers := make([]string, 0, len(s.cfg.Dashboard.DefaultTickers))
	tickers = append(tickers, s.cfg.Dashboard.DefaultTickers...)

	if userInput != "" {
		for _, token := range strings.Split(userInput, ",") {
			tickers = append(tickers, strings.ToUpper(strings.TrimSpace(token)))
		}
	}

	seen := make(map[string]struct{}, len(tickers))
	res := make([]string, 0, len(tickers))
	for _, ticker := range tickers {
		if _, ok := seen[ticker]; ok {
			continue
		}
		seen[ticker] = struct{}{}
		res = append(res, ticker)
	}

	return res
}

func (s *StockDashboardService) GetDashboard(ctx context.Context, rawTickers, rawMode string) (model.Dashboard, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "StockDashboardService.GetDashboard"

	slog.Debug("GetDashboard start", slog.String("rqID", rqID), slog.String("op", op), slog.String("mode", rawMode), slog.String("tickers", rawTickers))
	defer func() {
		slog.Debug("GetDashboard finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("mode", rawMode), slog.String("tickers", rawTickers))
	}()

	mode, err := parseMode(rawMode)
	if err != nil {
		slog.Warn("unknown market mode", slog.String("rqID", rqID), slog.String("op", op), slog.String("mode", rawMode))
		return model.Dashboard{}, err
	}

	tickers := s.BuildTickerList(ctx, rawTickers)

	quotes := make([]model.Quote, 0, len(tickers))
	for _, ticker := range tickers {
		switch mode {
		case model.ModePreMarket:
			quotes = append(quotes, s.fetchPreMarketQuote(ctx, ticker))
		default:
			quotes = append(quotes, s.fetchRegularQuote(ctx, ticker))
		}
	}

	return model.Dashboard{
		Status:  s.clock.Classify(s.now()),
		Mode:    mode,
		Tickers: tickers,
		Quotes:  quotes,
	}, nil
}

func (s *StockDashboardService) GenerateReport(ctx context.Context, rawTickers, rawMode, rawFormat string) (fileBytes []byte, fileName string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "StockDashboardService.GenerateReport"

	slog.Debug("GenerateReport start", slog.String("rqID", rqID), slog.String("op", op), slog.String("format", rawFormat))
	defer func() {
		slog.Debug("GenerateReport finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("format", rawFormat))
	}()

	if rawFormat == "" {
		rawFormat = "csv"
	}

	generator, ok := s.generators[rawFormat]
	if !ok {
		slog.Warn("unknown report format", slog.String("rqID", rqID), slog.String("op", op), slog.String("format", rawFormat))
		return nil, "", service.ErrUnknownFormat
	}

	dashboard, err := s.GetDashboard(ctx, rawTickers, rawMode)
	if err != nil {
		return nil, "", err
	}

	table := reportConverter.ToReportTable(dashboard.Quotes, dashboard.Mode)

	fileBytes, fileExtension, err := generator.Generate(ctx, table)
	if err != nil {
		slog.Error("got error from generator.Generate", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	fileName = fmt.Sprintf("stock_data_%s%s", s.now().Format("20060102_1504"), fileExtension)

	return fileBytes, fileName, nil
}

// fetchRegularQuote builds a quote from the last trading days of daily bars.
// Any provider failure degrades to a record with only the ticker set.
func (s *StockDashboardService) fetchRegularQuote(ctx context.Context, ticker string) model.Quote {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "StockDashboardService.fetchRegularQuote"

	quote := model.Quote{Ticker: ticker}

	bars, err := s.yahooApi.GetDailyBars(ctx, ticker, s.cfg.Dashboard.HistoryDays)
	if err != nil {
		slog.Warn("can't get daily bars from yahooApi", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker), slog.String("err", err.Error()))
		return quote
	}

	if len(bars) == 0 {
		return quote
	}

	latest := bars[len(bars)-1]
	price := decimal.NewFromFloat(latest.Close)

	previous := price // single bar: previous falls back to the latest close
	if len(bars) > 1 {
		previous = decimal.NewFromFloat(bars[len(bars)-2].Close)
	}

	change := price.Sub(previous)

	quote.Price = &price
	quote.Change = &change
	quote.ChangePct = changePct(change, previous)
	quote.Volume = latest.Volume

	return quote
}

// fetchPreMarketQuote builds a quote from the point-in-time snapshot.
// Change is computed only when both pre-market price and previous close are
// present.
func (s *StockDashboardService) fetchPreMarketQuote(ctx context.Context, ticker string) model.Quote {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "StockDashboardService.fetchPreMarketQuote"

	quote := model.Quote{Ticker: ticker}

	snapshot, err := s.yahooApi.GetQuote(ctx, ticker)
	if err != nil {
		slog.Warn("can't get quote snapshot from yahooApi", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker), slog.String("err", err.Error()))
		return quote
	}

	quote.Price = snapshot.PreMarketPrice
	quote.RegularMarketPrice = snapshot.RegularMarketPrice
	quote.PreviousClose = snapshot.PreviousClose

	if snapshot.PreMarketPrice != nil && snapshot.PreviousClose != nil {
		change := snapshot.PreMarketPrice.Sub(*snapshot.PreviousClose)
		quote.Change = &change
		quote.ChangePct = changePct(change, *snapshot.PreviousClose)
	}

	return quote
}

// changePct returns nil when previous is zero (decimal division would panic,
// and a percent change against zero is meaningless anyway).
func changePct(change, previous decimal.Decimal) *decimal.Decimal {
	if previous.IsZero() {
		return nil
	}
	pct := change.Div(previous).Mul(decimal.NewFromInt(100))
	return &pct
}

func parseMode(rawMode string) (model.MarketMode, error) {
	switch rawMode {
	case "", string(model.ModeMarket):
		return model.ModeMarket, nil
	case string(model.ModePreMarket):
		return model.ModePreMarket, nil
	default:
		return "", service.ErrUnknownMode
	}
}
