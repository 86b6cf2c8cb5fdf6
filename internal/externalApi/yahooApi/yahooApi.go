package yahooApi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/KotFed0t/stock_dashboard/config"
	"github.com/KotFed0t/stock_dashboard/internal/externalApi"
	"github.com/KotFed0t/stock_dashboard/internal/model/yahooModel"
	"github.com/KotFed0t/stock_dashboard/utils"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// Yahoo rejects requests without a browser-like User-Agent.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/91.0.4472.124"

type YahooApi struct {
	client *resty.Client
}

func New(cfg *config.Config) *YahooApi {
	client := resty.New().
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout).
		SetBaseURL(cfg.API.YahooApi.Url).
		SetHeader("User-Agent", userAgent)
	return &YahooApi{client: client}
}

// GetDailyBars fetches the trailing window of daily bars for a ticker from
// the chart v8 endpoint. Bars without a close price are skipped.
func (a *YahooApi) GetDailyBars(ctx context.Context, ticker string, days int) ([]yahooModel.Bar, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	endpoint := fmt.Sprintf("/v8/finance/chart/%s", url.PathEscape(ticker))
	params := map[string]string{
		"interval": "1d",
		"range":    strconv.Itoa(days) + "d",
	}

	slog.Debug("start YahooApi.GetDailyBars request", slog.String("rqID", rqID), slog.String("ticker", ticker))

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(params).
		Get(endpoint)

	if err != nil {
		slog.Error("error while dialing YahooApi", slog.String("err", err.Error()), slog.String("rqID", rqID))
		return nil, err
	}

	if resp.IsError() {
		slog.Error("YahooApi returned error status", slog.Int("status", resp.StatusCode()), slog.String("rqID", rqID))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	rawChart := yahooModel.RawChartResponse{}
	err = json.Unmarshal(resp.Body(), &rawChart)
	if err != nil {
		slog.Error("can't unmarshall response into yahooModel.RawChartResponse", slog.String("err", err.Error()), slog.String("rqID", rqID))
		return nil, err
	}

	bars, err := a.parseRawChart(rawChart)
	if err != nil {
		slog.Error("can't parse raw chart data", slog.String("err", err.Error()), slog.String("rqID", rqID))
		return nil, err
	}

	slog.Debug("YahooApi.GetDailyBars request complete", slog.String("rqID", rqID), slog.String("ticker", ticker))

	return bars, nil
}

// GetQuote fetches a point-in-time snapshot for a ticker from the quote v7
// endpoint. Optional fields stay nil when Yahoo omits them.
func (a *YahooApi) GetQuote(ctx context.Context, ticker string) (yahooModel.QuoteSnapshot, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	endpoint := "/v7/finance/quote"
	params := map[string]string{
		"symbols": ticker,
		"fields":  "preMarketPrice,regularMarketPrice,regularMarketPreviousClose",
	}

	slog.Debug("start YahooApi.GetQuote request", slog.String("rqID", rqID), slog.String("ticker", ticker))

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(params).
		Get(endpoint)

	if err != nil {
		slog.Error("error while dialing YahooApi", slog.String("err", err.Error()), slog.String("rqID", rqID))
		return yahooModel.QuoteSnapshot{}, err
	}

	if resp.IsError() {
		slog.Error("YahooApi returned error status", slog.Int("status", resp.StatusCode()), slog.String("rqID", rqID))
		return yahooModel.QuoteSnapshot{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	rawQuote := yahooModel.RawQuoteResponse{}
	err = json.Unmarshal(resp.Body(), &rawQuote)
	if err != nil {
		slog.Error("can't unmarshall response into yahooModel.RawQuoteResponse", slog.String("err", err.Error()), slog.String("rqID", rqID))
		return yahooModel.QuoteSnapshot{}, err
	}

	snapshot, err := a.parseRawQuote(rawQuote, ticker)
	if err != nil {
		slog.Error("can't parse raw quote data", slog.String("err", err.Error()), slog.String("rqID", rqID))
		return yahooModel.QuoteSnapshot{}, err
	}

	slog.Debug("YahooApi.GetQuote request complete", slog.String("rqID", rqID), slog.String("ticker", ticker))

	return snapshot, nil
}

func (a *YahooApi) parseRawChart(rawChart yahooModel.RawChartResponse) ([]yahooModel.Bar, error) {
	if rawChart.Chart.Error != nil {
		return nil, fmt.Errorf("api error: %v", rawChart.Chart.Error)
	}

	if len(rawChart.Chart.Result) == 0 || len(rawChart.Chart.Result[0].Timestamp) == 0 {
		return nil, externalApi.ErrNotFound
	}

	result := rawChart.Chart.Result[0]

	if len(result.Indicators.Quote) == 0 {
		return nil, externalApi.ErrNotFound
	}

	quote := result.Indicators.Quote[0]
	if len(quote.Close) != len(result.Timestamp) {
		return nil, fmt.Errorf("lengths close != timestamp: %d and %d", len(quote.Close), len(result.Timestamp))
	}

	bars := make([]yahooModel.Bar, 0, len(result.Timestamp))
	for i := range result.Timestamp {
		if quote.Close[i] == nil {
			continue
		}
		bar := yahooModel.Bar{
			Timestamp: result.Timestamp[i],
			Close:     *quote.Close[i],
		}
		if i < len(quote.Volume) {
			bar.Volume = quote.Volume[i]
		}
		bars = append(bars, bar)
	}

	if len(bars) == 0 {
		return nil, externalApi.ErrNotFound
	}

	return bars, nil
}

func (a *YahooApi) parseRawQuote(rawQuote yahooModel.RawQuoteResponse, ticker string) (yahooModel.QuoteSnapshot, error) {
	if rawQuote.QuoteResponse.Error != nil {
		return yahooModel.QuoteSnapshot{}, fmt.Errorf("api error: %v", rawQuote.QuoteResponse.Error)
	}

	if len(rawQuote.QuoteResponse.Result) == 0 {
		return yahooModel.QuoteSnapshot{}, externalApi.ErrNotFound
	}

	if len(rawQuote.QuoteResponse.Result) != 1 {
		return yahooModel.QuoteSnapshot{}, fmt.Errorf("unexpected result length %d, expected only 1 element", len(rawQuote.QuoteResponse.Result))
	}

	result := rawQuote.QuoteResponse.Result[0]

	snapshot := yahooModel.QuoteSnapshot{
		Ticker:             ticker,
		PreMarketPrice:     floatToDecimal(result.PreMarketPrice),
		RegularMarketPrice: floatToDecimal(result.RegularMarketPrice),
		PreviousClose:      floatToDecimal(result.RegularMarketPreviousClose),
	}

	return snapshot, nil
}

func floatToDecimal(val *float64) *decimal.Decimal {
	if val == nil {
		return nil
	}
	d := decimal.NewFromFloat(*val)
	return &d
}
