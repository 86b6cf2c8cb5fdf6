package stockDashboardService

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/KotFed0t/stock_dashboard/config"
	"github.com/KotFed0t/stock_dashboard/internal/model"
	"github.com/KotFed0t/stock_dashboard/internal/model/yahooModel"
	"github.com/KotFed0t/stock_dashboard/internal/reportGenerator/csvGenerator"
	"github.com/KotFed0t/stock_dashboard/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockYahooApi struct {
	barsFn  func(ctx context.Context, ticker string, days int) ([]yahooModel.Bar, error)
	quoteFn func(ctx context.Context, ticker string) (yahooModel.QuoteSnapshot, error)
}

func (m *mockYahooApi) GetDailyBars(ctx context.Context, ticker string, days int) ([]yahooModel.Bar, error) {
	return m.barsFn(ctx, ticker, days)
}

func (m *mockYahooApi) GetQuote(ctx context.Context, ticker string) (yahooModel.QuoteSnapshot, error) {
	return m.quoteFn(ctx, ticker)
}

type stubClock struct {
	status model.MarketStatus
}

func (c *stubClock) Classify(now time.Time) model.MarketStatus {
	return c.status
}

func testConfig(defaultTickers ...string) *config.Config {
	return &config.Config{
		Dashboard: config.Dashboard{
			DefaultTickers: defaultTickers,
			HistoryDays:    2,
		},
	}
}

func decimalPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func int64Ptr(v int64) *int64 {
	return &v
}

func newTestService(cfg *config.Config, api YahooApi) *StockDashboardService {
	srv := New(cfg, api, &stubClock{status: model.MarketStatus{IsOpen: true, Session: model.SessionRegular, Label: "Regular market hours (9:30 AM - 4:00 PM ET)"}}, csvGenerator.New(), csvGenerator.New())
	srv.now = func() time.Time {
		return time.Date(2025, 3, 3, 9, 30, 0, 0, time.UTC)
	}
	return srv
}

func TestBuildTickerList(t *testing.T) {
	srv := newTestService(testConfig("AAPL", "MSFT"), nil)

	tests := []struct {
		name      string
		userInput string
		want      []string
	}{
		{
			name:      "empty input keeps defaults",
			userInput: "",
			want:      []string{"AAPL", "MSFT"},
		},
		{
			name:      "dedup preserves first occurrence and case-normalizes",
			userInput: "MSFT, nvda ,AAPL",
			want:      []string{"AAPL", "MSFT", "NVDA"},
		},
		{
			name:      "empty tokens pass through",
			userInput: "IBM,,ORCL",
			want:      []string{"AAPL", "MSFT", "IBM", "", "ORCL"},
		},
		{
			name:      "whitespace trimmed",
			userInput: "  tsla  ",
			want:      []string{"AAPL", "MSFT", "TSLA"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := srv.BuildTickerList(context.Background(), tt.userInput)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetDashboardRegularMode(t *testing.T) {
	api := &mockYahooApi{
		barsFn: func(ctx context.Context, ticker string, days int) ([]yahooModel.Bar, error) {
			if ticker == "MSFT" {
				return nil, errors.New("rate limited")
			}
			return []yahooModel.Bar{
				{Timestamp: 100, Close: 148, Volume: int64Ptr(900_000)},
				{Timestamp: 200, Close: 150, Volume: int64Ptr(1_234_567)},
			}, nil
		},
	}
	srv := newTestService(testConfig("AAPL", "MSFT"), api)

	dashboard, err := srv.GetDashboard(context.Background(), "", "market")
	require.NoError(t, err)
	require.Len(t, dashboard.Quotes, 2)

	aapl := dashboard.Quotes[0]
	assert.Equal(t, "AAPL", aapl.Ticker)
	require.NotNil(t, aapl.Price)
	assert.Equal(t, "150.00", aapl.Price.StringFixed(2))
	require.NotNil(t, aapl.Change)
	assert.Equal(t, "2.00", aapl.Change.StringFixed(2))
	require.NotNil(t, aapl.ChangePct)
	assert.Equal(t, "1.35", aapl.ChangePct.StringFixed(2))
	require.NotNil(t, aapl.Volume)
	assert.Equal(t, int64(1_234_567), *aapl.Volume)

	// one symbol failing must not affect the others
	msft := dashboard.Quotes[1]
	assert.Equal(t, "MSFT", msft.Ticker)
	assert.Nil(t, msft.Price)
	assert.Nil(t, msft.Change)
	assert.Nil(t, msft.ChangePct)
	assert.Nil(t, msft.Volume)
}

func TestGetDashboardSingleBar(t *testing.T) {
	api := &mockYahooApi{
		barsFn: func(ctx context.Context, ticker string, days int) ([]yahooModel.Bar, error) {
			return []yahooModel.Bar{{Timestamp: 100, Close: 150, Volume: int64Ptr(500)}}, nil
		},
	}
	srv := newTestService(testConfig("AAPL"), api)

	dashboard, err := srv.GetDashboard(context.Background(), "", "market")
	require.NoError(t, err)
	require.Len(t, dashboard.Quotes, 1)

	quote := dashboard.Quotes[0]
	require.NotNil(t, quote.Price)
	assert.Equal(t, "150.00", quote.Price.StringFixed(2))
	require.NotNil(t, quote.Change)
	assert.True(t, quote.Change.IsZero())
	require.NotNil(t, quote.ChangePct)
	assert.True(t, quote.ChangePct.IsZero())
}

func TestGetDashboardPreMarketMode(t *testing.T) {
	api := &mockYahooApi{
		quoteFn: func(ctx context.Context, ticker string) (yahooModel.QuoteSnapshot, error) {
			switch ticker {
			case "AAPL":
				return yahooModel.QuoteSnapshot{
					Ticker:             ticker,
					PreMarketPrice:     decimalPtr(151.5),
					RegularMarketPrice: decimalPtr(150),
					PreviousClose:      decimalPtr(150),
				}, nil
			case "MSFT":
				// no pre-market trade yet: change must stay null
				return yahooModel.QuoteSnapshot{
					Ticker:             ticker,
					RegularMarketPrice: decimalPtr(400),
					PreviousClose:      decimalPtr(398),
				}, nil
			default:
				return yahooModel.QuoteSnapshot{}, errors.New("unavailable")
			}
		},
	}
	srv := newTestService(testConfig("AAPL", "MSFT", "FAIL"), api)

	dashboard, err := srv.GetDashboard(context.Background(), "", "pre_market")
	require.NoError(t, err)
	require.Len(t, dashboard.Quotes, 3)

	aapl := dashboard.Quotes[0]
	require.NotNil(t, aapl.Change)
	assert.Equal(t, "1.50", aapl.Change.StringFixed(2))
	require.NotNil(t, aapl.ChangePct)
	assert.Equal(t, "1.00", aapl.ChangePct.StringFixed(2))

	msft := dashboard.Quotes[1]
	assert.Nil(t, msft.Price)
	require.NotNil(t, msft.RegularMarketPrice)
	assert.Nil(t, msft.Change)
	assert.Nil(t, msft.ChangePct)

	fail := dashboard.Quotes[2]
	assert.Equal(t, "FAIL", fail.Ticker)
	assert.Nil(t, fail.Price)
	assert.Nil(t, fail.RegularMarketPrice)
	assert.Nil(t, fail.PreviousClose)
}

func TestGetDashboardZeroPreviousClose(t *testing.T) {
	api := &mockYahooApi{
		barsFn: func(ctx context.Context, ticker string, days int) ([]yahooModel.Bar, error) {
			return []yahooModel.Bar{
				{Timestamp: 100, Close: 0},
				{Timestamp: 200, Close: 150},
			}, nil
		},
	}
	srv := newTestService(testConfig("AAPL"), api)

	dashboard, err := srv.GetDashboard(context.Background(), "", "market")
	require.NoError(t, err)

	quote := dashboard.Quotes[0]
	require.NotNil(t, quote.Change)
	assert.Nil(t, quote.ChangePct)
}

func TestGetDashboardUnknownMode(t *testing.T) {
	srv := newTestService(testConfig("AAPL"), &mockYahooApi{})

	_, err := srv.GetDashboard(context.Background(), "", "futures")
	require.ErrorIs(t, err, service.ErrUnknownMode)
}

func TestGenerateReportCSV(t *testing.T) {
	api := &mockYahooApi{
		barsFn: func(ctx context.Context, ticker string, days int) ([]yahooModel.Bar, error) {
			if ticker == "MSFT" {
				return nil, errors.New("unavailable")
			}
			return []yahooModel.Bar{
				{Timestamp: 100, Close: 148, Volume: int64Ptr(1_000)},
				{Timestamp: 200, Close: 150, Volume: int64Ptr(2_000)},
			}, nil
		},
	}
	srv := newTestService(testConfig("AAPL", "MSFT"), api)

	fileBytes, fileName, err := srv.GenerateReport(context.Background(), "", "market", "csv")
	require.NoError(t, err)
	assert.Equal(t, "stock_data_20250303_0930.csv", fileName)

	content := string(fileBytes)
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Ticker,Price,Change,Change%,Volume", lines[0])
	assert.Contains(t, lines[1], "$150.00")
	assert.Contains(t, lines[1], "+$2.00")
	assert.Contains(t, lines[2], "MSFT")
	assert.Contains(t, lines[2], "N/A")
}

func TestGenerateReportUnknownFormat(t *testing.T) {
	srv := newTestService(testConfig("AAPL"), &mockYahooApi{})

	_, _, err := srv.GenerateReport(context.Background(), "", "market", "pdf")
	require.ErrorIs(t, err, service.ErrUnknownFormat)
}
