package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KotFed0t/stock_dashboard/config"
	"github.com/KotFed0t/stock_dashboard/internal/externalApi/yahooApi"
	"github.com/KotFed0t/stock_dashboard/internal/httpserver"
	"github.com/KotFed0t/stock_dashboard/internal/marketClock"
	"github.com/KotFed0t/stock_dashboard/internal/model"
	"github.com/KotFed0t/stock_dashboard/internal/reportGenerator/csvGenerator"
	"github.com/KotFed0t/stock_dashboard/internal/reportGenerator/xslsxGenerator"
	"github.com/KotFed0t/stock_dashboard/internal/scheduler"
	"github.com/KotFed0t/stock_dashboard/internal/service/stockDashboardService"
	"github.com/KotFed0t/stock_dashboard/internal/transport/web"
)

func main() {
	cfg := config.MustLoad()

	setupLogger(cfg)

	slog.Debug("config", slog.Any("cfg", cfg))

	clock, err := marketClock.New(cfg.Dashboard.Timezone)
	if err != nil {
		slog.Error("error while marketClock.New", slog.String("err", err.Error()))
		panic(err)
	}

	yahooApiClient := yahooApi.New(cfg)

	csvReportGenerator := csvGenerator.New()
	xlsxReportGenerator := xslsxGenerator.New()

	dashboardSrv := stockDashboardService.New(cfg, yahooApiClient, clock, csvReportGenerator, xlsxReportGenerator)

	sched := scheduler.New()
	sched.NewIntervalJob("market session watch", marketSessionWatchJob(dashboardSrv), cfg.Jobs.MarketStatusInterval, true)
	sched.Start()
	defer sched.Stop()

	ctrl := web.NewController(cfg, dashboardSrv)

	srv := httpserver.New(cfg, ctrl)
	srv.Start()
	defer srv.Stop()

	// Waiting interruption signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-interrupt
}

// marketSessionWatchJob logs trading session transitions, so log history
// shows when the market opened and closed.
func marketSessionWatchJob(srv *stockDashboardService.StockDashboardService) func(ctx context.Context) error {
	var lastSession model.MarketSession
	return func(ctx context.Context) error {
		status := srv.GetMarketStatus(ctx)
		if status.Session != lastSession {
			slog.Info(
				"market session changed",
				slog.String("session", string(status.Session)),
				slog.String("label", status.Label),
				slog.Bool("isOpen", status.IsOpen),
			)
			lastSession = status.Session
		}
		return nil
	}
}

func setupLogger(cfg *config.Config) {
	var logLevel slog.Level

	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)
}
