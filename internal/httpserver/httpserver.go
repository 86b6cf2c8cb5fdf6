package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/KotFed0t/stock_dashboard/config"
	"github.com/KotFed0t/stock_dashboard/internal/transport/web"
	customMW "github.com/KotFed0t/stock_dashboard/internal/transport/web/middleware"
	"github.com/gin-gonic/gin"
)

type HTTPServer struct {
	cfg    *config.Config
	server *http.Server
}

func New(cfg *config.Config, ctrl *web.Controller) *HTTPServer {
	if !cfg.HTTP.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), customMW.Logger())

	setupRoutes(engine, ctrl)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	return &HTTPServer{cfg: cfg, server: server}
}

func (s *HTTPServer) Start() {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("error while http server ListenAndServe", slog.String("err", err.Error()))
			panic(err)
		}
	}()
	slog.Info("http server started!", slog.String("addr", s.server.Addr))
}

func (s *HTTPServer) Stop() {
	slog.Info("start stopping http server")

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("error while http server Shutdown", slog.String("err", err.Error()))
		return
	}

	slog.Info("http server stopped")
}

func setupRoutes(engine *gin.Engine, ctrl *web.Controller) {
	engine.GET("/", ctrl.Dashboard)
	engine.GET("/health", ctrl.Health)

	api := engine.Group("/api")
	api.GET("/quotes", ctrl.GetQuotes)
	api.GET("/export", ctrl.ExportReport)
}
