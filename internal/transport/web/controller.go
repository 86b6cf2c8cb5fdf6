package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/KotFed0t/stock_dashboard/config"
	"github.com/KotFed0t/stock_dashboard/internal/converter/reportConverter"
	"github.com/KotFed0t/stock_dashboard/internal/model"
	"github.com/KotFed0t/stock_dashboard/internal/service"
	"github.com/KotFed0t/stock_dashboard/utils"
	"github.com/gin-gonic/gin"
)

const internalErrMsg = "something went wrong..."

var mimeTypes = map[string]string{
	".csv":  "text/csv",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

type StockDashboardService interface {
	GetMarketStatus(ctx context.Context) model.MarketStatus
	GetDashboard(ctx context.Context, rawTickers, rawMode string) (model.Dashboard, error)
	GenerateReport(ctx context.Context, rawTickers, rawMode, rawFormat string) (fileBytes []byte, fileName string, err error)
}

type Controller struct {
	cfg     *config.Config
	service StockDashboardService
}

func NewController(cfg *config.Config, service StockDashboardService) *Controller {
	return &Controller{
		cfg:     cfg,
		service: service,
	}
}

// Dashboard renders the HTML page. Quote data is loaded by the page itself
// through the quotes API on refresh.
func (ctrl *Controller) Dashboard(c *gin.Context) {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	status := ctrl.service.GetMarketStatus(ctx)

	view := dashboardView{
		Title:          ctrl.cfg.Dashboard.Title,
		StatusLabel:    status.Label,
		DefaultTickers: strings.Join(ctrl.cfg.Dashboard.DefaultTickers, ", "),
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(c.Writer, view); err != nil {
		slog.Error("got error while rendering dashboard template", slog.String("rqID", rqID), slog.String("err", err.Error()))
	}
}

func (ctrl *Controller) GetQuotes(c *gin.Context) {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	dashboard, err := ctrl.service.GetDashboard(ctx, c.Query("tickers"), c.Query("mode"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownMode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown market mode"})
			return
		}
		slog.Error("got error from service.GetDashboard", slog.String("rqID", rqID), slog.String("err", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrMsg})
		return
	}

	table := reportConverter.ToReportTable(dashboard.Quotes, dashboard.Mode)

	c.JSON(http.StatusOK, gin.H{
		"market_status": dashboard.Status.Label,
		"is_open":       dashboard.Status.IsOpen,
		"mode":          dashboard.Mode,
		"tickers":       dashboard.Tickers,
		"columns":       table.Columns,
		"rows":          table.Rows,
	})
}

func (ctrl *Controller) ExportReport(c *gin.Context) {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	fileBytes, fileName, err := ctrl.service.GenerateReport(ctx, c.Query("tickers"), c.Query("mode"), c.Query("format"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownMode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown market mode"})
			return
		}
		if errors.Is(err, service.ErrUnknownFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown report format"})
			return
		}
		slog.Error("got error from service.GenerateReport", slog.String("rqID", rqID), slog.String("err", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrMsg})
		return
	}

	mimeType := "application/octet-stream"
	for ext, mt := range mimeTypes {
		if strings.HasSuffix(fileName, ext) {
			mimeType = mt
			break
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, mimeType, fileBytes)
}

func (ctrl *Controller) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
