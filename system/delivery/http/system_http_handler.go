package http

import (
	"fmt"
	"net/http"
	"net/http/pprof"
	"runtime"

	"go.uber.org/zap"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osmosis-labs/limitbook/domain"
	ammdomain "github.com/osmosis-labs/limitbook/domain/amm"
	"github.com/osmosis-labs/limitbook/log"

	"github.com/labstack/echo/v4"
)

type SystemHandler struct {
	logger log.Logger
	pool   ammdomain.PoolClient
	config domain.Config
}

// NewSystemHandler will initialize the /debug/pprof resources endpoint
func NewSystemHandler(e *echo.Echo, config domain.Config, logger log.Logger, pool ammdomain.PoolClient) {
	handler := &SystemHandler{
		logger: logger,
		pool:   pool,
		config: config,
	}

	// if debug mod, enable additional profiles that are too intensive
	// for production.
	if !config.LoggerIsProduction {
		runtime.SetMutexProfileFraction(2)
		runtime.SetBlockProfileRate(2)
	}

	e.GET("/debug/pprof/*", echo.WrapHandler(http.DefaultServeMux))
	e.GET("/debug/pprof/cmdline", echo.WrapHandler(http.HandlerFunc(pprof.Cmdline)))
	e.GET("/debug/pprof/profile", echo.WrapHandler(http.HandlerFunc(pprof.Profile)))
	e.GET("/debug/pprof/symbol", echo.WrapHandler(http.HandlerFunc(pprof.Symbol)))
	e.GET("/debug/pprof/trace", echo.WrapHandler(http.HandlerFunc(pprof.Trace)))

	e.GET("/healthcheck", handler.GetHealthStatus)
	e.GET("/config", handler.GetConfig)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// GetConfig returns the config for the limit order engine service
func (h *SystemHandler) GetConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, h.config)
}

// GetHealthStatus handles health check requests. The service is healthy when
// the pool price of every configured market is readable.
func (h *SystemHandler) GetHealthStatus(c echo.Context) error {
	ctx := c.Request().Context()

	ticks := make(map[string]int64, len(h.config.Orderbook.Markets))
	for _, market := range h.config.Orderbook.Markets {
		currentTick, err := h.pool.CurrentTick(ctx, market.ID)
		if err != nil {
			h.logger.Error("error reading pool price", zap.Uint64("market_id", market.ID), zap.Error(err))
			return echo.NewHTTPError(http.StatusServiceUnavailable, fmt.Sprintf("Error reading pool price for market %d", market.ID))
		}
		ticks[fmt.Sprint(market.ID)] = currentTick
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":        "running",
		"current_ticks": ticks,
	})
}
