package main

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	ingestusecase "github.com/osmosis-labs/limitbook/ingest/usecase"
	orderbookhttpdelivery "github.com/osmosis-labs/limitbook/orderbook/delivery/http"
	orderbookrepository "github.com/osmosis-labs/limitbook/orderbook/repository"
	orderbookusecase "github.com/osmosis-labs/limitbook/orderbook/usecase"
	systemhttpdelivery "github.com/osmosis-labs/limitbook/system/delivery/http"

	"github.com/osmosis-labs/limitbook/domain"
	"github.com/osmosis-labs/limitbook/domain/mvc"
	"github.com/osmosis-labs/limitbook/log"
	"github.com/osmosis-labs/limitbook/middleware"
	"github.com/osmosis-labs/limitbook/sim"
)

// LimitBookServer defines an interface for the limit order engine server.
// It wires the matching engine, its AMM collaborators and the price
// listener, and exposes endpoints for placing, cancelling and claiming
// orders.
type LimitBookServer interface {
	GetOrderbookUsecase() mvc.OrderBookUsecase
	GetLogger() log.Logger
	Shutdown(context.Context) error
	Start(context.Context) error
}

type limitBookServer struct {
	orderbookUsecase mvc.OrderBookUsecase
	priceListener    mvc.PriceListenerUsecase
	e                *echo.Echo
	address          string
	logger           log.Logger
}

// GetOrderbookUsecase implements LimitBookServer.
func (l *limitBookServer) GetOrderbookUsecase() mvc.OrderBookUsecase {
	return l.orderbookUsecase
}

// GetLogger implements LimitBookServer.
func (l *limitBookServer) GetLogger() log.Logger {
	return l.logger
}

// Shutdown implements LimitBookServer.
func (l *limitBookServer) Shutdown(ctx context.Context) error {
	return l.e.Shutdown(ctx)
}

// Start implements LimitBookServer.
func (l *limitBookServer) Start(ctx context.Context) error {
	go func() {
		if err := l.priceListener.Start(ctx); err != nil && ctx.Err() == nil {
			l.logger.Error("price listener stopped", zap.Error(err))
		}
	}()

	l.logger.Info("Starting limit order engine server", zap.String("address", l.address))
	err := l.e.Start(l.address)
	if err != nil {
		return err
	}

	return nil
}

// NewLimitBookServer creates a new limit order engine server.
func NewLimitBookServer(config domain.Config, logger log.Logger) (LimitBookServer, error) {
	// Setup echo server
	e := echo.New()
	middleware := middleware.InitMiddleware(config.CORS)
	e.Use(middleware.CORS)
	e.Use(middleware.InstrumentMiddleware)
	e.Use(middleware.TraceWithParamsMiddleware("limitbook"))

	ctx := context.Background()

	// In-process AMM collaborators. A host chain would supply its own
	// implementations of these interfaces.
	pool := sim.NewPool()
	bank := sim.NewBank()
	claims := sim.NewLedger()

	bookRepository := orderbookrepository.New()
	orderbookUsecase := orderbookusecase.New(config.Orderbook, bookRepository, pool, bank, claims, logger)

	// Register configured markets.
	for _, market := range config.Orderbook.Markets {
		pool.CreateMarket(market.ID, 0)
		if err := orderbookUsecase.RegisterMarket(ctx, market); err != nil {
			return nil, err
		}
	}

	priceListener := ingestusecase.NewPriceListenerUsecase(config.Orderbook, pool, orderbookUsecase, logger)

	// HTTP handlers
	orderbookhttpdelivery.NewOrderbookHandler(e, orderbookUsecase, logger)
	systemhttpdelivery.NewSystemHandler(e, config, logger, pool)

	return &limitBookServer{
		orderbookUsecase: orderbookUsecase,
		priceListener:    priceListener,
		e:                e,
		address:          config.ServerAddress,
		logger:           logger,
	}, nil
}
