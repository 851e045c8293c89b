package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/osmosis-labs/limitbook/domain"
	ammdomain "github.com/osmosis-labs/limitbook/domain/amm"
	"github.com/osmosis-labs/limitbook/domain/mvc"
	"github.com/osmosis-labs/limitbook/domain/workerpool"
	"github.com/osmosis-labs/limitbook/log"
	"github.com/osmosis-labs/limitbook/orderbook/telemetry"
)

// priceUpdateWorkerCount bounds the number of markets whose crossing loops
// run concurrently. Per-market ordering is preserved by the matching
// engine's own serialization.
const priceUpdateWorkerCount = 4

type priceListenerUseCase struct {
	pool             ammdomain.PoolClient
	orderbookUsecase mvc.OrderBookUsecase

	pollInterval time.Duration
	marketIDs    []uint64

	// last tick observed by the poller, per market. Guarded by the poll
	// loop being single threaded.
	observedTicks map[uint64]int64

	dispatcher *workerpool.Dispatcher[uint64]

	logger log.Logger
}

var _ mvc.PriceListenerUsecase = &priceListenerUseCase{}

// NewPriceListenerUsecase will create a new price listener use case object
// polling the given markets.
func NewPriceListenerUsecase(config *domain.OrderbookConfig, pool ammdomain.PoolClient, orderbookUsecase mvc.OrderBookUsecase, logger log.Logger) mvc.PriceListenerUsecase {
	marketIDs := make([]uint64, 0, len(config.Markets))
	for _, market := range config.Markets {
		marketIDs = append(marketIDs, market.ID)
	}

	return &priceListenerUseCase{
		pool:             pool,
		orderbookUsecase: orderbookUsecase,

		pollInterval: time.Duration(config.PriceUpdatePollIntervalMs) * time.Millisecond,
		marketIDs:    marketIDs,

		observedTicks: make(map[uint64]int64, len(marketIDs)),

		dispatcher: workerpool.NewDispatcher[uint64](priceUpdateWorkerCount),

		logger: logger,
	}
}

// Start begins polling pool prices, fanning price updates out across the
// worker pool. It blocks until ctx is cancelled.
func (p *priceListenerUseCase) Start(ctx context.Context) error {
	go p.dispatcher.Run()
	go p.consumeResults()

	// Seed observed ticks so that startup does not trigger a cascade for
	// price moves that happened before the listener existed.
	for _, marketID := range p.marketIDs {
		currentTick, err := p.pool.CurrentTick(ctx, marketID)
		if err != nil {
			p.logger.Error("failed to read initial tick", zap.Uint64("market_id", marketID), zap.Error(err))
			continue
		}
		p.observedTicks[marketID] = currentTick
	}

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.dispatcher.Stop()
			return ctx.Err()
		case <-ticker.C:
			p.pollOnce(ctx)
		}
	}
}

// pollOnce reads the current tick of every market and submits a price
// update job for each market whose tick moved since the last poll.
func (p *priceListenerUseCase) pollOnce(ctx context.Context) {
	for _, marketID := range p.marketIDs {
		currentTick, err := p.pool.CurrentTick(ctx, marketID)
		if err != nil {
			telemetry.PriceUpdateErrorCounter.Inc()
			p.logger.Error("failed to read current tick", zap.Uint64("market_id", marketID), zap.Error(err))
			continue
		}

		observed, ok := p.observedTicks[marketID]
		if ok && observed == currentTick {
			continue
		}
		p.observedTicks[marketID] = currentTick

		marketID := marketID
		p.dispatcher.JobQueue <- workerpool.Job[uint64]{
			Task: func() (uint64, error) {
				return marketID, p.orderbookUsecase.OnPriceUpdate(ctx, marketID)
			},
		}
	}
}

func (p *priceListenerUseCase) consumeResults() {
	for result := range p.dispatcher.ResultQueue {
		if result.Err != nil {
			telemetry.PriceUpdateErrorCounter.Inc()
			p.logger.Error("price update failed", zap.Uint64("market_id", result.Result), zap.Error(result.Err))
		}
	}
}
