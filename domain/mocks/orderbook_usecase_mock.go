package mocks

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/osmosis-labs/limitbook/domain"
	"github.com/osmosis-labs/limitbook/domain/mvc"
	orderbookdomain "github.com/osmosis-labs/limitbook/domain/orderbook"
)

var _ mvc.OrderBookUsecase = &OrderbookUsecaseMock{}

// OrderbookUsecaseMock is a mock implementation of the OrderBookUsecase
// interface.
type OrderbookUsecaseMock struct {
	RegisterMarketFunc   func(ctx context.Context, config domain.MarketConfig) error
	PlaceLimitOrderFunc  func(ctx context.Context, marketID uint64, requestedTick int64, direction orderbookdomain.Direction, quantity osmomath.Int, owner string) (orderbookdomain.Range, error)
	CancelLimitOrderFunc func(ctx context.Context, marketID uint64, requestedTick int64, direction orderbookdomain.Direction, quantity osmomath.Int, owner string) (osmomath.Int, osmomath.Int, error)
	ClaimFunc            func(ctx context.Context, marketID uint64, requestedTick int64, direction orderbookdomain.Direction, claimQuantity osmomath.Int, owner string) (osmomath.Int, error)
	OnPriceUpdateFunc    func(ctx context.Context, marketID uint64) error
	GetBookLevelsFunc    func(marketID uint64) ([]orderbookdomain.BookLevel, error)
	GetPositionStateFunc func(marketID uint64, requestedTick int64, direction orderbookdomain.Direction) (orderbookdomain.PositionState, error)
}

// RegisterMarket implements mvc.OrderBookUsecase.
func (m *OrderbookUsecaseMock) RegisterMarket(ctx context.Context, config domain.MarketConfig) error {
	if m.RegisterMarketFunc != nil {
		return m.RegisterMarketFunc(ctx, config)
	}
	panic("RegisterMarket not implemented")
}

// PlaceLimitOrder implements mvc.OrderBookUsecase.
func (m *OrderbookUsecaseMock) PlaceLimitOrder(ctx context.Context, marketID uint64, requestedTick int64, direction orderbookdomain.Direction, quantity osmomath.Int, owner string) (orderbookdomain.Range, error) {
	if m.PlaceLimitOrderFunc != nil {
		return m.PlaceLimitOrderFunc(ctx, marketID, requestedTick, direction, quantity, owner)
	}
	panic("PlaceLimitOrder not implemented")
}

// CancelLimitOrder implements mvc.OrderBookUsecase.
func (m *OrderbookUsecaseMock) CancelLimitOrder(ctx context.Context, marketID uint64, requestedTick int64, direction orderbookdomain.Direction, quantity osmomath.Int, owner string) (osmomath.Int, osmomath.Int, error) {
	if m.CancelLimitOrderFunc != nil {
		return m.CancelLimitOrderFunc(ctx, marketID, requestedTick, direction, quantity, owner)
	}
	panic("CancelLimitOrder not implemented")
}

// Claim implements mvc.OrderBookUsecase.
func (m *OrderbookUsecaseMock) Claim(ctx context.Context, marketID uint64, requestedTick int64, direction orderbookdomain.Direction, claimQuantity osmomath.Int, owner string) (osmomath.Int, error) {
	if m.ClaimFunc != nil {
		return m.ClaimFunc(ctx, marketID, requestedTick, direction, claimQuantity, owner)
	}
	panic("Claim not implemented")
}

// OnPriceUpdate implements mvc.OrderBookUsecase.
func (m *OrderbookUsecaseMock) OnPriceUpdate(ctx context.Context, marketID uint64) error {
	if m.OnPriceUpdateFunc != nil {
		return m.OnPriceUpdateFunc(ctx, marketID)
	}
	panic("OnPriceUpdate not implemented")
}

// GetBookLevels implements mvc.OrderBookUsecase.
func (m *OrderbookUsecaseMock) GetBookLevels(marketID uint64) ([]orderbookdomain.BookLevel, error) {
	if m.GetBookLevelsFunc != nil {
		return m.GetBookLevelsFunc(marketID)
	}
	panic("GetBookLevels not implemented")
}

// GetPositionState implements mvc.OrderBookUsecase.
func (m *OrderbookUsecaseMock) GetPositionState(marketID uint64, requestedTick int64, direction orderbookdomain.Direction) (orderbookdomain.PositionState, error) {
	if m.GetPositionStateFunc != nil {
		return m.GetPositionStateFunc(marketID, requestedTick, direction)
	}
	panic("GetPositionState not implemented")
}
