package mocks

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	ammdomain "github.com/osmosis-labs/limitbook/domain/amm"
)

var _ ammdomain.PoolClient = &PoolClientMock{}

// PoolClientMock is a mock implementation of the PoolClient interface.
type PoolClientMock struct {
	CurrentTickFunc     func(ctx context.Context, marketID uint64) (int64, error)
	AddLiquidityFunc    func(ctx context.Context, marketID uint64, lowerTick, upperTick int64, liquidity osmomath.Dec) (ammdomain.LiquidityDelta, error)
	RemoveLiquidityFunc func(ctx context.Context, marketID uint64, lowerTick, upperTick int64, liquidity osmomath.Dec) (ammdomain.LiquidityDelta, error)
}

// CurrentTick implements PoolClient.
func (m *PoolClientMock) CurrentTick(ctx context.Context, marketID uint64) (int64, error) {
	if m.CurrentTickFunc != nil {
		return m.CurrentTickFunc(ctx, marketID)
	}
	panic("CurrentTick not implemented")
}

// AddLiquidity implements PoolClient.
func (m *PoolClientMock) AddLiquidity(ctx context.Context, marketID uint64, lowerTick, upperTick int64, liquidity osmomath.Dec) (ammdomain.LiquidityDelta, error) {
	if m.AddLiquidityFunc != nil {
		return m.AddLiquidityFunc(ctx, marketID, lowerTick, upperTick, liquidity)
	}
	panic("AddLiquidity not implemented")
}

// RemoveLiquidity implements PoolClient.
func (m *PoolClientMock) RemoveLiquidity(ctx context.Context, marketID uint64, lowerTick, upperTick int64, liquidity osmomath.Dec) (ammdomain.LiquidityDelta, error) {
	if m.RemoveLiquidityFunc != nil {
		return m.RemoveLiquidityFunc(ctx, marketID, lowerTick, upperTick, liquidity)
	}
	panic("RemoveLiquidity not implemented")
}

// WithCurrentTick sets a fixed current tick.
func (m *PoolClientMock) WithCurrentTick(tick int64) {
	m.CurrentTickFunc = func(ctx context.Context, marketID uint64) (int64, error) {
		return tick, nil
	}
}

// WithCurrentTickSequence returns the ticks in order, repeating the last one
// once the sequence is exhausted.
func (m *PoolClientMock) WithCurrentTickSequence(ticks ...int64) {
	i := 0
	m.CurrentTickFunc = func(ctx context.Context, marketID uint64) (int64, error) {
		tick := ticks[i]
		if i < len(ticks)-1 {
			i++
		}
		return tick, nil
	}
}

// WithAddLiquidity sets a fixed add-liquidity delta.
func (m *PoolClientMock) WithAddLiquidity(delta ammdomain.LiquidityDelta, err error) {
	m.AddLiquidityFunc = func(ctx context.Context, marketID uint64, lowerTick, upperTick int64, liquidity osmomath.Dec) (ammdomain.LiquidityDelta, error) {
		return delta, err
	}
}

// WithRemoveLiquidity sets a fixed remove-liquidity delta.
func (m *PoolClientMock) WithRemoveLiquidity(delta ammdomain.LiquidityDelta, err error) {
	m.RemoveLiquidityFunc = func(ctx context.Context, marketID uint64, lowerTick, upperTick int64, liquidity osmomath.Dec) (ammdomain.LiquidityDelta, error) {
		return delta, err
	}
}
