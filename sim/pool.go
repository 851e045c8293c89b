// Package sim provides in-process reference implementations of the engine's
// collaborators: a concentrated liquidity pool driven by the same tick math
// the engine converts with, a custody bank and a claim token ledger. They
// back local runs and integration tests; production deployments inject the
// host runtime's own collaborators instead.
package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/osmosis-labs/osmosis/osmomath"

	clmath "github.com/osmosis-labs/osmosis/v25/x/concentrated-liquidity/math"

	ammdomain "github.com/osmosis-labs/limitbook/domain/amm"
)

type rangeKey struct {
	lowerTick int64
	upperTick int64
}

type poolState struct {
	currentTick int64
	liquidity   map[rangeKey]osmomath.Dec
}

// Pool is an in-memory concentrated liquidity pool. It tracks liquidity per
// range and computes token deltas from sqrt prices exactly the way the chain
// pool does: deposits round up against the caller, withdrawals round down.
type Pool struct {
	mu      sync.Mutex
	markets map[uint64]*poolState
}

var _ ammdomain.PoolClient = &Pool{}

// NewPool creates a new simulated pool.
func NewPool() *Pool {
	return &Pool{
		markets: map[uint64]*poolState{},
	}
}

// CreateMarket initializes the market at the given tick.
func (p *Pool) CreateMarket(marketID uint64, initialTick int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.markets[marketID] = &poolState{
		currentTick: initialTick,
		liquidity:   map[rangeKey]osmomath.Dec{},
	}
}

// SetCurrentTick moves the market's price, standing in for trades against
// the pool.
func (p *Pool) SetCurrentTick(marketID uint64, tick int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if market, ok := p.markets[marketID]; ok {
		market.currentTick = tick
	}
}

// CurrentTick implements ammdomain.PoolClient.
func (p *Pool) CurrentTick(ctx context.Context, marketID uint64) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	market, ok := p.markets[marketID]
	if !ok {
		return 0, fmt.Errorf("sim pool: market %d not found", marketID)
	}
	return market.currentTick, nil
}

// AddLiquidity implements ammdomain.PoolClient.
func (p *Pool) AddLiquidity(ctx context.Context, marketID uint64, lowerTick, upperTick int64, liquidity osmomath.Dec) (ammdomain.LiquidityDelta, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	market, ok := p.markets[marketID]
	if !ok {
		return ammdomain.LiquidityDelta{}, fmt.Errorf("sim pool: market %d not found", marketID)
	}

	amount0, amount1, err := rangeAmounts(market.currentTick, lowerTick, upperTick, liquidity, true)
	if err != nil {
		return ammdomain.LiquidityDelta{}, err
	}

	key := rangeKey{lowerTick: lowerTick, upperTick: upperTick}
	existing, ok := market.liquidity[key]
	if !ok {
		existing = osmomath.ZeroDec()
	}
	market.liquidity[key] = existing.Add(liquidity)

	return ammdomain.NewLiquidityDelta(amount0.Neg(), amount1.Neg()), nil
}

// RemoveLiquidity implements ammdomain.PoolClient.
func (p *Pool) RemoveLiquidity(ctx context.Context, marketID uint64, lowerTick, upperTick int64, liquidity osmomath.Dec) (ammdomain.LiquidityDelta, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	market, ok := p.markets[marketID]
	if !ok {
		return ammdomain.LiquidityDelta{}, fmt.Errorf("sim pool: market %d not found", marketID)
	}

	key := rangeKey{lowerTick: lowerTick, upperTick: upperTick}
	existing, ok := market.liquidity[key]
	if !ok || existing.LT(liquidity) {
		return ammdomain.LiquidityDelta{}, fmt.Errorf("sim pool: not enough liquidity in range [%d, %d)", lowerTick, upperTick)
	}

	amount0, amount1, err := rangeAmounts(market.currentTick, lowerTick, upperTick, liquidity, false)
	if err != nil {
		return ammdomain.LiquidityDelta{}, err
	}

	remaining := existing.Sub(liquidity)
	if remaining.IsZero() {
		delete(market.liquidity, key)
	} else {
		market.liquidity[key] = remaining
	}

	return ammdomain.NewLiquidityDelta(amount0, amount1), nil
}

// rangeAmounts computes the token composition of a liquidity range at the
// current tick. Below the range the position is all token zero, above it all
// token one, inside it a mix split at the current sqrt price.
func rangeAmounts(currentTick, lowerTick, upperTick int64, liquidity osmomath.Dec, roundUp bool) (osmomath.Int, osmomath.Int, error) {
	sqrtPriceLower, err := clmath.TickToSqrtPrice(lowerTick)
	if err != nil {
		return osmomath.Int{}, osmomath.Int{}, err
	}
	sqrtPriceUpper, err := clmath.TickToSqrtPrice(upperTick)
	if err != nil {
		return osmomath.Int{}, osmomath.Int{}, err
	}

	if currentTick < lowerTick {
		amount0 := clmath.CalcAmount0Delta(liquidity, sqrtPriceLower, sqrtPriceUpper, roundUp)
		return truncate(amount0, roundUp), osmomath.ZeroInt(), nil
	}

	if currentTick >= upperTick {
		amount1 := clmath.CalcAmount1Delta(liquidity, sqrtPriceLower, sqrtPriceUpper, roundUp)
		return osmomath.ZeroInt(), truncate(amount1, roundUp), nil
	}

	sqrtPriceCurrent, err := clmath.TickToSqrtPrice(currentTick)
	if err != nil {
		return osmomath.Int{}, osmomath.Int{}, err
	}

	amount0 := clmath.CalcAmount0Delta(liquidity, sqrtPriceCurrent, sqrtPriceUpper, roundUp)
	amount1 := clmath.CalcAmount1Delta(liquidity, sqrtPriceLower, sqrtPriceCurrent, roundUp)
	return truncate(amount0, roundUp), truncate(amount1, roundUp), nil
}

func truncate(amount osmomath.BigDec, roundUp bool) osmomath.Int {
	if roundUp {
		return amount.Dec().Ceil().TruncateInt()
	}
	return amount.Dec().TruncateInt()
}
