package ammdomain

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/osmosis-labs/osmosis/osmomath"

	orderbookdomain "github.com/osmosis-labs/limitbook/domain/orderbook"
)

// LiquidityDelta is the signed two-currency result of a liquidity change.
// Negative amounts are owed by the caller, positive amounts are owed to the
// caller. Fee components are the swap fees accrued to the range while the
// liquidity was in place; they are zero on placement.
type LiquidityDelta struct {
	Amount0 osmomath.Int
	Amount1 osmomath.Int
	Fee0    osmomath.Int
	Fee1    osmomath.Int
}

// NewLiquidityDelta builds a fee-free delta.
func NewLiquidityDelta(amount0, amount1 osmomath.Int) LiquidityDelta {
	return LiquidityDelta{
		Amount0: amount0,
		Amount1: amount1,
		Fee0:    osmomath.ZeroInt(),
		Fee1:    osmomath.ZeroInt(),
	}
}

// Total0 returns principal plus fee owed in currency zero, treating unset
// components as zero.
func (d LiquidityDelta) Total0() osmomath.Int {
	return nilToZero(d.Amount0).Add(nilToZero(d.Fee0))
}

// Total1 returns principal plus fee owed in currency one, treating unset
// components as zero.
func (d LiquidityDelta) Total1() osmomath.Int {
	return nilToZero(d.Amount1).Add(nilToZero(d.Fee1))
}

func nilToZero(amount osmomath.Int) osmomath.Int {
	if amount.IsNil() {
		return osmomath.ZeroInt()
	}
	return amount
}

// PoolClient is the concentrated liquidity AMM collaborator. The pool owns
// the price curve; the engine only adds and removes one-sided ranges and
// reads the current tick.
type PoolClient interface {
	// CurrentTick returns the pool's current tick for the market.
	CurrentTick(ctx context.Context, marketID uint64) (int64, error)

	// AddLiquidity adds liquidity to the [lowerTick, upperTick) range and
	// returns the signed token deltas the caller must settle.
	AddLiquidity(ctx context.Context, marketID uint64, lowerTick, upperTick int64, liquidity osmomath.Dec) (LiquidityDelta, error)

	// RemoveLiquidity withdraws liquidity from the range and returns the
	// signed token deltas owed to the caller, including accrued fees.
	RemoveLiquidity(ctx context.Context, marketID uint64, lowerTick, upperTick int64, liquidity osmomath.Dec) (LiquidityDelta, error)
}

// BankClient is the custody collaborator moving real value between the
// engine and its callers. Exactly one call is issued per nonzero delta
// component, in currency-0-then-currency-1 order.
type BankClient interface {
	// Settle collects coin from the payer into engine custody.
	Settle(ctx context.Context, coin sdk.Coin, payer string) error

	// Take pays coin out of engine custody to the payee.
	Take(ctx context.Context, coin sdk.Coin, payee string) error
}

// ClaimTokenLedger is the fungible claim token collaborator. Claim tokens
// are minted one-to-one against placed input quantity and burned on
// cancellation and redemption.
type ClaimTokenLedger interface {
	Mint(ctx context.Context, owner string, position orderbookdomain.Position, amount osmomath.Int) error
	Burn(ctx context.Context, owner string, position orderbookdomain.Position, amount osmomath.Int) error
	BalanceOf(ctx context.Context, owner string, position orderbookdomain.Position) (osmomath.Int, error)
}
