package mvc

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/osmosis-labs/limitbook/domain"
	orderbookdomain "github.com/osmosis-labs/limitbook/domain/orderbook"
)

// OrderBookUsecase is the matching engine surface exposed upward to the
// delivery layer and to the host's price update notification path.
//
// All operations on the same market are serialized: each call runs to
// completion before the next one touching that market's state begins.
// Operations either fully succeed or fail with no partial state change.
type OrderBookUsecase interface {
	// RegisterMarket creates the market's state bundle. Must be called
	// before any other operation on the market.
	RegisterMarket(ctx context.Context, config domain.MarketConfig) error

	// PlaceLimitOrder rests quantity of input currency at the requested
	// tick, representing it as a one-sided liquidity range in the AMM and
	// minting claim tokens to the owner. Returns the range actually used;
	// callers may have requested an off-grid tick.
	PlaceLimitOrder(ctx context.Context, marketID uint64, requestedTick int64, direction orderbookdomain.Direction, quantity osmomath.Int, owner string) (orderbookdomain.Range, error)

	// CancelLimitOrder burns quantity claim tokens and withdraws the
	// corresponding share of the resting range, returning the realized
	// two-currency delta paid out to the owner.
	CancelLimitOrder(ctx context.Context, marketID uint64, requestedTick int64, direction orderbookdomain.Direction, quantity osmomath.Int, owner string) (osmomath.Int, osmomath.Int, error)

	// Claim redeems claimQuantity claim tokens for a pro-rata share of the
	// position's executed output. Returns the output amount paid out.
	Claim(ctx context.Context, marketID uint64, requestedTick int64, direction orderbookdomain.Direction, claimQuantity osmomath.Int, owner string) (osmomath.Int, error)

	// OnPriceUpdate runs the crossing loop for the market. The host invokes
	// it exactly once per completed trade, after the trade's price change is
	// finalized.
	OnPriceUpdate(ctx context.Context, marketID uint64) error

	// GetBookLevels returns all resting levels of the market.
	GetBookLevels(marketID uint64) ([]orderbookdomain.BookLevel, error)

	// GetPositionState returns the claim accounting view of the position
	// addressed by the requested tick and direction.
	GetPositionState(marketID uint64, requestedTick int64, direction orderbookdomain.Direction) (orderbookdomain.PositionState, error)
}
