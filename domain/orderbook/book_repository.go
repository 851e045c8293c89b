package orderbookdomain

import (
	"github.com/osmosis-labs/osmosis/osmomath"
)

// BookRepository owns the per-market order book state: the two sorted level
// collections, the pending-quantity ledger and the claim accounting maps.
// All methods are safe for concurrent use across markets; callers serialize
// operations within a market.
type BookRepository interface {
	// RegisterMarket creates an empty state bundle for the market.
	// Registering an already registered market is a no-op.
	RegisterMarket(marketID uint64)

	// InsertLevel inserts the tick into the side's sorted collection,
	// keeping sort order. No-op if the tick is already present.
	// Errors if the market is unknown.
	InsertLevel(marketID uint64, direction Direction, tick int64) error

	// RemoveLevel removes a present tick from the side's sorted collection.
	// Errors with LevelNotFoundError if the tick is absent; that indicates a
	// broken book invariant, not a caller mistake.
	RemoveLevel(marketID uint64, direction Direction, tick int64) error

	// PeekNearest returns, without removing, the resting tick nearest the
	// current price: the lowest ask or the highest bid.
	// Returns false if the side is empty or the market is unknown.
	PeekNearest(marketID uint64, direction Direction) (int64, bool)

	// GetLevels returns all resting levels of the market, asks then bids,
	// each side ordered ascending by tick.
	GetLevels(marketID uint64) ([]BookLevel, error)

	// AddPending adds quantity to the pending ledger entry of (tick, direction).
	AddPending(marketID uint64, direction Direction, tick int64, quantity osmomath.Int) error

	// SubPending subtracts quantity from the pending ledger entry, deleting
	// the entry when it reaches zero. Returns the remaining quantity.
	SubPending(marketID uint64, direction Direction, tick int64, quantity osmomath.Int) (osmomath.Int, error)

	// GetPending returns the outstanding input quantity for (tick, direction),
	// zero if no entry exists.
	GetPending(marketID uint64, direction Direction, tick int64) osmomath.Int

	// AddDeposited adds the pool liquidity a placement deposited into the
	// level's range. The ledger holds the exact sum of per-placement
	// deposits; conversions from the aggregate quantity round differently
	// and must never be used for withdrawal.
	AddDeposited(marketID uint64, direction Direction, tick int64, liquidity osmomath.Dec) error

	// SubDeposited subtracts withdrawn liquidity from the level's deposited
	// ledger entry, deleting the entry when it reaches zero. Returns the
	// remaining liquidity.
	SubDeposited(marketID uint64, direction Direction, tick int64, liquidity osmomath.Dec) (osmomath.Dec, error)

	// GetDeposited returns the total liquidity deposited into the level's
	// range, zero if no entry exists.
	GetDeposited(marketID uint64, direction Direction, tick int64) osmomath.Dec

	// AddClaimable accrues executed output to the position.
	AddClaimable(position Position, amount osmomath.Int)

	// SubClaimable deducts redeemed output from the position.
	SubClaimable(position Position, amount osmomath.Int) error

	// GetClaimable returns the output currently redeemable against the
	// position, zero if none.
	GetClaimable(position Position) osmomath.Int

	// AddClaimSupply increases the outstanding claim token supply of the
	// position, mirroring a mint on the claim token ledger.
	AddClaimSupply(position Position, amount osmomath.Int)

	// SubClaimSupply decreases the outstanding claim token supply of the
	// position, mirroring a burn.
	SubClaimSupply(position Position, amount osmomath.Int) error

	// GetClaimSupply returns the outstanding claim token supply of the
	// position, zero if none.
	GetClaimSupply(position Position) osmomath.Int
}
