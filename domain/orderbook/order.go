package orderbookdomain

import (
	"github.com/osmosis-labs/osmosis/osmomath"
)

// Direction is the side of the book an order rests on.
// An ask sells the base denom for the quote denom (zero for one),
// a bid is the inverse.
type Direction string

const (
	DirectionAsk Direction = "ask"
	DirectionBid Direction = "bid"
)

// Validate validates the direction.
func (d Direction) Validate() error {
	if d != DirectionAsk && d != DirectionBid {
		return InvalidDirectionError{Direction: string(d)}
	}
	return nil
}

// Range is a pair of adjacent ticks exactly one tick spacing apart, backing
// one book entry as a one-sided liquidity range. Ranges are derived from a
// requested tick, never stored.
type Range struct {
	LowerTick int64 `json:"lower_tick"`
	UpperTick int64 `json:"upper_tick"`
}

// Anchor returns the range boundary whose crossing triggers execution:
// the upper tick for asks, the lower tick for bids. The anchor convention is
// held fixed across placement, cancellation and claim addressing.
func (r Range) Anchor(direction Direction) int64 {
	if direction == DirectionAsk {
		return r.UpperTick
	}
	return r.LowerTick
}

// Position is the claim accounting unit. All orders resting on the same
// effective range and direction share one position, and claim tokens minted
// against it are fungible.
type Position struct {
	MarketID  uint64    `json:"market_id"`
	Tick      int64     `json:"tick"`
	Direction Direction `json:"direction"`
}

// BookLevel is a read-only view of one resting price level.
type BookLevel struct {
	Tick            int64        `json:"tick"`
	Direction       Direction    `json:"direction"`
	PendingQuantity osmomath.Int `json:"pending_quantity"`
}

// PositionState is a read-only view of one position's claim accounting.
type PositionState struct {
	Position        Position     `json:"position"`
	PendingQuantity osmomath.Int `json:"pending_quantity"`
	Claimable       osmomath.Int `json:"claimable"`
	ClaimSupply     osmomath.Int `json:"claim_supply"`
}
