package types

import (
	"fmt"

	"github.com/osmosis-labs/osmosis/osmomath"

	orderbookdomain "github.com/osmosis-labs/limitbook/domain/orderbook"
)

// MarketNotFoundError represents an error when an operation references an
// unregistered market.
type MarketNotFoundError struct {
	MarketID uint64
}

// Error implements the error interface.
func (e MarketNotFoundError) Error() string {
	return fmt.Sprintf("market %d not found", e.MarketID)
}

// IsBadRequest marks the error as a client error.
func (e MarketNotFoundError) IsBadRequest() {}

// MarketAlreadyRegisteredError represents an error when a market is
// registered twice.
type MarketAlreadyRegisteredError struct {
	MarketID uint64
}

// Error implements the error interface.
func (e MarketAlreadyRegisteredError) Error() string {
	return fmt.Sprintf("market %d is already registered", e.MarketID)
}

// InvalidOrderError represents an error when a requested order level is on
// the wrong side of, or equal to, the current price, or the quantity is not
// positive.
type InvalidOrderError struct {
	RequestedTick int64
	CurrentTick   int64
	Direction     orderbookdomain.Direction
	Reason        string
}

// Error implements the error interface.
func (e InvalidOrderError) Error() string {
	return fmt.Sprintf("invalid %s order at tick %d, current tick %d: %s", e.Direction, e.RequestedTick, e.CurrentTick, e.Reason)
}

// IsBadRequest marks the error as a client error.
func (e InvalidOrderError) IsBadRequest() {}

// InvalidQuantityError represents an error when an order quantity is zero or
// negative.
type InvalidQuantityError struct {
	Quantity osmomath.Int
}

// Error implements the error interface.
func (e InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be positive, got %s", e.Quantity)
}

// IsBadRequest marks the error as a client error.
func (e InvalidQuantityError) IsBadRequest() {}

// InvalidRangeError represents an error when a liquidity range is
// degenerate or misordered.
type InvalidRangeError struct {
	LowerTick int64
	UpperTick int64
}

// Error implements the error interface.
func (e InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: lower tick %d must be below upper tick %d", e.LowerTick, e.UpperTick)
}

// IsBadRequest marks the error as a client error.
func (e InvalidRangeError) IsBadRequest() {}

// InvalidTickSpacingError represents an error when a market is configured
// with a zero tick spacing.
type InvalidTickSpacingError struct {
	MarketID uint64
}

// Error implements the error interface.
func (e InvalidTickSpacingError) Error() string {
	return fmt.Sprintf("market %d has invalid zero tick spacing", e.MarketID)
}

// NotEnoughToClaimError represents an error when the caller's claim token
// balance or the position's pending quantity does not cover the requested
// cancel or claim amount.
type NotEnoughToClaimError struct {
	Owner     string
	Requested osmomath.Int
	Available osmomath.Int
}

// Error implements the error interface.
func (e NotEnoughToClaimError) Error() string {
	return fmt.Sprintf("owner %s requested %s but only %s is available", e.Owner, e.Requested, e.Available)
}

// IsBadRequest marks the error as a client error.
func (e NotEnoughToClaimError) IsBadRequest() {}

// NothingToClaimError represents an error when a claim is attempted on a
// position with zero claimable output.
type NothingToClaimError struct {
	Position orderbookdomain.Position
}

// Error implements the error interface.
func (e NothingToClaimError) Error() string {
	return fmt.Sprintf("nothing to claim for %s position at tick %d in market %d", e.Position.Direction, e.Position.Tick, e.Position.MarketID)
}

// IsBadRequest marks the error as a client error.
func (e NothingToClaimError) IsBadRequest() {}

// UnclaimedOutputError represents an error when a placement targets a range
// whose previous fill still has unredeemed output. New claim tokens minted
// into such a position would share in output its holders never earned.
type UnclaimedOutputError struct {
	Position orderbookdomain.Position
}

// Error implements the error interface.
func (e UnclaimedOutputError) Error() string {
	return fmt.Sprintf("%s position at tick %d in market %d has unclaimed output; claims must drain before new orders", e.Position.Direction, e.Position.Tick, e.Position.MarketID)
}

// IsBadRequest marks the error as a client error.
func (e UnclaimedOutputError) IsBadRequest() {}

// LevelNotFoundError represents a broken book invariant: a removal was
// requested for a tick that is not present on the side. Never expected in
// normal operation.
type LevelNotFoundError struct {
	MarketID  uint64
	Tick      int64
	Direction orderbookdomain.Direction
}

// Error implements the error interface.
func (e LevelNotFoundError) Error() string {
	return fmt.Sprintf("level %d not found on %s side of market %d", e.Tick, e.Direction, e.MarketID)
}

// CollaboratorFailureError represents an error when the AMM, custody or
// claim token collaborator rejects a call. The enclosing operation is
// aborted with no state change.
type CollaboratorFailureError struct {
	Collaborator string
	Op           string
	Err          error
}

// Error implements the error interface.
func (e CollaboratorFailureError) Error() string {
	return fmt.Sprintf("%s collaborator failed during %s: %v", e.Collaborator, e.Op, e.Err)
}

// Unwrap returns the collaborator's underlying error.
func (e CollaboratorFailureError) Unwrap() error {
	return e.Err
}
