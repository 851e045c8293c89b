package types

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"

	orderbookdomain "github.com/osmosis-labs/limitbook/domain/orderbook"
)

var (
	// ErrQuantityInvalid is a generic error returned when an order quantity
	// does not parse as a positive integer.
	ErrQuantityInvalid = fmt.Errorf("quantity is not a valid positive integer")

	// ErrOwnerEmpty is returned when the owner address is missing.
	ErrOwnerEmpty = fmt.Errorf("owner must not be empty")
)

// OrderRequest represents the place/cancel request body for the
// /orderbook/orders endpoint.
type OrderRequest struct {
	MarketID  uint64 `json:"market_id"`
	Tick      int64  `json:"tick"`
	Direction string `json:"direction"`
	Quantity  string `json:"quantity"`
	Owner     string `json:"owner"`
}

// UnmarshalHTTPRequest unmarshals the HTTP request to OrderRequest.
func (r *OrderRequest) UnmarshalHTTPRequest(c echo.Context) error {
	return c.Bind(r)
}

// Validate validates the OrderRequest.
func (r *OrderRequest) Validate() error {
	if err := orderbookdomain.Direction(r.Direction).Validate(); err != nil {
		return err
	}
	if r.Owner == "" {
		return ErrOwnerEmpty
	}
	if _, err := r.QuantityInt(); err != nil {
		return err
	}
	return nil
}

// QuantityInt parses the quantity field.
func (r *OrderRequest) QuantityInt() (osmomath.Int, error) {
	quantity, ok := osmomath.NewIntFromString(r.Quantity)
	if !ok || !quantity.IsPositive() {
		return osmomath.Int{}, ErrQuantityInvalid
	}
	return quantity, nil
}

// OrderDirection returns the typed direction of the request.
func (r *OrderRequest) OrderDirection() orderbookdomain.Direction {
	return orderbookdomain.Direction(r.Direction)
}

// PlaceOrderResponse represents the response for placing an order.
type PlaceOrderResponse struct {
	Range orderbookdomain.Range `json:"range"`
}

// CancelOrderResponse represents the realized two-currency delta returned
// by a cancellation.
type CancelOrderResponse struct {
	Amount0 osmomath.Int `json:"amount0"`
	Amount1 osmomath.Int `json:"amount1"`
}

// ClaimResponse represents the output paid out by a claim.
type ClaimResponse struct {
	AmountOut osmomath.Int `json:"amount_out"`
}

// GetLevelsRequest represents the request for the /orderbook/levels endpoint.
type GetLevelsRequest struct {
	MarketID uint64
}

// UnmarshalHTTPRequest unmarshals the HTTP request to GetLevelsRequest.
func (r *GetLevelsRequest) UnmarshalHTTPRequest(c echo.Context) error {
	marketID, err := strconv.ParseUint(c.QueryParam("marketId"), 10, 64)
	if err != nil {
		return fmt.Errorf("marketId is not a valid unsigned integer")
	}
	r.MarketID = marketID
	return nil
}

// GetPositionRequest represents the request for the /orderbook/position
// endpoint.
type GetPositionRequest struct {
	MarketID  uint64
	Tick      int64
	Direction string
}

// UnmarshalHTTPRequest unmarshals the HTTP request to GetPositionRequest.
func (r *GetPositionRequest) UnmarshalHTTPRequest(c echo.Context) error {
	marketID, err := strconv.ParseUint(c.QueryParam("marketId"), 10, 64)
	if err != nil {
		return fmt.Errorf("marketId is not a valid unsigned integer")
	}
	tick, err := strconv.ParseInt(c.QueryParam("tick"), 10, 64)
	if err != nil {
		return fmt.Errorf("tick is not a valid integer")
	}
	r.MarketID = marketID
	r.Tick = tick
	r.Direction = c.QueryParam("direction")
	return nil
}

// Validate validates the GetPositionRequest.
func (r *GetPositionRequest) Validate() error {
	return orderbookdomain.Direction(r.Direction).Validate()
}
