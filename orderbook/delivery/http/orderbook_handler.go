package http

import (
	"net/http"

	deliveryhttp "github.com/osmosis-labs/limitbook/delivery/http"
	"github.com/osmosis-labs/limitbook/domain"
	orderbookdomain "github.com/osmosis-labs/limitbook/domain/orderbook"
	"github.com/osmosis-labs/limitbook/domain/mvc"
	"github.com/osmosis-labs/limitbook/log"
	"github.com/osmosis-labs/limitbook/orderbook/types"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"
)

// OrderbookHandler represent the httphandler for the limit order engine
type OrderbookHandler struct {
	OUsecase mvc.OrderBookUsecase
	logger   log.Logger
}

const resourcePrefix = "/orderbook"

func formatOrderbookResource(resource string) string {
	return resourcePrefix + resource
}

// NewOrderbookHandler will initialize the /orderbook resources endpoint
func NewOrderbookHandler(e *echo.Echo, us mvc.OrderBookUsecase, logger log.Logger) {
	handler := &OrderbookHandler{
		OUsecase: us,
		logger:   logger,
	}

	e.POST(formatOrderbookResource("/orders"), handler.PlaceOrder)
	e.DELETE(formatOrderbookResource("/orders"), handler.CancelOrder)
	e.POST(formatOrderbookResource("/claims"), handler.Claim)
	e.GET(formatOrderbookResource("/levels"), handler.GetLevels)
	e.GET(formatOrderbookResource("/position"), handler.GetPosition)
}

// PlaceOrder rests a new limit order.
func (a *OrderbookHandler) PlaceOrder(c echo.Context) (err error) {
	ctx := c.Request().Context()

	span := trace.SpanFromContext(ctx)
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
	}()

	var req types.OrderRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	quantity, err := req.QuantityInt()
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	usedRange, err := a.OUsecase.PlaceLimitOrder(ctx, req.MarketID, req.Tick, req.OrderDirection(), quantity, req.Owner)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, types.PlaceOrderResponse{Range: usedRange})
}

// CancelOrder removes resting quantity from an order, returning the
// realized two-currency delta.
func (a *OrderbookHandler) CancelOrder(c echo.Context) (err error) {
	ctx := c.Request().Context()

	span := trace.SpanFromContext(ctx)
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
	}()

	var req types.OrderRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	quantity, err := req.QuantityInt()
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	amount0, amount1, err := a.OUsecase.CancelLimitOrder(ctx, req.MarketID, req.Tick, req.OrderDirection(), quantity, req.Owner)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, types.CancelOrderResponse{Amount0: amount0, Amount1: amount1})
}

// Claim redeems claim tokens against an executed position.
func (a *OrderbookHandler) Claim(c echo.Context) (err error) {
	ctx := c.Request().Context()

	span := trace.SpanFromContext(ctx)
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
	}()

	var req types.OrderRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	quantity, err := req.QuantityInt()
	if err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	amountOut, err := a.OUsecase.Claim(ctx, req.MarketID, req.Tick, req.OrderDirection(), quantity, req.Owner)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, types.ClaimResponse{AmountOut: amountOut})
}

// GetLevels returns all resting levels of a market, asks then bids.
func (a *OrderbookHandler) GetLevels(c echo.Context) error {
	var req types.GetLevelsRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	levels, err := a.OUsecase.GetBookLevels(req.MarketID)
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, levels)
}

// GetPosition returns the claim accounting view of a position.
func (a *OrderbookHandler) GetPosition(c echo.Context) error {
	var req types.GetPositionRequest
	if err := deliveryhttp.ParseRequest(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseError{Message: err.Error()})
	}

	state, err := a.OUsecase.GetPositionState(req.MarketID, req.Tick, orderbookdomain.Direction(req.Direction))
	if err != nil {
		return c.JSON(domain.GetStatusCode(err), domain.ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, state)
}
