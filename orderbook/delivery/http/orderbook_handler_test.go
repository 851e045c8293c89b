package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	"github.com/osmosis-labs/limitbook/domain/mocks"
	orderbookdomain "github.com/osmosis-labs/limitbook/domain/orderbook"
	orderbookdelivery "github.com/osmosis-labs/limitbook/orderbook/delivery/http"
	"github.com/osmosis-labs/limitbook/orderbook/types"
)

type OrderbookHandlerSuite struct {
	suite.Suite
}

func TestOrderbookHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderbookHandlerSuite))
}

func (s *OrderbookHandlerSuite) TestPlaceOrder() {
	testcases := []struct {
		name    string
		body    string
		handler *orderbookdelivery.OrderbookHandler

		expectedStatusCode int
		expectedResponse   string
	}{
		{
			name: "valid place request",
			body: `{"market_id":1,"tick":150,"direction":"ask","quantity":"1000000","owner":"alice"}`,
			handler: &orderbookdelivery.OrderbookHandler{
				OUsecase: &mocks.OrderbookUsecaseMock{
					PlaceLimitOrderFunc: func(ctx context.Context, marketID uint64, requestedTick int64, direction orderbookdomain.Direction, quantity osmomath.Int, owner string) (orderbookdomain.Range, error) {
						return orderbookdomain.Range{LowerTick: 200, UpperTick: 300}, nil
					},
				},
			},

			expectedStatusCode: http.StatusOK,
			expectedResponse:   `"lower_tick":200`,
		},
		{
			name:    "invalid direction is a bad request",
			body:    `{"market_id":1,"tick":150,"direction":"sideways","quantity":"1000000","owner":"alice"}`,
			handler: &orderbookdelivery.OrderbookHandler{},

			expectedStatusCode: http.StatusBadRequest,
			expectedResponse:   `direction`,
		},
		{
			name:    "non numeric quantity is a bad request",
			body:    `{"market_id":1,"tick":150,"direction":"ask","quantity":"many","owner":"alice"}`,
			handler: &orderbookdelivery.OrderbookHandler{},

			expectedStatusCode: http.StatusBadRequest,
			expectedResponse:   `quantity`,
		},
		{
			name: "client error maps to 400",
			body: `{"market_id":5,"tick":150,"direction":"ask","quantity":"1000000","owner":"alice"}`,
			handler: &orderbookdelivery.OrderbookHandler{
				OUsecase: &mocks.OrderbookUsecaseMock{
					PlaceLimitOrderFunc: func(ctx context.Context, marketID uint64, requestedTick int64, direction orderbookdomain.Direction, quantity osmomath.Int, owner string) (orderbookdomain.Range, error) {
						return orderbookdomain.Range{}, types.MarketNotFoundError{MarketID: marketID}
					},
				},
			},

			expectedStatusCode: http.StatusBadRequest,
			expectedResponse:   `market 5 not found`,
		},
		{
			name: "collaborator failure maps to 500",
			body: `{"market_id":1,"tick":150,"direction":"ask","quantity":"1000000","owner":"alice"}`,
			handler: &orderbookdelivery.OrderbookHandler{
				OUsecase: &mocks.OrderbookUsecaseMock{
					PlaceLimitOrderFunc: func(ctx context.Context, marketID uint64, requestedTick int64, direction orderbookdomain.Direction, quantity osmomath.Int, owner string) (orderbookdomain.Range, error) {
						return orderbookdomain.Range{}, types.CollaboratorFailureError{Collaborator: "amm", Op: "add liquidity", Err: errors.New("unreachable")}
					},
				},
			},

			expectedStatusCode: http.StatusInternalServerError,
			expectedResponse:   `amm collaborator failed`,
		},
	}

	for _, tc := range testcases {
		s.Run(tc.name, func() {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/orderbook/orders", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := tc.handler.PlaceOrder(c)
			s.Require().NoError(err)

			s.Require().Equal(tc.expectedStatusCode, rec.Code)
			s.Require().Contains(rec.Body.String(), tc.expectedResponse)
		})
	}
}

func (s *OrderbookHandlerSuite) TestClaim() {
	handler := &orderbookdelivery.OrderbookHandler{
		OUsecase: &mocks.OrderbookUsecaseMock{
			ClaimFunc: func(ctx context.Context, marketID uint64, requestedTick int64, direction orderbookdomain.Direction, claimQuantity osmomath.Int, owner string) (osmomath.Int, error) {
				return osmomath.NewInt(495_000), nil
			},
		},
	}

	e := echo.New()
	body := `{"market_id":1,"tick":150,"direction":"ask","quantity":"500000","owner":"alice"}`
	req := httptest.NewRequest(http.MethodPost, "/orderbook/claims", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	s.Require().NoError(handler.Claim(c))
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Contains(rec.Body.String(), `"amount_out":"495000"`)
}

func (s *OrderbookHandlerSuite) TestGetLevels() {
	handler := &orderbookdelivery.OrderbookHandler{
		OUsecase: &mocks.OrderbookUsecaseMock{
			GetBookLevelsFunc: func(marketID uint64) ([]orderbookdomain.BookLevel, error) {
				return []orderbookdomain.BookLevel{
					{Tick: 300, Direction: orderbookdomain.DirectionAsk, PendingQuantity: osmomath.NewInt(1_000_000)},
				}, nil
			},
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/orderbook/levels?marketId=1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	s.Require().NoError(handler.GetLevels(c))
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Contains(rec.Body.String(), `"tick":300`)
}
