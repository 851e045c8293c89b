package orderbookusecase_test

import (
	"context"
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/osmosis-labs/limitbook/domain"
	orderbookdomain "github.com/osmosis-labs/limitbook/domain/orderbook"
	"github.com/osmosis-labs/limitbook/log"
	orderbookrepository "github.com/osmosis-labs/limitbook/orderbook/repository"
	orderbookusecase "github.com/osmosis-labs/limitbook/orderbook/usecase"
	"github.com/osmosis-labs/limitbook/sim"
)

// SimOrderbookTestSuite runs the engine against the in-process pool, bank
// and claim token ledger, so every token delta comes from real tick math
// instead of canned mock values.
type SimOrderbookTestSuite struct {
	suite.Suite

	pool   *sim.Pool
	bank   *sim.Bank
	ledger *sim.Ledger

	usecase *orderbookusecase.OrderbookUseCaseImpl
}

func TestSimOrderbookTestSuite(t *testing.T) {
	suite.Run(t, new(SimOrderbookTestSuite))
}

func (s *SimOrderbookTestSuite) SetupTest() {
	s.pool = sim.NewPool()
	s.bank = sim.NewBank()
	s.ledger = sim.NewLedger()

	s.pool.CreateMarket(defaultMarketID, 0)

	// Swap counterparties pay into custody outside the engine's view; seed
	// the custody account so executed outputs are payable.
	custodySeed := osmomath.NewInt(100_000_000)
	s.bank.Fund("engine", sdk.NewCoin(defaultBaseDenom, custodySeed))
	s.bank.Fund("engine", sdk.NewCoin(defaultQuoteDenom, custodySeed))

	s.usecase = orderbookusecase.New(
		&domain.OrderbookConfig{},
		orderbookrepository.New(),
		s.pool,
		s.bank,
		s.ledger,
		&log.NoOpLogger{},
	)
	s.Require().NoError(s.usecase.RegisterMarket(context.Background(), domain.MarketConfig{
		ID:          defaultMarketID,
		BaseDenom:   defaultBaseDenom,
		QuoteDenom:  defaultQuoteDenom,
		TickSpacing: defaultTickSpacing,
	}))
}

func (s *SimOrderbookTestSuite) fund(owner string, denom string, amount osmomath.Int) {
	s.bank.Fund(owner, sdk.NewCoin(denom, amount))
}

// movePrice stands in for a trade against the pool followed by the host's
// price update notification.
func (s *SimOrderbookTestSuite) movePrice(tick int64) {
	s.pool.SetCurrentTick(defaultMarketID, tick)
	s.Require().NoError(s.usecase.OnPriceUpdate(context.Background(), defaultMarketID))
}

// requireCloseTo asserts actual is within rounding dust below expected.
func requireCloseTo(t *testing.T, expected, actual osmomath.Int) {
	t.Helper()
	require.True(t, actual.LTE(expected), "actual %s above expected %s", actual, expected)
	require.True(t, actual.GTE(expected.Sub(osmomath.NewInt(2))), "actual %s too far below expected %s", actual, expected)
}

func (s *SimOrderbookTestSuite) TestSellOrderFullLifecycle() {
	ctx := context.Background()

	s.fund(defaultOwner, defaultBaseDenom, defaultQuantity)

	segment, err := s.usecase.PlaceLimitOrder(ctx, defaultMarketID, 150, orderbookdomain.DirectionAsk, defaultQuantity, defaultOwner)
	s.Require().NoError(err)
	s.Require().Equal(orderbookdomain.Range{LowerTick: 200, UpperTick: 300}, segment)

	// The input left the owner's custody.
	s.Require().True(s.bank.Balance(defaultOwner, defaultBaseDenom).LT(defaultQuantity))

	// Crossing the whole range executes the order.
	s.movePrice(400)

	levels, err := s.usecase.GetBookLevels(defaultMarketID)
	s.Require().NoError(err)
	s.Require().Empty(levels)

	state, err := s.usecase.GetPositionState(defaultMarketID, 150, orderbookdomain.DirectionAsk)
	s.Require().NoError(err)
	s.Require().True(state.PendingQuantity.IsZero())
	s.Require().True(state.Claimable.IsPositive())
	s.Require().Equal(defaultQuantity, state.ClaimSupply)

	// Redeeming every claim token pays the whole executed output.
	amountOut, err := s.usecase.Claim(ctx, defaultMarketID, 150, orderbookdomain.DirectionAsk, defaultQuantity, defaultOwner)
	s.Require().NoError(err)
	s.Require().Equal(state.Claimable, amountOut)
	s.Require().Equal(amountOut, s.bank.Balance(defaultOwner, defaultQuoteDenom))

	// The sale filled inside [200, 300], above the entry price, so the
	// quote proceeds are at least par.
	s.Require().True(amountOut.GTE(defaultQuantity))

	state, err = s.usecase.GetPositionState(defaultMarketID, 150, orderbookdomain.DirectionAsk)
	s.Require().NoError(err)
	s.Require().True(state.Claimable.IsZero())
	s.Require().True(state.ClaimSupply.IsZero())
}

func (s *SimOrderbookTestSuite) TestPartialCrossingFillsOnlyNearestLevel() {
	ctx := context.Background()

	alice, bob := "alice", "bob"
	s.fund(alice, defaultBaseDenom, defaultQuantity)
	s.fund(bob, defaultBaseDenom, defaultQuantity)

	// Alice anchors at 300, Bob at 500.
	_, err := s.usecase.PlaceLimitOrder(ctx, defaultMarketID, 150, orderbookdomain.DirectionAsk, defaultQuantity, alice)
	s.Require().NoError(err)
	_, err = s.usecase.PlaceLimitOrder(ctx, defaultMarketID, 350, orderbookdomain.DirectionAsk, defaultQuantity, bob)
	s.Require().NoError(err)

	// The price crosses Alice's anchor but not Bob's.
	s.movePrice(400)

	levels, err := s.usecase.GetBookLevels(defaultMarketID)
	s.Require().NoError(err)
	s.Require().Len(levels, 1)
	s.Require().Equal(int64(500), levels[0].Tick)

	aliceState, err := s.usecase.GetPositionState(defaultMarketID, 150, orderbookdomain.DirectionAsk)
	s.Require().NoError(err)
	s.Require().True(aliceState.Claimable.IsPositive())

	bobState, err := s.usecase.GetPositionState(defaultMarketID, 350, orderbookdomain.DirectionAsk)
	s.Require().NoError(err)
	s.Require().True(bobState.Claimable.IsZero())
	s.Require().Equal(defaultQuantity, bobState.PendingQuantity)

	// Bob's order never executed, so he can withdraw it whole, up to
	// rounding dust.
	amount0, amount1, err := s.usecase.CancelLimitOrder(ctx, defaultMarketID, 350, orderbookdomain.DirectionAsk, defaultQuantity, bob)
	s.Require().NoError(err)
	s.Require().True(amount1.IsZero())
	requireCloseTo(s.T(), defaultQuantity, amount0)
}

func (s *SimOrderbookTestSuite) TestManyPlacementsIntoOneRangeStillFill() {
	ctx := context.Background()

	// Many small deposits into the same range each round their liquidity
	// down on their own, so the tracked total sits slightly below a
	// reconversion of the summed quantity. The fill must withdraw the
	// tracked total or the pool rejects it and the level never executes.
	const placements = 50
	quantity := osmomath.NewInt(20_000)
	for i := 0; i < placements; i++ {
		s.fund(defaultOwner, defaultBaseDenom, quantity)
		_, err := s.usecase.PlaceLimitOrder(ctx, defaultMarketID, 150, orderbookdomain.DirectionAsk, quantity, defaultOwner)
		s.Require().NoError(err)
	}

	s.movePrice(400)

	levels, err := s.usecase.GetBookLevels(defaultMarketID)
	s.Require().NoError(err)
	s.Require().Empty(levels)

	state, err := s.usecase.GetPositionState(defaultMarketID, 150, orderbookdomain.DirectionAsk)
	s.Require().NoError(err)
	s.Require().True(state.PendingQuantity.IsZero())
	s.Require().True(state.Claimable.IsPositive())
}

func (s *SimOrderbookTestSuite) TestFullCancelOfMultiPlacementRange() {
	ctx := context.Background()

	quantity := osmomath.NewInt(333_333)
	total := osmomath.ZeroInt()
	for i := 0; i < 3; i++ {
		s.fund(defaultOwner, defaultBaseDenom, quantity)
		_, err := s.usecase.PlaceLimitOrder(ctx, defaultMarketID, 150, orderbookdomain.DirectionAsk, quantity, defaultOwner)
		s.Require().NoError(err)
		total = total.Add(quantity)
	}

	// Cancelling the aggregate withdraws exactly the deposited liquidity,
	// never the larger reconversion from the summed quantity.
	amount0, amount1, err := s.usecase.CancelLimitOrder(ctx, defaultMarketID, 150, orderbookdomain.DirectionAsk, total, defaultOwner)
	s.Require().NoError(err)
	s.Require().True(amount1.IsZero())
	requireCloseTo(s.T(), total, amount0)

	levels, err := s.usecase.GetBookLevels(defaultMarketID)
	s.Require().NoError(err)
	s.Require().Empty(levels)
}

func (s *SimOrderbookTestSuite) TestCancelInsideStraddledRange() {
	ctx := context.Background()

	s.fund(defaultOwner, defaultBaseDenom, defaultQuantity)

	// Ask resting on [200, 300], anchored at 300.
	_, err := s.usecase.PlaceLimitOrder(ctx, defaultMarketID, 150, orderbookdomain.DirectionAsk, defaultQuantity, defaultOwner)
	s.Require().NoError(err)

	// The price moves inside the range without crossing the anchor: the
	// order stays resting, partially converted.
	s.movePrice(250)

	levels, err := s.usecase.GetBookLevels(defaultMarketID)
	s.Require().NoError(err)
	s.Require().Len(levels, 1)

	// Cancelling now realizes a mix of both currencies.
	amount0, amount1, err := s.usecase.CancelLimitOrder(ctx, defaultMarketID, 150, orderbookdomain.DirectionAsk, defaultQuantity, defaultOwner)
	s.Require().NoError(err)
	s.Require().True(amount0.IsPositive())
	s.Require().True(amount1.IsPositive())

	s.Require().Equal(amount0, s.bank.Balance(defaultOwner, defaultBaseDenom))
	s.Require().Equal(amount1, s.bank.Balance(defaultOwner, defaultQuoteDenom))

	levels, err = s.usecase.GetBookLevels(defaultMarketID)
	s.Require().NoError(err)
	s.Require().Empty(levels)
}
