package orderbookrepository_test

import (
	"testing"

	"github.com/osmosis-labs/osmosis/osmomath"
	"github.com/stretchr/testify/suite"

	orderbookdomain "github.com/osmosis-labs/limitbook/domain/orderbook"
	orderbookrepository "github.com/osmosis-labs/limitbook/orderbook/repository"
	"github.com/osmosis-labs/limitbook/orderbook/types"
)

const defaultMarketID = uint64(1)

type BookRepositoryTestSuite struct {
	suite.Suite
	repository orderbookdomain.BookRepository
}

func TestBookRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(BookRepositoryTestSuite))
}

// SetupTest prepares the environment for each test
func (s *BookRepositoryTestSuite) SetupTest() {
	s.repository = orderbookrepository.New()
	s.repository.RegisterMarket(defaultMarketID)
}

func (s *BookRepositoryTestSuite) TestInsertLevel_KeepsSortOrder() {
	for _, tick := range []int64{300, 100, 200, -100} {
		s.Require().NoError(s.repository.InsertLevel(defaultMarketID, orderbookdomain.DirectionAsk, tick))
		s.Require().NoError(s.repository.AddPending(defaultMarketID, orderbookdomain.DirectionAsk, tick, osmomath.OneInt()))
	}

	// Duplicate insert is a no-op.
	s.Require().NoError(s.repository.InsertLevel(defaultMarketID, orderbookdomain.DirectionAsk, 200))

	levels, err := s.repository.GetLevels(defaultMarketID)
	s.Require().NoError(err)
	s.Require().Len(levels, 4)

	expectedTicks := []int64{-100, 100, 200, 300}
	for i, level := range levels {
		s.Require().Equal(expectedTicks[i], level.Tick)
		s.Require().Equal(orderbookdomain.DirectionAsk, level.Direction)
	}
}

func (s *BookRepositoryTestSuite) TestInsertLevel_UnknownMarket() {
	err := s.repository.InsertLevel(defaultMarketID+1, orderbookdomain.DirectionAsk, 100)
	s.Require().Error(err)
	s.Require().ErrorIs(err, types.MarketNotFoundError{MarketID: defaultMarketID + 1})
}

func (s *BookRepositoryTestSuite) TestPeekNearest() {
	// Empty side.
	_, ok := s.repository.PeekNearest(defaultMarketID, orderbookdomain.DirectionAsk)
	s.Require().False(ok)

	for _, tick := range []int64{300, 100, 200} {
		s.Require().NoError(s.repository.InsertLevel(defaultMarketID, orderbookdomain.DirectionAsk, tick))
	}
	for _, tick := range []int64{-300, -100, -200} {
		s.Require().NoError(s.repository.InsertLevel(defaultMarketID, orderbookdomain.DirectionBid, tick))
	}

	// Lowest ask is nearest the price.
	tick, ok := s.repository.PeekNearest(defaultMarketID, orderbookdomain.DirectionAsk)
	s.Require().True(ok)
	s.Require().Equal(int64(100), tick)

	// Highest bid is nearest the price.
	tick, ok = s.repository.PeekNearest(defaultMarketID, orderbookdomain.DirectionBid)
	s.Require().True(ok)
	s.Require().Equal(int64(-100), tick)

	// Peek does not remove.
	tick, ok = s.repository.PeekNearest(defaultMarketID, orderbookdomain.DirectionAsk)
	s.Require().True(ok)
	s.Require().Equal(int64(100), tick)
}

func (s *BookRepositoryTestSuite) TestRemoveLevel() {
	s.Require().NoError(s.repository.InsertLevel(defaultMarketID, orderbookdomain.DirectionBid, 100))

	s.Require().NoError(s.repository.RemoveLevel(defaultMarketID, orderbookdomain.DirectionBid, 100))

	// Removing an absent level surfaces a broken book invariant.
	err := s.repository.RemoveLevel(defaultMarketID, orderbookdomain.DirectionBid, 100)
	s.Require().Error(err)
}

func (s *BookRepositoryTestSuite) TestPendingLedger() {
	tick := int64(100)

	// Zero when no entry exists.
	s.Require().True(s.repository.GetPending(defaultMarketID, orderbookdomain.DirectionAsk, tick).IsZero())

	s.Require().NoError(s.repository.AddPending(defaultMarketID, orderbookdomain.DirectionAsk, tick, osmomath.NewInt(100)))
	s.Require().NoError(s.repository.AddPending(defaultMarketID, orderbookdomain.DirectionAsk, tick, osmomath.NewInt(50)))
	s.Require().Equal(osmomath.NewInt(150), s.repository.GetPending(defaultMarketID, orderbookdomain.DirectionAsk, tick))

	remaining, err := s.repository.SubPending(defaultMarketID, orderbookdomain.DirectionAsk, tick, osmomath.NewInt(100))
	s.Require().NoError(err)
	s.Require().Equal(osmomath.NewInt(50), remaining)

	remaining, err = s.repository.SubPending(defaultMarketID, orderbookdomain.DirectionAsk, tick, osmomath.NewInt(50))
	s.Require().NoError(err)
	s.Require().True(remaining.IsZero())
	s.Require().True(s.repository.GetPending(defaultMarketID, orderbookdomain.DirectionAsk, tick).IsZero())

	// Oversubtraction errors.
	_, err = s.repository.SubPending(defaultMarketID, orderbookdomain.DirectionAsk, tick, osmomath.NewInt(1))
	s.Require().Error(err)
}

func (s *BookRepositoryTestSuite) TestDepositedLedger() {
	tick := int64(100)

	// Zero when no entry exists.
	s.Require().True(s.repository.GetDeposited(defaultMarketID, orderbookdomain.DirectionAsk, tick).IsZero())

	s.Require().NoError(s.repository.AddDeposited(defaultMarketID, orderbookdomain.DirectionAsk, tick, osmomath.MustNewDecFromStr("10.5")))
	s.Require().NoError(s.repository.AddDeposited(defaultMarketID, orderbookdomain.DirectionAsk, tick, osmomath.MustNewDecFromStr("4.5")))
	s.Require().Equal(osmomath.NewDec(15), s.repository.GetDeposited(defaultMarketID, orderbookdomain.DirectionAsk, tick))

	remaining, err := s.repository.SubDeposited(defaultMarketID, orderbookdomain.DirectionAsk, tick, osmomath.NewDec(5))
	s.Require().NoError(err)
	s.Require().Equal(osmomath.NewDec(10), remaining)

	remaining, err = s.repository.SubDeposited(defaultMarketID, orderbookdomain.DirectionAsk, tick, osmomath.NewDec(10))
	s.Require().NoError(err)
	s.Require().True(remaining.IsZero())
	s.Require().True(s.repository.GetDeposited(defaultMarketID, orderbookdomain.DirectionAsk, tick).IsZero())

	// Oversubtraction errors.
	_, err = s.repository.SubDeposited(defaultMarketID, orderbookdomain.DirectionAsk, tick, osmomath.OneDec())
	s.Require().Error(err)

	// Unknown market errors.
	s.Require().Error(s.repository.AddDeposited(defaultMarketID+1, orderbookdomain.DirectionAsk, tick, osmomath.OneDec()))
}

func (s *BookRepositoryTestSuite) TestClaimAccounting() {
	position := orderbookdomain.Position{
		MarketID:  defaultMarketID,
		Tick:      200,
		Direction: orderbookdomain.DirectionAsk,
	}

	s.Require().True(s.repository.GetClaimable(position).IsZero())
	s.Require().True(s.repository.GetClaimSupply(position).IsZero())

	s.repository.AddClaimable(position, osmomath.NewInt(500))
	s.repository.AddClaimSupply(position, osmomath.NewInt(1000))

	s.Require().Equal(osmomath.NewInt(500), s.repository.GetClaimable(position))
	s.Require().Equal(osmomath.NewInt(1000), s.repository.GetClaimSupply(position))

	s.Require().NoError(s.repository.SubClaimable(position, osmomath.NewInt(500)))
	s.Require().NoError(s.repository.SubClaimSupply(position, osmomath.NewInt(400)))

	s.Require().True(s.repository.GetClaimable(position).IsZero())
	s.Require().Equal(osmomath.NewInt(600), s.repository.GetClaimSupply(position))

	// Oversubtraction errors.
	s.Require().Error(s.repository.SubClaimable(position, osmomath.NewInt(1)))
	s.Require().Error(s.repository.SubClaimSupply(position, osmomath.NewInt(601)))
}

func (s *BookRepositoryTestSuite) TestMarketsAreIndependent() {
	otherMarketID := defaultMarketID + 1
	s.repository.RegisterMarket(otherMarketID)

	s.Require().NoError(s.repository.InsertLevel(defaultMarketID, orderbookdomain.DirectionAsk, 100))
	s.Require().NoError(s.repository.AddPending(defaultMarketID, orderbookdomain.DirectionAsk, 100, osmomath.OneInt()))

	levels, err := s.repository.GetLevels(otherMarketID)
	s.Require().NoError(err)
	s.Require().Empty(levels)
}
