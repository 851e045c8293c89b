package grid_test

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/osmosis-labs/osmosis/osmomath"

	orderbookdomain "github.com/osmosis-labs/limitbook/domain/orderbook"
	"github.com/osmosis-labs/limitbook/orderbook/grid"
)

const defaultTickSpacing = uint64(100)

func TestSegment(t *testing.T) {
	tests := []struct {
		name          string
		requestedTick int64
		tickSpacing   uint64
		direction     orderbookdomain.Direction

		expectedRange orderbookdomain.Range
		expectedError bool
	}{
		{
			name:          "ask on aligned tick",
			requestedTick: 100,
			tickSpacing:   defaultTickSpacing,
			direction:     orderbookdomain.DirectionAsk,

			expectedRange: orderbookdomain.Range{LowerTick: 100, UpperTick: 200},
		},
		{
			name:          "ask on unaligned tick rounds the range up",
			requestedTick: 101,
			tickSpacing:   defaultTickSpacing,
			direction:     orderbookdomain.DirectionAsk,

			expectedRange: orderbookdomain.Range{LowerTick: 200, UpperTick: 300},
		},
		{
			name:          "bid on aligned tick",
			requestedTick: -200,
			tickSpacing:   defaultTickSpacing,
			direction:     orderbookdomain.DirectionBid,

			expectedRange: orderbookdomain.Range{LowerTick: -300, UpperTick: -200},
		},
		{
			name:          "bid on unaligned negative tick rounds the range down",
			requestedTick: -101,
			tickSpacing:   defaultTickSpacing,
			direction:     orderbookdomain.DirectionBid,

			expectedRange: orderbookdomain.Range{LowerTick: -300, UpperTick: -200},
		},
		{
			name:          "bid on unaligned positive tick rounds the range down",
			requestedTick: 199,
			tickSpacing:   defaultTickSpacing,
			direction:     orderbookdomain.DirectionBid,

			expectedRange: orderbookdomain.Range{LowerTick: 0, UpperTick: 100},
		},
		{
			name:          "ask on unaligned negative tick",
			requestedTick: -150,
			tickSpacing:   defaultTickSpacing,
			direction:     orderbookdomain.DirectionAsk,

			expectedRange: orderbookdomain.Range{LowerTick: -100, UpperTick: 0},
		},
		{
			name:          "zero tick spacing errors",
			requestedTick: 100,
			tickSpacing:   0,
			direction:     orderbookdomain.DirectionAsk,

			expectedError: true,
		},
		{
			name:          "invalid direction errors",
			requestedTick: 100,
			tickSpacing:   defaultTickSpacing,
			direction:     orderbookdomain.Direction("sideways"),

			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualRange, err := grid.Segment(tt.requestedTick, tt.tickSpacing, tt.direction)
			if tt.expectedError {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedRange, actualRange)

			// The anchor must reconstruct the same range.
			reconstructed, err := grid.SegmentForAnchor(actualRange.Anchor(tt.direction), tt.tickSpacing, tt.direction)
			assert.NoError(t, err)
			assert.Equal(t, actualRange, reconstructed)
		})
	}
}

func TestSegment_Deterministic(t *testing.T) {
	// Every requested tick in (100, 200] maps to the same ask range.
	for requestedTick := int64(101); requestedTick <= 200; requestedTick++ {
		actualRange, err := grid.Segment(requestedTick, defaultTickSpacing, orderbookdomain.DirectionAsk)
		assert.NoError(t, err)
		assert.Equal(t, orderbookdomain.Range{LowerTick: 200, UpperTick: 300}, actualRange)
	}

	// Every requested tick in [100, 200) maps to the same bid range.
	for requestedTick := int64(100); requestedTick < 200; requestedTick++ {
		actualRange, err := grid.Segment(requestedTick, defaultTickSpacing, orderbookdomain.DirectionBid)
		assert.NoError(t, err)
		assert.Equal(t, orderbookdomain.Range{LowerTick: 0, UpperTick: 100}, actualRange)
	}
}

func TestLiquidityForAmount_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		amount    osmomath.Int
		r         orderbookdomain.Range
		direction orderbookdomain.Direction
	}{
		{
			name:      "ask above spot",
			amount:    osmomath.NewInt(1_000_000),
			r:         orderbookdomain.Range{LowerTick: 100, UpperTick: 200},
			direction: orderbookdomain.DirectionAsk,
		},
		{
			name:      "bid below spot",
			amount:    osmomath.NewInt(1_000_000),
			r:         orderbookdomain.Range{LowerTick: -200, UpperTick: -100},
			direction: orderbookdomain.DirectionBid,
		},
		{
			name:      "small ask",
			amount:    osmomath.NewInt(1_000),
			r:         orderbookdomain.Range{LowerTick: 0, UpperTick: 100},
			direction: orderbookdomain.DirectionAsk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			liquidity, err := grid.LiquidityForAmount(tt.amount, tt.r, tt.direction)
			assert.NoError(t, err)
			assert.True(t, liquidity.IsPositive())

			roundTripped, err := grid.AmountForLiquidity(liquidity, tt.r, tt.direction)
			assert.NoError(t, err)

			// Both conversions round down so the round trip may lose dust
			// but never gains.
			assert.True(t, roundTripped.LTE(tt.amount))
			assert.True(t, roundTripped.GTE(tt.amount.Sub(osmomath.NewInt(2))))
		})
	}
}

func TestLiquidityForAmount_InvalidRange(t *testing.T) {
	_, err := grid.LiquidityForAmount(osmomath.NewInt(100), orderbookdomain.Range{LowerTick: 200, UpperTick: 100}, orderbookdomain.DirectionAsk)
	assert.Error(t, err)

	_, err = grid.AmountForLiquidity(osmomath.NewDec(100), orderbookdomain.Range{LowerTick: 100, UpperTick: 100}, orderbookdomain.DirectionBid)
	assert.Error(t, err)
}

func TestSqrtPrice_Memoized(t *testing.T) {
	first, err := grid.SqrtPrice(12345)
	assert.NoError(t, err)

	second, err := grid.SqrtPrice(12345)
	assert.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.True(t, first.IsPositive())
}
