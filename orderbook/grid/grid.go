package grid

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/osmosis-labs/osmosis/osmomath"

	clmath "github.com/osmosis-labs/osmosis/v25/x/concentrated-liquidity/math"

	orderbookdomain "github.com/osmosis-labs/limitbook/domain/orderbook"
	"github.com/osmosis-labs/limitbook/orderbook/types"
)

// sqrtPriceCacheSize bounds the tick -> sqrt price memo. Resting books
// cluster around the current price so the working set is small.
const sqrtPriceCacheSize = 1024

var sqrtPriceCache *lru.Cache[int64, osmomath.BigDec]

func init() {
	var err error
	sqrtPriceCache, err = lru.New[int64, osmomath.BigDec](sqrtPriceCacheSize)
	if err != nil {
		panic(err)
	}
}

// Segment computes the unique spacing-aligned range containing or bordering
// the requested tick, biased by direction: an ask range sits at or above the
// requested tick (its upper tick triggers execution), a bid range sits at or
// below it (its lower tick triggers execution). Alignment floors toward
// negative infinity so that it is symmetric across zero.
func Segment(requestedTick int64, tickSpacing uint64, direction orderbookdomain.Direction) (orderbookdomain.Range, error) {
	if tickSpacing == 0 {
		return orderbookdomain.Range{}, types.InvalidTickSpacingError{}
	}
	if err := direction.Validate(); err != nil {
		return orderbookdomain.Range{}, err
	}

	spacing := int64(tickSpacing)
	if direction == orderbookdomain.DirectionAsk {
		lower := ceilAlign(requestedTick, spacing)
		return orderbookdomain.Range{LowerTick: lower, UpperTick: lower + spacing}, nil
	}

	upper := floorAlign(requestedTick, spacing)
	return orderbookdomain.Range{LowerTick: upper - spacing, UpperTick: upper}, nil
}

// SegmentForAnchor reconstructs the range from its anchor tick. The anchor is
// the upper tick for asks and the lower tick for bids, so the inverse is
// direction dependent.
func SegmentForAnchor(anchorTick int64, tickSpacing uint64, direction orderbookdomain.Direction) (orderbookdomain.Range, error) {
	if tickSpacing == 0 {
		return orderbookdomain.Range{}, types.InvalidTickSpacingError{}
	}

	spacing := int64(tickSpacing)
	if direction == orderbookdomain.DirectionAsk {
		return orderbookdomain.Range{LowerTick: anchorTick - spacing, UpperTick: anchorTick}, nil
	}
	return orderbookdomain.Range{LowerTick: anchorTick, UpperTick: anchorTick + spacing}, nil
}

// LiquidityForAmount converts a linear input quantity into the AMM's
// liquidity unit for a one-sided range. Asks deposit the base denom (token
// zero), bids the quote denom (token one). Rounds down, matching the pool's
// own reverse conversion.
func LiquidityForAmount(amount osmomath.Int, r orderbookdomain.Range, direction orderbookdomain.Direction) (osmomath.Dec, error) {
	if r.LowerTick >= r.UpperTick {
		return osmomath.Dec{}, types.InvalidRangeError{LowerTick: r.LowerTick, UpperTick: r.UpperTick}
	}

	sqrtPriceLower, err := SqrtPrice(r.LowerTick)
	if err != nil {
		return osmomath.Dec{}, err
	}
	sqrtPriceUpper, err := SqrtPrice(r.UpperTick)
	if err != nil {
		return osmomath.Dec{}, err
	}

	if direction == orderbookdomain.DirectionAsk {
		return clmath.Liquidity0(amount, sqrtPriceLower, sqrtPriceUpper), nil
	}
	return clmath.Liquidity1(amount, sqrtPriceLower, sqrtPriceUpper), nil
}

// AmountForLiquidity is the AMM-side inverse of LiquidityForAmount, rounding
// down. Composing the two recovers the original quantity up to a small
// truncation loss, never a gain.
func AmountForLiquidity(liquidity osmomath.Dec, r orderbookdomain.Range, direction orderbookdomain.Direction) (osmomath.Int, error) {
	if r.LowerTick >= r.UpperTick {
		return osmomath.Int{}, types.InvalidRangeError{LowerTick: r.LowerTick, UpperTick: r.UpperTick}
	}

	sqrtPriceLower, err := SqrtPrice(r.LowerTick)
	if err != nil {
		return osmomath.Int{}, err
	}
	sqrtPriceUpper, err := SqrtPrice(r.UpperTick)
	if err != nil {
		return osmomath.Int{}, err
	}

	if direction == orderbookdomain.DirectionAsk {
		return clmath.CalcAmount0Delta(liquidity, sqrtPriceLower, sqrtPriceUpper, false).Dec().TruncateInt(), nil
	}
	return clmath.CalcAmount1Delta(liquidity, sqrtPriceLower, sqrtPriceUpper, false).Dec().TruncateInt(), nil
}

// SqrtPrice returns the sqrt price of the tick, memoized. The conversion is
// pure so cached entries never go stale.
func SqrtPrice(tick int64) (osmomath.BigDec, error) {
	if sqrtPrice, ok := sqrtPriceCache.Get(tick); ok {
		return sqrtPrice, nil
	}

	sqrtPrice, err := clmath.TickToSqrtPrice(tick)
	if err != nil {
		return osmomath.BigDec{}, err
	}

	sqrtPriceCache.Add(tick, sqrtPrice)
	return sqrtPrice, nil
}

// floorAlign rounds tick down to a multiple of spacing, flooring toward
// negative infinity rather than truncating toward zero.
func floorAlign(tick, spacing int64) int64 {
	quotient := tick / spacing
	if tick%spacing != 0 && tick < 0 {
		quotient--
	}
	return quotient * spacing
}

// ceilAlign rounds tick up to a multiple of spacing.
func ceilAlign(tick, spacing int64) int64 {
	aligned := floorAlign(tick, spacing)
	if aligned != tick {
		aligned += spacing
	}
	return aligned
}
