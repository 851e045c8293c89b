package orderbookusecase

import (
	"context"
	"sync"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/osmosis-labs/osmosis/osmomath"
	"go.uber.org/zap"

	"github.com/osmosis-labs/limitbook/domain"
	ammdomain "github.com/osmosis-labs/limitbook/domain/amm"
	"github.com/osmosis-labs/limitbook/domain/mvc"
	orderbookdomain "github.com/osmosis-labs/limitbook/domain/orderbook"
	"github.com/osmosis-labs/limitbook/log"
	"github.com/osmosis-labs/limitbook/orderbook/grid"
	"github.com/osmosis-labs/limitbook/orderbook/telemetry"
	"github.com/osmosis-labs/limitbook/orderbook/types"
)

// marketMeta carries the market's static config, its serialization lock and
// the last tick observed by the crossing loop. The lock serializes every
// operation touching the market's state, including price updates.
type marketMeta struct {
	mu       sync.Mutex
	config   domain.MarketConfig
	lastTick int64
}

type OrderbookUseCaseImpl struct {
	bookRepository orderbookdomain.BookRepository
	pool           ammdomain.PoolClient
	bank           ammdomain.BankClient
	claims         ammdomain.ClaimTokenLedger
	logger         log.Logger

	maxFillIterations int

	marketsLock sync.RWMutex
	markets     map[uint64]*marketMeta
}

var _ mvc.OrderBookUsecase = &OrderbookUseCaseImpl{}

// New creates a new orderbook use case.
func New(
	config *domain.OrderbookConfig,
	bookRepository orderbookdomain.BookRepository,
	pool ammdomain.PoolClient,
	bank ammdomain.BankClient,
	claims ammdomain.ClaimTokenLedger,
	logger log.Logger,
) *OrderbookUseCaseImpl {
	maxFillIterations := domain.DefaultMaxFillIterations
	if config != nil && config.MaxFillIterations > 0 {
		maxFillIterations = config.MaxFillIterations
	}

	return &OrderbookUseCaseImpl{
		bookRepository:    bookRepository,
		pool:              pool,
		bank:              bank,
		claims:            claims,
		logger:            logger,
		maxFillIterations: maxFillIterations,
		markets:           map[uint64]*marketMeta{},
	}
}

// RegisterMarket implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) RegisterMarket(ctx context.Context, config domain.MarketConfig) error {
	if config.TickSpacing == 0 {
		return types.InvalidTickSpacingError{MarketID: config.ID}
	}
	if err := domain.ValidateInputDenoms(config.BaseDenom, config.QuoteDenom); err != nil {
		return err
	}

	currentTick, err := o.pool.CurrentTick(ctx, config.ID)
	if err != nil {
		return o.collaboratorFailure("amm", "current tick", err)
	}

	o.marketsLock.Lock()
	defer o.marketsLock.Unlock()

	if _, ok := o.markets[config.ID]; ok {
		return types.MarketAlreadyRegisteredError{MarketID: config.ID}
	}

	o.bookRepository.RegisterMarket(config.ID)
	o.markets[config.ID] = &marketMeta{
		config:   config,
		lastTick: currentTick,
	}

	o.logger.Info("registered market",
		zap.Uint64("market_id", config.ID),
		zap.Uint64("tick_spacing", config.TickSpacing),
		zap.Int64("current_tick", currentTick),
	)

	return nil
}

func (o *OrderbookUseCaseImpl) getMarket(marketID uint64) (*marketMeta, error) {
	o.marketsLock.RLock()
	defer o.marketsLock.RUnlock()

	market, ok := o.markets[marketID]
	if !ok {
		return nil, types.MarketNotFoundError{MarketID: marketID}
	}
	return market, nil
}

// PlaceLimitOrder implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) PlaceLimitOrder(ctx context.Context, marketID uint64, requestedTick int64, direction orderbookdomain.Direction, quantity osmomath.Int, owner string) (orderbookdomain.Range, error) {
	market, err := o.getMarket(marketID)
	if err != nil {
		return orderbookdomain.Range{}, err
	}

	market.mu.Lock()
	defer market.mu.Unlock()

	if err := direction.Validate(); err != nil {
		return orderbookdomain.Range{}, err
	}
	if quantity.IsNil() || !quantity.IsPositive() {
		return orderbookdomain.Range{}, types.InvalidQuantityError{Quantity: quantity}
	}

	currentTick, err := o.pool.CurrentTick(ctx, marketID)
	if err != nil {
		return orderbookdomain.Range{}, o.collaboratorFailure("amm", "current tick", err)
	}

	// Orders must rest strictly on their own side of the current price.
	if direction == orderbookdomain.DirectionAsk && requestedTick <= currentTick {
		return orderbookdomain.Range{}, types.InvalidOrderError{
			RequestedTick: requestedTick,
			CurrentTick:   currentTick,
			Direction:     direction,
			Reason:        "sell orders must rest strictly above the current price",
		}
	}
	if direction == orderbookdomain.DirectionBid && requestedTick >= currentTick {
		return orderbookdomain.Range{}, types.InvalidOrderError{
			RequestedTick: requestedTick,
			CurrentTick:   currentTick,
			Direction:     direction,
			Reason:        "buy orders must rest strictly below the current price",
		}
	}

	segment, err := grid.Segment(requestedTick, market.config.TickSpacing, direction)
	if err != nil {
		return orderbookdomain.Range{}, err
	}

	anchor := segment.Anchor(direction)
	position := orderbookdomain.Position{MarketID: marketID, Tick: anchor, Direction: direction}

	// A filled position must drain its output before the same range accepts
	// new orders. Minting fresh claim tokens into live claimable would hand
	// the new holder a share of output earned by the filled holders.
	if o.bookRepository.GetClaimable(position).IsPositive() {
		return orderbookdomain.Range{}, types.UnclaimedOutputError{Position: position}
	}

	liquidity, err := grid.LiquidityForAmount(quantity, segment, direction)
	if err != nil {
		return orderbookdomain.Range{}, err
	}

	delta, err := o.pool.AddLiquidity(ctx, marketID, segment.LowerTick, segment.UpperTick, liquidity)
	if err != nil {
		return orderbookdomain.Range{}, o.collaboratorFailure("amm", "add liquidity", err)
	}

	if err := o.settleDelta(ctx, market.config, delta, owner); err != nil {
		return orderbookdomain.Range{}, err
	}

	if err := o.claims.Mint(ctx, owner, position, quantity); err != nil {
		return orderbookdomain.Range{}, o.collaboratorFailure("claim ledger", "mint", err)
	}

	// Collaborators have all accepted; own state mutations cannot fail past
	// this point, which is what makes the operation all-or-nothing.
	if err := o.bookRepository.AddPending(marketID, direction, anchor, quantity); err != nil {
		return orderbookdomain.Range{}, err
	}
	if err := o.bookRepository.AddDeposited(marketID, direction, anchor, liquidity); err != nil {
		return orderbookdomain.Range{}, err
	}
	if err := o.bookRepository.InsertLevel(marketID, direction, anchor); err != nil {
		return orderbookdomain.Range{}, err
	}
	o.bookRepository.AddClaimSupply(position, quantity)

	o.logger.Debug("placed limit order",
		zap.Uint64("market_id", marketID),
		zap.String("direction", string(direction)),
		zap.Int64("anchor_tick", anchor),
		zap.String("quantity", quantity.String()),
	)

	return segment, nil
}

// CancelLimitOrder implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) CancelLimitOrder(ctx context.Context, marketID uint64, requestedTick int64, direction orderbookdomain.Direction, quantity osmomath.Int, owner string) (osmomath.Int, osmomath.Int, error) {
	market, err := o.getMarket(marketID)
	if err != nil {
		return osmomath.Int{}, osmomath.Int{}, err
	}

	market.mu.Lock()
	defer market.mu.Unlock()

	if err := direction.Validate(); err != nil {
		return osmomath.Int{}, osmomath.Int{}, err
	}
	if quantity.IsNil() || !quantity.IsPositive() {
		return osmomath.Int{}, osmomath.Int{}, types.InvalidQuantityError{Quantity: quantity}
	}

	// Recompute the range exactly as placement did; the anchor addresses
	// both the pending ledger entry and the claim position.
	segment, err := grid.Segment(requestedTick, market.config.TickSpacing, direction)
	if err != nil {
		return osmomath.Int{}, osmomath.Int{}, err
	}

	anchor := segment.Anchor(direction)
	position := orderbookdomain.Position{MarketID: marketID, Tick: anchor, Direction: direction}

	balance, err := o.claims.BalanceOf(ctx, owner, position)
	if err != nil {
		return osmomath.Int{}, osmomath.Int{}, o.collaboratorFailure("claim ledger", "balance", err)
	}
	if balance.LT(quantity) {
		return osmomath.Int{}, osmomath.Int{}, types.NotEnoughToClaimError{Owner: owner, Requested: quantity, Available: balance}
	}

	// An executed position has nothing resting to cancel; its claim tokens
	// are only redeemable.
	pending := o.bookRepository.GetPending(marketID, direction, anchor)
	if pending.LT(quantity) {
		return osmomath.Int{}, osmomath.Int{}, types.NotEnoughToClaimError{Owner: owner, Requested: quantity, Available: pending}
	}

	liquidity, err := grid.LiquidityForAmount(quantity, segment, direction)
	if err != nil {
		return osmomath.Int{}, osmomath.Int{}, err
	}

	// Each placement's deposit rounded down on its own, so reconverting the
	// aggregate quantity can come out above what the range actually holds. A
	// full cancellation withdraws exactly the tracked deposit; partial ones
	// cap at it.
	deposited := o.bookRepository.GetDeposited(marketID, direction, anchor)
	if quantity.Equal(pending) || liquidity.GT(deposited) {
		liquidity = deposited
	}

	delta, err := o.pool.RemoveLiquidity(ctx, marketID, segment.LowerTick, segment.UpperTick, liquidity)
	if err != nil {
		return osmomath.Int{}, osmomath.Int{}, o.collaboratorFailure("amm", "remove liquidity", err)
	}

	if err := o.claims.Burn(ctx, owner, position, quantity); err != nil {
		return osmomath.Int{}, osmomath.Int{}, o.collaboratorFailure("claim ledger", "burn", err)
	}

	if err := o.settleDelta(ctx, market.config, delta, owner); err != nil {
		return osmomath.Int{}, osmomath.Int{}, err
	}

	remaining, err := o.bookRepository.SubPending(marketID, direction, anchor, quantity)
	if err != nil {
		return osmomath.Int{}, osmomath.Int{}, err
	}
	if _, err := o.bookRepository.SubDeposited(marketID, direction, anchor, liquidity); err != nil {
		return osmomath.Int{}, osmomath.Int{}, err
	}
	if remaining.IsZero() {
		if err := o.bookRepository.RemoveLevel(marketID, direction, anchor); err != nil {
			return osmomath.Int{}, osmomath.Int{}, err
		}
	}
	if err := o.bookRepository.SubClaimSupply(position, quantity); err != nil {
		return osmomath.Int{}, osmomath.Int{}, err
	}

	o.logger.Debug("cancelled limit order",
		zap.Uint64("market_id", marketID),
		zap.String("direction", string(direction)),
		zap.Int64("anchor_tick", anchor),
		zap.String("quantity", quantity.String()),
	)

	return delta.Total0(), delta.Total1(), nil
}

// Claim implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) Claim(ctx context.Context, marketID uint64, requestedTick int64, direction orderbookdomain.Direction, claimQuantity osmomath.Int, owner string) (osmomath.Int, error) {
	market, err := o.getMarket(marketID)
	if err != nil {
		return osmomath.Int{}, err
	}

	market.mu.Lock()
	defer market.mu.Unlock()

	if err := direction.Validate(); err != nil {
		return osmomath.Int{}, err
	}
	if claimQuantity.IsNil() || !claimQuantity.IsPositive() {
		return osmomath.Int{}, types.InvalidQuantityError{Quantity: claimQuantity}
	}

	segment, err := grid.Segment(requestedTick, market.config.TickSpacing, direction)
	if err != nil {
		return osmomath.Int{}, err
	}

	anchor := segment.Anchor(direction)
	position := orderbookdomain.Position{MarketID: marketID, Tick: anchor, Direction: direction}

	claimable := o.bookRepository.GetClaimable(position)
	if !claimable.IsPositive() {
		return osmomath.Int{}, types.NothingToClaimError{Position: position}
	}

	balance, err := o.claims.BalanceOf(ctx, owner, position)
	if err != nil {
		return osmomath.Int{}, o.collaboratorFailure("claim ledger", "balance", err)
	}
	if balance.LT(claimQuantity) {
		return osmomath.Int{}, types.NotEnoughToClaimError{Owner: owner, Requested: claimQuantity, Available: balance}
	}

	// Pro-rata share, floored. Late claimers get the same per-token rate as
	// early ones; the claim burning the last token has claimQuantity equal
	// to supply and sweeps the accumulated rounding residue, retiring the
	// position.
	supply := o.bookRepository.GetClaimSupply(position)
	amountOut := claimQuantity.Mul(claimable).Quo(supply)

	if err := o.claims.Burn(ctx, owner, position, claimQuantity); err != nil {
		return osmomath.Int{}, o.collaboratorFailure("claim ledger", "burn", err)
	}

	if amountOut.IsPositive() {
		outputDenom := market.config.QuoteDenom
		if direction == orderbookdomain.DirectionBid {
			outputDenom = market.config.BaseDenom
		}
		if err := o.bank.Take(ctx, sdk.NewCoin(outputDenom, amountOut), owner); err != nil {
			return osmomath.Int{}, o.collaboratorFailure("bank", "take", err)
		}
	}

	if err := o.bookRepository.SubClaimable(position, amountOut); err != nil {
		return osmomath.Int{}, err
	}
	if err := o.bookRepository.SubClaimSupply(position, claimQuantity); err != nil {
		return osmomath.Int{}, err
	}

	return amountOut, nil
}

// OnPriceUpdate implements mvc.OrderBookUsecase.
//
// The loop always processes the resting level nearest the current price
// first, so once a level fails the crossing test no farther level can pass
// it. Each executed level is removed from the book before the next crossing
// test, which is what makes the loop visit every level at most once. The
// current tick is re-read after every execution because withdrawing
// liquidity can itself move the price.
func (o *OrderbookUseCaseImpl) OnPriceUpdate(ctx context.Context, marketID uint64) error {
	market, err := o.getMarket(marketID)
	if err != nil {
		return err
	}

	market.mu.Lock()
	defer market.mu.Unlock()

	currentTick, err := o.pool.CurrentTick(ctx, marketID)
	if err != nil {
		telemetry.PriceUpdateErrorCounter.Inc()
		return o.collaboratorFailure("amm", "current tick", err)
	}

	var direction orderbookdomain.Direction
	switch {
	case currentTick > market.lastTick:
		direction = orderbookdomain.DirectionAsk
	case currentTick < market.lastTick:
		direction = orderbookdomain.DirectionBid
	default:
		return nil
	}

	for i := 0; ; i++ {
		if i >= o.maxFillIterations {
			telemetry.FillIterationBoundReachedCounter.Inc()
			o.logger.Warn("fill cascade hit iteration bound",
				zap.Uint64("market_id", marketID),
				zap.Int("max_fill_iterations", o.maxFillIterations),
			)
			// Leave lastTick behind the current tick so the next update
			// resumes the cascade instead of short-circuiting on an
			// unchanged tick.
			return nil
		}

		anchor, ok := o.bookRepository.PeekNearest(marketID, direction)
		if !ok {
			break
		}

		if direction == orderbookdomain.DirectionAsk && currentTick < anchor {
			break
		}
		if direction == orderbookdomain.DirectionBid && currentTick > anchor {
			break
		}

		if err := o.fillLevel(ctx, market, direction, anchor); err != nil {
			telemetry.PriceUpdateErrorCounter.Inc()
			return err
		}

		currentTick, err = o.pool.CurrentTick(ctx, marketID)
		if err != nil {
			telemetry.PriceUpdateErrorCounter.Inc()
			return o.collaboratorFailure("amm", "current tick", err)
		}
	}

	market.lastTick = currentTick
	return nil
}

// fillLevel executes one fully crossed level: withdraws its whole range from
// the pool, clears its pending quantity, removes it from the book and
// accrues the single-currency output to the position. Callers hold the
// market lock.
func (o *OrderbookUseCaseImpl) fillLevel(ctx context.Context, market *marketMeta, direction orderbookdomain.Direction, anchor int64) error {
	marketID := market.config.ID

	pending := o.bookRepository.GetPending(marketID, direction, anchor)
	if !pending.IsPositive() {
		// A resting level always has nonzero pending quantity.
		return types.LevelNotFoundError{MarketID: marketID, Tick: anchor, Direction: direction}
	}

	segment, err := grid.SegmentForAnchor(anchor, market.config.TickSpacing, direction)
	if err != nil {
		return err
	}

	// Withdraw the liquidity placements actually deposited. Reconverting the
	// aggregate pending quantity rounds differently and can exceed the
	// range's holdings, which the pool would reject.
	liquidity := o.bookRepository.GetDeposited(marketID, direction, anchor)
	if !liquidity.IsPositive() {
		return types.LevelNotFoundError{MarketID: marketID, Tick: anchor, Direction: direction}
	}

	delta, err := o.pool.RemoveLiquidity(ctx, marketID, segment.LowerTick, segment.UpperTick, liquidity)
	if err != nil {
		return o.collaboratorFailure("amm", "remove liquidity", err)
	}

	// The range is fully one-sided once crossed: asks were sold into the
	// quote denom, bids into the base denom. Accrued fees on the output side
	// belong to the position holders.
	output := delta.Total1()
	if direction == orderbookdomain.DirectionBid {
		output = delta.Total0()
	}

	if _, err := o.bookRepository.SubPending(marketID, direction, anchor, pending); err != nil {
		return err
	}
	if _, err := o.bookRepository.SubDeposited(marketID, direction, anchor, liquidity); err != nil {
		return err
	}
	if err := o.bookRepository.RemoveLevel(marketID, direction, anchor); err != nil {
		return err
	}

	position := orderbookdomain.Position{MarketID: marketID, Tick: anchor, Direction: direction}
	o.bookRepository.AddClaimable(position, output)

	telemetry.LevelFilledCounter.Inc()
	o.logger.Info("filled level",
		zap.Uint64("market_id", marketID),
		zap.String("direction", string(direction)),
		zap.Int64("anchor_tick", anchor),
		zap.String("quantity", pending.String()),
		zap.String("output", output.String()),
	)

	return nil
}

// GetBookLevels implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) GetBookLevels(marketID uint64) ([]orderbookdomain.BookLevel, error) {
	if _, err := o.getMarket(marketID); err != nil {
		return nil, err
	}
	return o.bookRepository.GetLevels(marketID)
}

// GetPositionState implements mvc.OrderBookUsecase.
func (o *OrderbookUseCaseImpl) GetPositionState(marketID uint64, requestedTick int64, direction orderbookdomain.Direction) (orderbookdomain.PositionState, error) {
	market, err := o.getMarket(marketID)
	if err != nil {
		return orderbookdomain.PositionState{}, err
	}

	segment, err := grid.Segment(requestedTick, market.config.TickSpacing, direction)
	if err != nil {
		return orderbookdomain.PositionState{}, err
	}

	anchor := segment.Anchor(direction)
	position := orderbookdomain.Position{MarketID: marketID, Tick: anchor, Direction: direction}

	return orderbookdomain.PositionState{
		Position:        position,
		PendingQuantity: o.bookRepository.GetPending(marketID, direction, anchor),
		Claimable:       o.bookRepository.GetClaimable(position),
		ClaimSupply:     o.bookRepository.GetClaimSupply(position),
	}, nil
}

// settleDelta moves real value for each nonzero delta component, currency
// zero then currency one. Negative components are collected from the owner,
// positive components are paid out, fees included.
func (o *OrderbookUseCaseImpl) settleDelta(ctx context.Context, config domain.MarketConfig, delta ammdomain.LiquidityDelta, owner string) error {
	totals := []struct {
		denom  string
		amount osmomath.Int
	}{
		{denom: config.BaseDenom, amount: delta.Total0()},
		{denom: config.QuoteDenom, amount: delta.Total1()},
	}

	for _, total := range totals {
		switch {
		case total.amount.IsNegative():
			if err := o.bank.Settle(ctx, sdk.NewCoin(total.denom, total.amount.Neg()), owner); err != nil {
				return o.collaboratorFailure("bank", "settle", err)
			}
		case total.amount.IsPositive():
			if err := o.bank.Take(ctx, sdk.NewCoin(total.denom, total.amount), owner); err != nil {
				return o.collaboratorFailure("bank", "take", err)
			}
		}
	}

	return nil
}

func (o *OrderbookUseCaseImpl) collaboratorFailure(collaborator, op string, err error) error {
	telemetry.CollaboratorFailureCounter.Inc()
	return types.CollaboratorFailureError{Collaborator: collaborator, Op: op, Err: err}
}
