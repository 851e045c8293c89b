package orderbookrepository

import (
	"sync"

	"github.com/osmosis-labs/osmosis/osmomath"
	"golang.org/x/exp/slices"

	orderbookdomain "github.com/osmosis-labs/limitbook/domain/orderbook"
	"github.com/osmosis-labs/limitbook/orderbook/types"
)

// levelKey addresses one pending ledger entry within a market.
type levelKey struct {
	direction orderbookdomain.Direction
	tick      int64
}

// marketState is the per-market state bundle: the two sorted level slices,
// the pending ledger and the deposited liquidity ledger. Levels are kept
// strictly sorted ascending with no duplicates; binary search keyed directly
// by the signed tick.
type marketState struct {
	mu sync.RWMutex

	asks      []int64
	bids      []int64
	pending   map[levelKey]osmomath.Int
	deposited map[levelKey]osmomath.Dec
}

type bookRepositoryImpl struct {
	marketsLock sync.RWMutex
	markets     map[uint64]*marketState

	claimsLock  sync.RWMutex
	claimable   map[orderbookdomain.Position]osmomath.Int
	claimSupply map[orderbookdomain.Position]osmomath.Int
}

var _ orderbookdomain.BookRepository = &bookRepositoryImpl{}

// New creates a new book repository.
func New() *bookRepositoryImpl {
	return &bookRepositoryImpl{
		markets:     map[uint64]*marketState{},
		claimable:   map[orderbookdomain.Position]osmomath.Int{},
		claimSupply: map[orderbookdomain.Position]osmomath.Int{},
	}
}

// RegisterMarket implements orderbookdomain.BookRepository.
func (r *bookRepositoryImpl) RegisterMarket(marketID uint64) {
	r.marketsLock.Lock()
	defer r.marketsLock.Unlock()

	if _, ok := r.markets[marketID]; ok {
		return
	}

	r.markets[marketID] = &marketState{
		pending:   map[levelKey]osmomath.Int{},
		deposited: map[levelKey]osmomath.Dec{},
	}
}

func (r *bookRepositoryImpl) getMarket(marketID uint64) (*marketState, bool) {
	r.marketsLock.RLock()
	defer r.marketsLock.RUnlock()

	market, ok := r.markets[marketID]
	return market, ok
}

// side returns the sorted level slice for the direction. Both sides are
// ascending; the nearest-to-price entry is the first ask and the last bid.
func (m *marketState) side(direction orderbookdomain.Direction) *[]int64 {
	if direction == orderbookdomain.DirectionAsk {
		return &m.asks
	}
	return &m.bids
}

// InsertLevel implements orderbookdomain.BookRepository.
func (r *bookRepositoryImpl) InsertLevel(marketID uint64, direction orderbookdomain.Direction, tick int64) error {
	market, ok := r.getMarket(marketID)
	if !ok {
		return types.MarketNotFoundError{MarketID: marketID}
	}

	market.mu.Lock()
	defer market.mu.Unlock()

	side := market.side(direction)
	i, present := slices.BinarySearch(*side, tick)
	if present {
		return nil
	}

	*side = slices.Insert(*side, i, tick)
	return nil
}

// RemoveLevel implements orderbookdomain.BookRepository.
func (r *bookRepositoryImpl) RemoveLevel(marketID uint64, direction orderbookdomain.Direction, tick int64) error {
	market, ok := r.getMarket(marketID)
	if !ok {
		return types.MarketNotFoundError{MarketID: marketID}
	}

	market.mu.Lock()
	defer market.mu.Unlock()

	side := market.side(direction)
	i, present := slices.BinarySearch(*side, tick)
	if !present {
		return types.LevelNotFoundError{MarketID: marketID, Tick: tick, Direction: direction}
	}

	*side = slices.Delete(*side, i, i+1)
	return nil
}

// PeekNearest implements orderbookdomain.BookRepository.
func (r *bookRepositoryImpl) PeekNearest(marketID uint64, direction orderbookdomain.Direction) (int64, bool) {
	market, ok := r.getMarket(marketID)
	if !ok {
		return 0, false
	}

	market.mu.RLock()
	defer market.mu.RUnlock()

	side := *market.side(direction)
	if len(side) == 0 {
		return 0, false
	}

	if direction == orderbookdomain.DirectionAsk {
		return side[0], true
	}
	return side[len(side)-1], true
}

// GetLevels implements orderbookdomain.BookRepository.
func (r *bookRepositoryImpl) GetLevels(marketID uint64) ([]orderbookdomain.BookLevel, error) {
	market, ok := r.getMarket(marketID)
	if !ok {
		return nil, types.MarketNotFoundError{MarketID: marketID}
	}

	market.mu.RLock()
	defer market.mu.RUnlock()

	levels := make([]orderbookdomain.BookLevel, 0, len(market.asks)+len(market.bids))
	for _, tick := range market.asks {
		levels = append(levels, orderbookdomain.BookLevel{
			Tick:            tick,
			Direction:       orderbookdomain.DirectionAsk,
			PendingQuantity: market.pendingLocked(orderbookdomain.DirectionAsk, tick),
		})
	}
	for _, tick := range market.bids {
		levels = append(levels, orderbookdomain.BookLevel{
			Tick:            tick,
			Direction:       orderbookdomain.DirectionBid,
			PendingQuantity: market.pendingLocked(orderbookdomain.DirectionBid, tick),
		})
	}

	return levels, nil
}

// pendingLocked reads a pending entry. Callers hold at least a read lock.
func (m *marketState) pendingLocked(direction orderbookdomain.Direction, tick int64) osmomath.Int {
	quantity, ok := m.pending[levelKey{direction: direction, tick: tick}]
	if !ok {
		return osmomath.ZeroInt()
	}
	return quantity
}

// AddPending implements orderbookdomain.BookRepository.
func (r *bookRepositoryImpl) AddPending(marketID uint64, direction orderbookdomain.Direction, tick int64, quantity osmomath.Int) error {
	market, ok := r.getMarket(marketID)
	if !ok {
		return types.MarketNotFoundError{MarketID: marketID}
	}

	market.mu.Lock()
	defer market.mu.Unlock()

	key := levelKey{direction: direction, tick: tick}
	market.pending[key] = market.pendingLocked(direction, tick).Add(quantity)
	return nil
}

// SubPending implements orderbookdomain.BookRepository.
func (r *bookRepositoryImpl) SubPending(marketID uint64, direction orderbookdomain.Direction, tick int64, quantity osmomath.Int) (osmomath.Int, error) {
	market, ok := r.getMarket(marketID)
	if !ok {
		return osmomath.Int{}, types.MarketNotFoundError{MarketID: marketID}
	}

	market.mu.Lock()
	defer market.mu.Unlock()

	current := market.pendingLocked(direction, tick)
	if current.LT(quantity) {
		return osmomath.Int{}, types.NotEnoughToClaimError{Requested: quantity, Available: current}
	}

	key := levelKey{direction: direction, tick: tick}
	remaining := current.Sub(quantity)
	if remaining.IsZero() {
		delete(market.pending, key)
	} else {
		market.pending[key] = remaining
	}

	return remaining, nil
}

// GetPending implements orderbookdomain.BookRepository.
func (r *bookRepositoryImpl) GetPending(marketID uint64, direction orderbookdomain.Direction, tick int64) osmomath.Int {
	market, ok := r.getMarket(marketID)
	if !ok {
		return osmomath.ZeroInt()
	}

	market.mu.RLock()
	defer market.mu.RUnlock()

	return market.pendingLocked(direction, tick)
}

// depositedLocked reads a deposited liquidity entry. Callers hold at least a
// read lock.
func (m *marketState) depositedLocked(direction orderbookdomain.Direction, tick int64) osmomath.Dec {
	liquidity, ok := m.deposited[levelKey{direction: direction, tick: tick}]
	if !ok {
		return osmomath.ZeroDec()
	}
	return liquidity
}

// AddDeposited implements orderbookdomain.BookRepository.
func (r *bookRepositoryImpl) AddDeposited(marketID uint64, direction orderbookdomain.Direction, tick int64, liquidity osmomath.Dec) error {
	market, ok := r.getMarket(marketID)
	if !ok {
		return types.MarketNotFoundError{MarketID: marketID}
	}

	market.mu.Lock()
	defer market.mu.Unlock()

	key := levelKey{direction: direction, tick: tick}
	market.deposited[key] = market.depositedLocked(direction, tick).Add(liquidity)
	return nil
}

// SubDeposited implements orderbookdomain.BookRepository.
func (r *bookRepositoryImpl) SubDeposited(marketID uint64, direction orderbookdomain.Direction, tick int64, liquidity osmomath.Dec) (osmomath.Dec, error) {
	market, ok := r.getMarket(marketID)
	if !ok {
		return osmomath.Dec{}, types.MarketNotFoundError{MarketID: marketID}
	}

	market.mu.Lock()
	defer market.mu.Unlock()

	current := market.depositedLocked(direction, tick)
	if current.LT(liquidity) {
		return osmomath.Dec{}, types.LevelNotFoundError{MarketID: marketID, Tick: tick, Direction: direction}
	}

	key := levelKey{direction: direction, tick: tick}
	remaining := current.Sub(liquidity)
	if remaining.IsZero() {
		delete(market.deposited, key)
	} else {
		market.deposited[key] = remaining
	}

	return remaining, nil
}

// GetDeposited implements orderbookdomain.BookRepository.
func (r *bookRepositoryImpl) GetDeposited(marketID uint64, direction orderbookdomain.Direction, tick int64) osmomath.Dec {
	market, ok := r.getMarket(marketID)
	if !ok {
		return osmomath.ZeroDec()
	}

	market.mu.RLock()
	defer market.mu.RUnlock()

	return market.depositedLocked(direction, tick)
}

// AddClaimable implements orderbookdomain.BookRepository.
func (r *bookRepositoryImpl) AddClaimable(position orderbookdomain.Position, amount osmomath.Int) {
	r.claimsLock.Lock()
	defer r.claimsLock.Unlock()

	r.claimable[position] = r.claimableLocked(position).Add(amount)
}

// SubClaimable implements orderbookdomain.BookRepository.
func (r *bookRepositoryImpl) SubClaimable(position orderbookdomain.Position, amount osmomath.Int) error {
	r.claimsLock.Lock()
	defer r.claimsLock.Unlock()

	current := r.claimableLocked(position)
	if current.LT(amount) {
		return types.NotEnoughToClaimError{Requested: amount, Available: current}
	}

	remaining := current.Sub(amount)
	if remaining.IsZero() {
		delete(r.claimable, position)
	} else {
		r.claimable[position] = remaining
	}
	return nil
}

// GetClaimable implements orderbookdomain.BookRepository.
func (r *bookRepositoryImpl) GetClaimable(position orderbookdomain.Position) osmomath.Int {
	r.claimsLock.RLock()
	defer r.claimsLock.RUnlock()

	return r.claimableLocked(position)
}

func (r *bookRepositoryImpl) claimableLocked(position orderbookdomain.Position) osmomath.Int {
	amount, ok := r.claimable[position]
	if !ok {
		return osmomath.ZeroInt()
	}
	return amount
}

// AddClaimSupply implements orderbookdomain.BookRepository.
func (r *bookRepositoryImpl) AddClaimSupply(position orderbookdomain.Position, amount osmomath.Int) {
	r.claimsLock.Lock()
	defer r.claimsLock.Unlock()

	r.claimSupply[position] = r.claimSupplyLocked(position).Add(amount)
}

// SubClaimSupply implements orderbookdomain.BookRepository.
func (r *bookRepositoryImpl) SubClaimSupply(position orderbookdomain.Position, amount osmomath.Int) error {
	r.claimsLock.Lock()
	defer r.claimsLock.Unlock()

	current := r.claimSupplyLocked(position)
	if current.LT(amount) {
		return types.NotEnoughToClaimError{Requested: amount, Available: current}
	}

	remaining := current.Sub(amount)
	if remaining.IsZero() {
		delete(r.claimSupply, position)
	} else {
		r.claimSupply[position] = remaining
	}
	return nil
}

// GetClaimSupply implements orderbookdomain.BookRepository.
func (r *bookRepositoryImpl) GetClaimSupply(position orderbookdomain.Position) osmomath.Int {
	r.claimsLock.RLock()
	defer r.claimsLock.RUnlock()

	return r.claimSupplyLocked(position)
}

func (r *bookRepositoryImpl) claimSupplyLocked(position orderbookdomain.Position) osmomath.Int {
	amount, ok := r.claimSupply[position]
	if !ok {
		return osmomath.ZeroInt()
	}
	return amount
}
