package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/osmosis-labs/osmosis/osmomath"

	ammdomain "github.com/osmosis-labs/limitbook/domain/amm"
	orderbookdomain "github.com/osmosis-labs/limitbook/domain/orderbook"
)

type holderKey struct {
	owner    string
	position orderbookdomain.Position
}

// Ledger is an in-memory fungible claim token ledger.
type Ledger struct {
	mu       sync.Mutex
	balances map[holderKey]osmomath.Int
}

var _ ammdomain.ClaimTokenLedger = &Ledger{}

// NewLedger creates a new simulated claim token ledger.
func NewLedger() *Ledger {
	return &Ledger{
		balances: map[holderKey]osmomath.Int{},
	}
}

// Mint implements ammdomain.ClaimTokenLedger.
func (l *Ledger) Mint(ctx context.Context, owner string, position orderbookdomain.Position, amount osmomath.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := holderKey{owner: owner, position: position}
	l.balances[key] = l.balance(key).Add(amount)
	return nil
}

// Burn implements ammdomain.ClaimTokenLedger.
func (l *Ledger) Burn(ctx context.Context, owner string, position orderbookdomain.Position, amount osmomath.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := holderKey{owner: owner, position: position}
	current := l.balance(key)
	if current.LT(amount) {
		return fmt.Errorf("sim ledger: %s holds %s claim tokens, cannot burn %s", owner, current, amount)
	}

	remaining := current.Sub(amount)
	if remaining.IsZero() {
		delete(l.balances, key)
	} else {
		l.balances[key] = remaining
	}
	return nil
}

// BalanceOf implements ammdomain.ClaimTokenLedger.
func (l *Ledger) BalanceOf(ctx context.Context, owner string, position orderbookdomain.Position) (osmomath.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.balance(holderKey{owner: owner, position: position}), nil
}

func (l *Ledger) balance(key holderKey) osmomath.Int {
	amount, ok := l.balances[key]
	if !ok {
		return osmomath.ZeroInt()
	}
	return amount
}
