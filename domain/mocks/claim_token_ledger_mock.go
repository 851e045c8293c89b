package mocks

import (
	"context"

	"github.com/osmosis-labs/osmosis/osmomath"

	ammdomain "github.com/osmosis-labs/limitbook/domain/amm"
	orderbookdomain "github.com/osmosis-labs/limitbook/domain/orderbook"
)

var _ ammdomain.ClaimTokenLedger = &ClaimTokenLedgerMock{}

// ClaimTokenLedgerMock is a mock implementation of the ClaimTokenLedger
// interface. The zero value keeps balances in memory, which covers most
// tests; the func fields override individual calls.
type ClaimTokenLedgerMock struct {
	MintFunc      func(ctx context.Context, owner string, position orderbookdomain.Position, amount osmomath.Int) error
	BurnFunc      func(ctx context.Context, owner string, position orderbookdomain.Position, amount osmomath.Int) error
	BalanceOfFunc func(ctx context.Context, owner string, position orderbookdomain.Position) (osmomath.Int, error)

	balances map[balanceKey]osmomath.Int
}

type balanceKey struct {
	owner    string
	position orderbookdomain.Position
}

// Mint implements ClaimTokenLedger.
func (m *ClaimTokenLedgerMock) Mint(ctx context.Context, owner string, position orderbookdomain.Position, amount osmomath.Int) error {
	if m.MintFunc != nil {
		return m.MintFunc(ctx, owner, position, amount)
	}

	key := balanceKey{owner: owner, position: position}
	m.ensureBalances()
	m.balances[key] = m.balance(key).Add(amount)
	return nil
}

// Burn implements ClaimTokenLedger.
func (m *ClaimTokenLedgerMock) Burn(ctx context.Context, owner string, position orderbookdomain.Position, amount osmomath.Int) error {
	if m.BurnFunc != nil {
		return m.BurnFunc(ctx, owner, position, amount)
	}

	key := balanceKey{owner: owner, position: position}
	m.ensureBalances()
	m.balances[key] = m.balance(key).Sub(amount)
	return nil
}

// BalanceOf implements ClaimTokenLedger.
func (m *ClaimTokenLedgerMock) BalanceOf(ctx context.Context, owner string, position orderbookdomain.Position) (osmomath.Int, error) {
	if m.BalanceOfFunc != nil {
		return m.BalanceOfFunc(ctx, owner, position)
	}
	return m.balance(balanceKey{owner: owner, position: position}), nil
}

func (m *ClaimTokenLedgerMock) ensureBalances() {
	if m.balances == nil {
		m.balances = map[balanceKey]osmomath.Int{}
	}
}

func (m *ClaimTokenLedgerMock) balance(key balanceKey) osmomath.Int {
	amount, ok := m.balances[key]
	if !ok {
		return osmomath.ZeroInt()
	}
	return amount
}
