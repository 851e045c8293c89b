package sim

import (
	"context"
	"fmt"
	"sync"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/osmosis-labs/osmosis/osmomath"

	ammdomain "github.com/osmosis-labs/limitbook/domain/amm"
)

// engineAccount is the custody account holding resting order inputs and
// executed outputs until they are cancelled out or claimed.
const engineAccount = "engine"

type accountKey struct {
	address string
	denom   string
}

// Bank is an in-memory custody ledger. Accounts must be funded before they
// can pay; the engine account is funded implicitly by settles.
type Bank struct {
	mu       sync.Mutex
	balances map[accountKey]osmomath.Int
}

var _ ammdomain.BankClient = &Bank{}

// NewBank creates a new simulated bank.
func NewBank() *Bank {
	return &Bank{
		balances: map[accountKey]osmomath.Int{},
	}
}

// Fund credits the address with the coin, standing in for external deposits.
func (b *Bank) Fund(address string, coin sdk.Coin) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.credit(address, coin)
}

// Balance returns the address's balance of the denom.
func (b *Bank) Balance(address, denom string) osmomath.Int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.balance(accountKey{address: address, denom: denom})
}

// Settle implements ammdomain.BankClient.
func (b *Bank) Settle(ctx context.Context, coin sdk.Coin, payer string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.debit(payer, coin); err != nil {
		return err
	}
	b.credit(engineAccount, coin)
	return nil
}

// Take implements ammdomain.BankClient.
func (b *Bank) Take(ctx context.Context, coin sdk.Coin, payee string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.debit(engineAccount, coin); err != nil {
		return err
	}
	b.credit(payee, coin)
	return nil
}

func (b *Bank) balance(key accountKey) osmomath.Int {
	amount, ok := b.balances[key]
	if !ok {
		return osmomath.ZeroInt()
	}
	return amount
}

func (b *Bank) credit(address string, coin sdk.Coin) {
	key := accountKey{address: address, denom: coin.Denom}
	b.balances[key] = b.balance(key).Add(coin.Amount)
}

func (b *Bank) debit(address string, coin sdk.Coin) error {
	key := accountKey{address: address, denom: coin.Denom}
	current := b.balance(key)
	if current.LT(coin.Amount) {
		return fmt.Errorf("sim bank: %s has %s%s, needs %s", address, current, coin.Denom, coin.Amount)
	}
	b.balances[key] = current.Sub(coin.Amount)
	return nil
}
