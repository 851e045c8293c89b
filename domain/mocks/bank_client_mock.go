package mocks

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	ammdomain "github.com/osmosis-labs/limitbook/domain/amm"
)

var _ ammdomain.BankClient = &BankClientMock{}

// BankClientMock is a mock implementation of the BankClient interface.
// The zero value records settles and takes without failing.
type BankClientMock struct {
	SettleFunc func(ctx context.Context, coin sdk.Coin, payer string) error
	TakeFunc   func(ctx context.Context, coin sdk.Coin, payee string) error

	// Settled and Taken record accepted transfers in call order.
	Settled []sdk.Coin
	Taken   []sdk.Coin
}

// Settle implements BankClient.
func (m *BankClientMock) Settle(ctx context.Context, coin sdk.Coin, payer string) error {
	if m.SettleFunc != nil {
		if err := m.SettleFunc(ctx, coin, payer); err != nil {
			return err
		}
	}
	m.Settled = append(m.Settled, coin)
	return nil
}

// Take implements BankClient.
func (m *BankClientMock) Take(ctx context.Context, coin sdk.Coin, payee string) error {
	if m.TakeFunc != nil {
		if err := m.TakeFunc(ctx, coin, payee); err != nil {
			return err
		}
	}
	m.Taken = append(m.Taken, coin)
	return nil
}
