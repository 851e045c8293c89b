package mvc

import "context"

// PriceListenerUsecase watches pool prices and drives the matching engine's
// crossing loop whenever a market's current tick moves.
type PriceListenerUsecase interface {
	// Start begins polling. It blocks until ctx is cancelled.
	Start(ctx context.Context) error
}
