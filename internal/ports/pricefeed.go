package ports

import (
	"context"

	"cryptoJournal/internal/domain"
)

// PriceFeed is the external price oracle contract: it maps uppercase coin
// symbols to their latest quotes. Symbols the oracle does not know are
// simply absent from the result; that alone is not an error.
type PriceFeed interface {
	GetPrices(ctx context.Context, symbols []string) (map[string]domain.Quote, error)
}

// InvalidatingPriceFeed is implemented by feeds that cache quotes and
// support explicit invalidation (manual refresh).
type InvalidatingPriceFeed interface {
	PriceFeed
	Invalidate()
}
