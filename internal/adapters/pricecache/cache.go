package pricecache

import (
	"context"
	"strings"
	"sync"
	"time"

	"cryptoJournal/internal/domain"
	"cryptoJournal/internal/ports"
)

// DefaultTTL matches the recommended caller-side caching interval for the
// public price APIs.
const DefaultTTL = 30 * time.Second

// Feed decorates a ports.PriceFeed with a TTL cache. It exists so callers
// own an explicit, injectable cache with a configurable TTL and an explicit
// invalidation call instead of a process-wide singleton.
type Feed struct {
	inner ports.PriceFeed
	ttl   time.Duration
	now   func() time.Time

	mu        sync.Mutex
	quotes    map[string]domain.Quote
	fetchedAt time.Time
}

// New wraps a price feed with a TTL cache. A non-positive ttl falls back
// to DefaultTTL.
func New(inner ports.PriceFeed, ttl time.Duration) *Feed {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Feed{
		inner:  inner,
		ttl:    ttl,
		now:    time.Now,
		quotes: make(map[string]domain.Quote),
	}
}

// GetPrices serves from the cache while it is fresh and covers every
// requested symbol; otherwise it fetches the requested symbols from the
// wrapped feed and refreshes the cache.
func (f *Feed) GetPrices(ctx context.Context, symbols []string) (map[string]domain.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.now().Sub(f.fetchedAt) < f.ttl {
		result := make(map[string]domain.Quote, len(symbols))
		complete := true
		for _, symbol := range symbols {
			key := strings.ToUpper(symbol)
			quote, ok := f.quotes[key]
			if !ok {
				complete = false
				break
			}
			result[key] = quote
		}
		if complete {
			return result, nil
		}
	}

	fetched, err := f.inner.GetPrices(ctx, symbols)
	if err != nil {
		return nil, err
	}
	for symbol, quote := range fetched {
		f.quotes[strings.ToUpper(symbol)] = quote
	}
	f.fetchedAt = f.now()

	result := make(map[string]domain.Quote, len(fetched))
	for symbol, quote := range fetched {
		result[strings.ToUpper(symbol)] = quote
	}
	return result, nil
}

// Invalidate drops all cached quotes; the next read hits the wrapped feed.
func (f *Feed) Invalidate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quotes = make(map[string]domain.Quote)
	f.fetchedAt = time.Time{}
}
