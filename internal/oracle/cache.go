package oracle

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type cacheEntry struct {
	answer    decimal.Decimal
	expiresAt time.Time
}

// quoteCache holds recently resolved quotes per pair to keep repeated
// conversions from hammering the quote API.
type quoteCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

func newQuoteCache(ttl time.Duration) *quoteCache {
	return &quoteCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *quoteCache) get(pair string) (decimal.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[pair]
	if !ok || time.Now().After(entry.expiresAt) {
		return decimal.Zero, false
	}
	return entry.answer, true
}

func (c *quoteCache) set(pair string, answer decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[pair] = cacheEntry{
		answer:    answer,
		expiresAt: time.Now().Add(c.ttl),
	}
}
