package catalog

import (
	"sync"
)

// Cache holds one full copy of the merged catalog. There is no TTL and
// no eviction: the catalog is small, and every catalog write
// invalidates synchronously.
type Cache interface {
	Get() ([]Card, bool)
	Set(cards []Card)
	Invalidate()
}

// MemoryCache is the in-process default.
type MemoryCache struct {
	mu    sync.RWMutex
	cards []Card
	valid bool
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) Get() ([]Card, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.valid {
		return nil, false
	}
	out := make([]Card, len(c.cards))
	copy(out, c.cards)
	return out, true
}

func (c *MemoryCache) Set(cards []Card) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cards = make([]Card, len(cards))
	copy(c.cards, cards)
	c.valid = true
}

func (c *MemoryCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cards = nil
	c.valid = false
}
