package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

type memoryItem struct {
	data   []byte
	expiry time.Time
}

// MemoryCache is a mutex-guarded TTL map. Used when STORE=memory and in
// tests. Expired entries are dropped lazily on read; there is no sweeper.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	// now is swappable so tests can advance time past TTLs.
	now func() time.Time
}

func NewMemory() *MemoryCache {
	return &MemoryCache{
		items: make(map[string]memoryItem),
		now:   time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string, value any) (bool, error) {
	c.mu.RLock()
	item, found := c.items[key]
	c.mu.RUnlock()

	if !found || c.now().After(item.expiry) {
		return false, nil
	}
	if err := json.Unmarshal(item.data, value); err != nil {
		return false, err
	}
	return true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = memoryItem{data: b, expiry: c.now().Add(ttl)}
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *MemoryCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
	return nil
}

// SetClock swaps the time source. Test hook.
func (c *MemoryCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
