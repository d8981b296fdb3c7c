package cache

import (
	"context"
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a thread-safe in-memory store whose entries expire after a TTL.
// A TTL of zero or less keeps entries until they are invalidated.
type Cache[V any] struct {
	mu   sync.RWMutex
	data map[string]entry[V]
	ttl  time.Duration
	now  func() time.Time
}

// New creates a cache with the given TTL.
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		data: make(map[string]entry[V]),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (c *Cache[V]) expired(e entry[V], now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Get returns the value for key if present and not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.data[key]
	if !ok || c.expired(e, c.now()) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, value)
}

func (c *Cache[V]) setLocked(key string, value V) {
	e := entry[V]{value: value}
	if c.ttl > 0 {
		e.expiresAt = c.now().Add(c.ttl)
	}
	c.data[key] = e
}

// GetOrLoad returns the cached value for key, calling load and storing its
// result on a miss. Errors are returned and not cached.
func (c *Cache[V]) GetOrLoad(key string, load func() (V, error)) (V, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.data[key]; ok && !c.expired(e, c.now()) {
		return e.value, nil
	}
	value, err := load()
	if err != nil {
		var zero V
		return zero, err
	}
	c.setLocked(key, value)
	return value, nil
}

// Len returns the number of stored entries, expired or not.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Cleanup removes expired entries.
func (c *Cache[V]) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.data {
		if c.expired(e, now) {
			delete(c.data, key)
		}
	}
}

// RunJanitor calls Cleanup every interval until ctx is done.
func (c *Cache[V]) RunJanitor(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.Cleanup()
		}
	}
}
