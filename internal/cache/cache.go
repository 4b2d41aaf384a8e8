package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL bounds how stale a cached entity list may be.
const DefaultTTL = 60 * time.Second

// Loader fetches a fresh value from the backing store.
type Loader[T any] func(ctx context.Context) (T, error)

// Cache is a read-through memoization for one entity type. Reads within
// the TTL return the cached value; any write to the entity must call
// Invalidate so the next read hits the store again. Invalidation is per
// cache instance, not global.
type Cache[T any] struct {
	mu        sync.RWMutex
	ttl       time.Duration
	value     T
	loadedAt  time.Time
	populated bool
	now       func() time.Time
}

// New creates a cache with the given TTL. Pass 0 to use DefaultTTL.
func New[T any](ttl time.Duration) *Cache[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[T]{ttl: ttl, now: time.Now}
}

// Get returns the cached value if fresh, otherwise runs loader and
// caches its result. A loader error is returned as-is and nothing is
// cached, so the next read retries the store.
func (c *Cache[T]) Get(ctx context.Context, loader Loader[T]) (T, error) {
	c.mu.RLock()
	if c.populated && c.now().Sub(c.loadedAt) < c.ttl {
		v := c.value
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	v, err := loader(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.mu.Lock()
	c.value = v
	c.loadedAt = c.now()
	c.populated = true
	c.mu.Unlock()

	return v, nil
}

// Invalidate drops the cached value.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	c.populated = false
	var zero T
	c.value = zero
	c.mu.Unlock()
}
