package cache

import (
	"context"
	"time"

	"github.com/matzehuels/spritestrip/pkg/observability"
)

// Observed wraps a cache and reports hits, misses and writes to the
// registered [observability.CacheHooks], labelled with backend.
func Observed(c Cache, backend string) Cache {
	return &observedCache{Cache: c, backend: backend}
}

type observedCache struct {
	Cache
	backend string
}

func (c *observedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.Cache.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, c.backend)
		} else {
			observability.Cache().OnCacheMiss(ctx, c.backend)
		}
	}
	return data, ok, err
}

func (c *observedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, c.backend, len(data))
	}
	return err
}

// Clear forwards to the wrapped cache when it supports clearing.
func (c *observedCache) Clear(ctx context.Context) (int, error) {
	if cl, ok := c.Cache.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return 0, nil
}
