package cache

import (
	"context"
	"time"
)

// NullCache disables artifact caching: every lookup misses and writes are
// dropped. It is used for --no-cache and when no cache directory exists.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return NullCache{}
}

// Get misses, or reports the context error once ctx is done.
func (NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, ctx.Err()
}

// Set drops data.
func (NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return ctx.Err()
}

func (NullCache) Delete(ctx context.Context, key string) error { return nil }

// Clear has nothing to remove.
func (NullCache) Clear(ctx context.Context) (int, error) { return 0, nil }

func (NullCache) Close() error { return nil }

var (
	_ Cache   = NullCache{}
	_ Clearer = NullCache{}
)
