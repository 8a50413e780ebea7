// Package cache stores encoded compositing artifacts between runs.
//
// An artifact is the encoded output image of one job. Its key is derived from
// the job kind, the SHA-256 of every input file and the job parameters (see
// [Keyer]), so an unchanged job can be served by copying the cached bytes to
// the output path without decoding or compositing anything.
//
// Backends:
//   - [FileCache]: one JSON file per entry under the user cache directory
//   - [RedisCache]: a Redis server, entries expire through Redis TTLs
//   - [MongoCache]: a MongoDB collection with an expires_at TTL index
//   - [NullCache]: stores nothing, used with --no-cache
//
// Cache failures are never fatal to a job: callers log them and carry on.
package cache

import (
	"context"
	"time"
)

// ArtifactTTL is how long an encoded artifact stays cached.
const ArtifactTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any connection held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop all their entries.
type Clearer interface {
	// Clear removes every entry and reports how many were removed.
	Clear(ctx context.Context) (int, error)
}
