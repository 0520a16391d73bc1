// Package cache stores registry responses between runs.
//
// The version resolver always fetches fresh registry data, but it writes
// every response it receives through a [Cache] so that read-only commands
// (for example `typespub info`) can answer from the last run without touching
// the network.
//
// Two backends are provided:
//   - [FileCache]: one JSON file per key under a directory (the CLI default)
//   - [NullCache]: stores nothing, used when caching is disabled
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored bytes for key. hit is false for missing or
	// expired entries.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
