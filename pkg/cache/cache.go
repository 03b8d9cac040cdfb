// Package cache stores fetched datasets, computed layouts and rendered
// artifacts between runs.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under the XDG cache directory
//     (the CLI default)
//   - [RedisCache]: a shared Redis instance, selected with a redis:// URL
//   - [NullCache]: never stores anything (--no-cache)
//
// # Keys
//
// Keys are produced by a [Keyer] so that every stage hashes its inputs the
// same way. A layout key depends on the dataset hash and layout options; an
// artifact key depends on the layout hash and render options. Changing any
// option therefore misses the cache instead of returning stale output.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry kind.
const (
	TTLDataset  = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored bytes and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache stores nothing: every Get misses and every Set is dropped.
// --no-cache runs use it.
type NullCache struct{}

func NewNullCache() *NullCache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (*NullCache) Delete(context.Context, string) error { return nil }

func (*NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
