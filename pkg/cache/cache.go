// Package cache stores built graph snapshots and derived artifacts so that
// repeated loads of the same input skip parsing and CSR construction.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for servers, backed by Redis
//   - [MongoCache]: shared cache backed by a MongoDB collection
//
// All backends store opaque byte slices. The pipeline stores binary
// snapshots produced by pkg/io, so a hit is decoded with a single
// sequential read and no re-parsing.
//
// # Keys
//
// Keys are produced by a [Keyer]. [DefaultKeyer] hashes the content of the
// source file together with every option that changes the built arrays, so
// loading the same file with different options never returns a stale graph:
//
//	k := cache.NewDefaultKeyer()
//	key := k.GraphKey(contentHash, cache.GraphKeyOpts{Format: "snap", Property: prop})
//
// [ScopedKeyer] prefixes every key, which lets several tenants or datasets
// share one Redis or Mongo instance.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Default entry lifetimes.
const (
	// TTLGraph is the lifetime of a built graph snapshot. Snapshots are keyed
	// by content hash, so they only go stale when the options change.
	TTLGraph = 30 * 24 * time.Hour

	// TTLArtifact is the lifetime of rendered or exported artifacts.
	TTLArtifact = 7 * 24 * time.Hour
)
