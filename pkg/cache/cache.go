// Package cache stores serialized analysis results behind a small
// key/value interface.
//
// Backends:
//
//   - [FileCache]: JSON files under a directory, for the CLI.
//   - [BadgerCache]: an embedded Badger database, for long-running local use.
//   - [RedisCache]: a shared Redis server, for the HTTP API.
//   - [NullCache]: stores nothing.
//
// Keys are built by a [Keyer] so that every backend sees the same key for
// the same analysis request.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the stored data and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Default lifetimes of cached entries.
const (
	// TTLReport is the lifetime of a finished analysis. Results depend only
	// on their inputs, so they are kept for a long time.
	TTLReport = 30 * 24 * time.Hour

	// TTLArtifact is the lifetime of rendered graphs.
	TTLArtifact = 7 * 24 * time.Hour
)
