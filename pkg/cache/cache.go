// Package cache provides a content-addressed result cache for snipbook.
//
// Melding a stack of large scans is the slowest step of the pipeline, and
// the same stack is typically melded several times while dialing in regions
// of interest. The cache stores finished meld output keyed by the input
// contents and the melding method, so repeated runs are free.
//
// Keys are derived from file contents, never from file names or mtimes:
// renaming or touching an input must not cause a stale hit or a spurious
// miss.
package cache

import (
	"context"
	"time"
)

// Cache stores byte blobs under string keys.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
