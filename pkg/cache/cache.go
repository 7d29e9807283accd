// Package cache stores rendered diagram artifacts keyed by their inputs.
//
// Rasterizing through Graphviz is the only expensive step of a run. The key of
// an artifact is derived from everything that influences the output bytes (the
// graph description, the engine, the layout program and the format), so a hit
// is always safe to write out verbatim.
//
// Three backends are provided:
//   - [FileCache]: one JSON file per entry under a local directory (CLI default)
//   - [RedisCache]: a shared Redis instance
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiration.
type Cache interface {
	// Get returns the data for key and whether it was found.
	// A missing or expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts identifies how an artifact was produced.
type ArtifactKeyOpts struct {
	Engine string `json:"engine"`
	Layout string `json:"layout"`
	Format string `json:"format"`
}

// ArtifactKey returns the cache key for the artifact rendered from dot with opts.
func ArtifactKey(dot []byte, opts ArtifactKeyOpts) string {
	return hashKey("artifact", Hash(dot), opts)
}
