// Package cache stores decoded rule sets and other derived blobs.
//
// A [Cache] is a byte store with optional expiry. The CLI uses [FileCache]
// under the XDG cache directory, [RedisCache] serves shared deployments, and
// [NullCache] disables caching (--no-cache). Keys come from a [Keyer], which
// derives them from content hashes so that edits to a filter map invalidate
// its entries without explicit bookkeeping.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value byte store. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// RuleSetKey is the key for the rule sets decoded from a filter map
	// with the given content hash and wildcard.
	RuleSetKey(contentHash, wildcard string) string

	// MapKey is the key for a decoded map with the given content hash.
	MapKey(contentHash string) string
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RuleSetKey implements [Keyer].
func (DefaultKeyer) RuleSetKey(contentHash, wildcard string) string {
	return hashKey("rulesets", contentHash, wildcard)
}

// MapKey implements [Keyer].
func (DefaultKeyer) MapKey(contentHash string) string {
	return "map:" + contentHash
}
