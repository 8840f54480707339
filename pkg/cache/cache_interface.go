package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer, kept narrow so the
// implementation can be swapped (Redis in production, a map in tests).
type Cache interface {
	// Get reads a key and unmarshals it into dest. found=false means a
	// cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores a value under key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}
