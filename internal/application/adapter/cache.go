// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// Cache is the key-value cache fronting computed results. Callers treat any
// error as a miss and recompute; the cache is never allowed to fail a request.
type Cache interface {
	// Get unmarshals the cached value into dest. The bool reports whether the
	// key was present.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Del removes a key. Missing keys are not an error.
	Del(ctx context.Context, key string) error
}
