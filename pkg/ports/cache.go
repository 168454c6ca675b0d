package ports

import (
	"context"
)

// ResultCache stores serialized results of pure computations.
// Implementations must be safe for concurrent use.
type ResultCache interface {
	// Get returns the value stored under key.
	// Returns domain.ErrCacheMiss if the key does not exist or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
