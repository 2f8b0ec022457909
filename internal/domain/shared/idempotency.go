package shared

import (
	"context"
	"time"
)

// IdempotencyStore records keys that have already been acted upon, so that a
// retried operation can skip work it has already completed. Transfer execution
// uses it to guarantee that a line is never applied twice (keyed by
// "transferID:lineID").
type IdempotencyStore interface {
	// MarkApplied marks a key as applied with a TTL.
	// Returns true if the key was newly marked, false if it was already applied.
	MarkApplied(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsApplied checks if a key has already been applied
	IsApplied(ctx context.Context, key string) (bool, error)

	// Clear removes a key, allowing it to be applied again. Used when a
	// transfer is compensated and its lines must become replayable.
	Clear(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}
