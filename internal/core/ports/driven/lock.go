package driven

import (
	"context"
	"time"
)

// DistributedLock coordinates work across instances. Index rebuilds take a
// lock so two workers never embed the same corpus concurrently.
type DistributedLock interface {
	// Acquire attempts to acquire a named lock with the given TTL.
	// Returns true if acquired, false if already held elsewhere.
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)

	// Release releases a named lock if held by this instance
	Release(ctx context.Context, name string) error

	// Extend extends the TTL of a currently held lock
	Extend(ctx context.Context, name string, ttl time.Duration) error
}
