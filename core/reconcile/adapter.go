package reconcile

import (
	"context"

	"watchlist/core/entry"
)

// Store is the view of the persistent store the engine needs while it holds
// the store's exclusive section. Implementations must not take the store lock
// again from these methods.
type Store interface {
	// Get returns the entry with the given id, or nil when it does not exist.
	Get(ctx context.Context, id int64) (*entry.Entry, error)

	// Upsert inserts the entry, or overwrites every mutable field of the
	// existing entry with the same id.
	Upsert(ctx context.Context, e entry.Entry) (entry.Entry, error)

	// Clear removes every entry.
	Clear(ctx context.Context) error
}

// Target is a store that can run a multi-step unit under its exclusive lock.
//
// Exclusive blocks until the lock is available, runs fn with an unlocked Store
// view and releases the lock when fn returns. Whatever fn returns is returned
// unchanged.
type Target interface {
	Exclusive(ctx context.Context, fn func(Store) error) error
}
