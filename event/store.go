package event

import "context"

// Store is the event-facing slice of the unified ledger store.
type Store interface {
	// Append adds an entry to the log and assigns its sequence number.
	Append(ctx context.Context, e *Event) error

	// List returns entries in append order, starting after the given
	// sequence number (0 replays the whole log).
	List(ctx context.Context, afterSeq uint64, limit int) ([]*Event, error)
}
