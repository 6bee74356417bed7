package grant

import (
	"context"

	"github.com/xraph/payable/types"
)

// Store is the grant-facing slice of the unified ledger store.
type Store interface {
	// Set records or overwrites the grant for g.Creator.
	Set(ctx context.Context, g *Grant) error

	// Get returns the grant for the identity, or a not-found error.
	Get(ctx context.Context, creator types.Identity) (*Grant, error)

	// Delete removes the grant for the identity. Deleting an absent grant
	// is not an error.
	Delete(ctx context.Context, creator types.Identity) error
}
