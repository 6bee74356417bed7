package invoice

import (
	"context"
	"time"

	"github.com/xraph/payable/types"
)

// Store is the invoice-facing slice of the unified ledger store.
type Store interface {
	// Create inserts a new record. Fails if a record is already present
	// at the invoice's hash.
	Create(ctx context.Context, inv *Invoice) error

	// Get returns the record at the hash, or a not-found error.
	Get(ctx context.Context, h Hash) (*Invoice, error)

	// Replace removes the record at oldHash and inserts inv under its own
	// hash as a single unit. The destination is overwritten if occupied:
	// edits deliberately skip the uniqueness check that Create performs.
	Replace(ctx context.Context, oldHash Hash, inv *Invoice) error

	// Delete removes the record at the hash entirely.
	Delete(ctx context.Context, h Hash) error

	// MarkPaid flips the record at the hash to its terminal paid state.
	MarkPaid(ctx context.Context, h Hash, payer types.Identity, paidAt time.Time) error

	// List returns all records, most recently created first.
	List(ctx context.Context, opts ListOpts) ([]*Invoice, error)
}

// ListOpts filters and pages List results.
type ListOpts struct {
	Issuer types.Identity // only invoices issued by this identity
	Paid   *bool          // nil = any payment state
	Limit  int
	Offset int
}
