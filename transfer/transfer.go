// Package transfer defines the external value-transfer collaborator.
//
// Payable never holds balances itself: settlement delegates fund movement to
// a Service supplied at engine construction. Callers must have pre-authorized
// the service to move amount plus fee out of their balance before paying an
// invoice; that authorization step lives outside this module.
package transfer

import (
	"context"

	"github.com/xraph/payable/types"
)

// Transfer is a single requested fund movement.
type Transfer struct {
	From   types.Identity
	To     types.Identity
	Amount uint64 // base currency units
}

// Service moves funds between identities on behalf of the ledger.
//
// Any error is treated as a hard abort of the enclosing ledger operation.
// A plain Service gives no way to reverse an already-applied transfer when a
// later one in the same settlement fails; implement Batcher to close that
// gap, or accept that a partially applied settlement can leak the first
// transfer at the service level (the ledger itself never records it).
type Service interface {
	TransferFrom(ctx context.Context, from, to types.Identity, amount uint64) error
}

// Batcher is implemented by services that can apply several transfers as one
// all-or-nothing unit. Settlement prefers it over sequential TransferFrom
// calls whenever available.
type Batcher interface {
	Service
	TransferBatch(ctx context.Context, transfers []Transfer) error
}
