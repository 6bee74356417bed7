// Package store defines the unified storage interface for Payable.
package store

import (
	"context"
	"time"

	"github.com/xraph/payable/event"
	"github.com/xraph/payable/grant"
	"github.com/xraph/payable/invoice"
	"github.com/xraph/payable/types"
)

// Store is the unified storage interface backing a ledger: the invoice table
// keyed by identifier hash, the grant table keyed by identity, the durable
// event log, and the administrator singleton. Methods are declared explicitly
// rather than by embedding the per-entity interfaces to avoid naming
// conflicts.
//
// Implementations must be safe for concurrent use. Cross-record atomicity
// (authorization check, external transfer, mutation, event append as one
// unit) is provided by the engine's serialization, not by the store.
type Store interface {
	// Invoice methods
	CreateInvoice(ctx context.Context, inv *invoice.Invoice) error
	GetInvoice(ctx context.Context, h invoice.Hash) (*invoice.Invoice, error)
	ReplaceInvoice(ctx context.Context, oldHash invoice.Hash, inv *invoice.Invoice) error
	DeleteInvoice(ctx context.Context, h invoice.Hash) error
	MarkInvoicePaid(ctx context.Context, h invoice.Hash, payer types.Identity, paidAt time.Time) error
	ListInvoices(ctx context.Context, opts invoice.ListOpts) ([]*invoice.Invoice, error)

	// Grant methods
	SetGrant(ctx context.Context, g *grant.Grant) error
	GetGrant(ctx context.Context, creator types.Identity) (*grant.Grant, error)
	DeleteGrant(ctx context.Context, creator types.Identity) error

	// Administrator singleton. SetAdministrator fails once an
	// administrator is recorded; the identity is immutable thereafter.
	SetAdministrator(ctx context.Context, admin types.Identity) error
	Administrator(ctx context.Context) (types.Identity, error)

	// Event log methods
	AppendEvent(ctx context.Context, e *event.Event) error
	ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]*event.Event, error)

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
