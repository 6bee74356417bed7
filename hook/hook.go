// Package hook provides an extensible observer system for Payable.
// Hooks are notified after ledger mutations commit; they can extend the
// system (audit trails, metrics, webhooks) but never veto a settled state.
package hook

import (
	"context"

	"github.com/xraph/payable/event"
	"github.com/xraph/payable/grant"
	"github.com/xraph/payable/invoice"
	"github.com/xraph/payable/types"
)

// Hook is the base interface that all hooks must implement.
type Hook interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the ledger starts.
type OnInit interface {
	Hook
	OnInit(ctx context.Context, ledger interface{}) error
}

// OnShutdown is called when the ledger is shutting down.
type OnShutdown interface {
	Hook
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Event log observers
// ──────────────────────────────────────────────────

// OnEvent receives every durable ledger event, in append order.
type OnEvent interface {
	Hook
	OnEvent(ctx context.Context, e *event.Event) error
}

// ──────────────────────────────────────────────────
// Invoice lifecycle hooks
// ──────────────────────────────────────────────────

// OnInvoiceCreated is called when a new invoice is recorded.
type OnInvoiceCreated interface {
	Hook
	OnInvoiceCreated(ctx context.Context, inv *invoice.Invoice) error
}

// OnInvoicePaid is called when an invoice settles.
type OnInvoicePaid interface {
	Hook
	OnInvoicePaid(ctx context.Context, inv *invoice.Invoice) error
}

// OnInvoiceEdited is called when an invoice is re-keyed or amended.
type OnInvoiceEdited interface {
	Hook
	OnInvoiceEdited(ctx context.Context, oldID string, inv *invoice.Invoice) error
}

// OnInvoiceDeleted is called when an invoice is removed.
type OnInvoiceDeleted interface {
	Hook
	OnInvoiceDeleted(ctx context.Context, invoiceID string) error
}

// ──────────────────────────────────────────────────
// Grant lifecycle hooks
// ──────────────────────────────────────────────────

// OnGrantSet is called when the administrator assigns or overwrites a grant.
type OnGrantSet interface {
	Hook
	OnGrantSet(ctx context.Context, g *grant.Grant) error
}

// OnGrantRevoked is called when the administrator revokes a grant.
type OnGrantRevoked interface {
	Hook
	OnGrantRevoked(ctx context.Context, creator types.Identity) error
}

// ──────────────────────────────────────────────────
// Settlement hooks
// ──────────────────────────────────────────────────

// OnPaymentFailed is called when the transfer service declines a settlement.
// The ledger state is unchanged when this fires.
type OnPaymentFailed interface {
	Hook
	OnPaymentFailed(ctx context.Context, invoiceID string, payer types.Identity, err error) error
}
