package payable

import (
	"context"

	"github.com/xraph/payable/event"
	"github.com/xraph/payable/invoice"
	"github.com/xraph/payable/types"
)

// CreateInvoice records a new invoice issued by caller.
//
// The caller must be the administrator or hold a grant whose prefix covers
// the identifier. Creating an identifier that already has a present record
// fails with ErrAlreadyExists and leaves no trace.
func (l *Ledger) CreateInvoice(ctx context.Context, invoiceID string, amount uint64, description string, caller types.Identity) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.authorizeCreate(ctx, invoiceID, caller); err != nil {
		return err
	}

	inv := invoice.New(invoiceID, amount, description, caller)
	if err := l.store.CreateInvoice(ctx, inv); err != nil {
		return err
	}

	e := event.NewInvoiceCreated(inv)
	if err := l.store.AppendEvent(ctx, e); err != nil {
		return err
	}

	l.hooks.EmitEvent(ctx, e)
	l.hooks.EmitInvoiceCreated(ctx, inv)

	l.logger.Info("invoice created",
		"invoice_id", invoiceID,
		"amount", amount,
		"issuer", caller,
	)

	return nil
}

// GetInvoice returns the invoice stored under the identifier's hash.
//
// Lookups never fail: an absent record comes back as the zero Invoice, whose
// empty issuer marks it not present. Callers distinguish the two states with
// Present().
func (l *Ledger) GetInvoice(ctx context.Context, invoiceID string) (*invoice.Invoice, error) {
	inv, err := l.store.GetInvoice(ctx, invoice.HashID(invoiceID))
	if IsNotFound(err) {
		return &invoice.Invoice{}, nil
	}
	if err != nil {
		return nil, err
	}

	return inv, nil
}

// EditInvoice moves an unpaid invoice from oldID to newID with a new amount
// and description. The original issuer is preserved and the payment fields
// are reset. Only the issuer or the administrator may edit.
//
// The destination key carries no uniqueness check: an invoice already stored
// under newID is silently overwritten. Create is the only operation that
// refuses occupied identifiers.
func (l *Ledger) EditInvoice(ctx context.Context, oldID, newID string, amount uint64, description string, caller types.Identity) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	oldHash := invoice.HashID(oldID)

	old, err := l.store.GetInvoice(ctx, oldHash)
	if IsNotFound(err) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if caller != old.Issuer && caller != l.admin {
		return ErrUnauthorized
	}
	if old.Paid {
		return ErrAlreadyPaid
	}

	fresh := invoice.New(newID, amount, description, old.Issuer)
	if err := l.store.ReplaceInvoice(ctx, oldHash, fresh); err != nil {
		return err
	}

	e := event.NewInvoiceEdited(oldID, newID)
	if err := l.store.AppendEvent(ctx, e); err != nil {
		return err
	}

	l.hooks.EmitEvent(ctx, e)
	l.hooks.EmitInvoiceEdited(ctx, oldID, fresh)

	l.logger.Info("invoice edited",
		"old_id", oldID,
		"new_id", newID,
		"amount", amount,
	)

	return nil
}

// DeleteInvoice removes an unpaid invoice. Only the issuer or the
// administrator may delete.
func (l *Ledger) DeleteInvoice(ctx context.Context, invoiceID string, caller types.Identity) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	h := invoice.HashID(invoiceID)

	inv, err := l.store.GetInvoice(ctx, h)
	if IsNotFound(err) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if caller != inv.Issuer && caller != l.admin {
		return ErrUnauthorized
	}
	if inv.Paid {
		return ErrAlreadyPaid
	}

	if err := l.store.DeleteInvoice(ctx, h); err != nil {
		return err
	}

	e := event.NewInvoiceDeleted(invoiceID)
	if err := l.store.AppendEvent(ctx, e); err != nil {
		return err
	}

	l.hooks.EmitEvent(ctx, e)
	l.hooks.EmitInvoiceDeleted(ctx, invoiceID)

	l.logger.Info("invoice deleted", "invoice_id", invoiceID)

	return nil
}

// ListInvoices returns stored invoices matching opts, newest first.
func (l *Ledger) ListInvoices(ctx context.Context, opts invoice.ListOpts) ([]*invoice.Invoice, error) {
	return l.store.ListInvoices(ctx, opts)
}

// ListEvents returns up to limit events with sequence numbers greater than
// afterSeq, in append order. A limit of zero means no limit.
func (l *Ledger) ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]*event.Event, error) {
	return l.store.ListEvents(ctx, afterSeq, limit)
}
