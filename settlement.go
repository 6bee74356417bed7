package payable

import (
	"context"
	"fmt"
	"time"

	"github.com/xraph/payable/event"
	"github.com/xraph/payable/invoice"
	"github.com/xraph/payable/transfer"
	"github.com/xraph/payable/types"
)

// FeeDivisor sets the settlement fee at 1% of the invoice amount, rounded
// down by integer division.
const FeeDivisor = 100

// Fee returns the administrator's cut for settling an invoice of the given
// amount. Amounts under FeeDivisor settle fee-free.
func Fee(amount uint64) uint64 {
	return amount / FeeDivisor
}

// PayInvoice settles an invoice: caller pays the full amount to the issuer
// and the fee to the administrator, then the invoice is marked paid.
//
// Both transfers and the state mutation form one unit of work. Nothing is
// committed unless both transfers succeed; a transfer failure aborts the
// whole operation with ErrTransferFailed and the invoice stays unpaid. The
// caller must have pre-authorized the transfer service to move amount plus
// fee out of their balance.
//
// Paid is terminal. Settling an already-paid invoice fails with
// ErrAlreadyPaid and leaves payer and paidAt untouched.
func (l *Ledger) PayInvoice(ctx context.Context, invoiceID string, caller types.Identity) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	h := invoice.HashID(invoiceID)

	inv, err := l.store.GetInvoice(ctx, h)
	if IsNotFound(err) {
		return ErrInvoiceNotFound
	}
	if err != nil {
		return err
	}

	if inv.Paid {
		return ErrAlreadyPaid
	}

	fee := Fee(inv.Amount)

	if err := l.settle(ctx, caller, inv.Issuer, inv.Amount, fee); err != nil {
		l.hooks.EmitPaymentFailed(ctx, invoiceID, caller, err)

		l.logger.Warn("settlement failed",
			"invoice_id", invoiceID,
			"payer", caller,
			"error", err,
		)

		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}

	paidAt := time.Now().UTC()
	if err := l.store.MarkInvoicePaid(ctx, h, caller, paidAt); err != nil {
		return err
	}

	inv.Paid = true
	inv.Payer = caller
	inv.PaidAt = paidAt

	e := event.NewInvoicePaid(inv, caller)
	if err := l.store.AppendEvent(ctx, e); err != nil {
		return err
	}

	l.hooks.EmitEvent(ctx, e)
	l.hooks.EmitInvoicePaid(ctx, inv)

	l.logger.Info("invoice paid",
		"invoice_id", invoiceID,
		"amount", inv.Amount,
		"fee", fee,
		"payer", caller,
	)

	return nil
}

// settle moves the invoice amount to the issuer and the fee to the
// administrator.
//
// Services implementing transfer.Batcher receive both legs as one
// all-or-nothing batch. Plain transfer.Service implementations fall back to
// two sequential calls; if the first leg lands and the second fails, the
// invoice is still not marked paid, but the service holds an amount transfer
// this ledger cannot reverse. Use a Batcher when the backing service
// supports it.
func (l *Ledger) settle(ctx context.Context, payer, issuer types.Identity, amount, fee uint64) error {
	legs := []transfer.Transfer{
		{From: payer, To: issuer, Amount: amount},
		{From: payer, To: l.admin, Amount: fee},
	}

	if b, ok := l.transfers.(transfer.Batcher); ok {
		return b.TransferBatch(ctx, legs)
	}

	for _, leg := range legs {
		if err := l.transfers.TransferFrom(ctx, leg.From, leg.To, leg.Amount); err != nil {
			return err
		}
	}

	return nil
}
