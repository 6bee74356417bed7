package payable_test

import (
	"context"
	"errors"
	"testing"

	"github.com/xraph/payable"
	"github.com/xraph/payable/event"
	"github.com/xraph/payable/store/memory"
	"github.com/xraph/payable/transfer"
	"github.com/xraph/payable/types"
)

const (
	admin  = types.Identity("acct:treasury")
	issuer = types.Identity("acct:billing")
	payer  = types.Identity("acct:tenant")
)

func newTestLedger(t *testing.T) (*payable.Ledger, *transfer.Bank) {
	t.Helper()

	bank := transfer.NewBank()
	l := payable.New(memory.New(), bank, admin)
	if err := l.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { _ = l.Stop() })

	return l, bank
}

func TestCreateAndGet(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	if err := l.CreateInvoice(ctx, "INV-1", 500, "consulting", admin); err != nil {
		t.Fatalf("CreateInvoice() error = %v", err)
	}

	inv, err := l.GetInvoice(ctx, "INV-1")
	if err != nil {
		t.Fatalf("GetInvoice() error = %v", err)
	}

	if !inv.Present() {
		t.Fatal("expected invoice to be present")
	}
	if inv.Amount != 500 {
		t.Errorf("Amount = %d, want 500", inv.Amount)
	}
	if inv.Issuer != admin {
		t.Errorf("Issuer = %q, want %q", inv.Issuer, admin)
	}
	if inv.Paid {
		t.Error("new invoice must be unpaid")
	}
	if inv.Payer != types.Nobody {
		t.Errorf("Payer = %q, want empty", inv.Payer)
	}
	if !inv.PaidAt.IsZero() {
		t.Errorf("PaidAt = %v, want zero", inv.PaidAt)
	}
	if inv.Description != "consulting" {
		t.Errorf("Description = %q, want %q", inv.Description, "consulting")
	}
}

func TestGetInvoiceAbsentNeverFails(t *testing.T) {
	l, _ := newTestLedger(t)

	inv, err := l.GetInvoice(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("GetInvoice() error = %v, want nil for absent id", err)
	}
	if inv.Present() {
		t.Error("absent id must not be present")
	}
	if inv.Amount != 0 || inv.Issuer != types.Nobody || inv.Paid || inv.Payer != types.Nobody || !inv.PaidAt.IsZero() || inv.Description != "" {
		t.Errorf("absent id must return the zero invoice, got %+v", inv)
	}
}

func TestCreateDuplicate(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	if err := l.CreateInvoice(ctx, "INV-1", 500, "first", admin); err != nil {
		t.Fatalf("CreateInvoice() error = %v", err)
	}

	err := l.CreateInvoice(ctx, "INV-1", 999, "second", admin)
	if !errors.Is(err, payable.ErrAlreadyExists) {
		t.Fatalf("duplicate create error = %v, want ErrAlreadyExists", err)
	}

	// The failing call must leave the original untouched.
	inv, err := l.GetInvoice(ctx, "INV-1")
	if err != nil {
		t.Fatalf("GetInvoice() error = %v", err)
	}
	if inv.Amount != 500 || inv.Description != "first" {
		t.Errorf("invoice changed on failed create: amount=%d description=%q", inv.Amount, inv.Description)
	}
}

func TestPayExactlyOnce(t *testing.T) {
	l, bank := newTestLedger(t)
	ctx := context.Background()

	bank.Deposit(payer, 1_000)

	if err := l.CreateInvoice(ctx, "INV-1", 500, "consulting", admin); err != nil {
		t.Fatalf("CreateInvoice() error = %v", err)
	}
	if err := l.PayInvoice(ctx, "INV-1", payer); err != nil {
		t.Fatalf("PayInvoice() error = %v", err)
	}

	first, err := l.GetInvoice(ctx, "INV-1")
	if err != nil {
		t.Fatalf("GetInvoice() error = %v", err)
	}
	if !first.Paid {
		t.Fatal("invoice must be paid")
	}
	if first.Payer != payer {
		t.Errorf("Payer = %q, want %q", first.Payer, payer)
	}
	if first.PaidAt.IsZero() {
		t.Error("PaidAt must be set")
	}

	err = l.PayInvoice(ctx, "INV-1", "acct:someone-else")
	if !errors.Is(err, payable.ErrAlreadyPaid) {
		t.Fatalf("second pay error = %v, want ErrAlreadyPaid", err)
	}

	second, err := l.GetInvoice(ctx, "INV-1")
	if err != nil {
		t.Fatalf("GetInvoice() error = %v", err)
	}
	if second.Payer != first.Payer || !second.PaidAt.Equal(first.PaidAt) {
		t.Error("failed repeat payment must leave payer and paidAt unchanged")
	}
}

func TestPayAbsentInvoice(t *testing.T) {
	l, _ := newTestLedger(t)

	err := l.PayInvoice(context.Background(), "no-such-id", payer)
	if !errors.Is(err, payable.ErrInvoiceNotFound) {
		t.Fatalf("PayInvoice() error = %v, want ErrInvoiceNotFound", err)
	}
}

func TestEditInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("PreservesIssuerResetsPayment", func(t *testing.T) {
		l, _ := newTestLedger(t)

		if err := l.GrantCreator(ctx, issuer, "INV-", admin); err != nil {
			t.Fatalf("GrantCreator() error = %v", err)
		}
		if err := l.CreateInvoice(ctx, "INV-1", 500, "draft", issuer); err != nil {
			t.Fatalf("CreateInvoice() error = %v", err)
		}

		if err := l.EditInvoice(ctx, "INV-1", "INV-2", 750, "final", issuer); err != nil {
			t.Fatalf("EditInvoice() error = %v", err)
		}

		old, _ := l.GetInvoice(ctx, "INV-1")
		if old.Present() {
			t.Error("old id must be gone after edit")
		}

		inv, err := l.GetInvoice(ctx, "INV-2")
		if err != nil {
			t.Fatalf("GetInvoice() error = %v", err)
		}
		if inv.Issuer != issuer {
			t.Errorf("Issuer = %q, want original issuer %q", inv.Issuer, issuer)
		}
		if inv.Amount != 750 || inv.Description != "final" {
			t.Errorf("amount=%d description=%q, want 750/final", inv.Amount, inv.Description)
		}
		if inv.Paid || inv.Payer != types.Nobody || !inv.PaidAt.IsZero() {
			t.Error("edit must reset the payment fields")
		}
	})

	t.Run("PaidIsTerminal", func(t *testing.T) {
		l, bank := newTestLedger(t)
		bank.Deposit(payer, 1_000)

		if err := l.CreateInvoice(ctx, "INV-1", 500, "consulting", admin); err != nil {
			t.Fatalf("CreateInvoice() error = %v", err)
		}
		if err := l.PayInvoice(ctx, "INV-1", payer); err != nil {
			t.Fatalf("PayInvoice() error = %v", err)
		}

		err := l.EditInvoice(ctx, "INV-1", "INV-2", 750, "final", admin)
		if !errors.Is(err, payable.ErrAlreadyPaid) {
			t.Fatalf("EditInvoice() error = %v, want ErrAlreadyPaid", err)
		}
	})

	t.Run("AbsentSource", func(t *testing.T) {
		l, _ := newTestLedger(t)

		err := l.EditInvoice(ctx, "no-such-id", "INV-2", 750, "final", admin)
		if !errors.Is(err, payable.ErrNotFound) {
			t.Fatalf("EditInvoice() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("OnlyIssuerOrAdministrator", func(t *testing.T) {
		l, _ := newTestLedger(t)

		if err := l.CreateInvoice(ctx, "INV-1", 500, "consulting", admin); err != nil {
			t.Fatalf("CreateInvoice() error = %v", err)
		}

		err := l.EditInvoice(ctx, "INV-1", "INV-2", 750, "final", "acct:stranger")
		if !errors.Is(err, payable.ErrUnauthorized) {
			t.Fatalf("EditInvoice() error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("DestinationSilentlyOverwritten", func(t *testing.T) {
		l, _ := newTestLedger(t)

		if err := l.CreateInvoice(ctx, "INV-1", 500, "first", admin); err != nil {
			t.Fatalf("CreateInvoice() error = %v", err)
		}
		if err := l.CreateInvoice(ctx, "INV-2", 999, "second", admin); err != nil {
			t.Fatalf("CreateInvoice() error = %v", err)
		}

		// Edit carries no destination uniqueness check, unlike create.
		if err := l.EditInvoice(ctx, "INV-1", "INV-2", 750, "moved", admin); err != nil {
			t.Fatalf("EditInvoice() error = %v", err)
		}

		inv, err := l.GetInvoice(ctx, "INV-2")
		if err != nil {
			t.Fatalf("GetInvoice() error = %v", err)
		}
		if inv.Amount != 750 || inv.Description != "moved" {
			t.Errorf("destination not overwritten: amount=%d description=%q", inv.Amount, inv.Description)
		}
	})
}

func TestDeleteInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("RemovesRecord", func(t *testing.T) {
		l, _ := newTestLedger(t)

		if err := l.CreateInvoice(ctx, "INV-1", 500, "consulting", admin); err != nil {
			t.Fatalf("CreateInvoice() error = %v", err)
		}
		if err := l.DeleteInvoice(ctx, "INV-1", admin); err != nil {
			t.Fatalf("DeleteInvoice() error = %v", err)
		}

		inv, err := l.GetInvoice(ctx, "INV-1")
		if err != nil {
			t.Fatalf("GetInvoice() error = %v", err)
		}
		if inv.Present() {
			t.Error("deleted invoice must read back as the zero invoice")
		}
	})

	t.Run("AbsentRecord", func(t *testing.T) {
		l, _ := newTestLedger(t)

		err := l.DeleteInvoice(ctx, "no-such-id", admin)
		if !errors.Is(err, payable.ErrNotFound) {
			t.Fatalf("DeleteInvoice() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("PaidIsTerminal", func(t *testing.T) {
		l, bank := newTestLedger(t)
		bank.Deposit(payer, 1_000)

		if err := l.CreateInvoice(ctx, "INV-1", 500, "consulting", admin); err != nil {
			t.Fatalf("CreateInvoice() error = %v", err)
		}
		if err := l.PayInvoice(ctx, "INV-1", payer); err != nil {
			t.Fatalf("PayInvoice() error = %v", err)
		}

		err := l.DeleteInvoice(ctx, "INV-1", admin)
		if !errors.Is(err, payable.ErrAlreadyPaid) {
			t.Fatalf("DeleteInvoice() error = %v, want ErrAlreadyPaid", err)
		}
	})

	t.Run("OnlyIssuerOrAdministrator", func(t *testing.T) {
		l, _ := newTestLedger(t)

		if err := l.CreateInvoice(ctx, "INV-1", 500, "consulting", admin); err != nil {
			t.Fatalf("CreateInvoice() error = %v", err)
		}

		err := l.DeleteInvoice(ctx, "INV-1", "acct:stranger")
		if !errors.Is(err, payable.ErrUnauthorized) {
			t.Fatalf("DeleteInvoice() error = %v, want ErrUnauthorized", err)
		}
	})
}

func TestCreateAuthorization(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		grant     string // prefix granted to issuer before the attempt, "" for none
		invoiceID string
		caller    types.Identity
		wantErr   error
	}{
		{"AdministratorAlwaysAllowed", "", "anything-at-all", admin, nil},
		{"NoGrant", "", "A-1", issuer, payable.ErrUnauthorized},
		{"GrantCoversID", "A-", "A-1", issuer, nil},
		{"GrantDoesNotCoverID", "A-", "B-1", issuer, payable.ErrInvalidPrefix},
		{"IDShorterThanPrefix", "A-", "A", issuer, payable.ErrInvalidPrefix},
		{"CaseSensitive", "A-", "a-1", issuer, payable.ErrInvalidPrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestLedger(t)

			if tt.grant != "" {
				if err := l.GrantCreator(ctx, issuer, tt.grant, admin); err != nil {
					t.Fatalf("GrantCreator() error = %v", err)
				}
			}

			err := l.CreateInvoice(ctx, tt.invoiceID, 100, "x", tt.caller)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateInvoice(%q) error = %v, want %v", tt.invoiceID, err, tt.wantErr)
			}
		})
	}

	t.Run("EmptyPrefixGrantsNothing", func(t *testing.T) {
		l, _ := newTestLedger(t)

		// An empty prefix is stored but never matches, not even the
		// identifiers it would trivially byte-match.
		if err := l.GrantCreator(ctx, issuer, "", admin); err != nil {
			t.Fatalf("GrantCreator() error = %v", err)
		}

		err := l.CreateInvoice(ctx, "A-1", 100, "x", issuer)
		if !errors.Is(err, payable.ErrUnauthorized) {
			t.Fatalf("CreateInvoice() error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("RevokeRemovesRights", func(t *testing.T) {
		l, _ := newTestLedger(t)

		if err := l.GrantCreator(ctx, issuer, "A-", admin); err != nil {
			t.Fatalf("GrantCreator() error = %v", err)
		}
		if err := l.RevokeCreator(ctx, issuer, admin); err != nil {
			t.Fatalf("RevokeCreator() error = %v", err)
		}

		err := l.CreateInvoice(ctx, "A-1", 100, "x", issuer)
		if !errors.Is(err, payable.ErrUnauthorized) {
			t.Fatalf("CreateInvoice() error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("OnlyAdministratorGrants", func(t *testing.T) {
		l, _ := newTestLedger(t)

		if err := l.GrantCreator(ctx, issuer, "A-", issuer); !errors.Is(err, payable.ErrUnauthorized) {
			t.Fatalf("GrantCreator() error = %v, want ErrUnauthorized", err)
		}
		if err := l.RevokeCreator(ctx, issuer, issuer); !errors.Is(err, payable.ErrUnauthorized) {
			t.Fatalf("RevokeCreator() error = %v, want ErrUnauthorized", err)
		}
	})
}

func TestGetPrefix(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	prefix, err := l.GetPrefix(ctx, issuer)
	if err != nil {
		t.Fatalf("GetPrefix() error = %v", err)
	}
	if prefix != "" {
		t.Errorf("GetPrefix() = %q, want empty before grant", prefix)
	}

	if err := l.GrantCreator(ctx, issuer, "INV-", admin); err != nil {
		t.Fatalf("GrantCreator() error = %v", err)
	}

	prefix, err = l.GetPrefix(ctx, issuer)
	if err != nil {
		t.Fatalf("GetPrefix() error = %v", err)
	}
	if prefix != "INV-" {
		t.Errorf("GetPrefix() = %q, want %q", prefix, "INV-")
	}

	// A later grant replaces the prefix outright.
	if err := l.GrantCreator(ctx, issuer, "B-", admin); err != nil {
		t.Fatalf("GrantCreator() error = %v", err)
	}
	prefix, _ = l.GetPrefix(ctx, issuer)
	if prefix != "B-" {
		t.Errorf("GetPrefix() = %q, want %q after regrant", prefix, "B-")
	}
}

func TestFeeArithmetic(t *testing.T) {
	tests := []struct {
		amount uint64
		want   uint64
	}{
		{0, 0},
		{99, 0},
		{100, 1},
		{150, 1},
		{250, 2},
		{1_000, 10},
	}

	for _, tt := range tests {
		if got := payable.Fee(tt.amount); got != tt.want {
			t.Errorf("Fee(%d) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}

func TestSettlementBalances(t *testing.T) {
	ctx := context.Background()

	t.Run("FeeRoundsDownToZero", func(t *testing.T) {
		l, bank := newTestLedger(t)
		bank.Deposit(payer, 99)

		if err := l.GrantCreator(ctx, issuer, "X-", admin); err != nil {
			t.Fatalf("GrantCreator() error = %v", err)
		}
		if err := l.CreateInvoice(ctx, "X-1", 99, "small", issuer); err != nil {
			t.Fatalf("CreateInvoice() error = %v", err)
		}
		if err := l.PayInvoice(ctx, "X-1", payer); err != nil {
			t.Fatalf("PayInvoice() error = %v", err)
		}

		if got := bank.Balance(issuer); got != 99 {
			t.Errorf("issuer balance = %d, want 99", got)
		}
		if got := bank.Balance(admin); got != 0 {
			t.Errorf("administrator balance = %d, want 0", got)
		}
	})

	t.Run("FeeOnTopOfAmount", func(t *testing.T) {
		l, bank := newTestLedger(t)
		bank.Deposit(payer, 252)

		if err := l.GrantCreator(ctx, issuer, "X-", admin); err != nil {
			t.Fatalf("GrantCreator() error = %v", err)
		}
		if err := l.CreateInvoice(ctx, "X-1", 250, "mid", issuer); err != nil {
			t.Fatalf("CreateInvoice() error = %v", err)
		}
		if err := l.PayInvoice(ctx, "X-1", payer); err != nil {
			t.Fatalf("PayInvoice() error = %v", err)
		}

		if got := bank.Balance(issuer); got != 250 {
			t.Errorf("issuer balance = %d, want 250", got)
		}
		if got := bank.Balance(admin); got != 2 {
			t.Errorf("administrator balance = %d, want 2", got)
		}
		if got := bank.Balance(payer); got != 0 {
			t.Errorf("payer balance = %d, want 0", got)
		}
	})
}

func TestEndToEndRent(t *testing.T) {
	l, bank := newTestLedger(t)
	ctx := context.Background()

	bank.Deposit(payer, 2_000)

	if err := l.GrantCreator(ctx, issuer, "INV-", admin); err != nil {
		t.Fatalf("GrantCreator() error = %v", err)
	}
	if err := l.CreateInvoice(ctx, "INV-1", 1_000, "rent", issuer); err != nil {
		t.Fatalf("CreateInvoice() error = %v", err)
	}
	if err := l.PayInvoice(ctx, "INV-1", payer); err != nil {
		t.Fatalf("PayInvoice() error = %v", err)
	}

	if got := bank.Balance(issuer); got != 1_000 {
		t.Errorf("issuer balance = %d, want 1000", got)
	}
	if got := bank.Balance(admin); got != 10 {
		t.Errorf("administrator balance = %d, want 10", got)
	}

	inv, err := l.GetInvoice(ctx, "INV-1")
	if err != nil {
		t.Fatalf("GetInvoice() error = %v", err)
	}
	if inv.Amount != 1_000 || inv.Issuer != issuer || !inv.Paid || inv.Payer != payer || inv.PaidAt.IsZero() || inv.Description != "rent" {
		t.Errorf("invoice state = %+v, want paid rent invoice", inv)
	}

	events, err := l.ListEvents(ctx, 0, 0)
	if err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}

	var paid *event.Event
	for _, e := range events {
		if e.Type == event.TypeInvoicePaid {
			paid = e
		}
	}
	if paid == nil {
		t.Fatal("expected an invoice.paid event")
	}
	if paid.InvoiceID != "INV-1" || paid.Amount != 1_000 || paid.Actor != payer {
		t.Errorf("paid event = %+v, want INV-1/1000/%s", paid, payer)
	}
	if paid.IDHash != payable.HashID("INV-1") {
		t.Error("paid event must carry the identifier hash")
	}
}

// brokenFeeService delivers the amount leg and fails the fee leg. It is a
// plain transfer.Service, so the engine settles with two sequential calls.
type brokenFeeService struct {
	calls int
}

func (s *brokenFeeService) TransferFrom(_ context.Context, _, _ types.Identity, _ uint64) error {
	s.calls++
	if s.calls >= 2 {
		return errors.New("fee leg rejected")
	}
	return nil
}

func TestSettlementAtomicity(t *testing.T) {
	ctx := context.Background()

	t.Run("BatcherRollsBackBothLegs", func(t *testing.T) {
		l, bank := newTestLedger(t)

		// Enough for the amount leg, one unit short of the fee.
		bank.Deposit(payer, 1_009)

		if err := l.GrantCreator(ctx, issuer, "INV-", admin); err != nil {
			t.Fatalf("GrantCreator() error = %v", err)
		}
		if err := l.CreateInvoice(ctx, "INV-1", 1_000, "rent", issuer); err != nil {
			t.Fatalf("CreateInvoice() error = %v", err)
		}

		err := l.PayInvoice(ctx, "INV-1", payer)
		if !errors.Is(err, payable.ErrTransferFailed) {
			t.Fatalf("PayInvoice() error = %v, want ErrTransferFailed", err)
		}

		if got := bank.Balance(payer); got != 1_009 {
			t.Errorf("payer balance = %d, want 1009 untouched", got)
		}
		if got := bank.Balance(issuer); got != 0 {
			t.Errorf("issuer balance = %d, want 0 untouched", got)
		}

		inv, _ := l.GetInvoice(ctx, "INV-1")
		if inv.Paid {
			t.Error("invoice must stay unpaid after a failed settlement")
		}
	})

	t.Run("SequentialServiceStillNotCommitted", func(t *testing.T) {
		svc := &brokenFeeService{}
		l := payable.New(memory.New(), svc, admin)
		if err := l.Start(ctx); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		defer l.Stop()

		if err := l.CreateInvoice(ctx, "INV-1", 1_000, "rent", admin); err != nil {
			t.Fatalf("CreateInvoice() error = %v", err)
		}

		err := l.PayInvoice(ctx, "INV-1", payer)
		if !errors.Is(err, payable.ErrTransferFailed) {
			t.Fatalf("PayInvoice() error = %v, want ErrTransferFailed", err)
		}
		if svc.calls != 2 {
			t.Errorf("calls = %d, want 2", svc.calls)
		}

		inv, _ := l.GetInvoice(ctx, "INV-1")
		if inv.Paid || inv.Payer != types.Nobody || !inv.PaidAt.IsZero() {
			t.Error("failed settlement must not mark the invoice paid")
		}
	})
}

func TestStartPinsAdministrator(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	bank := transfer.NewBank()

	l := payable.New(s, bank, admin)
	if err := l.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Same identity against the same store is a no-op.
	again := payable.New(s, bank, admin)
	if err := again.Start(ctx); err != nil {
		t.Fatalf("restart with same administrator error = %v", err)
	}

	other := payable.New(s, bank, "acct:intruder")
	if err := other.Start(ctx); !errors.Is(err, payable.ErrAlreadyInitialized) {
		t.Fatalf("restart with different administrator error = %v, want ErrAlreadyInitialized", err)
	}
}

func TestEventLogOrder(t *testing.T) {
	l, bank := newTestLedger(t)
	ctx := context.Background()

	bank.Deposit(payer, 600)

	if err := l.CreateInvoice(ctx, "INV-1", 500, "a", admin); err != nil {
		t.Fatalf("CreateInvoice() error = %v", err)
	}
	if err := l.EditInvoice(ctx, "INV-1", "INV-2", 500, "b", admin); err != nil {
		t.Fatalf("EditInvoice() error = %v", err)
	}
	if err := l.PayInvoice(ctx, "INV-2", payer); err != nil {
		t.Fatalf("PayInvoice() error = %v", err)
	}
	if err := l.CreateInvoice(ctx, "INV-3", 100, "c", admin); err != nil {
		t.Fatalf("CreateInvoice() error = %v", err)
	}
	if err := l.DeleteInvoice(ctx, "INV-3", admin); err != nil {
		t.Fatalf("DeleteInvoice() error = %v", err)
	}

	events, err := l.ListEvents(ctx, 0, 0)
	if err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}

	want := []event.Type{
		event.TypeInvoiceCreated,
		event.TypeInvoiceEdited,
		event.TypeInvoicePaid,
		event.TypeInvoiceCreated,
		event.TypeInvoiceDeleted,
	}
	if len(events) != len(want) {
		t.Fatalf("len(events) = %d, want %d", len(events), len(want))
	}
	for i, e := range events {
		if e.Type != want[i] {
			t.Errorf("events[%d].Type = %q, want %q", i, e.Type, want[i])
		}
		if e.Seq != uint64(i+1) {
			t.Errorf("events[%d].Seq = %d, want %d", i, e.Seq, i+1)
		}
	}

	edited := events[1]
	if edited.OldID != "INV-1" || edited.NewID != "INV-2" {
		t.Errorf("edited event ids = %q/%q, want INV-1/INV-2", edited.OldID, edited.NewID)
	}

	// afterSeq pages the log.
	tail, err := l.ListEvents(ctx, 3, 0)
	if err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}
	if len(tail) != 2 {
		t.Fatalf("len(ListEvents(afterSeq=3)) = %d, want 2", len(tail))
	}
	if tail[0].Seq != 4 {
		t.Errorf("tail starts at seq %d, want 4", tail[0].Seq)
	}
}
