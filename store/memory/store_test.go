package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	payable "github.com/xraph/payable"
	"github.com/xraph/payable/event"
	"github.com/xraph/payable/grant"
	"github.com/xraph/payable/invoice"
)

func TestInvoiceLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	inv := invoice.New("INV-1", 500, "consulting", "acct:billing")
	if err := s.CreateInvoice(ctx, inv); err != nil {
		t.Fatalf("CreateInvoice() error = %v", err)
	}
	if err := s.CreateInvoice(ctx, inv); !errors.Is(err, payable.ErrAlreadyExists) {
		t.Fatalf("duplicate CreateInvoice() error = %v, want ErrAlreadyExists", err)
	}

	got, err := s.GetInvoice(ctx, inv.IDHash())
	if err != nil {
		t.Fatalf("GetInvoice() error = %v", err)
	}
	if got.ID != "INV-1" || got.Amount != 500 {
		t.Errorf("got %+v, want INV-1/500", got)
	}

	// Reads return copies, not aliases into store state.
	got.Amount = 1
	again, _ := s.GetInvoice(ctx, inv.IDHash())
	if again.Amount != 500 {
		t.Error("mutating a read result must not affect stored state")
	}

	if err := s.MarkInvoicePaid(ctx, inv.IDHash(), "acct:tenant", time.Now().UTC()); err != nil {
		t.Fatalf("MarkInvoicePaid() error = %v", err)
	}
	paid, _ := s.GetInvoice(ctx, inv.IDHash())
	if !paid.Paid || paid.Payer != "acct:tenant" || paid.PaidAt.IsZero() {
		t.Errorf("paid invoice = %+v", paid)
	}

	if err := s.DeleteInvoice(ctx, inv.IDHash()); err != nil {
		t.Fatalf("DeleteInvoice() error = %v", err)
	}
	if _, err := s.GetInvoice(ctx, inv.IDHash()); !errors.Is(err, payable.ErrInvoiceNotFound) {
		t.Fatalf("GetInvoice() after delete error = %v, want ErrInvoiceNotFound", err)
	}
	if err := s.DeleteInvoice(ctx, inv.IDHash()); !errors.Is(err, payable.ErrInvoiceNotFound) {
		t.Fatalf("second DeleteInvoice() error = %v, want ErrInvoiceNotFound", err)
	}
}

func TestReplaceInvoiceOverwritesDestination(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := invoice.New("INV-1", 500, "first", "acct:billing")
	second := invoice.New("INV-2", 999, "second", "acct:billing")
	if err := s.CreateInvoice(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateInvoice(ctx, second); err != nil {
		t.Fatal(err)
	}

	moved := invoice.New("INV-2", 750, "moved", "acct:billing")
	if err := s.ReplaceInvoice(ctx, first.IDHash(), moved); err != nil {
		t.Fatalf("ReplaceInvoice() error = %v", err)
	}

	if _, err := s.GetInvoice(ctx, first.IDHash()); !errors.Is(err, payable.ErrInvoiceNotFound) {
		t.Error("old key must be removed by replace")
	}

	got, err := s.GetInvoice(ctx, moved.IDHash())
	if err != nil {
		t.Fatalf("GetInvoice() error = %v", err)
	}
	if got.Amount != 750 || got.Description != "moved" {
		t.Errorf("destination = %+v, want the replacing record", got)
	}
}

func TestListInvoices(t *testing.T) {
	s := New()
	ctx := context.Background()

	a := invoice.New("A-1", 100, "", "acct:alpha")
	b := invoice.New("B-1", 200, "", "acct:beta")
	c := invoice.New("A-2", 300, "", "acct:alpha")
	for _, inv := range []*invoice.Invoice{a, b, c} {
		if err := s.CreateInvoice(ctx, inv); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.MarkInvoicePaid(ctx, c.IDHash(), "acct:tenant", time.Now().UTC()); err != nil {
		t.Fatal(err)
	}

	byIssuer, err := s.ListInvoices(ctx, invoice.ListOpts{Issuer: "acct:alpha"})
	if err != nil {
		t.Fatalf("ListInvoices() error = %v", err)
	}
	if len(byIssuer) != 2 {
		t.Errorf("len(byIssuer) = %d, want 2", len(byIssuer))
	}

	unpaid := false
	open, err := s.ListInvoices(ctx, invoice.ListOpts{Issuer: "acct:alpha", Paid: &unpaid})
	if err != nil {
		t.Fatalf("ListInvoices() error = %v", err)
	}
	if len(open) != 1 || open[0].ID != "A-1" {
		t.Errorf("open = %v, want just A-1", open)
	}
}

func TestGrantLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.GetGrant(ctx, "acct:billing"); !errors.Is(err, payable.ErrGrantNotFound) {
		t.Fatalf("GetGrant() error = %v, want ErrGrantNotFound", err)
	}

	if err := s.SetGrant(ctx, grant.New("acct:billing", "INV-")); err != nil {
		t.Fatalf("SetGrant() error = %v", err)
	}
	g, err := s.GetGrant(ctx, "acct:billing")
	if err != nil {
		t.Fatalf("GetGrant() error = %v", err)
	}
	if g.Prefix != "INV-" {
		t.Errorf("Prefix = %q, want INV-", g.Prefix)
	}

	// Regrant overwrites.
	if err := s.SetGrant(ctx, grant.New("acct:billing", "B-")); err != nil {
		t.Fatal(err)
	}
	g, _ = s.GetGrant(ctx, "acct:billing")
	if g.Prefix != "B-" {
		t.Errorf("Prefix = %q, want B- after regrant", g.Prefix)
	}

	if err := s.DeleteGrant(ctx, "acct:billing"); err != nil {
		t.Fatalf("DeleteGrant() error = %v", err)
	}
	// Deleting an absent grant is not an error.
	if err := s.DeleteGrant(ctx, "acct:billing"); err != nil {
		t.Fatalf("repeat DeleteGrant() error = %v", err)
	}
}

func TestAdministratorSingleton(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.Administrator(ctx); !errors.Is(err, payable.ErrNoAdministrator) {
		t.Fatalf("Administrator() error = %v, want ErrNoAdministrator", err)
	}

	if err := s.SetAdministrator(ctx, "acct:treasury"); err != nil {
		t.Fatalf("SetAdministrator() error = %v", err)
	}
	admin, err := s.Administrator(ctx)
	if err != nil {
		t.Fatalf("Administrator() error = %v", err)
	}
	if admin != "acct:treasury" {
		t.Errorf("Administrator() = %q", admin)
	}

	if err := s.SetAdministrator(ctx, "acct:intruder"); !errors.Is(err, payable.ErrAlreadyInitialized) {
		t.Fatalf("second SetAdministrator() error = %v, want ErrAlreadyInitialized", err)
	}
}

func TestAppendEventAssignsSeq(t *testing.T) {
	s := New()
	ctx := context.Background()

	inv := invoice.New("INV-1", 500, "", "acct:billing")
	first := event.NewInvoiceCreated(inv)
	second := event.NewInvoiceDeleted("INV-1")

	if err := s.AppendEvent(ctx, first); err != nil {
		t.Fatalf("AppendEvent() error = %v", err)
	}
	if err := s.AppendEvent(ctx, second); err != nil {
		t.Fatalf("AppendEvent() error = %v", err)
	}
	if first.Seq != 1 || second.Seq != 2 {
		t.Errorf("seqs = %d, %d, want 1, 2", first.Seq, second.Seq)
	}

	all, err := s.ListEvents(ctx, 0, 0)
	if err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len(all) = %d, want 2", len(all))
	}

	tail, err := s.ListEvents(ctx, 1, 0)
	if err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}
	if len(tail) != 1 || tail[0].Seq != 2 {
		t.Errorf("tail = %v, want the second event only", tail)
	}

	limited, err := s.ListEvents(ctx, 0, 1)
	if err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}
	if len(limited) != 1 || limited[0].Seq != 1 {
		t.Errorf("limited = %v, want the first event only", limited)
	}
}
