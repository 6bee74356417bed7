// Package memory provides an in-memory Store for tests and development.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xraph/payable"
	"github.com/xraph/payable/event"
	"github.com/xraph/payable/grant"
	"github.com/xraph/payable/invoice"
	"github.com/xraph/payable/store"
	"github.com/xraph/payable/types"
)

// compile-time interface check
var _ store.Store = (*Store)(nil)

type Store struct {
	mu sync.RWMutex

	// Invoice table keyed by identifier hash
	invoices map[invoice.Hash]*invoice.Invoice

	// Grant table keyed by creator identity
	grants map[types.Identity]*grant.Grant

	// Administrator singleton
	admin types.Identity

	// Append-only event log
	events []*event.Event
	seq    uint64
}

func New() *Store {
	return &Store{
		invoices: make(map[invoice.Hash]*invoice.Invoice),
		grants:   make(map[types.Identity]*grant.Grant),
	}
}

// Invoice Store implementation

func (s *Store) CreateInvoice(_ context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := inv.IDHash()
	if existing, ok := s.invoices[h]; ok && existing.Present() {
		return payable.ErrAlreadyExists
	}
	s.invoices[h] = cloneInvoice(inv)
	return nil
}

func (s *Store) GetInvoice(_ context.Context, h invoice.Hash) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if inv, ok := s.invoices[h]; ok && inv.Present() {
		return cloneInvoice(inv), nil
	}
	return nil, payable.ErrInvoiceNotFound
}

func (s *Store) ReplaceInvoice(_ context.Context, oldHash invoice.Hash, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.invoices[oldHash]; !ok || !existing.Present() {
		return payable.ErrInvoiceNotFound
	}
	delete(s.invoices, oldHash)
	// Destination is overwritten if occupied: edit carries no uniqueness
	// check, unlike create.
	s.invoices[inv.IDHash()] = cloneInvoice(inv)
	return nil
}

func (s *Store) DeleteInvoice(_ context.Context, h invoice.Hash) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.invoices[h]; !ok || !existing.Present() {
		return payable.ErrInvoiceNotFound
	}
	delete(s.invoices, h)
	return nil
}

func (s *Store) MarkInvoicePaid(_ context.Context, h invoice.Hash, payer types.Identity, paidAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invoices[h]
	if !ok || !inv.Present() {
		return payable.ErrInvoiceNotFound
	}
	inv.Paid = true
	inv.Payer = payer
	inv.PaidAt = paidAt
	inv.Touch()
	return nil
}

func (s *Store) ListInvoices(_ context.Context, opts invoice.ListOpts) ([]*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*invoice.Invoice, 0)
	for _, inv := range s.invoices {
		if !inv.Present() {
			continue
		}
		if !opts.Issuer.IsZero() && inv.Issuer != opts.Issuer {
			continue
		}
		if opts.Paid != nil && inv.Paid != *opts.Paid {
			continue
		}
		result = append(result, cloneInvoice(inv))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	// Apply limit/offset
	start := opts.Offset
	if start > len(result) {
		start = len(result)
	}
	end := start + opts.Limit
	if opts.Limit == 0 || end > len(result) {
		end = len(result)
	}

	return result[start:end], nil
}

// Grant Store implementation

func (s *Store) SetGrant(_ context.Context, g *grant.Grant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *g
	s.grants[g.Creator] = &cp
	return nil
}

func (s *Store) GetGrant(_ context.Context, creator types.Identity) (*grant.Grant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if g, ok := s.grants[creator]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, payable.ErrGrantNotFound
}

func (s *Store) DeleteGrant(_ context.Context, creator types.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.grants, creator)
	return nil
}

// Administrator singleton

func (s *Store) SetAdministrator(_ context.Context, admin types.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.admin.IsZero() {
		return payable.ErrAlreadyInitialized
	}
	s.admin = admin
	return nil
}

func (s *Store) Administrator(_ context.Context) (types.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.admin.IsZero() {
		return types.Nobody, payable.ErrNoAdministrator
	}
	return s.admin, nil
}

// Event log

func (s *Store) AppendEvent(_ context.Context, e *event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	e.Seq = s.seq
	cp := *e
	s.events = append(s.events, &cp)
	return nil
}

func (s *Store) ListEvents(_ context.Context, afterSeq uint64, limit int) ([]*event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*event.Event, 0)
	for _, e := range s.events {
		if e.Seq <= afterSeq {
			continue
		}
		cp := *e
		result = append(result, &cp)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

// Store management

func (s *Store) Migrate(_ context.Context) error {
	return nil // No migration needed for memory store
}

func (s *Store) Ping(_ context.Context) error {
	return nil // Always available
}

func (s *Store) Close() error {
	return nil // Nothing to close
}

// cloneInvoice keeps callers from mutating table-held records.
func cloneInvoice(inv *invoice.Invoice) *invoice.Invoice {
	cp := *inv
	return &cp
}
