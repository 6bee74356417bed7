package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/pgdriver"
	"github.com/xraph/grove/migrate"

	payable "github.com/xraph/payable"
	"github.com/xraph/payable/event"
	"github.com/xraph/payable/grant"
	"github.com/xraph/payable/invoice"
	payablestore "github.com/xraph/payable/store"
	"github.com/xraph/payable/types"
)

// compile-time interface check
var _ payablestore.Store = (*Store)(nil)

// Store implements store.Store using PostgreSQL via Grove ORM.
type Store struct {
	db *grove.DB
	pg *pgdriver.PgDB
}

// New creates a new PostgreSQL store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db: db,
		pg: pgdriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.pg)
	if err != nil {
		return fmt.Errorf("payable/postgres: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("payable/postgres: migration failed: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Invoice Store ====================

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	existing := new(invoiceModel)
	err := s.pg.NewSelect(existing).
		Where("id_hash = ?", inv.IDHash().String()).
		Scan(ctx)
	if err == nil {
		return payable.ErrAlreadyExists
	}
	if !isNoRows(err) {
		return err
	}

	m := toInvoiceModel(inv)
	_, err = s.pg.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetInvoice(ctx context.Context, h invoice.Hash) (*invoice.Invoice, error) {
	m := new(invoiceModel)
	err := s.pg.NewSelect(m).
		Where("id_hash = ?", h.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, payable.ErrInvoiceNotFound
		}
		return nil, err
	}
	return fromInvoiceModel(m), nil
}

// ReplaceInvoice drops the record at oldHash and writes inv under its own
// hash. The destination is overwritten if occupied: edit carries no
// uniqueness check, unlike create.
func (s *Store) ReplaceInvoice(ctx context.Context, oldHash invoice.Hash, inv *invoice.Invoice) error {
	res, err := s.pg.NewDelete((*invoiceModel)(nil)).
		Where("id_hash = ?", oldHash.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return payable.ErrInvoiceNotFound
	}

	m := toInvoiceModel(inv)
	_, err = s.pg.NewInsert(m).
		OnConflict("(id_hash) DO UPDATE").
		Set("invoice_id = EXCLUDED.invoice_id").
		Set("amount = EXCLUDED.amount").
		Set("issuer = EXCLUDED.issuer").
		Set("paid = EXCLUDED.paid").
		Set("payer = EXCLUDED.payer").
		Set("paid_at = EXCLUDED.paid_at").
		Set("description = EXCLUDED.description").
		Set("created_at = EXCLUDED.created_at").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (s *Store) DeleteInvoice(ctx context.Context, h invoice.Hash) error {
	res, err := s.pg.NewDelete((*invoiceModel)(nil)).
		Where("id_hash = ?", h.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return payable.ErrInvoiceNotFound
	}
	return nil
}

func (s *Store) MarkInvoicePaid(ctx context.Context, h invoice.Hash, payer types.Identity, paidAt time.Time) error {
	t := now()
	res, err := s.pg.NewUpdate((*invoiceModel)(nil)).
		Set("paid = ?", true).
		Set("payer = ?", payer.String()).
		Set("paid_at = ?", paidAt).
		Set("updated_at = ?", t).
		Where("id_hash = ?", h.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return payable.ErrInvoiceNotFound
	}
	return nil
}

func (s *Store) ListInvoices(ctx context.Context, opts invoice.ListOpts) ([]*invoice.Invoice, error) {
	var models []invoiceModel
	q := s.pg.NewSelect(&models)

	if opts.Issuer != types.Nobody {
		q = q.Where("issuer = ?", opts.Issuer.String())
	}
	if opts.Paid != nil {
		q = q.Where("paid = ?", *opts.Paid)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at DESC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*invoice.Invoice, len(models))
	for i := range models {
		result[i] = fromInvoiceModel(&models[i])
	}
	return result, nil
}

// ==================== Grant Store ====================

func (s *Store) SetGrant(ctx context.Context, g *grant.Grant) error {
	m := &grantModel{
		Creator:   g.Creator.String(),
		Prefix:    g.Prefix,
		CreatedAt: g.CreatedAt,
		UpdatedAt: now(),
	}
	_, err := s.pg.NewInsert(m).
		OnConflict("(creator) DO UPDATE").
		Set("prefix = EXCLUDED.prefix").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (s *Store) GetGrant(ctx context.Context, creator types.Identity) (*grant.Grant, error) {
	m := new(grantModel)
	err := s.pg.NewSelect(m).
		Where("creator = ?", creator.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, payable.ErrGrantNotFound
		}
		return nil, err
	}
	return &grant.Grant{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Creator: types.Identity(m.Creator),
		Prefix:  m.Prefix,
	}, nil
}

func (s *Store) DeleteGrant(ctx context.Context, creator types.Identity) error {
	// Revoking an absent grant is not an error.
	_, err := s.pg.NewDelete((*grantModel)(nil)).
		Where("creator = ?", creator.String()).
		Exec(ctx)
	return err
}

// ==================== Administrator singleton ====================

func (s *Store) SetAdministrator(ctx context.Context, admin types.Identity) error {
	existing := new(metaModel)
	err := s.pg.NewSelect(existing).
		Where("key = ?", administratorKey).
		Scan(ctx)
	if err == nil {
		return payable.ErrAlreadyInitialized
	}
	if !isNoRows(err) {
		return err
	}

	m := &metaModel{
		Key:       administratorKey,
		Value:     admin.String(),
		CreatedAt: now(),
	}
	_, err = s.pg.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) Administrator(ctx context.Context) (types.Identity, error) {
	m := new(metaModel)
	err := s.pg.NewSelect(m).
		Where("key = ?", administratorKey).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return types.Nobody, payable.ErrNoAdministrator
		}
		return types.Nobody, err
	}
	return types.Identity(m.Value), nil
}

// ==================== Event Store ====================

// AppendEvent assigns the next sequence number and inserts the entry.
// Callers serialize appends, so the max-plus-one read is race-free.
func (s *Store) AppendEvent(ctx context.Context, e *event.Event) error {
	var next int64
	err := s.pg.NewRaw(`SELECT COALESCE(MAX(seq), 0) + 1 FROM payable_events`).Scan(ctx, &next)
	if err != nil {
		return err
	}
	e.Seq = uint64(next)

	m := toEventModel(e)
	_, err = s.pg.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]*event.Event, error) {
	var models []eventModel
	q := s.pg.NewSelect(&models).
		Where("seq > ?", int64(afterSeq)).
		OrderExpr("seq ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}

	result := make([]*event.Event, len(models))
	for i := range models {
		e, err := fromEventModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = e
	}
	return result, nil
}

// ==================== Helpers ====================

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
