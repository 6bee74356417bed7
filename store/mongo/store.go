package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	payable "github.com/xraph/payable"
	"github.com/xraph/payable/event"
	"github.com/xraph/payable/grant"
	"github.com/xraph/payable/invoice"
	payablestore "github.com/xraph/payable/store"
	"github.com/xraph/payable/types"
)

// Collection name constants.
const (
	colInvoices = "payable_invoices"
	colGrants   = "payable_grants"
	colMeta     = "payable_meta"
	colEvents   = "payable_events"
)

// compile-time interface check
var _ payablestore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all payable collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("payable/mongo: migrate %s indexes: %w", col, err)
		}
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
	var existing invoiceModel
	err := s.mdb.NewFind(&existing).
		Filter(bson.M{"_id": inv.IDHash().String()}).
		Scan(ctx)
	if err == nil {
		return payable.ErrAlreadyExists
	}
	if !isNoDocuments(err) {
		return fmt.Errorf("payable/mongo: create invoice: %w", err)
	}

	m := toInvoiceModel(inv)
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("payable/mongo: create invoice: %w", err)
	}
	return nil
}

func (s *Store) GetInvoice(ctx context.Context, h invoice.Hash) (*invoice.Invoice, error) {
	var m invoiceModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": h.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, payable.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("payable/mongo: get invoice: %w", err)
	}
	return fromInvoiceModel(&m), nil
}

// ReplaceInvoice drops the record at oldHash and writes inv under its own
// hash. The destination is overwritten if occupied: edit carries no
// uniqueness check, unlike create.
func (s *Store) ReplaceInvoice(ctx context.Context, oldHash invoice.Hash, inv *invoice.Invoice) error {
	res, err := s.mdb.NewDelete((*invoiceModel)(nil)).
		Filter(bson.M{"_id": oldHash.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("payable/mongo: replace invoice: %w", err)
	}
	if res.DeletedCount() == 0 {
		return payable.ErrInvoiceNotFound
	}

	m := toInvoiceModel(inv)
	_, err = s.mdb.NewDelete((*invoiceModel)(nil)).
		Filter(bson.M{"_id": m.IDHash}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("payable/mongo: replace invoice: %w", err)
	}
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("payable/mongo: replace invoice: %w", err)
	}
	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, h invoice.Hash) error {
	res, err := s.mdb.NewDelete((*invoiceModel)(nil)).
		Filter(bson.M{"_id": h.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("payable/mongo: delete invoice: %w", err)
	}
	if res.DeletedCount() == 0 {
		return payable.ErrInvoiceNotFound
	}
	return nil
}

func (s *Store) MarkInvoicePaid(ctx context.Context, h invoice.Hash, payer types.Identity, paidAt time.Time) error {
	t := now()
	res, err := s.mdb.NewUpdate((*invoiceModel)(nil)).
		Filter(bson.M{"_id": h.String()}).
		Set("paid", true).
		Set("payer", payer.String()).
		Set("paid_at", paidAt).
		Set("updated_at", t).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("payable/mongo: mark invoice paid: %w", err)
	}
	if res.MatchedCount() == 0 {
		return payable.ErrInvoiceNotFound
	}
	return nil
}

func (s *Store) ListInvoices(ctx context.Context, opts invoice.ListOpts) ([]*invoice.Invoice, error) {
	var models []invoiceModel

	filter := bson.M{}
	if opts.Issuer != types.Nobody {
		filter["issuer"] = opts.Issuer.String()
	}
	if opts.Paid != nil {
		filter["paid"] = *opts.Paid
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "created_at", Value: -1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("payable/mongo: list invoices: %w", err)
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

	res, err := s.mdb.NewUpdate((*grantModel)(nil)).
		Filter(bson.M{"_id": m.Creator}).
		Set("prefix", m.Prefix).
		Set("updated_at", m.UpdatedAt).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("payable/mongo: set grant: %w", err)
	}
	if res.MatchedCount() > 0 {
		return nil
	}

	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("payable/mongo: set grant: %w", err)
	}
	return nil
}

func (s *Store) GetGrant(ctx context.Context, creator types.Identity) (*grant.Grant, error) {
	var m grantModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": creator.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, payable.ErrGrantNotFound
		}
		return nil, fmt.Errorf("payable/mongo: get grant: %w", err)
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
	_, err := s.mdb.NewDelete((*grantModel)(nil)).
		Filter(bson.M{"_id": creator.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("payable/mongo: delete grant: %w", err)
	}
	return nil
}

// ==================== Administrator singleton ====================

func (s *Store) SetAdministrator(ctx context.Context, admin types.Identity) error {
	var existing metaModel
	err := s.mdb.NewFind(&existing).
		Filter(bson.M{"_id": administratorKey}).
		Scan(ctx)
	if err == nil {
		return payable.ErrAlreadyInitialized
	}
	if !isNoDocuments(err) {
		return fmt.Errorf("payable/mongo: set administrator: %w", err)
	}

	m := &metaModel{
		Key:       administratorKey,
		Value:     admin.String(),
		CreatedAt: now(),
	}
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("payable/mongo: set administrator: %w", err)
	}
	return nil
}

func (s *Store) Administrator(ctx context.Context) (types.Identity, error) {
	var m metaModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": administratorKey}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return types.Nobody, payable.ErrNoAdministrator
		}
		return types.Nobody, fmt.Errorf("payable/mongo: get administrator: %w", err)
	}
	return types.Identity(m.Value), nil
}

// ==================== Event Store ====================

// AppendEvent assigns the next sequence number and inserts the entry.
// Callers serialize appends, so the max-plus-one read is race-free.
func (s *Store) AppendEvent(ctx context.Context, e *event.Event) error {
	var last eventModel
	err := s.mdb.NewFind(&last).
		Sort(bson.D{{Key: "_id", Value: -1}}).
		Scan(ctx)
	switch {
	case isNoDocuments(err):
		e.Seq = 1
	case err != nil:
		return fmt.Errorf("payable/mongo: append event: %w", err)
	default:
		e.Seq = uint64(last.Seq) + 1
	}

	m := toEventModel(e)
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("payable/mongo: append event: %w", err)
	}
	return nil
}

func (s *Store) ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]*event.Event, error) {
	var models []eventModel
	q := s.mdb.NewFind(&models).
		Filter(bson.M{"_id": bson.M{"$gt": int64(afterSeq)}}).
		Sort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		q = q.Limit(int64(limit))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("payable/mongo: list events: %w", err)
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

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all payable collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colInvoices: {
			{Keys: bson.D{{Key: "issuer", Value: 1}}},
			{Keys: bson.D{{Key: "issuer", Value: 1}, {Key: "paid", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		colGrants: {},
		colMeta:   {},
		colEvents: {
			{Keys: bson.D{{Key: "type", Value: 1}}},
			{Keys: bson.D{{Key: "invoice_id", Value: 1}}},
			{
				Keys:    bson.D{{Key: "event_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	}
}
