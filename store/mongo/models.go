package mongo

import (
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/payable/event"
	"github.com/xraph/payable/id"
	"github.com/xraph/payable/invoice"
	"github.com/xraph/payable/types"
)

// ==================== Invoice models ====================

type invoiceModel struct {
	grove.BaseModel `grove:"table:payable_invoices"`

	IDHash      string     `grove:"id_hash,pk"  bson:"_id"`
	InvoiceID   string     `grove:"invoice_id"  bson:"invoice_id"`
	Amount      int64      `grove:"amount"      bson:"amount"`
	Issuer      string     `grove:"issuer"      bson:"issuer"`
	Paid        bool       `grove:"paid"        bson:"paid"`
	Payer       string     `grove:"payer"       bson:"payer"`
	PaidAt      *time.Time `grove:"paid_at"     bson:"paid_at,omitempty"`
	Description string     `grove:"description" bson:"description"`
	CreatedAt   time.Time  `grove:"created_at"  bson:"created_at"`
	UpdatedAt   time.Time  `grove:"updated_at"  bson:"updated_at"`
}

func toInvoiceModel(inv *invoice.Invoice) *invoiceModel {
	m := &invoiceModel{
		IDHash:      inv.IDHash().String(),
		InvoiceID:   inv.ID,
		Amount:      int64(inv.Amount),
		Issuer:      inv.Issuer.String(),
		Paid:        inv.Paid,
		Payer:       inv.Payer.String(),
		Description: inv.Description,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
	if !inv.PaidAt.IsZero() {
		t := inv.PaidAt
		m.PaidAt = &t
	}
	return m
}

func fromInvoiceModel(m *invoiceModel) *invoice.Invoice {
	inv := &invoice.Invoice{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:          m.InvoiceID,
		Amount:      uint64(m.Amount),
		Issuer:      types.Identity(m.Issuer),
		Paid:        m.Paid,
		Payer:       types.Identity(m.Payer),
		Description: m.Description,
	}
	if m.PaidAt != nil {
		inv.PaidAt = *m.PaidAt
	}
	return inv
}

// ==================== Grant models ====================

type grantModel struct {
	grove.BaseModel `grove:"table:payable_grants"`

	Creator   string    `grove:"creator,pk"  bson:"_id"`
	Prefix    string    `grove:"prefix"      bson:"prefix"`
	CreatedAt time.Time `grove:"created_at"  bson:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"  bson:"updated_at"`
}

// ==================== Meta models ====================

type metaModel struct {
	grove.BaseModel `grove:"table:payable_meta"`

	Key       string    `grove:"key,pk"     bson:"_id"`
	Value     string    `grove:"value"      bson:"value"`
	CreatedAt time.Time `grove:"created_at" bson:"created_at"`
}

const administratorKey = "administrator"

// ==================== Event models ====================

type eventModel struct {
	grove.BaseModel `grove:"table:payable_events"`

	Seq       int64     `grove:"seq,pk"     bson:"_id"`
	EventID   string    `grove:"event_id"   bson:"event_id"`
	Type      string    `grove:"type"       bson:"type"`
	IDHash    string    `grove:"id_hash"    bson:"id_hash,omitempty"`
	InvoiceID string    `grove:"invoice_id" bson:"invoice_id,omitempty"`
	OldID     string    `grove:"old_id"     bson:"old_id,omitempty"`
	NewID     string    `grove:"new_id"     bson:"new_id,omitempty"`
	Amount    int64     `grove:"amount"     bson:"amount,omitempty"`
	Actor     string    `grove:"actor"      bson:"actor,omitempty"`
	At        time.Time `grove:"at"         bson:"at"`
}

func toEventModel(e *event.Event) *eventModel {
	m := &eventModel{
		Seq:       int64(e.Seq),
		EventID:   e.ID.String(),
		Type:      string(e.Type),
		InvoiceID: e.InvoiceID,
		OldID:     e.OldID,
		NewID:     e.NewID,
		Amount:    int64(e.Amount),
		Actor:     e.Actor.String(),
		At:        e.At,
	}
	if e.IDHash != (invoice.Hash{}) {
		m.IDHash = e.IDHash.String()
	}
	return m
}

func fromEventModel(m *eventModel) (*event.Event, error) {
	eventID, err := id.ParseEventID(m.EventID)
	if err != nil {
		return nil, err
	}

	e := &event.Event{
		ID:        eventID,
		Seq:       uint64(m.Seq),
		Type:      event.Type(m.Type),
		InvoiceID: m.InvoiceID,
		OldID:     m.OldID,
		NewID:     m.NewID,
		Amount:    uint64(m.Amount),
		Actor:     types.Identity(m.Actor),
		At:        m.At,
	}
	if m.IDHash != "" {
		h, err := invoice.ParseHash(m.IDHash)
		if err != nil {
			return nil, err
		}
		e.IDHash = h
	}
	return e, nil
}
