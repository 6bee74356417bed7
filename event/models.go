// Package event defines the durable ledger event log entries.
//
// Exactly one entry is appended per successful state-changing invoice
// operation, in the same unit of work as the mutation. Reads and failed
// operations never produce entries. Entries are ordered by a store-assigned
// sequence number; the TypeID gives each entry a globally unique,
// time-sortable identity on top of that.
package event

import (
	"time"

	"github.com/xraph/payable/id"
	"github.com/xraph/payable/invoice"
	"github.com/xraph/payable/types"
)

// Type discriminates ledger event payloads.
type Type string

const (
	TypeInvoiceCreated Type = "invoice.created"
	TypeInvoicePaid    Type = "invoice.paid"
	TypeInvoiceEdited  Type = "invoice.edited"
	TypeInvoiceDeleted Type = "invoice.deleted"
)

// Event is a single append-only ledger log entry. Which fields are set
// depends on Type: created and paid entries carry the hash, identifier,
// amount and acting identity; edited entries carry the old and new
// identifiers; deleted entries carry the identifier only.
type Event struct {
	ID   id.EventID `json:"id"`
	Seq  uint64     `json:"seq"` // assigned by the store on append
	Type Type       `json:"type"`

	IDHash    invoice.Hash   `json:"id_hash,omitempty"`
	InvoiceID string         `json:"invoice_id,omitempty"`
	OldID     string         `json:"old_id,omitempty"`
	NewID     string         `json:"new_id,omitempty"`
	Amount    uint64         `json:"amount,omitempty"`
	Actor     types.Identity `json:"actor,omitempty"` // issuer for created, payer for paid

	At time.Time `json:"at"`
}

// NewInvoiceCreated builds an InvoiceCreated entry.
func NewInvoiceCreated(inv *invoice.Invoice) *Event {
	return &Event{
		ID:        id.NewEventID(),
		Type:      TypeInvoiceCreated,
		IDHash:    inv.IDHash(),
		InvoiceID: inv.ID,
		Amount:    inv.Amount,
		Actor:     inv.Issuer,
		At:        time.Now().UTC(),
	}
}

// NewInvoicePaid builds an InvoicePaid entry.
func NewInvoicePaid(inv *invoice.Invoice, payer types.Identity) *Event {
	return &Event{
		ID:        id.NewEventID(),
		Type:      TypeInvoicePaid,
		IDHash:    inv.IDHash(),
		InvoiceID: inv.ID,
		Amount:    inv.Amount,
		Actor:     payer,
		At:        time.Now().UTC(),
	}
}

// NewInvoiceEdited builds an InvoiceEdited entry.
func NewInvoiceEdited(oldID, newID string) *Event {
	return &Event{
		ID:    id.NewEventID(),
		Type:  TypeInvoiceEdited,
		OldID: oldID,
		NewID: newID,
		At:    time.Now().UTC(),
	}
}

// NewInvoiceDeleted builds an InvoiceDeleted entry.
func NewInvoiceDeleted(invoiceID string) *Event {
	return &Event{
		ID:        id.NewEventID(),
		Type:      TypeInvoiceDeleted,
		InvoiceID: invoiceID,
		At:        time.Now().UTC(),
	}
}
