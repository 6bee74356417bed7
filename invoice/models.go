// Package invoice defines the invoice record and its content-hash key.
package invoice

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/xraph/payable/types"
)

// Hash is the fixed-width storage key derived from an invoice's
// human-readable identifier. Collisions are assumed away: two identifiers
// hashing to the same key address the same record.
type Hash [sha256.Size]byte

// HashID derives the storage key for a human-readable invoice identifier.
// The digest is deterministic, so the same identifier always addresses the
// same record across stores and restarts.
func HashID(id string) Hash {
	return sha256.Sum256([]byte(id))
}

// String returns the hex rendering of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// ParseHash parses a hex-rendered hash back into a Hash.
func ParseHash(s string) (Hash, error) {
	var h Hash
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("invoice: parse hash %q: %w", s, err)
	}
	if len(b) != len(h) {
		return h, fmt.Errorf("invoice: parse hash %q: want %d bytes, got %d", s, len(h), len(b))
	}
	copy(h[:], b)
	return h, nil
}

// Invoice is the core ledger record: an amount owed, its issuer, payment
// status and descriptive metadata. It is stored under HashID(ID); the
// original identifier is kept inside the record for event emission and
// prefix checks.
//
// A record is present iff Issuer is non-empty; an absent key and an empty
// issuer are the same not-found state. Paid is terminal: once true, the
// record can no longer be edited, deleted or paid again, and Payer and
// PaidAt are guaranteed to be set.
type Invoice struct {
	types.Entity
	ID          string         `json:"id"`
	Amount      uint64         `json:"amount"` // base currency units
	Issuer      types.Identity `json:"issuer"`
	Paid        bool           `json:"paid"`
	Payer       types.Identity `json:"payer,omitempty"`
	PaidAt      time.Time      `json:"paid_at,omitzero"`
	Description string         `json:"description"`
}

// IDHash returns the storage key for this invoice.
func (inv *Invoice) IDHash() Hash {
	return HashID(inv.ID)
}

// Present reports whether the record exists (issuer-set convention).
func (inv *Invoice) Present() bool {
	return !inv.Issuer.IsZero()
}

// New creates an open invoice issued by the given identity.
func New(id string, amount uint64, description string, issuer types.Identity) *Invoice {
	return &Invoice{
		Entity:      types.NewEntity(),
		ID:          id,
		Amount:      amount,
		Issuer:      issuer,
		Description: description,
	}
}
