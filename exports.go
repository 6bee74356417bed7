package payable

import (
	"github.com/xraph/payable/invoice"
	"github.com/xraph/payable/types"
)

// Re-export common types for convenience so users don't have to import the
// subpackages.

// Identity is re-exported from the types package.
type Identity = types.Identity

// Entity is re-exported from the types package.
type Entity = types.Entity

// Invoice is re-exported from the invoice package.
type Invoice = invoice.Invoice

// Hash is re-exported from the invoice package.
type Hash = invoice.Hash

// Nobody is the zero Identity.
const Nobody = types.Nobody

// Re-export constructors.
var (
	NewEntity = types.NewEntity
	HashID    = invoice.HashID
	ParseHash = invoice.ParseHash
)
