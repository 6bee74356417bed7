package payable

import "github.com/xraph/payable/id"

// ID is the primary identifier type for Payable entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
