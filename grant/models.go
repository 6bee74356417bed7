// Package grant defines delegated, prefix-scoped invoice creation rights.
package grant

import (
	"strings"

	"github.com/xraph/payable/types"
)

// Grant gives a non-administrator identity the right to create invoices
// whose identifiers start with Prefix. The administrator assigns and revokes
// grants; granting again overwrites the previous prefix.
type Grant struct {
	types.Entity
	Creator types.Identity `json:"creator"`
	Prefix  string         `json:"prefix"`
}

// New creates a grant for the given creator and prefix.
func New(creator types.Identity, prefix string) *Grant {
	return &Grant{
		Entity:  types.NewEntity(),
		Creator: creator,
		Prefix:  prefix,
	}
}

// Allows reports whether the grant authorizes creating an invoice with the
// given identifier. The match is an exact, case-sensitive byte-wise prefix
// comparison; an identifier shorter than the prefix never matches.
//
// An empty prefix never allows anything: it is indistinguishable from the
// absence of a grant, even though a zero-length prefix would trivially match
// every identifier.
func (g *Grant) Allows(id string) bool {
	if g == nil || g.Prefix == "" {
		return false
	}
	return strings.HasPrefix(id, g.Prefix)
}
