// Package types provides common types used across Payable.
package types

// Identity is an opaque, pre-authenticated principal reference.
//
// Payable performs no authentication: the surrounding service layer verifies
// the caller and passes its identity into every operation. The engine only
// compares identities against stored ones (administrator, issuer, grants).
// The empty string is the null identity and never matches a stored one.
type Identity string

// Nobody is the null identity.
const Nobody Identity = ""

// IsZero reports whether the identity is the null identity.
func (i Identity) IsZero() bool { return i == Nobody }

// String returns the identity as a plain string.
func (i Identity) String() string { return string(i) }
