package payable

import (
	"context"

	"github.com/xraph/payable/grant"
	"github.com/xraph/payable/types"
)

// GrantCreator authorizes creator to create invoices whose identifiers start
// with prefix. Only the administrator may grant. Granting again replaces the
// creator's previous prefix; the creator holds at most one grant at a time.
//
// An empty prefix is stored as given but authorizes nothing: prefix matching
// rejects the empty prefix outright, so an empty grant is equivalent to a
// revocation that still shows up in GetPrefix.
func (l *Ledger) GrantCreator(ctx context.Context, creator types.Identity, prefix string, caller types.Identity) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.admin {
		return ErrUnauthorized
	}

	g := grant.New(creator, prefix)
	if err := l.store.SetGrant(ctx, g); err != nil {
		return err
	}

	l.hooks.EmitGrantSet(ctx, g)

	l.logger.Debug("creator granted",
		"creator", creator,
		"prefix", prefix,
	)

	return nil
}

// RevokeCreator removes the creator's grant. Only the administrator may
// revoke. Revoking an identity that holds no grant is not an error.
func (l *Ledger) RevokeCreator(ctx context.Context, creator types.Identity, caller types.Identity) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.admin {
		return ErrUnauthorized
	}

	if err := l.store.DeleteGrant(ctx, creator); err != nil {
		return err
	}

	l.hooks.EmitGrantRevoked(ctx, creator)

	l.logger.Debug("creator revoked", "creator", creator)

	return nil
}

// GetPrefix returns the prefix granted to identity, or the empty string when
// identity holds no grant.
func (l *Ledger) GetPrefix(ctx context.Context, identity types.Identity) (string, error) {
	g, err := l.store.GetGrant(ctx, identity)
	if IsNotFound(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return g.Prefix, nil
}

// authorizeCreate decides whether caller may create an invoice with the
// given identifier. The administrator may always create. Everyone else needs
// a grant whose prefix matches: no grant means ErrUnauthorized, a grant that
// does not cover the identifier means ErrInvalidPrefix.
func (l *Ledger) authorizeCreate(ctx context.Context, invoiceID string, caller types.Identity) error {
	if caller == l.admin {
		return nil
	}

	g, err := l.store.GetGrant(ctx, caller)
	if IsNotFound(err) {
		return ErrUnauthorized
	}
	if err != nil {
		return err
	}

	if g.Prefix == "" {
		return ErrUnauthorized
	}
	if !g.Allows(invoiceID) {
		return ErrInvalidPrefix
	}

	return nil
}
