package extension

import (
	payable "github.com/xraph/payable"
	"github.com/xraph/payable/hook"
	"github.com/xraph/payable/store"
	"github.com/xraph/payable/transfer"
	"github.com/xraph/payable/types"
)

// Option configures the Payable Forge extension.
type Option func(*Extension)

// WithStore sets the store for the ledger engine.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithTransferService sets the external value-transfer service.
func WithTransferService(svc transfer.Service) Option {
	return func(e *Extension) {
		e.transfers = svc
	}
}

// WithAdministrator sets the administrator identity.
func WithAdministrator(admin types.Identity) Option {
	return func(e *Extension) {
		e.config.Administrator = admin.String()
	}
}

// WithLedgerOption passes a payable.Option through to the underlying engine.
func WithLedgerOption(opt payable.Option) Option {
	return func(e *Extension) {
		e.ledgerOpts = append(e.ledgerOpts, opt)
	}
}

// WithHook registers a ledger hook.
func WithHook(h hook.Hook) Option {
	return func(e *Extension) {
		e.ledgerOpts = append(e.ledgerOpts, payable.WithHook(h))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}
