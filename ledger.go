package payable

import (
	"context"
	"log/slog"
	"sync"

	"github.com/xraph/payable/hook"
	"github.com/xraph/payable/store"
	"github.com/xraph/payable/transfer"
	"github.com/xraph/payable/types"
)

// Ledger is the invoice ledger engine.
//
// All state flows through one store: the invoice table keyed by identifier
// hash, the grant table keyed by identity, the administrator singleton and
// the event log. The engine adds the authorization rules, the settlement
// choreography against the external transfer service, and hook dispatch.
//
// Operations take the caller identity as an explicit, pre-authenticated
// parameter; the engine authorizes but never authenticates. A single mutex
// serializes every mutating operation end to end: authorization check,
// external transfer, store mutation and event append form one unit of work,
// so no caller ever observes interleaved partial state.
type Ledger struct {
	store     store.Store
	transfers transfer.Service
	admin     types.Identity
	hooks     *hook.Registry
	logger    *slog.Logger

	// mu imposes a global total order over units of work.
	mu sync.Mutex
}

// New creates a new Ledger instance. The administrator identity and the
// transfer service reference are fixed for the life of the engine.
func New(s store.Store, svc transfer.Service, admin types.Identity, opts ...Option) *Ledger {
	l := &Ledger{
		store:     s,
		transfers: svc,
		admin:     admin,
		hooks:     hook.NewRegistry(),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Option configures a Ledger instance.
type Option func(*Ledger)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
		l.hooks.WithLogger(logger)
	}
}

// WithHook registers a hook.
func WithHook(h hook.Hook) Option {
	return func(l *Ledger) {
		_ = l.hooks.Register(h) //nolint:errcheck // best-effort
	}
}

// Start migrates the store and pins the administrator identity.
//
// The administrator is set exactly once per store: starting against a fresh
// store records it, starting against a store already initialized with the
// same identity is a no-op, and starting with a different identity fails
// with ErrAlreadyInitialized.
func (l *Ledger) Start(ctx context.Context) error {
	if err := l.store.Migrate(ctx); err != nil {
		return err
	}

	recorded, err := l.store.Administrator(ctx)
	switch {
	case IsNotFound(err):
		if err := l.store.SetAdministrator(ctx, l.admin); err != nil {
			return err
		}
	case err != nil:
		return err
	case recorded != l.admin:
		return ErrAlreadyInitialized
	}

	l.hooks.EmitInit(ctx, l)

	l.logger.Info("ledger started",
		"administrator", l.admin,
		"hooks", l.hooks.Count(),
	)

	return nil
}

// Stop shuts down the Ledger.
func (l *Ledger) Stop() error {
	l.hooks.EmitShutdown(context.Background())
	return l.store.Close()
}

// Administrator returns the administrator identity.
func (l *Ledger) Administrator() types.Identity { return l.admin }

// Hooks returns the hook registry for late registration.
func (l *Ledger) Hooks() *hook.Registry { return l.hooks }
