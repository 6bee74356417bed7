package hook

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/payable/event"
	"github.com/xraph/payable/grant"
	"github.com/xraph/payable/invoice"
	"github.com/xraph/payable/types"
)

// Registry manages registered hooks and provides efficient dispatch.
// Interfaces are type-cached at registration so emission never reflects.
type Registry struct {
	mu     sync.RWMutex
	hooks  []Hook
	logger *slog.Logger

	onInit           []OnInit
	onShutdown       []OnShutdown
	onEvent          []OnEvent
	onInvoiceCreated []OnInvoiceCreated
	onInvoicePaid    []OnInvoicePaid
	onInvoiceEdited  []OnInvoiceEdited
	onInvoiceDeleted []OnInvoiceDeleted
	onGrantSet       []OnGrantSet
	onGrantRevoked   []OnGrantRevoked
	onPaymentFailed  []OnPaymentFailed
}

// NewRegistry creates a new hook registry.
func NewRegistry() *Registry {
	return &Registry{logger: slog.Default()}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a hook to the registry and caches its interfaces.
func (r *Registry) Register(h Hook) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.hooks {
		if existing.Name() == h.Name() {
			return fmt.Errorf("hook: duplicate registration: %s", h.Name())
		}
	}

	r.hooks = append(r.hooks, h)

	if v, ok := h.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := h.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := h.(OnEvent); ok {
		r.onEvent = append(r.onEvent, v)
	}
	if v, ok := h.(OnInvoiceCreated); ok {
		r.onInvoiceCreated = append(r.onInvoiceCreated, v)
	}
	if v, ok := h.(OnInvoicePaid); ok {
		r.onInvoicePaid = append(r.onInvoicePaid, v)
	}
	if v, ok := h.(OnInvoiceEdited); ok {
		r.onInvoiceEdited = append(r.onInvoiceEdited, v)
	}
	if v, ok := h.(OnInvoiceDeleted); ok {
		r.onInvoiceDeleted = append(r.onInvoiceDeleted, v)
	}
	if v, ok := h.(OnGrantSet); ok {
		r.onGrantSet = append(r.onGrantSet, v)
	}
	if v, ok := h.(OnGrantRevoked); ok {
		r.onGrantRevoked = append(r.onGrantRevoked, v)
	}
	if v, ok := h.(OnPaymentFailed); ok {
		r.onPaymentFailed = append(r.onPaymentFailed, v)
	}

	r.logger.Info("hook registered", "name", h.Name())
	return nil
}

// Get returns a hook by name.
func (r *Registry) Get(name string) Hook {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.hooks {
		if h.Name() == name {
			return h
		}
	}
	return nil
}

// List returns all registered hooks.
func (r *Registry) List() []Hook {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Hook, len(r.hooks))
	copy(result, r.hooks)
	return result
}

// Count returns the number of registered hooks.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks)
}

// ──────────────────────────────────────────────────
// Emission
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all hooks that implement it.
func (r *Registry) EmitInit(ctx context.Context, ledger interface{}) {
	r.mu.RLock()
	hooks := r.onInit
	r.mu.RUnlock()

	for _, h := range hooks {
		r.call(ctx, h.Name(), "OnInit", func() error {
			return h.OnInit(ctx, ledger)
		})
	}
}

// EmitShutdown calls OnShutdown for all hooks that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	hooks := r.onShutdown
	r.mu.RUnlock()

	for _, h := range hooks {
		r.call(ctx, h.Name(), "OnShutdown", func() error {
			return h.OnShutdown(ctx)
		})
	}
}

// EmitEvent fans a durable ledger event out to OnEvent observers.
func (r *Registry) EmitEvent(ctx context.Context, e *event.Event) {
	r.mu.RLock()
	hooks := r.onEvent
	r.mu.RUnlock()

	for _, h := range hooks {
		r.call(ctx, h.Name(), "OnEvent", func() error {
			return h.OnEvent(ctx, e)
		})
	}
}

// EmitInvoiceCreated emits an invoice created notification.
func (r *Registry) EmitInvoiceCreated(ctx context.Context, inv *invoice.Invoice) {
	r.mu.RLock()
	hooks := r.onInvoiceCreated
	r.mu.RUnlock()

	for _, h := range hooks {
		r.call(ctx, h.Name(), "OnInvoiceCreated", func() error {
			return h.OnInvoiceCreated(ctx, inv)
		})
	}
}

// EmitInvoicePaid emits an invoice paid notification.
func (r *Registry) EmitInvoicePaid(ctx context.Context, inv *invoice.Invoice) {
	r.mu.RLock()
	hooks := r.onInvoicePaid
	r.mu.RUnlock()

	for _, h := range hooks {
		r.call(ctx, h.Name(), "OnInvoicePaid", func() error {
			return h.OnInvoicePaid(ctx, inv)
		})
	}
}

// EmitInvoiceEdited emits an invoice edited notification.
func (r *Registry) EmitInvoiceEdited(ctx context.Context, oldID string, inv *invoice.Invoice) {
	r.mu.RLock()
	hooks := r.onInvoiceEdited
	r.mu.RUnlock()

	for _, h := range hooks {
		r.call(ctx, h.Name(), "OnInvoiceEdited", func() error {
			return h.OnInvoiceEdited(ctx, oldID, inv)
		})
	}
}

// EmitInvoiceDeleted emits an invoice deleted notification.
func (r *Registry) EmitInvoiceDeleted(ctx context.Context, invoiceID string) {
	r.mu.RLock()
	hooks := r.onInvoiceDeleted
	r.mu.RUnlock()

	for _, h := range hooks {
		r.call(ctx, h.Name(), "OnInvoiceDeleted", func() error {
			return h.OnInvoiceDeleted(ctx, invoiceID)
		})
	}
}

// EmitGrantSet emits a grant assigned notification.
func (r *Registry) EmitGrantSet(ctx context.Context, g *grant.Grant) {
	r.mu.RLock()
	hooks := r.onGrantSet
	r.mu.RUnlock()

	for _, h := range hooks {
		r.call(ctx, h.Name(), "OnGrantSet", func() error {
			return h.OnGrantSet(ctx, g)
		})
	}
}

// EmitGrantRevoked emits a grant revoked notification.
func (r *Registry) EmitGrantRevoked(ctx context.Context, creator types.Identity) {
	r.mu.RLock()
	hooks := r.onGrantRevoked
	r.mu.RUnlock()

	for _, h := range hooks {
		r.call(ctx, h.Name(), "OnGrantRevoked", func() error {
			return h.OnGrantRevoked(ctx, creator)
		})
	}
}

// EmitPaymentFailed emits a settlement failure notification.
func (r *Registry) EmitPaymentFailed(ctx context.Context, invoiceID string, payer types.Identity, cause error) {
	r.mu.RLock()
	hooks := r.onPaymentFailed
	r.mu.RUnlock()

	for _, h := range hooks {
		r.call(ctx, h.Name(), "OnPaymentFailed", func() error {
			return h.OnPaymentFailed(ctx, invoiceID, payer, cause)
		})
	}
}

// call invokes a hook function with a timeout and logs failures.
// Hooks must never block or abort the ledger pipeline.
func (r *Registry) call(ctx context.Context, hookName, method string, fn func() error) {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	var err error
	select {
	case err = <-done:
	case <-time.After(5 * time.Second):
		err = fmt.Errorf("hook timeout: %s", hookName)
	case <-ctx.Done():
		err = ctx.Err()
	}

	if err != nil {
		r.logger.Warn("hook failed",
			"hook", hookName,
			"method", method,
			"error", err,
		)
	}
}
