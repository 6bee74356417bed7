// Package audithook bridges Payable ledger events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not depend on
// any particular audit system. Callers inject a RecorderFunc adapter that
// bridges to their backend at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/payable/grant"
	"github.com/xraph/payable/hook"
	"github.com/xraph/payable/invoice"
	"github.com/xraph/payable/types"
)

// Compile-time interface checks.
var (
	_ hook.Hook             = (*Extension)(nil)
	_ hook.OnInvoiceCreated = (*Extension)(nil)
	_ hook.OnInvoicePaid    = (*Extension)(nil)
	_ hook.OnInvoiceEdited  = (*Extension)(nil)
	_ hook.OnInvoiceDeleted = (*Extension)(nil)
	_ hook.OnGrantSet       = (*Extension)(nil)
	_ hook.OnGrantRevoked   = (*Extension)(nil)
	_ hook.OnPaymentFailed  = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement. It is
// defined locally so callers wire in their concrete backend without this
// package importing it.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges Payable ledger events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements hook.Hook.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Invoice lifecycle hooks
// ──────────────────────────────────────────────────

// OnInvoiceCreated implements hook.OnInvoiceCreated.
func (e *Extension) OnInvoiceCreated(ctx context.Context, inv *invoice.Invoice) error {
	return e.record(ctx, ActionInvoiceCreated, SeverityInfo, OutcomeSuccess,
		ResourceInvoice, inv.ID, CategoryBilling, nil,
		"amount", inv.Amount,
		"issuer", inv.Issuer.String(),
	)
}

// OnInvoicePaid implements hook.OnInvoicePaid.
func (e *Extension) OnInvoicePaid(ctx context.Context, inv *invoice.Invoice) error {
	return e.record(ctx, ActionInvoicePaid, SeverityInfo, OutcomeSuccess,
		ResourceInvoice, inv.ID, CategoryPayment, nil,
		"amount", inv.Amount,
		"payer", inv.Payer.String(),
	)
}

// OnInvoiceEdited implements hook.OnInvoiceEdited.
func (e *Extension) OnInvoiceEdited(ctx context.Context, oldID string, inv *invoice.Invoice) error {
	return e.record(ctx, ActionInvoiceEdited, SeverityInfo, OutcomeSuccess,
		ResourceInvoice, inv.ID, CategoryBilling, nil,
		"old_id", oldID,
		"new_id", inv.ID,
		"amount", inv.Amount,
	)
}

// OnInvoiceDeleted implements hook.OnInvoiceDeleted.
func (e *Extension) OnInvoiceDeleted(ctx context.Context, invoiceID string) error {
	return e.record(ctx, ActionInvoiceDeleted, SeverityWarning, OutcomeSuccess,
		ResourceInvoice, invoiceID, CategoryBilling, nil,
		"invoice_id", invoiceID,
	)
}

// ──────────────────────────────────────────────────
// Grant lifecycle hooks
// ──────────────────────────────────────────────────

// OnGrantSet implements hook.OnGrantSet.
func (e *Extension) OnGrantSet(ctx context.Context, g *grant.Grant) error {
	return e.record(ctx, ActionGrantSet, SeverityInfo, OutcomeSuccess,
		ResourceGrant, g.Creator.String(), CategoryAccess, nil,
		"creator", g.Creator.String(),
		"prefix", g.Prefix,
	)
}

// OnGrantRevoked implements hook.OnGrantRevoked.
func (e *Extension) OnGrantRevoked(ctx context.Context, creator types.Identity) error {
	return e.record(ctx, ActionGrantRevoked, SeverityWarning, OutcomeSuccess,
		ResourceGrant, creator.String(), CategoryAccess, nil,
		"creator", creator.String(),
	)
}

// ──────────────────────────────────────────────────
// Settlement hooks
// ──────────────────────────────────────────────────

// OnPaymentFailed implements hook.OnPaymentFailed.
func (e *Extension) OnPaymentFailed(ctx context.Context, invoiceID string, payer types.Identity, err error) error {
	return e.record(ctx, ActionPaymentFailed, SeverityCritical, OutcomeFailure,
		ResourcePayment, invoiceID, CategoryPayment, err,
		"invoice_id", invoiceID,
		"payer", payer.String(),
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audithook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
