// Package observability provides a metrics extension for Payable that
// records ledger event counts and settlement volumes.
package observability

import (
	"context"

	"github.com/xraph/payable/grant"
	"github.com/xraph/payable/hook"
	"github.com/xraph/payable/invoice"
	"github.com/xraph/payable/types"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ hook.Hook             = (*MetricsExtension)(nil)
	_ hook.OnInit           = (*MetricsExtension)(nil)
	_ hook.OnInvoiceCreated = (*MetricsExtension)(nil)
	_ hook.OnInvoicePaid    = (*MetricsExtension)(nil)
	_ hook.OnInvoiceEdited  = (*MetricsExtension)(nil)
	_ hook.OnInvoiceDeleted = (*MetricsExtension)(nil)
	_ hook.OnGrantSet       = (*MetricsExtension)(nil)
	_ hook.OnGrantRevoked   = (*MetricsExtension)(nil)
	_ hook.OnPaymentFailed  = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide ledger metrics.
// Register it as a Payable hook to automatically track invoice activity.
type MetricsExtension struct {
	factory MetricFactory

	// Invoice metrics
	InvoiceCreated Counter
	InvoicePaid    Counter
	InvoiceEdited  Counter
	InvoiceDeleted Counter
	InvoiceAmount  Histogram
	SettledAmount  Histogram

	// Grant metrics
	GrantSet     Counter
	GrantRevoked Counter

	// Settlement metrics
	PaymentFailed Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Invoice metrics
		InvoiceCreated: factory.Counter("payable.invoice.created"),
		InvoicePaid:    factory.Counter("payable.invoice.paid"),
		InvoiceEdited:  factory.Counter("payable.invoice.edited"),
		InvoiceDeleted: factory.Counter("payable.invoice.deleted"),
		InvoiceAmount:  factory.Histogram("payable.invoice.amount"),
		SettledAmount:  factory.Histogram("payable.settlement.amount"),

		// Grant metrics
		GrantSet:     factory.Counter("payable.grant.set"),
		GrantRevoked: factory.Counter("payable.grant.revoked"),

		// Settlement metrics
		PaymentFailed: factory.Counter("payable.payment.failed"),
	}
}

// Name implements hook.Hook.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements hook.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Invoice lifecycle hooks
// ──────────────────────────────────────────────────

// OnInvoiceCreated implements hook.OnInvoiceCreated.
func (m *MetricsExtension) OnInvoiceCreated(_ context.Context, inv *invoice.Invoice) error {
	m.InvoiceCreated.Inc()
	m.InvoiceAmount.Observe(float64(inv.Amount))
	return nil
}

// OnInvoicePaid implements hook.OnInvoicePaid.
func (m *MetricsExtension) OnInvoicePaid(_ context.Context, inv *invoice.Invoice) error {
	m.InvoicePaid.Inc()
	m.SettledAmount.Observe(float64(inv.Amount))
	return nil
}

// OnInvoiceEdited implements hook.OnInvoiceEdited.
func (m *MetricsExtension) OnInvoiceEdited(_ context.Context, _ string, _ *invoice.Invoice) error {
	m.InvoiceEdited.Inc()
	return nil
}

// OnInvoiceDeleted implements hook.OnInvoiceDeleted.
func (m *MetricsExtension) OnInvoiceDeleted(_ context.Context, _ string) error {
	m.InvoiceDeleted.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Grant lifecycle hooks
// ──────────────────────────────────────────────────

// OnGrantSet implements hook.OnGrantSet.
func (m *MetricsExtension) OnGrantSet(_ context.Context, _ *grant.Grant) error {
	m.GrantSet.Inc()
	return nil
}

// OnGrantRevoked implements hook.OnGrantRevoked.
func (m *MetricsExtension) OnGrantRevoked(_ context.Context, _ types.Identity) error {
	m.GrantRevoked.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Settlement hooks
// ──────────────────────────────────────────────────

// OnPaymentFailed implements hook.OnPaymentFailed.
func (m *MetricsExtension) OnPaymentFailed(_ context.Context, _ string, _ types.Identity, _ error) error {
	m.PaymentFailed.Inc()
	return nil
}
