package audithook

// Action constants for audit events.
const (
	// Invoice actions
	ActionInvoiceCreated = "invoice.created"
	ActionInvoicePaid    = "invoice.paid"
	ActionInvoiceEdited  = "invoice.edited"
	ActionInvoiceDeleted = "invoice.deleted"

	// Grant actions
	ActionGrantSet     = "grant.set"
	ActionGrantRevoked = "grant.revoked"

	// Settlement actions
	ActionPaymentFailed = "payment.failed"
)

// Resource constants for audit events.
const (
	ResourceInvoice = "invoice"
	ResourceGrant   = "grant"
	ResourcePayment = "payment"
)

// Category constants for audit events.
const (
	CategoryBilling = "billing"
	CategoryAccess  = "access"
	CategoryPayment = "payment"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
