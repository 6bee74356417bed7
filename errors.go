package payable

import "errors"

// Sentinel errors for common failure scenarios. Every error aborts the
// triggering operation before any state mutation or event emission; partial
// application is never observable.
var (
	// Authorization errors
	ErrUnauthorized  = errors.New("payable: unauthorized")
	ErrInvalidPrefix = errors.New("payable: identifier does not match granted prefix")

	// Registry errors
	ErrNotFound      = errors.New("payable: not found")
	ErrGrantNotFound = errors.New("payable: grant not found")
	ErrAlreadyExists = errors.New("payable: invoice already exists")
	ErrAlreadyPaid   = errors.New("payable: invoice already paid")

	// Settlement errors
	ErrInvoiceNotFound = errors.New("payable: invoice not found")
	ErrTransferFailed  = errors.New("payable: transfer failed")

	// Lifecycle errors
	ErrAlreadyInitialized = errors.New("payable: administrator already set")
	ErrNoAdministrator    = errors.New("payable: administrator not set")

	// Store errors
	ErrStoreNotReady = errors.New("payable: store not ready")
	ErrStoreClosed   = errors.New("payable: store is closed")
)

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvoiceNotFound) ||
		errors.Is(err, ErrGrantNotFound) ||
		errors.Is(err, ErrNoAdministrator)
}

// IsAuthError returns true if the error is an authorization failure.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidPrefix)
}

// IsTerminal returns true if the error means the record can never be
// mutated again (settled invoices reject edit, delete and repeat payment).
func IsTerminal(err error) bool {
	return errors.Is(err, ErrAlreadyPaid)
}

// IsRetryable returns true if the error is temporary and the operation can be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreNotReady) ||
		errors.Is(err, ErrTransferFailed)
}
