// Package payable provides an embeddable invoice ledger for Go applications.
//
// Payable is designed as a library, not a service. Import it directly into
// your Go application and wire it to a store and a value-transfer service.
// It provides:
//
//   - Invoice records keyed by a content hash of their human-readable id
//   - Delegated, prefix-scoped creation rights granted by an administrator
//   - Atomic settlement with a 1% administrator fee
//   - A durable, ordered event log of every state change
//   - Pluggable hooks for auditing and metrics
//
// # Quick Start
//
// Create a ledger instance with your preferred store:
//
//	import (
//	    "github.com/xraph/payable"
//	    "github.com/xraph/payable/store/memory"
//	    "github.com/xraph/payable/transfer"
//	)
//
//	bank := transfer.NewBank()
//	ledger := payable.New(memory.New(), bank, "acct:treasury")
//
//	if err := ledger.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer ledger.Stop()
//
// # Core Concepts
//
// The administrator creates invoices freely and delegates creation to other
// identities by prefix:
//
//	err := ledger.GrantCreator(ctx, "acct:billing", "INV-", "acct:treasury")
//
// Granted identities create invoices under their prefix:
//
//	err := ledger.CreateInvoice(ctx, "INV-1", 1000, "rent", "acct:billing")
//
// Anyone with funds settles an invoice; the issuer receives the amount and
// the administrator receives the fee:
//
//	err := ledger.PayInvoice(ctx, "INV-1", "acct:tenant")
//
// Lookups never fail. An absent identifier returns a zero invoice whose
// Present method reports false:
//
//	inv, err := ledger.GetInvoice(ctx, "INV-1")
//	if inv.Present() {
//	    // ...
//	}
//
// # Stores
//
// Four store backends ship with the module: memory for tests and embedded
// use, sqlite for single-node deployments, postgres and mongo for shared
// ones. All satisfy the store.Store interface; bring your own by
// implementing it.
package payable
