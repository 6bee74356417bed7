package transfer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/xraph/payable/types"
)

// ErrInsufficientFunds is returned when a debit exceeds the payer's balance.
var ErrInsufficientFunds = errors.New("transfer: insufficient funds")

// Bank is an in-memory balance ledger implementing Service and Batcher.
// It stands in for a real value-transfer backend in tests and development.
type Bank struct {
	mu       sync.Mutex
	balances map[types.Identity]uint64
}

var _ Batcher = (*Bank)(nil)

// NewBank creates an empty in-memory bank.
func NewBank() *Bank {
	return &Bank{balances: make(map[types.Identity]uint64)}
}

// Deposit credits an identity's balance.
func (b *Bank) Deposit(who types.Identity, amount uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[who] += amount
}

// Balance returns an identity's current balance.
func (b *Bank) Balance(who types.Identity) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[who]
}

// TransferFrom implements Service.
func (b *Bank) TransferFrom(_ context.Context, from, to types.Identity, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.apply(Transfer{From: from, To: to, Amount: amount})
}

// TransferBatch implements Batcher: either every transfer applies or none do.
func (b *Bank) TransferBatch(_ context.Context, transfers []Transfer) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Validate the whole batch against a scratch view before touching
	// real balances.
	scratch := make(map[types.Identity]uint64, len(transfers))
	for _, t := range transfers {
		if _, ok := scratch[t.From]; !ok {
			scratch[t.From] = b.balances[t.From]
		}
		if _, ok := scratch[t.To]; !ok {
			scratch[t.To] = b.balances[t.To]
		}
		if scratch[t.From] < t.Amount {
			return fmt.Errorf("%w: %s needs %d, has %d", ErrInsufficientFunds, t.From, t.Amount, scratch[t.From])
		}
		scratch[t.From] -= t.Amount
		scratch[t.To] += t.Amount
	}

	for who, bal := range scratch {
		b.balances[who] = bal
	}
	return nil
}

func (b *Bank) apply(t Transfer) error {
	if b.balances[t.From] < t.Amount {
		return fmt.Errorf("%w: %s needs %d, has %d", ErrInsufficientFunds, t.From, t.Amount, b.balances[t.From])
	}
	b.balances[t.From] -= t.Amount
	b.balances[t.To] += t.Amount
	return nil
}
