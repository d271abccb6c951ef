// Package chain simulates the native-currency side of the execution
// environment: an account book with balance queries and atomic transfers.
// Each operation either fully applies or returns an error with no change.
package chain

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/openfund/fundme/internal/domain"
)

// ErrInsufficientBalance indicates the sender cannot cover a transfer.
var ErrInsufficientBalance = errors.New("chain: insufficient balance")

// ErrRecipientRejected indicates the recipient refuses incoming funds.
var ErrRecipientRejected = errors.New("chain: recipient rejected transfer")

// Bank is the in-memory native-currency account book.
type Bank struct {
	mu        sync.RWMutex
	balances  map[domain.Address]decimal.Decimal
	rejecting map[domain.Address]bool
}

// NewBank creates an empty account book.
func NewBank() *Bank {
	return &Bank{
		balances:  make(map[domain.Address]decimal.Decimal),
		rejecting: make(map[domain.Address]bool),
	}
}

// Balance returns the current balance of an account. Unknown accounts are zero.
func (b *Bank) Balance(addr domain.Address) decimal.Decimal {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.balances[addr]
}

// Credit adds funds to an account. This is the environment's ingress for
// value attached to an incoming call.
func (b *Bank) Credit(addr domain.Address, amount decimal.Decimal) {
	if !amount.IsPositive() {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[addr] = b.balances[addr].Add(amount)
}

// CanTransfer reports whether from holds at least amount.
func (b *Bank) CanTransfer(from domain.Address, amount decimal.Decimal) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.balances[from].GreaterThanOrEqual(amount)
}

// Transfer atomically moves amount from one account to another.
// A non-positive amount is a no-op. On any error no balance changes.
func (b *Bank) Transfer(from, to domain.Address, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.rejecting[to] {
		return fmt.Errorf("%w: %s", ErrRecipientRejected, to.Short())
	}
	if b.balances[from].LessThan(amount) {
		return fmt.Errorf("%w: %s has %s, needs %s",
			ErrInsufficientBalance, from.Short(), b.balances[from], amount)
	}

	b.balances[from] = b.balances[from].Sub(amount)
	b.balances[to] = b.balances[to].Add(amount)
	return nil
}

// MarkRejecting makes an account refuse all incoming transfers, modelling a
// recipient that reverts on receive.
func (b *Bank) MarkRejecting(addr domain.Address, reject bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rejecting[addr] = reject
}
