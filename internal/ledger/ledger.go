// Package ledger implements the funding ledger: contributions above a
// USD-denominated floor are recorded per funder, and the owner may sweep
// the full balance while resetting all bookkeeping.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/openfund/fundme/internal/domain"
	"github.com/openfund/fundme/internal/journal"
)

// Converter values native amounts in USD through the bound price feed.
type Converter interface {
	ConvertToUsd(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error)
	Version() int
}

// Bank provides the execution environment's transfer and balance primitives.
type Bank interface {
	Transfer(from, to domain.Address, amount decimal.Decimal) error
	Balance(addr domain.Address) decimal.Decimal
}

// Ledger is the funding ledger. All operations are totally ordered by an
// internal mutex; each either fully applies or leaves no trace, with every
// fallible step ordered before the first mutation.
type Ledger struct {
	mu sync.Mutex

	owner      domain.Address
	address    domain.Address
	minimumUsd decimal.Decimal

	converter Converter
	bank      Bank
	journal   journal.Journal // optional

	amountFunded map[domain.Address]decimal.Decimal
	funders      []domain.Address
}

// New creates a ledger owned by owner, holding funds at address, valuing
// contributions through converter. The journal may be nil.
func New(owner, address domain.Address, converter Converter, bank Bank, jnl journal.Journal) *Ledger {
	if converter == nil {
		panic("ledger.New: converter is nil")
	}
	if bank == nil {
		panic("ledger.New: bank is nil")
	}
	if owner.IsZero() {
		panic("ledger.New: owner is zero")
	}
	return &Ledger{
		owner:        owner,
		address:      address,
		minimumUsd:   domain.MinimumUsd,
		converter:    converter,
		bank:         bank,
		journal:      jnl,
		amountFunded: make(map[domain.Address]decimal.Decimal),
	}
}

// Fund accepts a contribution of amount native units attached by caller.
// The amount must convert to at least the USD minimum; otherwise the
// operation fails with ErrInsufficientContribution and no state changes.
func (l *Ledger) Fund(ctx context.Context, caller domain.Address, amount decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	usd, err := l.converter.ConvertToUsd(ctx, amount)
	if err != nil {
		return fmt.Errorf("valuing contribution: %w", err)
	}
	if usd.LessThan(l.minimumUsd) {
		return fmt.Errorf("%w: %s USD < %s USD",
			ErrInsufficientContribution, domain.FormatUsd(usd), domain.FormatUsd(l.minimumUsd))
	}

	// Move the attached value into the ledger account. This is the last
	// fallible step; bookkeeping only mutates after it succeeds.
	if err := l.bank.Transfer(caller, l.address, amount); err != nil {
		return fmt.Errorf("collecting contribution: %w", err)
	}

	l.amountFunded[caller] = l.amountFunded[caller].Add(amount)
	l.funders = append(l.funders, caller)

	l.record(ctx, func(j journal.Journal) error {
		return j.RecordContribution(ctx, caller, amount, usd)
	})

	slog.Info("contribution accepted",
		"funder", caller.Short(), "amount", amount, "usd", domain.FormatUsd(usd))
	return nil
}

// Withdraw sweeps the full held balance to the owner and resets all
// bookkeeping. Only the owner may call it. A failed transfer leaves the
// ledger untouched; a zero-balance withdrawal succeeds as a no-op sweep.
func (l *Ledger) Withdraw(ctx context.Context, caller domain.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	amount, err := l.sweep(caller)
	if err != nil {
		return err
	}

	funders := len(l.funders)
	for i := 0; i < len(l.funders); i++ {
		l.amountFunded[l.funders[i]] = decimal.Zero
	}
	l.funders = nil

	l.record(ctx, func(j journal.Journal) error {
		return j.RecordWithdrawal(ctx, l.owner, amount, funders)
	})

	slog.Info("withdrawal complete", "amount", amount, "funders", funders)
	return nil
}

// WithdrawCompact is the snapshot-optimized withdrawal variant: observable
// results are identical to Withdraw, but the funder list is copied once
// into a local snapshot before iterating instead of being re-read per step.
func (l *Ledger) WithdrawCompact(ctx context.Context, caller domain.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	amount, err := l.sweep(caller)
	if err != nil {
		return err
	}

	snapshot := make([]domain.Address, len(l.funders))
	copy(snapshot, l.funders)
	for _, funder := range snapshot {
		l.amountFunded[funder] = decimal.Zero
	}
	l.funders = nil

	l.record(ctx, func(j journal.Journal) error {
		return j.RecordWithdrawal(ctx, l.owner, amount, len(snapshot))
	})

	slog.Info("withdrawal complete", "amount", amount, "funders", len(snapshot))
	return nil
}

// sweep validates ownership and transfers the held balance to the owner.
// Called with the lock held. Returns the swept amount.
func (l *Ledger) sweep(caller domain.Address) (decimal.Decimal, error) {
	if caller != l.owner {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNotOwner, caller.Short())
	}

	amount := l.bank.Balance(l.address)
	if err := l.bank.Transfer(l.address, l.owner, amount); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	return amount, nil
}

// record applies a journal write, logging instead of failing: the journal
// is an audit trail, not part of the ledger's atomic state.
func (l *Ledger) record(_ context.Context, fn func(journal.Journal) error) {
	if l.journal == nil {
		return
	}
	if err := fn(l.journal); err != nil {
		slog.Warn("journal write failed", "error", err)
	}
}

// Owner returns the ledger's immutable owner identity.
func (l *Ledger) Owner() domain.Address {
	return l.owner
}

// Address returns the ledger's own account in the execution environment.
func (l *Ledger) Address() domain.Address {
	return l.address
}

// MinimumUsd returns the 18-decimal USD contribution floor.
func (l *Ledger) MinimumUsd() decimal.Decimal {
	return l.minimumUsd
}

// Balance returns the ledger's currently held native balance.
func (l *Ledger) Balance() decimal.Decimal {
	return l.bank.Balance(l.address)
}

// Version reports the bound price feed's version.
func (l *Ledger) Version() int {
	return l.converter.Version()
}

// AmountFunded returns the cumulative contribution of one identity since
// the last withdrawal.
func (l *Ledger) AmountFunded(funder domain.Address) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.amountFunded[funder]
}

// Funder returns the funder at the given insertion index.
func (l *Ledger) Funder(index int) (domain.Address, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index < 0 || index >= len(l.funders) {
		return "", fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(l.funders))
	}
	return l.funders[index], nil
}

// FunderCount returns the number of funder entries (duplicates included).
func (l *Ledger) FunderCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.funders)
}

// Funders returns a copy of the funder sequence in first-contribution order.
func (l *Ledger) Funders() []domain.Address {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.Address, len(l.funders))
	copy(out, l.funders)
	return out
}

// UniqueFunders returns distinct funders in first-contribution order.
func (l *Ledger) UniqueFunders() []domain.Address {
	return lo.Uniq(l.Funders())
}
