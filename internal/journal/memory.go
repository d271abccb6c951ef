package journal

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openfund/fundme/internal/domain"
)

// Memory is an in-process Journal for local profiles and tests.
type Memory struct {
	mu            sync.RWMutex
	contributions []Contribution
	withdrawals   []Withdrawal
	nextID        int64
}

// NewMemory creates an empty in-memory journal.
func NewMemory() *Memory {
	return &Memory{nextID: 1}
}

func (m *Memory) RecordContribution(_ context.Context, funder domain.Address, amount, usdValue decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.contributions = append(m.contributions, Contribution{
		ID:       m.nextID,
		Funder:   funder,
		Amount:   amount,
		UsdValue: usdValue,
		FundedAt: time.Now().UTC(),
	})
	m.nextID++
	return nil
}

func (m *Memory) RecordWithdrawal(_ context.Context, recipient domain.Address, amount decimal.Decimal, funders int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.withdrawals = append(m.withdrawals, Withdrawal{
		ID:          m.nextID,
		Recipient:   recipient,
		Amount:      amount,
		Funders:     funders,
		WithdrawnAt: time.Now().UTC(),
	})
	m.nextID++
	return nil
}

// ListContributions returns up to limit contributions, most recent first.
func (m *Memory) ListContributions(_ context.Context, limit int) ([]Contribution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 || limit > len(m.contributions) {
		limit = len(m.contributions)
	}
	out := make([]Contribution, 0, limit)
	for i := len(m.contributions) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.contributions[i])
	}
	return out, nil
}

// ListWithdrawals returns up to limit withdrawals, most recent first.
func (m *Memory) ListWithdrawals(_ context.Context, limit int) ([]Withdrawal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 || limit > len(m.withdrawals) {
		limit = len(m.withdrawals)
	}
	out := make([]Withdrawal, 0, limit)
	for i := len(m.withdrawals) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.withdrawals[i])
	}
	return out, nil
}
