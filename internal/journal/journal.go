// Package journal records successful ledger operations for audit and
// reporting. The journal is an append-only history; it is not the source
// of truth for ledger state.
package journal

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openfund/fundme/internal/domain"
)

// ErrNotFound indicates that no journal rows matched.
var ErrNotFound = errors.New("journal: not found")

// Contribution is one successful funding operation.
type Contribution struct {
	ID       int64           `json:"id"`
	Funder   domain.Address  `json:"funder"`
	Amount   decimal.Decimal `json:"amount"`
	UsdValue decimal.Decimal `json:"usdValue"`
	FundedAt time.Time       `json:"fundedAt"`
}

// Withdrawal is one successful sweep of the ledger balance to the owner.
type Withdrawal struct {
	ID          int64           `json:"id"`
	Recipient   domain.Address  `json:"recipient"`
	Amount      decimal.Decimal `json:"amount"`
	Funders     int             `json:"funders"`
	WithdrawnAt time.Time       `json:"withdrawnAt"`
}

// Journal defines persistent storage for ledger history.
type Journal interface {
	RecordContribution(ctx context.Context, funder domain.Address, amount, usdValue decimal.Decimal) error
	RecordWithdrawal(ctx context.Context, recipient domain.Address, amount decimal.Decimal, funders int) error
	ListContributions(ctx context.Context, limit int) ([]Contribution, error)
	ListWithdrawals(ctx context.Context, limit int) ([]Withdrawal, error)
}
