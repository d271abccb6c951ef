package export

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openfund/fundme/internal/domain"
	"github.com/openfund/fundme/internal/journal"
)

// historyWindow caps how much journal history a statement considers.
const historyWindow = 1000

// FromJournal reconstructs the current statement from journal history:
// contributions recorded after the most recent withdrawal, grouped per
// funder. Used by the one-shot export command, which has no live ledger.
func FromJournal(ctx context.Context, jnl journal.Journal, owner domain.Address) (Statement, error) {
	var cutoff time.Time
	withdrawals, err := jnl.ListWithdrawals(ctx, 1)
	if err != nil {
		return Statement{}, fmt.Errorf("reading withdrawal history: %w", err)
	}
	if len(withdrawals) > 0 {
		cutoff = withdrawals[0].WithdrawnAt
	}

	contributions, err := jnl.ListContributions(ctx, historyWindow)
	if err != nil {
		return Statement{}, fmt.Errorf("reading contribution history: %w", err)
	}

	// Contributions arrive most recent first; walk backwards to restore
	// first-contribution order.
	balance := decimal.Zero
	totals := make(map[domain.Address]decimal.Decimal)
	var order []domain.Address
	for i := len(contributions) - 1; i >= 0; i-- {
		c := contributions[i]
		if !c.FundedAt.After(cutoff) {
			continue
		}
		if _, seen := totals[c.Funder]; !seen {
			order = append(order, c.Funder)
		}
		totals[c.Funder] = totals[c.Funder].Add(c.Amount)
		balance = balance.Add(c.Amount)
	}

	rows := make([]StatementRow, 0, len(order))
	for _, funder := range order {
		rows = append(rows, StatementRow{
			Funder: funder,
			Amount: totals[funder],
			Share:  share(totals[funder], balance),
		})
	}

	return Statement{Owner: owner, Balance: balance, Rows: rows}, nil
}
