// Package export builds and writes the funding statement: per-funder
// cumulative contributions since the last withdrawal, with totals.
package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/openfund/fundme/internal/domain"
)

// LedgerReader is the read-only view of the ledger the statement needs.
type LedgerReader interface {
	Owner() domain.Address
	Balance() decimal.Decimal
	UniqueFunders() []domain.Address
	AmountFunded(funder domain.Address) decimal.Decimal
}

// StatementRow is one funder's line in the statement.
type StatementRow struct {
	Funder domain.Address
	Amount decimal.Decimal
	Share  string // percentage of the held balance, e.g. "25.00%"
}

// Statement is a point-in-time view of the ledger's funding state.
type Statement struct {
	Owner   domain.Address
	Balance decimal.Decimal
	Rows    []StatementRow
}

// StatementWriter writes a statement to its destination.
type StatementWriter interface {
	Write(ctx context.Context, s Statement) error
}

// Service builds statements from the ledger and delegates writing.
type Service struct {
	ledger LedgerReader
	writer StatementWriter
}

// NewService creates a new export Service.
func NewService(ledger LedgerReader, writer StatementWriter) *Service {
	if ledger == nil {
		panic("export.NewService: ledger is nil")
	}
	if writer == nil {
		panic("export.NewService: writer is nil")
	}
	return &Service{ledger: ledger, writer: writer}
}

// Export builds the current statement and writes it.
// Implements worker.StatementExporter.
func (s *Service) Export(ctx context.Context) error {
	statement := s.build()
	if err := s.writer.Write(ctx, statement); err != nil {
		return fmt.Errorf("writing statement: %w", err)
	}
	slog.Info("statement exported", "funders", len(statement.Rows), "balance", statement.Balance)
	return nil
}

func (s *Service) build() Statement {
	balance := s.ledger.Balance()

	rows := lo.Map(s.ledger.UniqueFunders(), func(funder domain.Address, _ int) StatementRow {
		amount := s.ledger.AmountFunded(funder)
		return StatementRow{
			Funder: funder,
			Amount: amount,
			Share:  share(amount, balance),
		}
	})

	return Statement{
		Owner:   s.ledger.Owner(),
		Balance: balance,
		Rows:    rows,
	}
}

func share(amount, total decimal.Decimal) string {
	if total.IsZero() {
		return "0.00%"
	}
	pct := amount.Div(total).Mul(decimal.NewFromInt(100))
	return pct.StringFixed(2) + "%"
}
