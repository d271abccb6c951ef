package journal

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/openfund/fundme/internal/domain"
)

// Postgres implements Journal with PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a PostgreSQL-backed journal.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) RecordContribution(ctx context.Context, funder domain.Address, amount, usdValue decimal.Decimal) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO contributions (funder, amount, usd_value)
		 VALUES ($1, $2, $3)`,
		string(funder), amount.String(), usdValue.String())
	if err != nil {
		return fmt.Errorf("recording contribution: %w", err)
	}
	return nil
}

func (p *Postgres) RecordWithdrawal(ctx context.Context, recipient domain.Address, amount decimal.Decimal, funders int) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO withdrawals (recipient, amount, funders)
		 VALUES ($1, $2, $3)`,
		string(recipient), amount.String(), funders)
	if err != nil {
		return fmt.Errorf("recording withdrawal: %w", err)
	}
	return nil
}

func (p *Postgres) ListContributions(ctx context.Context, limit int) ([]Contribution, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := p.pool.Query(ctx,
		`SELECT id, funder, amount, usd_value, funded_at
		 FROM contributions
		 ORDER BY id DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing contributions: %w", err)
	}
	defer rows.Close()

	var out []Contribution
	for rows.Next() {
		var c Contribution
		var funder, amount, usd string
		if err := rows.Scan(&c.ID, &funder, &amount, &usd, &c.FundedAt); err != nil {
			return nil, fmt.Errorf("scanning contribution: %w", err)
		}
		c.Funder = domain.Address(funder)
		if c.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parsing contribution amount: %w", err)
		}
		if c.UsdValue, err = decimal.NewFromString(usd); err != nil {
			return nil, fmt.Errorf("parsing contribution usd value: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contributions: %w", err)
	}
	return out, nil
}

func (p *Postgres) ListWithdrawals(ctx context.Context, limit int) ([]Withdrawal, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := p.pool.Query(ctx,
		`SELECT id, recipient, amount, funders, withdrawn_at
		 FROM withdrawals
		 ORDER BY id DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing withdrawals: %w", err)
	}
	defer rows.Close()

	var out []Withdrawal
	for rows.Next() {
		var w Withdrawal
		var recipient, amount string
		if err := rows.Scan(&w.ID, &recipient, &amount, &w.Funders, &w.WithdrawnAt); err != nil {
			return nil, fmt.Errorf("scanning withdrawal: %w", err)
		}
		w.Recipient = domain.Address(recipient)
		if w.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parsing withdrawal amount: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating withdrawals: %w", err)
	}
	return out, nil
}
