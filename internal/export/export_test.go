package export

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/openfund/fundme/internal/domain"
)

var (
	owner   = domain.MustParseAddress("0x000000000000000000000000000000000000f00d")
	funderA = domain.MustParseAddress("0x00000000000000000000000000000000000000a1")
	funderB = domain.MustParseAddress("0x00000000000000000000000000000000000000b2")
)

type fakeLedger struct {
	balance decimal.Decimal
	funders []domain.Address
	funded  map[domain.Address]decimal.Decimal
}

func (f *fakeLedger) Owner() domain.Address           { return owner }
func (f *fakeLedger) Balance() decimal.Decimal        { return f.balance }
func (f *fakeLedger) UniqueFunders() []domain.Address { return f.funders }
func (f *fakeLedger) AmountFunded(a domain.Address) decimal.Decimal {
	return f.funded[a]
}

type captureWriter struct {
	statement Statement
	err       error
}

func (c *captureWriter) Write(_ context.Context, s Statement) error {
	c.statement = s
	return c.err
}

func TestExportBuildsRows(t *testing.T) {
	l := &fakeLedger{
		balance: decimal.NewFromInt(400),
		funders: []domain.Address{funderA, funderB},
		funded: map[domain.Address]decimal.Decimal{
			funderA: decimal.NewFromInt(300),
			funderB: decimal.NewFromInt(100),
		},
	}
	writer := &captureWriter{}

	if err := NewService(l, writer).Export(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := writer.statement
	if s.Owner != owner {
		t.Errorf("owner = %s", s.Owner)
	}
	if !s.Balance.Equal(decimal.NewFromInt(400)) {
		t.Errorf("balance = %s, want 400", s.Balance)
	}
	if len(s.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(s.Rows))
	}
	if s.Rows[0].Funder != funderA || !s.Rows[0].Amount.Equal(decimal.NewFromInt(300)) {
		t.Errorf("row 0 = %+v", s.Rows[0])
	}
	if s.Rows[0].Share != "75.00%" {
		t.Errorf("row 0 share = %q, want 75.00%%", s.Rows[0].Share)
	}
	if s.Rows[1].Share != "25.00%" {
		t.Errorf("row 1 share = %q, want 25.00%%", s.Rows[1].Share)
	}
}

func TestExportEmptyLedger(t *testing.T) {
	writer := &captureWriter{}
	l := &fakeLedger{balance: decimal.Zero, funded: map[domain.Address]decimal.Decimal{}}

	if err := NewService(l, writer).Export(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(writer.statement.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(writer.statement.Rows))
	}
}

func TestExportWriterError(t *testing.T) {
	writer := &captureWriter{err: errors.New("disk full")}
	l := &fakeLedger{balance: decimal.Zero, funded: map[domain.Address]decimal.Decimal{}}

	if err := NewService(l, writer).Export(context.Background()); err == nil {
		t.Fatal("expected writer error to propagate")
	}
}

func TestXlsxWriterWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.xlsx")
	writer := NewXlsxWriter(path)

	s := Statement{
		Owner:   owner,
		Balance: decimal.NewFromInt(100),
		Rows: []StatementRow{
			{Funder: funderA, Amount: decimal.NewFromInt(100), Share: "100.00%"},
		},
	}
	if err := writer.Write(context.Background(), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Re-writing the same path replaces the previous statement
	if err := writer.Write(context.Background(), s); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
}
