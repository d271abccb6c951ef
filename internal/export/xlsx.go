package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const statementSheet = "Statement"

// XlsxWriter writes statements to a local xlsx file.
type XlsxWriter struct {
	path string
}

// NewXlsxWriter creates a writer targeting the given file path.
func NewXlsxWriter(path string) *XlsxWriter {
	return &XlsxWriter{path: path}
}

// Write renders the statement as a single sheet and saves the file,
// replacing any previous statement at the same path.
func (w *XlsxWriter) Write(_ context.Context, s Statement) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", statementSheet); err != nil {
		return fmt.Errorf("naming statement sheet: %w", err)
	}

	header := []any{"Funder", "Amount (smallest units)", "Share"}
	for col, v := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("addressing header cell: %w", err)
		}
		if err := f.SetCellValue(statementSheet, cell, v); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, row := range s.Rows {
		values := []any{string(row.Funder), row.Amount.String(), row.Share}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("addressing row cell: %w", err)
			}
			if err := f.SetCellValue(statementSheet, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", i, err)
			}
		}
	}

	totalRow := len(s.Rows) + 2
	totals := []any{"TOTAL held by " + string(s.Owner.Short()), s.Balance.String(), ""}
	for col, v := range totals {
		cell, err := excelize.CoordinatesToCellName(col+1, totalRow)
		if err != nil {
			return fmt.Errorf("addressing totals cell: %w", err)
		}
		if err := f.SetCellValue(statementSheet, cell, v); err != nil {
			return fmt.Errorf("writing totals: %w", err)
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving statement to %s: %w", w.path, err)
	}
	return nil
}
