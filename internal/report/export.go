package report

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/cleared-dev/bastally/internal/model"
)

// exportRow is one line of the classified transaction export.
type exportRow struct {
	Date        string `csv:"date"`
	Amount      string `csv:"amount"`
	Description string `csv:"description"`
	Balance     string `csv:"balance"`
	Bucket      string `csv:"bucket"`
	Category    string `csv:"category"`
	Source      string `csv:"source"`
}

// ExportCSV writes classified transactions as CSV with a header row.
func ExportCSV(w io.Writer, classified []model.ClassifiedTransaction) error {
	rows := make([]exportRow, 0, len(classified))
	for _, c := range classified {
		row := exportRow{
			Date:        c.Source.Date.Format(time.DateOnly),
			Amount:      c.Source.Amount.StringFixed(2),
			Description: c.Source.Description,
			Bucket:      string(c.Bucket),
			Category:    c.Category,
			Source:      c.Source.Source,
		}
		if c.Source.Balance.Valid {
			row.Balance = c.Source.Balance.Decimal.StringFixed(2)
		}
		rows = append(rows, row)
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing CSV export: %w", err)
	}
	return nil
}
