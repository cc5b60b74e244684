// Package history keeps a CSV ledger of recorded report runs, one row per run,
// so lodged figures can be compared with later re-runs.
package history

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bastally/internal/pipeline"
)

// DefaultPath is the ledger location relative to the project directory.
const DefaultPath = "logs/runs.csv"

// Entry is one recorded run.
type Entry struct {
	Timestamp     time.Time
	RunID         string
	Period        string
	RulesVersion  string
	Files         int
	TotalSales    decimal.Decimal
	GSTOnSales    decimal.Decimal
	GSTExpenses   decimal.Decimal
	GSTOnExpenses decimal.Decimal
	NetPayable    decimal.Decimal
}

type row struct {
	Timestamp     string `csv:"timestamp"`
	RunID         string `csv:"run_id"`
	Period        string `csv:"period"`
	RulesVersion  string `csv:"rules_version"`
	Files         int    `csv:"files"`
	TotalSales    string `csv:"g1"`
	GSTOnSales    string `csv:"1a"`
	GSTExpenses   string `csv:"g11"`
	GSTOnExpenses string `csv:"1b"`
	NetPayable    string `csv:"net_payable"`
}

// FromResult builds the entry for a finished run. Amounts are rounded to cents;
// an unnamed period is keyed by its date range.
func FromResult(res *pipeline.Result, at time.Time) Entry {
	r := res.Report
	period := r.Period.Name
	if period == "" {
		period = r.Period.Start.Format(time.DateOnly) + ".." + r.Period.End.Format(time.DateOnly)
	}
	return Entry{
		Timestamp:     at.UTC().Truncate(time.Second),
		RunID:         res.RunID,
		Period:        period,
		RulesVersion:  res.RulesVersion,
		Files:         res.Stats.FilesRead,
		TotalSales:    r.TotalSales.Round(2),
		GSTOnSales:    r.GSTOnSales.Round(2),
		GSTExpenses:   r.TotalGSTExpenses.Round(2),
		GSTOnExpenses: r.GSTOnExpenses.Round(2),
		NetPayable:    r.NetPayable.Round(2),
	}
}

func toRow(e Entry) row {
	return row{
		Timestamp:     e.Timestamp.Format(time.RFC3339),
		RunID:         e.RunID,
		Period:        e.Period,
		RulesVersion:  e.RulesVersion,
		Files:         e.Files,
		TotalSales:    e.TotalSales.StringFixed(2),
		GSTOnSales:    e.GSTOnSales.StringFixed(2),
		GSTExpenses:   e.GSTExpenses.StringFixed(2),
		GSTOnExpenses: e.GSTOnExpenses.StringFixed(2),
		NetPayable:    e.NetPayable.StringFixed(2),
	}
}

func fromRow(r row) (Entry, error) {
	ts, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", r.Timestamp, err)
	}
	e := Entry{
		Timestamp:    ts,
		RunID:        r.RunID,
		Period:       r.Period,
		RulesVersion: r.RulesVersion,
		Files:        r.Files,
	}
	amounts := []struct {
		dst *decimal.Decimal
		src string
	}{
		{&e.TotalSales, r.TotalSales},
		{&e.GSTOnSales, r.GSTOnSales},
		{&e.GSTExpenses, r.GSTExpenses},
		{&e.GSTOnExpenses, r.GSTOnExpenses},
		{&e.NetPayable, r.NetPayable},
	}
	for _, a := range amounts {
		d, err := decimal.NewFromString(a.src)
		if err != nil {
			return Entry{}, fmt.Errorf("parsing amount %q: %w", a.src, err)
		}
		*a.dst = d
	}
	return e, nil
}

// Append adds entries to the ledger at path, creating it with a header if needed.
func Append(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	needsHeader := false
	if info, err := os.Stat(path); errors.Is(err, os.ErrNotExist) || (err == nil && info.Size() == 0) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}

	rows := make([]row, len(entries))
	for i, e := range entries {
		rows[i] = toRow(e)
	}
	if needsHeader {
		err = gocsv.Marshal(rows, f)
	} else {
		err = gocsv.MarshalWithoutHeaders(rows, f)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("writing history: %w", err)
	}
	return f.Close()
}

// Read returns every entry in the ledger. A missing ledger is empty.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	var rows []row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading history CSV: %w", err)
	}

	var entries []Entry
	for i, rw := range rows {
		e, err := fromRow(rw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Latest returns the most recent entry for each period, keyed by period name.
func Latest(entries []Entry) map[string]Entry {
	out := make(map[string]Entry)
	for _, e := range entries {
		if prev, ok := out[e.Period]; !ok || !e.Timestamp.Before(prev.Timestamp) {
			out[e.Period] = e
		}
	}
	return out
}
