package importer

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/cleared-dev/bastally/internal/model"
	"github.com/cleared-dev/bastally/internal/parse"
)

// Parser formats.
const (
	FormatCSV    = "csv"
	FormatText   = "text"
	FormatBlocks = "blocks"
)

// CSVParser parses headed bank CSV exports. Column order is free; columns
// are found by header name.
type CSVParser struct {
	// DateLayouts overrides parse.DateLayouts when set.
	DateLayouts []string
}

// Format returns the parser name.
func (p *CSVParser) Format() string { return FormatCSV }

// Parse reads a statement CSV. A file without the required columns fails as a
// whole; bad rows are skipped.
func (p *CSVParser) Parse(r io.Reader, name string) (Batch, error) {
	// BOMOverride strips a UTF-8 BOM and decodes UTF-16 exports.
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Batch{}, &parse.FileError{File: name, Kind: parse.KindMissingColumns, Err: errors.New("empty file")}
	}
	if err != nil {
		return Batch{}, &parse.FileError{File: name, Kind: parse.KindUnreadable, Err: err}
	}
	cols, err := detectColumns(header)
	cols.layouts = p.DateLayouts
	if err != nil {
		return Batch{}, &parse.FileError{File: name, Kind: parse.KindMissingColumns, Err: err}
	}

	var batch Batch
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return batch, &parse.FileError{File: name, Kind: parse.KindUnreadable, Err: err}
		}
		line, _ := cr.FieldPos(0)
		if blank(rec) {
			continue
		}
		txn, err := cols.transaction(rec)
		if err != nil {
			batch.skip(err, name, line)
			continue
		}
		txn.Source = name
		txn.Line = line
		batch.Transactions = append(batch.Transactions, txn)
	}
	return batch, nil
}

func (c columns) transaction(rec []string) (model.Transaction, error) {
	date, err := parseDate(field(rec, c.date), c.layouts)
	if err != nil {
		return model.Transaction{}, err
	}
	amount, err := c.amountOf(rec)
	if err != nil {
		return model.Transaction{}, err
	}

	parts := make([]string, 0, len(c.desc))
	for _, i := range c.desc {
		if v := field(rec, i); v != "" {
			parts = append(parts, v)
		}
	}

	txn := model.Transaction{
		Date:        date,
		Amount:      amount,
		Description: strings.Join(parts, " "),
	}
	// An unreadable balance only weakens duplicate detection; keep the row.
	if raw := field(rec, c.balance); raw != "" {
		if bal, err := parse.ParseAmount(raw); err == nil {
			txn.Balance = decimal.NewNullDecimal(bal)
		}
	}
	return txn, nil
}

// amountOf reads a signed amount column, or nets separate debit and credit columns.
func (c columns) amountOf(rec []string) (decimal.Decimal, error) {
	if c.amount >= 0 {
		return parse.ParseAmount(field(rec, c.amount))
	}
	debitRaw, creditRaw := field(rec, c.debit), field(rec, c.credit)
	if debitRaw == "" && creditRaw == "" {
		return decimal.Zero, &parse.RowError{Kind: parse.KindInvalidAmount}
	}
	var total decimal.Decimal
	if debitRaw != "" {
		d, err := parse.ParseAmount(debitRaw)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Sub(d.Abs())
	}
	if creditRaw != "" {
		d, err := parse.ParseAmount(creditRaw)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(d.Abs())
	}
	return total, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
