package importer

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bastally/internal/model"
	"github.com/cleared-dev/bastally/internal/parse"
)

// DefaultLookAhead is how many lines after its anchor a block's amount may appear.
const DefaultLookAhead = 4

// BlocksParser parses the multi-line layout produced by copying an online
// banking transaction list:
//
//	17 Nov 2025
//	FACEBK *ADS 1234
//	Advertising
//	−$37.16
//	$1,204.88
//	...
//
// A date line opens a group. Each transaction in the group is one or more
// description lines followed by an amount line and an optional balance line.
// The amount must appear within LookAhead lines of the date or of the
// previous transaction, otherwise the transaction is skipped.
type BlocksParser struct {
	LookAhead int
	// DateLayouts overrides parse.DateLayouts when set.
	DateLayouts []string
}

// Format returns the parser name.
func (p *BlocksParser) Format() string { return FormatBlocks }

// Parse reads a pasted block listing.
func (p *BlocksParser) Parse(r io.Reader, name string) (Batch, error) {
	b := blockReader{name: name, lookAhead: p.LookAhead, layouts: p.DateLayouts}
	if b.lookAhead <= 0 {
		b.lookAhead = DefaultLookAhead
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for sc.Scan() {
		line++
		b.feed(strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff")), line)
	}
	b.flush()
	if err := sc.Err(); err != nil {
		return b.batch, &parse.FileError{File: name, Kind: parse.KindUnreadable, Err: err}
	}
	return b.batch, nil
}

type blockReader struct {
	name      string
	lookAhead int
	layouts   []string
	batch     Batch

	date      time.Time // zero until the first date line
	pending   []string
	startLine int
	overflow  bool // pending ran past lookAhead; discard until the group resets
	open      bool // last transaction may still take a balance line
}

func (b *blockReader) feed(s string, line int) {
	switch {
	case s == "":
	case isSeparator(s):
		b.flush()
	case parse.IsAmount(s):
		b.amount(s, line)
	default:
		if d, err := parseDate(s, b.layouts); err == nil {
			b.flush()
			b.date = d
			return
		}
		if b.date.IsZero() {
			return
		}
		b.open = false
		if b.overflow {
			return
		}
		if len(b.pending) == 0 {
			b.startLine = line
		}
		b.pending = append(b.pending, s)
		if len(b.pending) >= b.lookAhead {
			b.overflow = true
			b.batch.skip(&parse.RowError{Kind: parse.KindInvalidAmount, Value: b.pending[0]}, b.name, b.startLine)
		}
	}
}

func (b *blockReader) amount(s string, line int) {
	switch {
	case b.overflow:
		// Closes the transaction already reported as skipped.
		b.pending = nil
		b.overflow = false
	case len(b.pending) > 0:
		amount, err := parse.ParseAmount(s)
		if err != nil {
			b.batch.skip(err, b.name, line)
			b.pending = nil
			return
		}
		b.batch.Transactions = append(b.batch.Transactions, model.Transaction{
			Date:        b.date,
			Amount:      amount,
			Description: strings.Join(b.pending, " "),
			Source:      b.name,
			Line:        b.startLine,
		})
		b.pending = nil
		b.open = true
	case b.open:
		bal, _ := parse.ParseAmount(s)
		last := &b.batch.Transactions[len(b.batch.Transactions)-1]
		last.Balance = decimal.NewNullDecimal(bal)
		b.open = false
	}
}

// flush ends the current group. Description lines with no amount are skipped rows.
func (b *blockReader) flush() {
	if len(b.pending) > 0 && !b.overflow {
		b.batch.skip(&parse.RowError{Kind: parse.KindInvalidAmount, Value: b.pending[0]}, b.name, b.startLine)
	}
	b.pending = nil
	b.overflow = false
	b.open = false
}

func isSeparator(s string) bool {
	return strings.Trim(s, ".\u2026") == ""
}
