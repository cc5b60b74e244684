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

// TextParser parses statement text pasted from online banking, one
// transaction per line. Tab-separated lines are read as
// date, description, amount[, balance]. Other lines are read as a date in
// the leading tokens, an amount in the last token (or last two when a
// balance follows) and the description in between.
type TextParser struct {
	// DateLayouts overrides parse.DateLayouts when set.
	DateLayouts []string
}

// Format returns the parser name.
func (p *TextParser) Format() string { return FormatText }

const maxLineSize = 1 << 20

// Parse reads pasted statement lines.
func (p *TextParser) Parse(r io.Reader, name string) (Batch, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var batch Batch
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if raw == "" {
			continue
		}

		var (
			txn model.Transaction
			ok  bool
			err error
		)
		if strings.Contains(raw, "\t") {
			txn, ok, err = parseTabbed(raw, p.DateLayouts)
		} else {
			txn, ok, err = parseSpaced(raw, p.DateLayouts)
		}
		if !ok {
			continue
		}
		if err != nil {
			batch.skip(err, name, line)
			continue
		}
		txn.Source = name
		txn.Line = line
		batch.Transactions = append(batch.Transactions, txn)
	}
	if err := sc.Err(); err != nil {
		return batch, &parse.FileError{File: name, Kind: parse.KindUnreadable, Err: err}
	}
	return batch, nil
}

// parseTabbed reports ok=false for lines that are not records at all:
// too few fields, or a header row.
func parseTabbed(raw string, layouts []string) (model.Transaction, bool, error) {
	fields := strings.Split(raw, "\t")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) < 3 {
		return model.Transaction{}, false, nil
	}
	if isHeader(fields[0]) {
		return model.Transaction{}, false, nil
	}

	date, err := parseDate(fields[0], layouts)
	if err != nil {
		return model.Transaction{}, true, err
	}
	amount, err := parse.ParseAmount(fields[2])
	if err != nil {
		return model.Transaction{}, true, err
	}
	txn := model.Transaction{Date: date, Amount: amount, Description: fields[1]}
	if len(fields) > 3 && fields[3] != "" {
		if bal, err := parse.ParseAmount(fields[3]); err == nil {
			txn.Balance = decimal.NewNullDecimal(bal)
		}
	}
	return txn, true, nil
}

// maxDateTokens is the most tokens a date spans ("17 Nov 2025").
const maxDateTokens = 3

// parseSpaced reads a space-separated line. When the amount is followed by a
// balance, the amount carries a sign or symbol and the balance may be bare.
func parseSpaced(raw string, layouts []string) (model.Transaction, bool, error) {
	tokens := strings.Fields(raw)
	if len(tokens) < 2 || isHeader(tokens[0]) {
		return model.Transaction{}, false, nil
	}

	var (
		date   = -1
		parsed model.Transaction
	)
	for n := min(maxDateTokens, len(tokens)-1); n > 0; n-- {
		if d, err := parseDate(strings.Join(tokens[:n], " "), layouts); err == nil {
			parsed.Date = d
			date = n
			break
		}
	}
	if date < 0 {
		return model.Transaction{}, true, &parse.RowError{Kind: parse.KindInvalidDate, Value: tokens[0]}
	}

	rest := tokens[date:]
	last := len(rest) - 1
	if last >= 2 && parse.IsAmount(rest[last-1]) {
		if bal, err := parse.ParseAmount(rest[last]); err == nil {
			parsed.Balance = decimal.NewNullDecimal(bal)
			last--
		}
	}
	amount, err := parse.ParseAmount(rest[last])
	if err != nil {
		return model.Transaction{}, true, err
	}
	parsed.Amount = amount
	parsed.Description = strings.Join(rest[:last], " ")
	return parsed, true, nil
}

func isHeader(first string) bool {
	return strings.EqualFold(strings.TrimSpace(first), "date")
}

// parseDate parses raw with layouts, falling back to parse.DateLayouts.
func parseDate(raw string, layouts []string) (time.Time, error) {
	if len(layouts) == 0 {
		layouts = parse.DateLayouts
	}
	return parse.ParseDateWith(raw, layouts)
}
