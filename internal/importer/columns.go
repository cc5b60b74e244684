package importer

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/bastally/internal/parse"
)

// columns maps the fields of a statement CSV. Absent columns are -1.
type columns struct {
	date    int
	amount  int
	debit   int
	credit  int
	balance int
	desc    []int
	layouts []string
}

var (
	descHeaders   = []string{"details", "description", "merchant", "narrative", "payee"}
	debitHeaders  = []string{"debit", "withdrawal"}
	creditHeaders = []string{"credit", "deposit"}
)

// detectColumns locates the fields by header name. The first header
// mentioning a field wins; every description-like header is kept.
func detectColumns(header []string) (columns, error) {
	cols := columns{date: -1, amount: -1, debit: -1, credit: -1, balance: -1}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		switch {
		case name == "":
		case strings.Contains(name, "balance"):
			if cols.balance < 0 {
				cols.balance = i
			}
		case strings.Contains(name, "date"):
			if cols.date < 0 {
				cols.date = i
			}
		case containsAny(name, debitHeaders):
			if cols.debit < 0 {
				cols.debit = i
			}
		case containsAny(name, creditHeaders):
			if cols.credit < 0 {
				cols.credit = i
			}
		case strings.Contains(name, "amount"):
			if cols.amount < 0 {
				cols.amount = i
			}
		case containsAny(name, descHeaders):
			cols.desc = append(cols.desc, i)
		}
	}

	// A debit/credit pair ("Debit Amount", "Credit Amount") takes precedence
	// over a lone amount column.
	if cols.debit >= 0 && cols.credit >= 0 {
		cols.amount = -1
	}

	var missing []string
	if cols.date < 0 {
		missing = append(missing, "date")
	}
	if cols.amount < 0 && (cols.debit < 0 || cols.credit < 0) {
		missing = append(missing, "amount")
	}
	if len(cols.desc) == 0 {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("%w: need %s, have %q", parse.ErrMissingColumns, strings.Join(missing, ", "), header)
	}
	return cols, nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// field returns rec[i] trimmed, or "" when the row is too short.
func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
