package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/bastally/internal/bas"
)

// WriteBreakdown writes expense totals by category with a monthly average.
func WriteBreakdown(w io.Writer, b bas.Breakdown, symbol string) error {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	var sb strings.Builder
	row := func(name, total, avg string) {
		fmt.Fprintf(&sb, "%-36s %12s %14s\n", name, total, avg)
	}

	sb.WriteString(rule + "\n")
	fmt.Fprintf(&sb, "EXPENSE BREAKDOWN (%s)\n", b.Period)
	sb.WriteString(rule + "\n")
	if len(b.Categories) == 0 {
		sb.WriteString("No expenses in period.\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	row("Category", "Total", "Monthly avg")
	for _, c := range b.Categories {
		row(c.Name, FormatMoney(c.Total, symbol), FormatMoney(bas.MonthlyAverage(c.Total, b.Period), symbol))
	}
	sb.WriteString(rule + "\n")
	row("TOTAL IDENTIFIED BUSINESS EXPENSES", FormatMoney(b.Identified, symbol),
		FormatMoney(bas.MonthlyAverage(b.Identified, b.Period), symbol))
	if !b.Other.IsZero() {
		fmt.Fprintf(&sb, "%-36s %12s\n", "Unidentified (Other)", FormatMoney(b.Other, symbol))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
