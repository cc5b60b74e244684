package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bastally/internal/pipeline"
)

const rule = "--------------------------------------------------"

// TextOptions controls the plain-text report.
type TextOptions struct {
	Symbol       string
	BusinessName string
	ABN          string
}

func (o TextOptions) symbol() string {
	if o.Symbol == "" {
		return DefaultSymbol
	}
	return o.Symbol
}

// WriteText writes the BAS figures followed by a processing summary.
func WriteText(w io.Writer, res *pipeline.Result, opts TextOptions) error {
	var b strings.Builder
	sym := opts.symbol()
	r := res.Report
	money := func(label string, v decimal.Decimal) {
		fmt.Fprintf(&b, "%-28s%s\n", label, FormatMoney(v, sym))
	}

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "BAS ESTIMATE (%s)\n", r.Period)
	if opts.BusinessName != "" {
		b.WriteString(opts.BusinessName)
		if opts.ABN != "" {
			fmt.Fprintf(&b, " (ABN %s)", opts.ABN)
		}
		b.WriteByte('\n')
	}
	b.WriteString(rule + "\n")
	money("G1 (Total Sales):", r.TotalSales)
	money("1A (GST on Sales):", r.GSTOnSales)
	b.WriteString(rule + "\n")
	money("G11 (Non-Capital Purch):", r.TotalGSTExpenses)
	money("1B (GST on Purchases):", r.GSTOnExpenses)
	b.WriteString(rule + "\n")
	if r.RefundDue() {
		money("REFUND DUE:", r.NetPayable.Neg())
	} else {
		money("PAYABLE AMOUNT:", r.NetPayable)
	}
	b.WriteString(rule + "\n\n")

	writeSummary(&b, res, sym)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSummary(b *strings.Builder, res *pipeline.Result, sym string) {
	s := res.Stats
	line := func(label string, v any) {
		fmt.Fprintf(b, "  %-24s%v\n", label+":", v)
	}

	fmt.Fprintf(b, "Processing summary (run %s)\n", res.RunID)
	line("Files read", s.FilesRead)
	line("Files skipped", len(s.SkippedFiles))
	for _, fe := range s.SkippedFiles {
		fmt.Fprintf(b, "    %s: %s\n", fe.File, fe.Kind.Label())
	}
	if len(s.Coverage) > 0 {
		b.WriteString("  Statement coverage:\n")
	}
	for _, c := range s.Coverage {
		fmt.Fprintf(b, "    %s: %s (%d rows)\n", c.File, c.Span(), c.Rows)
	}
	if len(s.Uncovered) == 0 {
		line("Uncovered days", "none")
	} else {
		line("Uncovered ranges", len(s.Uncovered))
		for _, gap := range s.Uncovered {
			fmt.Fprintf(b, "    %s\n", gap)
		}
	}
	line("Rows parsed", s.RowsParsed)
	line("Rows skipped", s.SkippedRowCount())
	for _, k := range s.SortedKinds() {
		fmt.Fprintf(b, "    %-22s%d\n", k.Label()+":", s.SkippedRows[k])
	}
	for _, re := range s.RowErrors {
		fmt.Fprintf(b, "      %s\n", re.Error())
	}
	line("Duplicates removed", s.Duplicates)
	line("Outside period", s.OutsidePeriod)
	line("Transactions counted", s.Classified)
	line("Non-GST expenses", FormatMoney(res.Report.TotalNonGSTExpenses, sym))
	if res.RulesVersion != "" {
		line("Rules version", res.RulesVersion)
	}
}
