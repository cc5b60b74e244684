package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bastally/internal/history"
	"github.com/cleared-dev/bastally/internal/report"
)

func newHistoryCommand(a *app) *cobra.Command {
	var latest bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs recorded with report --record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := history.Read(a.cfg.Resolve(history.DefaultPath))
			if err != nil {
				return err
			}
			if latest {
				entries = latestOnly(entries)
			}
			printHistory(cmd.OutOrStdout(), entries, a.cfg.Report.CurrencySymbol)
			return nil
		},
	}

	cmd.Flags().BoolVar(&latest, "latest", false, "show only the most recent run for each period")
	return cmd
}

func latestOnly(entries []history.Entry) []history.Entry {
	byPeriod := history.Latest(entries)
	out := make([]history.Entry, 0, len(byPeriod))
	for _, e := range byPeriod {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

func printHistory(w io.Writer, entries []history.Entry, symbol string) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No recorded runs.")
		return
	}
	fmt.Fprintf(w, "%-20s  %-12s  %-8s  %12s  %12s\n", "RECORDED", "PERIOD", "RULES", "1A", "NET")
	for _, e := range entries {
		fmt.Fprintf(w, "%-20s  %-12s  %-8s  %12s  %12s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.Period,
			e.RulesVersion,
			report.FormatMoney(e.GSTOnSales, symbol),
			report.FormatMoney(e.NetPayable, symbol))
	}
}
