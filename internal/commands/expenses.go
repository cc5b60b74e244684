package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/bastally/internal/bas"
	"github.com/cleared-dev/bastally/internal/report"
)

func newExpensesCommand(a *app) *cobra.Command {
	var pf periodFlags
	var inputFormat string

	cmd := &cobra.Command{
		Use:   "expenses [statement files...]",
		Short: "Break down a period's expenses by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.run(cmd.Context(), args, inputFormat, &pf)
			if err != nil {
				return err
			}
			b := bas.Summarize(res.Transactions, res.Report.Period)
			return report.WriteBreakdown(cmd.OutOrStdout(), b, a.cfg.Report.CurrencySymbol)
		},
	}

	pf.register(cmd)
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "statement format (csv, text, blocks)")

	return cmd
}
