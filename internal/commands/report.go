package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bastally/internal/history"
	"github.com/cleared-dev/bastally/internal/logging"
	"github.com/cleared-dev/bastally/internal/pipeline"
	"github.com/cleared-dev/bastally/internal/report"
)

func newReportCommand(a *app) *cobra.Command {
	var pf periodFlags
	var format, inputFormat, exportPath string
	var record bool

	cmd := &cobra.Command{
		Use:   "report [statement files...]",
		Short: "Estimate the BAS GST figures for a period",
		Long: `Reads bank statement exports, removes rows repeated across overlapping
exports, classifies each transaction and prints G1, 1A, G11, 1B and the net
amount payable or refundable for the period.

With no files given, statements are read from the configured input directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.run(cmd.Context(), args, inputFormat, &pf)
			if err != nil {
				return err
			}
			if format == "" {
				format = a.cfg.Report.Format
			}
			if err := runReport(cmd.OutOrStdout(), a, res, format, exportPath); err != nil {
				return err
			}
			if record {
				return a.record(res)
			}
			return nil
		},
	}

	pf.register(cmd)
	cmd.Flags().StringVar(&format, "format", "", "output format (text, json)")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "statement format (csv, text, blocks); guessed from the file name when empty")
	cmd.Flags().StringVar(&exportPath, "export", "", "also write classified transactions to this CSV file")
	cmd.Flags().BoolVar(&record, "record", false, "append the figures to the run history ("+history.DefaultPath+")")

	return cmd
}

func runReport(out io.Writer, a *app, res *pipeline.Result, format, exportPath string) error {
	if exportPath != "" {
		if err := exportTransactions(exportPath, res); err != nil {
			return err
		}
		a.log.Info("Exported classified transactions",
			logging.F(logging.FieldFile, exportPath),
			logging.F(logging.FieldCount, len(res.Transactions)))
	}

	switch format {
	case "json":
		return report.WriteJSON(out, res)
	case "text":
		return report.WriteText(out, res, report.TextOptions{
			Symbol:       a.cfg.Report.CurrencySymbol,
			BusinessName: a.cfg.Business.Name,
			ABN:          a.cfg.Business.ABN,
		})
	}
	return fmt.Errorf("unsupported report format: %s", format)
}

func exportTransactions(path string, res *pipeline.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export: %w", err)
	}
	if err := report.ExportCSV(f, res.Transactions); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing export: %w", err)
	}
	return nil
}

func (a *app) record(res *pipeline.Result) error {
	path := a.cfg.Resolve(history.DefaultPath)
	if err := history.Append(path, []history.Entry{history.FromResult(res, time.Now())}); err != nil {
		return err
	}
	a.log.Info("Recorded run",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldRunID, res.RunID))
	return nil
}
