package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bastally/internal/bas"
	"github.com/cleared-dev/bastally/internal/importer"
	"github.com/cleared-dev/bastally/internal/logging"
	"github.com/cleared-dev/bastally/internal/model"
	"github.com/cleared-dev/bastally/internal/pipeline"
	"github.com/cleared-dev/bastally/internal/rules"
)

// periodFlags select the reporting window. Exactly one form must be given.
type periodFlags struct {
	quarter string
	fy      string
	from    string
	to      string
}

func (f *periodFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.quarter, "quarter", "", "calendar quarter, e.g. 2025-Q3")
	cmd.Flags().StringVar(&f.fy, "fy", "", "financial year, e.g. 2024-25")
	cmd.Flags().StringVar(&f.from, "from", "", "custom period start date")
	cmd.Flags().StringVar(&f.to, "to", "", "custom period end date")
	cmd.MarkFlagsRequiredTogether("from", "to")
	cmd.MarkFlagsMutuallyExclusive("quarter", "fy", "from")
	cmd.MarkFlagsMutuallyExclusive("quarter", "fy", "to")
}

func (f *periodFlags) period() (model.Period, error) {
	switch {
	case f.quarter != "":
		return bas.ParseQuarter(f.quarter)
	case f.fy != "":
		return bas.ParseFinancialYear(f.fy)
	case f.from != "" && f.to != "":
		return bas.ParseCustomPeriod(f.from, f.to)
	}
	return model.Period{}, errors.New("a period is required: use --quarter, --fy, or --from and --to")
}

// inputs returns the statement files named on the command line, or those
// found in the configured statement directory.
func (a *app) inputs(args []string, format string) ([]pipeline.Input, error) {
	if format == "" {
		format = a.cfg.Input.Format
	}
	if len(args) > 0 {
		in := make([]pipeline.Input, len(args))
		for i, path := range args {
			in[i] = pipeline.Input{Path: path, Format: format}
		}
		return in, nil
	}

	dir := a.cfg.Resolve(a.cfg.Input.Dir)
	files, err := importer.Scan(dir, a.cfg.Input.Patterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no statement files in %s matching %v", dir, a.cfg.Input.Patterns)
	}
	in := make([]pipeline.Input, len(files))
	for i, f := range files {
		in[i] = pipeline.Input{Path: f.Path, Format: format}
	}
	return in, nil
}

// ruleSet loads the configured rule table, or the built-in one.
func (a *app) ruleSet() (*rules.RuleSet, string, error) {
	if a.cfg.Rules.Path == "" {
		return rules.Default(), "built-in", nil
	}
	path := a.cfg.Resolve(a.cfg.Rules.Path)
	rs, err := rules.Load(path)
	if err != nil {
		return nil, "", err
	}
	return rs, path, nil
}

func (a *app) run(ctx context.Context, args []string, format string, pf *periodFlags) (*pipeline.Result, error) {
	period, err := pf.period()
	if err != nil {
		return nil, err
	}
	inputs, err := a.inputs(args, format)
	if err != nil {
		return nil, err
	}
	rs, source, err := a.ruleSet()
	if err != nil {
		return nil, err
	}
	a.log.Debug("Using rule table",
		logging.F(logging.FieldRules, rs.Version),
		logging.F(logging.FieldFile, source))

	registry := importer.DefaultRegistry(
		importer.WithLookAhead(a.cfg.Input.LookAhead),
		importer.WithDateLayouts(a.cfg.Input.DateLayouts),
	)
	return pipeline.Run(ctx, inputs, pipeline.Options{
		Period:   period,
		Rules:    rs,
		Registry: registry,
		Logger:   a.log,
	})
}
