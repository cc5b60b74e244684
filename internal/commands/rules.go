package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/bastally/internal/rules"
)

func newRulesCommand(a *app) *cobra.Command {
	var check, dump bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show or validate the keyword rule table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, source, err := a.ruleSet()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case check:
				fmt.Fprintf(out, "Rules OK: version %s (%s)\n", rs.Version, source)
				return nil
			case dump:
				return dumpRules(out, rs)
			}
			return printRules(out, rs, source)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "only validate the rule table")
	cmd.Flags().BoolVar(&dump, "dump", false, "print the rule table as YAML")
	cmd.MarkFlagsMutuallyExclusive("check", "dump")

	return cmd
}

func printRules(w io.Writer, rs *rules.RuleSet, source string) error {
	_, err := fmt.Fprintf(w, `Rule table %s (%s)
  Sales keywords:        %d
  Transfer keywords:     %d
  GST expense keywords:  %d
  Exclude keywords:      %d
  Expense categories:    %d
Policy
  Require sales keyword: %t
  Unknown expenses:      %s
`,
		rs.Version, source,
		len(rs.Sales), len(rs.Transfers), len(rs.GSTExpenses), len(rs.Exclude), len(rs.Categories),
		rs.Policy.RequireSalesKeyword, rs.Policy.UnknownExpense)
	return err
}

func dumpRules(w io.Writer, rs *rules.RuleSet) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(rs); err != nil {
		enc.Close()
		return fmt.Errorf("encoding rules: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}
