package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bastally/internal/config"
	"github.com/cleared-dev/bastally/internal/rules"
)

const rulesFile = "rules/gst-rules.yaml"

func newInitCommand() *cobra.Command {
	var name string
	var abn string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new bastally project",
		Args:  cobra.MaximumNArgs(1),
		// init writes the config, so it must not try to load one.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, name, abn)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&abn, "abn", "", "Australian Business Number")

	return cmd
}

func runInit(out io.Writer, dir, name, abn string) error {
	cfgPath := filepath.Join(dir, config.DefaultFileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.Default(name)
	cfg.Business.ABN = abn
	cfg.Rules.Path = rulesFile

	for _, d := range []string{filepath.Dir(rulesFile), cfg.Input.Dir} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := rules.Save(filepath.Join(dir, rulesFile), rules.Default()); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, cfg.Input.Dir, ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	// bastally.yaml is written last; its presence marks a finished init.
	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "Initialized bastally project at %s\n", dir)
	return nil
}
