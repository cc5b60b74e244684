package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bastally/internal/buildinfo"
	"github.com/cleared-dev/bastally/internal/config"
	"github.com/cleared-dev/bastally/internal/logging"
)

// app carries state shared by subcommands once the root has loaded it.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg *config.Config
	log logging.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "bastally",
		Short:   "GST and BAS estimates from bank statement exports",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.DefaultFileName, "config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format (text, json)")

	rootCmd.AddCommand(
		newInitCommand(),
		newReportCommand(a),
		newExpensesCommand(a),
		newRulesCommand(a),
		newHistoryCommand(a),
	)

	return rootCmd
}

// setup loads configuration and builds the logger. A missing default config
// file is fine; a missing file named with --config is not.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path := a.configPath
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			path = ""
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	a.cfg = cfg
	a.log = logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)

	if path != "" {
		a.log.Debug(fmt.Sprintf("Loaded config from %s", path))
	}
	return nil
}
