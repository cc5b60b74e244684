// Package config loads bastally.yaml. Values are layered: built-in defaults,
// then the file, then BASTALLY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/bastally/internal/parse"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = "bastally.yaml"

// EnvPrefix prefixes environment overrides, e.g. BASTALLY_LOG_LEVEL.
const EnvPrefix = "BASTALLY"

// Config represents the top-level bastally.yaml configuration.
type Config struct {
	Business BusinessConfig `mapstructure:"business" yaml:"business"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Input    InputConfig    `mapstructure:"input" yaml:"input"`
	Rules    RulesConfig    `mapstructure:"rules" yaml:"rules"`
	Report   ReportConfig   `mapstructure:"report" yaml:"report"`

	// BaseDir is the directory relative paths resolve against: the config
	// file's directory, or the working directory when there is no file.
	BaseDir string `mapstructure:"-" yaml:"-"`
}

// BusinessConfig identifies the business on the report.
type BusinessConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
	ABN  string `mapstructure:"abn" yaml:"abn,omitempty"`
}

// LogConfig controls the stderr logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// InputConfig says where statements live and how to read them.
type InputConfig struct {
	Dir      string   `mapstructure:"dir" yaml:"dir"`
	Patterns []string `mapstructure:"patterns" yaml:"patterns"`
	Format   string   `mapstructure:"format" yaml:"format,omitempty"` // empty: guess per file
	// LookAhead bounds the blocks parser's search for an amount line.
	LookAhead int `mapstructure:"look_ahead" yaml:"look_ahead"`
	// DateLayouts are Go time layouts tried in order on statement dates.
	DateLayouts []string `mapstructure:"date_layouts" yaml:"date_layouts"`
}

// RulesConfig points at the keyword rule table. An empty path uses the built-in table.
type RulesConfig struct {
	Path string `mapstructure:"path" yaml:"path,omitempty"`
}

// ReportConfig controls report output.
type ReportConfig struct {
	Format         string `mapstructure:"format" yaml:"format"`
	CurrencySymbol string `mapstructure:"currency_symbol" yaml:"currency_symbol"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("business.name", "")
	v.SetDefault("business.abn", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("input.dir", "statements")
	v.SetDefault("input.patterns", []string{"*.csv", "*.txt"})
	v.SetDefault("input.format", "")
	v.SetDefault("input.look_ahead", 4)
	v.SetDefault("input.date_layouts", slices.Clone(parse.DateLayouts))

	v.SetDefault("rules.path", "")

	v.SetDefault("report.format", "text")
	v.SetDefault("report.currency_symbol", "$")
}

// Load reads configuration. An empty path skips the file and uses defaults
// plus environment overrides; a named file that does not exist is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	baseDir := "."
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		baseDir = filepath.Dir(path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.BaseDir = baseDir

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks option values.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level: %s", c.Log.Level))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", c.Log.Format))
	}
	if c.Report.Format != "text" && c.Report.Format != "json" {
		errs = append(errs, fmt.Errorf("invalid report format: %s (must be 'text' or 'json')", c.Report.Format))
	}
	if c.Input.LookAhead < 1 {
		errs = append(errs, fmt.Errorf("input.look_ahead must be at least 1, got %d", c.Input.LookAhead))
	}
	if len(c.Input.DateLayouts) == 0 {
		errs = append(errs, errors.New("input.date_layouts must not be empty"))
	}
	for _, l := range c.Input.DateLayouts {
		if !fullDateLayout(l) {
			errs = append(errs, fmt.Errorf("input.date_layouts: %q does not describe a day, month and year", l))
		}
	}
	for _, p := range c.Input.Patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			errs = append(errs, fmt.Errorf("input.patterns: bad pattern %q", p))
		}
	}
	return errors.Join(errs...)
}

// fullDateLayout reports whether a date formatted with layout parses back unchanged.
func fullDateLayout(layout string) bool {
	ref := time.Date(2025, time.November, 17, 0, 0, 0, 0, time.UTC)
	got, err := time.Parse(layout, ref.Format(layout))
	return err == nil && got.Equal(ref)
}

// Resolve returns p relative to BaseDir, leaving absolute paths alone.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name: businessName,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Input: InputConfig{
			Dir:         "statements",
			Patterns:    []string{"*.csv", "*.txt"},
			LookAhead:   4,
			DateLayouts: slices.Clone(parse.DateLayouts),
		},
		Report: ReportConfig{
			Format:         "text",
			CurrencySymbol: "$",
		},
		BaseDir: ".",
	}
}
