// Package rules holds the keyword rule table and the transaction classifier.
package rules

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/bastally/internal/model"
)

// RuleSet is the versioned keyword table consumed by every report variant.
// Keywords are matched as case-insensitive substrings. Leading and trailing
// spaces inside a keyword are significant ("BP " must not match "BPAY").
type RuleSet struct {
	Version     string     `yaml:"version"`
	Sales       []string   `yaml:"sales"`
	Transfers   []string   `yaml:"transfers"`
	GSTExpenses []string   `yaml:"gst_expenses"`
	Exclude     []string   `yaml:"exclude"`
	Categories  []Category `yaml:"categories,omitempty"`
	Policy      Policy     `yaml:"policy"`
}

// Category groups outflows for the expense breakdown.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Policy holds the switches where the historical report variants disagreed.
type Policy struct {
	// RequireSalesKeyword excludes inflows that match no Sales keyword.
	RequireSalesKeyword bool `yaml:"require_sales_keyword"`
	// UnknownExpense is the bucket for outflows that match no keyword list:
	// non_gst_expense or excluded.
	UnknownExpense model.Bucket `yaml:"unknown_expense"`
}

// OtherCategory is the breakdown label for outflows matching no category.
const OtherCategory = "Other"

// Validate checks the rule set for structural problems.
func (rs *RuleSet) Validate() error {
	var errs []error
	if strings.TrimSpace(rs.Version) == "" {
		errs = append(errs, errors.New("version is required"))
	}
	switch rs.Policy.UnknownExpense {
	case model.BucketNonGSTExpense, model.BucketExcluded:
	default:
		errs = append(errs, fmt.Errorf("policy.unknown_expense must be %q or %q, got %q",
			model.BucketNonGSTExpense, model.BucketExcluded, rs.Policy.UnknownExpense))
	}
	for name, list := range map[string][]string{
		"sales":        rs.Sales,
		"transfers":    rs.Transfers,
		"gst_expenses": rs.GSTExpenses,
		"exclude":      rs.Exclude,
	} {
		for i, kw := range list {
			if strings.TrimSpace(kw) == "" {
				errs = append(errs, fmt.Errorf("%s[%d] is blank", name, i))
			}
		}
	}
	seen := make(map[string]bool)
	for i, c := range rs.Categories {
		if strings.TrimSpace(c.Name) == "" {
			errs = append(errs, fmt.Errorf("categories[%d] has no name", i))
		}
		if seen[c.Name] {
			errs = append(errs, fmt.Errorf("duplicate category %q", c.Name))
		}
		seen[c.Name] = true
		if len(c.Keywords) == 0 {
			errs = append(errs, fmt.Errorf("category %q has no keywords", c.Name))
		}
	}
	return errors.Join(errs...)
}

// Load reads a rule table from a YAML file.
func Load(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	if rs.Policy.UnknownExpense == "" {
		rs.Policy.UnknownExpense = model.BucketNonGSTExpense
	}
	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules %s: %w", path, err)
	}
	return &rs, nil
}

// Save writes a rule table to a YAML file.
func Save(path string, rs *RuleSet) error {
	data, err := yaml.Marshal(rs)
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}
