package rules

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/cleared-dev/bastally/internal/model"
)

// Classify assigns a bucket to one transaction. Precedence is fixed:
//
//	inflow:  transfer keyword -> excluded, otherwise sales
//	outflow: exclude keyword -> non-GST, GST keyword -> GST expense, otherwise UnknownExpense
//	zero:    excluded
//
// Exclusion is checked before inclusion so a description carrying both a
// personal and a business-sounding word is never claimed for a GST credit.
func Classify(description string, amount decimal.Decimal, rs *RuleSet) model.Bucket {
	desc := Normalize(description)

	switch {
	case amount.IsPositive():
		if matchesAny(desc, rs.Transfers) {
			return model.BucketExcluded
		}
		if rs.Policy.RequireSalesKeyword && !matchesAny(desc, rs.Sales) {
			return model.BucketExcluded
		}
		return model.BucketSales

	case amount.IsNegative():
		if matchesAny(desc, rs.Exclude) {
			return model.BucketNonGSTExpense
		}
		if matchesAny(desc, rs.GSTExpenses) {
			return model.BucketGSTExpense
		}
		if rs.Policy.UnknownExpense == model.BucketExcluded {
			return model.BucketExcluded
		}
		return model.BucketNonGSTExpense
	}

	return model.BucketExcluded
}

// ClassifyTransaction classifies txn and, for expenses, attaches its category.
func ClassifyTransaction(txn model.Transaction, rs *RuleSet) model.ClassifiedTransaction {
	c := model.ClassifiedTransaction{
		Source: txn,
		Bucket: Classify(txn.Description, txn.Amount, rs),
	}
	if c.IsExpense() {
		c.Category = CategoryOf(txn.Description, rs)
	}
	return c
}

// CategoryOf returns the first category whose keywords match description,
// or OtherCategory.
func CategoryOf(description string, rs *RuleSet) string {
	desc := Normalize(description)
	for _, c := range rs.Categories {
		if matchesAny(desc, c.Keywords) {
			return c.Name
		}
	}
	return OtherCategory
}

// Normalize prepares free text for keyword matching: NFKC folding,
// upper case, single spaces. A trailing space is kept so keywords such as
// "BP " can match at the end of a description.
func Normalize(s string) string {
	s = strings.ToUpper(norm.NFKC.String(s))
	return strings.Join(strings.Fields(s), " ") + " "
}

func matchesAny(normalized string, keywords []string) bool {
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(normalized, strings.ToUpper(kw)) {
			return true
		}
	}
	return false
}
