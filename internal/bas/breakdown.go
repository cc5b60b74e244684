package bas

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bastally/internal/model"
	"github.com/cleared-dev/bastally/internal/rules"
)

// CategoryTotal is the spend for one expense category.
type CategoryTotal struct {
	Name  string
	Total decimal.Decimal
	Count int
	// GSTCredit is the total of the category's rows that earn a GST credit.
	GSTCredit decimal.Decimal
}

// Breakdown is the expense summary for a period.
type Breakdown struct {
	Period     model.Period
	Categories []CategoryTotal
	// Identified sums every category except the catch-all.
	Identified decimal.Decimal
	Other      decimal.Decimal
}

// Summarize totals in-period expenses by category, largest first, ties by name.
func Summarize(classified []model.ClassifiedTransaction, period model.Period) Breakdown {
	byName := make(map[string]*CategoryTotal)
	for _, c := range classified {
		if !c.IsExpense() || !period.Contains(c.Source.Date) {
			continue
		}
		name := c.Category
		if name == "" {
			name = rules.OtherCategory
		}
		ct, ok := byName[name]
		if !ok {
			ct = &CategoryTotal{Name: name}
			byName[name] = ct
		}
		amount := c.Source.Amount.Abs()
		ct.Total = ct.Total.Add(amount)
		ct.Count++
		if c.Bucket == model.BucketGSTExpense {
			ct.GSTCredit = ct.GSTCredit.Add(amount)
		}
	}

	b := Breakdown{Period: period}
	for _, ct := range byName {
		b.Categories = append(b.Categories, *ct)
		if ct.Name == rules.OtherCategory {
			b.Other = b.Other.Add(ct.Total)
		} else {
			b.Identified = b.Identified.Add(ct.Total)
		}
	}
	sort.Slice(b.Categories, func(i, j int) bool {
		ci, cj := b.Categories[i], b.Categories[j]
		if cmp := ci.Total.Cmp(cj.Total); cmp != 0 {
			return cmp > 0
		}
		return ci.Name < cj.Name
	})
	return b
}

// MonthlyAverage spreads total evenly over the months period touches.
func MonthlyAverage(total decimal.Decimal, period model.Period) decimal.Decimal {
	months := period.Months()
	if months <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(months)))
}
