package bas

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bastally/internal/model"
)

// gstDivisor extracts the GST component from a GST-inclusive amount (10% rate).
var gstDivisor = decimal.NewFromInt(11)

// GSTComponent returns the GST included in amount. The result is not rounded.
func GSTComponent(amount decimal.Decimal) decimal.Decimal {
	return amount.Div(gstDivisor)
}

// Aggregate folds classified transactions into the BAS figures for period.
// Records outside the period are ignored. Expense totals are positive.
func Aggregate(classified []model.ClassifiedTransaction, period model.Period) model.PeriodReport {
	r := model.PeriodReport{
		Period: period,
		Counts: make(map[model.Bucket]int, len(model.Buckets)),
	}
	for _, c := range classified {
		if !period.Contains(c.Source.Date) {
			continue
		}
		r.Counts[c.Bucket]++
		switch c.Bucket {
		case model.BucketSales:
			r.TotalSales = r.TotalSales.Add(c.Source.Amount)
		case model.BucketGSTExpense:
			r.TotalGSTExpenses = r.TotalGSTExpenses.Add(c.Source.Amount.Abs())
		case model.BucketNonGSTExpense:
			r.TotalNonGSTExpenses = r.TotalNonGSTExpenses.Add(c.Source.Amount.Abs())
		}
	}
	r.GSTOnSales = GSTComponent(r.TotalSales)
	r.GSTOnExpenses = GSTComponent(r.TotalGSTExpenses)
	r.NetPayable = r.GSTOnSales.Sub(r.GSTOnExpenses)
	return r
}
