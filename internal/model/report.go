package model

import "github.com/shopspring/decimal"

// PeriodReport holds the BAS figures for one period. Values are unrounded.
type PeriodReport struct {
	Period              Period
	TotalSales          decimal.Decimal // G1
	GSTOnSales          decimal.Decimal // 1A
	TotalGSTExpenses    decimal.Decimal // G11
	GSTOnExpenses       decimal.Decimal // 1B
	NetPayable          decimal.Decimal // 1A - 1B
	TotalNonGSTExpenses decimal.Decimal
	Counts              map[Bucket]int
}

// RefundDue reports whether more GST was paid than collected.
func (r PeriodReport) RefundDue() bool {
	return r.NetPayable.IsNegative()
}
