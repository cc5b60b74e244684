package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents one parsed bank statement row.
// Values are passed by copy; classification never modifies them.
type Transaction struct {
	Date        time.Time           // calendar date, midnight UTC
	Amount      decimal.Decimal     // negative = outflow, positive = inflow
	Description string              // all description-like columns joined by a space
	Balance     decimal.NullDecimal // running balance, when the export has one
	Source      string              // file the row came from
	Line        int                 // 1-based line in Source
}

// ClassifiedTransaction pairs a transaction with the bucket it was assigned.
type ClassifiedTransaction struct {
	Source   Transaction
	Bucket   Bucket
	Category string // expense category; empty unless Bucket is an expense
}

// IsExpense reports whether the transaction landed in an expense bucket.
func (c ClassifiedTransaction) IsExpense() bool {
	return c.Bucket == BucketGSTExpense || c.Bucket == BucketNonGSTExpense
}
