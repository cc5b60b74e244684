package model

import "fmt"

// Bucket is the classification outcome for a single transaction.
type Bucket string

const (
	BucketSales         Bucket = "sales"
	BucketGSTExpense    Bucket = "gst_expense"
	BucketNonGSTExpense Bucket = "non_gst_expense"
	BucketExcluded      Bucket = "excluded"
)

// Buckets lists every bucket in report order.
var Buckets = []Bucket{BucketSales, BucketGSTExpense, BucketNonGSTExpense, BucketExcluded}

// Valid reports whether b is one of the known buckets.
func (b Bucket) Valid() bool {
	switch b {
	case BucketSales, BucketGSTExpense, BucketNonGSTExpense, BucketExcluded:
		return true
	}
	return false
}

// ParseBucket converts a string to a Bucket.
func ParseBucket(s string) (Bucket, error) {
	b := Bucket(s)
	if !b.Valid() {
		return "", fmt.Errorf("unknown bucket %q", s)
	}
	return b, nil
}
