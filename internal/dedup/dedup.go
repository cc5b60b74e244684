// Package dedup removes rows repeated across overlapping statement exports.
package dedup

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/cleared-dev/bastally/internal/model"
)

// Signature identifies a transaction independently of the file it came from:
// date, amount to the cent, normalized description and balance when known.
//
// Two genuinely separate same-day purchases with identical amount and
// description and no balance column collapse into one.
func Signature(txn model.Transaction) string {
	var b strings.Builder
	b.WriteString(txn.Date.Format("2006-01-02"))
	b.WriteByte('|')
	b.WriteString(txn.Amount.StringFixed(2))
	b.WriteByte('|')
	b.WriteString(normalizeDescription(txn.Description))
	b.WriteByte('|')
	if txn.Balance.Valid {
		b.WriteString(txn.Balance.Decimal.StringFixed(2))
	}
	return b.String()
}

func normalizeDescription(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(norm.NFKC.String(s))), " ")
}

// Dedup keeps one transaction per signature and reports how many were dropped.
// The first occurrence is kept. The result is ordered by date then signature,
// so it does not depend on the order the inputs were read in.
func Dedup(txns []model.Transaction) (kept []model.Transaction, removed int) {
	type entry struct {
		sig string
		txn model.Transaction
	}

	seen := make(map[string]bool, len(txns))
	entries := make([]entry, 0, len(txns))
	for _, txn := range txns {
		sig := Signature(txn)
		if seen[sig] {
			removed++
			continue
		}
		seen[sig] = true
		entries = append(entries, entry{sig: sig, txn: txn})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].txn.Date.Equal(entries[j].txn.Date) {
			return entries[i].txn.Date.Before(entries[j].txn.Date)
		}
		return entries[i].sig < entries[j].sig
	})

	kept = make([]model.Transaction, len(entries))
	for i, e := range entries {
		kept[i] = e.txn
	}
	return kept, removed
}
