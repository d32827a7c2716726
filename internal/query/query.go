// Package query provides read-only filter, sort, and aggregate operations
// over transaction sequences. Nothing here mutates the store.
package query

import (
	"errors"
	"iter"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/midastouch-dev/midastouch/internal/model"
)

// ErrEmptySet reports an aggregate that is undefined on empty input.
var ErrEmptySet = errors.New("empty result set")

// Predicate selects transactions. Predicates compose by conjunction in Filter.
type Predicate func(model.Transaction) bool

// DateRange matches transactions with from <= date <= to. A zero from or to
// leaves that end open.
func DateRange(from, to time.Time) Predicate {
	return func(txn model.Transaction) bool {
		if !from.IsZero() && txn.Date.Before(from) {
			return false
		}
		if !to.IsZero() && txn.Date.After(to) {
			return false
		}
		return true
	}
}

// Outflows matches transactions with a negative amount.
func Outflows() Predicate {
	return func(txn model.Transaction) bool {
		return txn.Amount.IsNegative()
	}
}

// Inflows matches transactions with a positive amount.
func Inflows() Predicate {
	return func(txn model.Transaction) bool {
		return txn.Amount.IsPositive()
	}
}

// DescriptionContains matches descriptions containing substr, case-insensitively.
func DescriptionContains(substr string) Predicate {
	needle := strings.ToLower(substr)
	return func(txn model.Transaction) bool {
		return strings.Contains(strings.ToLower(txn.Description), needle)
	}
}

// Account matches transactions belonging to accountID.
func Account(accountID string) Predicate {
	return func(txn model.Transaction) bool {
		return txn.AccountID == accountID
	}
}

// Filter yields the transactions matching every predicate, preserving order.
// The result is lazy and restartable whenever seq is.
func Filter(seq iter.Seq[model.Transaction], preds ...Predicate) iter.Seq[model.Transaction] {
	return func(yield func(model.Transaction) bool) {
		for txn := range seq {
			if !matches(txn, preds) {
				continue
			}
			if !yield(txn) {
				return
			}
		}
	}
}

func matches(txn model.Transaction, preds []Predicate) bool {
	for _, p := range preds {
		if !p(txn) {
			return false
		}
	}
	return true
}

// Count returns the number of transactions in seq.
func Count(seq iter.Seq[model.Transaction]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}

// Sum returns the sum of amounts in seq. Empty input sums to zero.
func Sum(seq iter.Seq[model.Transaction]) decimal.Decimal {
	total := decimal.Zero
	for txn := range seq {
		total = total.Add(txn.Amount)
	}
	return total
}

// Average returns the mean amount in seq, or ErrEmptySet on empty input.
func Average(seq iter.Seq[model.Transaction]) (decimal.Decimal, error) {
	total := decimal.Zero
	n := 0
	for txn := range seq {
		total = total.Add(txn.Amount)
		n++
	}
	if n == 0 {
		return decimal.Decimal{}, ErrEmptySet
	}
	return total.Div(decimal.NewFromInt(int64(n))), nil
}

// SortKey selects the field SortBy orders on.
type SortKey string

const (
	SortByDate   SortKey = "date"
	SortByAmount SortKey = "amount"
)

// Order is the sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// SortBy collects seq into a slice ordered by key. The sort is stable, so
// equal keys keep their sequence order.
func SortBy(seq iter.Seq[model.Transaction], key SortKey, order Order) []model.Transaction {
	var txns []model.Transaction
	for txn := range seq {
		txns = append(txns, txn)
	}

	less := func(a, b model.Transaction) bool {
		if key == SortByAmount {
			return a.Amount.LessThan(b.Amount)
		}
		return a.Date.Before(b.Date)
	}
	sort.SliceStable(txns, func(i, j int) bool {
		if order == Desc {
			return less(txns[j], txns[i])
		}
		return less(txns[i], txns[j])
	})
	return txns
}
