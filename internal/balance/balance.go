// Package balance cross-checks an account's transactions against the
// running balances its statements reported.
package balance

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/midastouch-dev/midastouch/internal/model"
)

// ErrInconsistent reports that the summed amounts disagree with the
// recorded balance movement.
var ErrInconsistent = errors.New("transactions inconsistent with recorded balances")

// Check verifies that the sum of all amounts equals the movement between
// the account's opening and closing balances. Transactions must be in
// statement order and carry the balances the export reported. An empty
// slice is trivially consistent.
func Check(txns []model.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	total := decimal.Zero
	for _, txn := range txns {
		total = total.Add(txn.Amount)
	}

	first := txns[0]
	last := txns[len(txns)-1]

	// The first recorded balance is the balance AFTER the first
	// transaction, so the opening balance backs its amount out.
	opening := first.Balance.Sub(first.Amount)
	movement := last.Balance.Sub(opening)

	if !total.Round(2).Equal(movement.Round(2)) {
		return fmt.Errorf("%w: amounts sum to %s but balances moved %s",
			ErrInconsistent, total.StringFixed(2), movement.StringFixed(2))
	}
	return nil
}
