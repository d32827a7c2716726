// Package normalize maps dialect RawRecords onto the canonical Transaction
// shape. Normalization is pure and deterministic: the same raw row always
// yields the same Transaction and therefore the same fingerprint.
package normalize

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/midastouch-dev/midastouch/internal/dialect"
	"github.com/midastouch-dev/midastouch/internal/fingerprint"
	"github.com/midastouch-dev/midastouch/internal/model"
)

// ErrInvalidDate reports a raw date that does not parse under the dialect's layout.
var ErrInvalidDate = errors.New("invalid date")

// ErrAmbiguousAmount reports a split-amount row where both or neither of the
// debit/credit columns are populated.
var ErrAmbiguousAmount = errors.New("ambiguous amount")

// Normalize converts a RawRecord into a canonical Transaction for the given
// account. Outflows come out negative regardless of the source convention.
func Normalize(raw dialect.RawRecord, accountID string, accountType model.AccountType) (model.Transaction, error) {
	date, err := time.Parse(raw.DateLayout, strings.TrimSpace(raw.Date))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw.Date)
	}
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	amount, err := parseAmount(raw)
	if err != nil {
		return model.Transaction{}, err
	}

	var balance decimal.Decimal
	if b := strings.TrimSpace(raw.Balance); b != "" {
		balance, err = decimal.NewFromString(b)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing balance %q: %w", raw.Balance, err)
		}
	}

	desc := collapseWhitespace(raw.Description)

	return model.Transaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Balance:     balance,
		AccountID:   accountID,
		AccountType: accountType,
		Fingerprint: fingerprint.Compute(date, desc, amount, accountID),
	}, nil
}

// parseAmount resolves the two amount conventions into one signed decimal.
func parseAmount(raw dialect.RawRecord) (decimal.Decimal, error) {
	if !raw.Split {
		amount, err := decimal.NewFromString(strings.TrimSpace(raw.Amount))
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", raw.Amount, err)
		}
		return amount, nil
	}

	debit := strings.TrimSpace(raw.Debit)
	credit := strings.TrimSpace(raw.Credit)
	if (debit == "") == (credit == "") {
		return decimal.Decimal{}, fmt.Errorf("%w: debit=%q credit=%q", ErrAmbiguousAmount, raw.Debit, raw.Credit)
	}

	if debit != "" {
		amount, err := decimal.NewFromString(debit)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("parsing debit %q: %w", raw.Debit, err)
		}
		return amount.Neg(), nil
	}

	amount, err := decimal.NewFromString(credit)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing credit %q: %w", raw.Credit, err)
	}
	return amount, nil
}

// collapseWhitespace trims and folds runs of whitespace into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
