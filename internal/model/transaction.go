package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies the account a statement was exported from.
type AccountType string

const (
	AccountTypeDebit  AccountType = "debit"
	AccountTypeCredit AccountType = "credit"
)

// ValidAccountType reports whether t is a known account type.
func ValidAccountType(t AccountType) bool {
	return t == AccountTypeDebit || t == AccountTypeCredit
}

// Transaction is the canonical, bank-agnostic record every dialect is
// normalized into. Once stored it is immutable.
type Transaction struct {
	Date        time.Time       // calendar date, UTC midnight
	Description string          // whitespace-collapsed bank description
	Amount      decimal.Decimal // negative = outflow, positive = inflow
	Balance     decimal.Decimal // post-transaction balance; zero if the export had none
	AccountID   string
	AccountType AccountType
	Fingerprint string // hex SHA-256 over (date, description, amount, account id)
}
