package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midastouch-dev/midastouch/internal/dialect"
	"github.com/midastouch-dev/midastouch/internal/model"
)

func tdRaw(date, desc, debit, credit, balance string) dialect.RawRecord {
	return dialect.RawRecord{
		Date:        date,
		DateLayout:  "2006-01-02",
		Description: desc,
		Debit:       debit,
		Credit:      credit,
		Split:       true,
		Balance:     balance,
	}
}

func chaseRaw(date, desc, amount string) dialect.RawRecord {
	return dialect.RawRecord{
		Date:        date,
		DateLayout:  "01/02/2006",
		Description: desc,
		Amount:      amount,
	}
}

func TestNormalize_SplitDebitIsNegative(t *testing.T) {
	txn, err := Normalize(tdRaw("2024-01-01", "COFFEE SHOP", "4.50", "", "95.50"), "chk-1", model.AccountTypeDebit)
	require.NoError(t, err)

	assert.True(t, txn.Amount.IsNegative())
	assert.Equal(t, "-4.50", txn.Amount.StringFixed(2))
	assert.Equal(t, "95.50", txn.Balance.StringFixed(2))
}

func TestNormalize_SplitCreditIsPositive(t *testing.T) {
	txn, err := Normalize(tdRaw("2024-01-02", "PAYROLL", "", "2000.00", "2095.50"), "chk-1", model.AccountTypeDebit)
	require.NoError(t, err)

	assert.True(t, txn.Amount.IsPositive())
	assert.Equal(t, "2000.00", txn.Amount.StringFixed(2))
}

func TestNormalize_BothColumnsAmbiguous(t *testing.T) {
	_, err := Normalize(tdRaw("2024-01-01", "X", "1.00", "2.00", ""), "chk-1", model.AccountTypeDebit)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmbiguousAmount)
}

func TestNormalize_NeitherColumnAmbiguous(t *testing.T) {
	_, err := Normalize(tdRaw("2024-01-01", "X", "", "", ""), "chk-1", model.AccountTypeDebit)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmbiguousAmount)
}

func TestNormalize_SingleSignedAmount(t *testing.T) {
	txn, err := Normalize(chaseRaw("01/03/2025", "GITHUB *PRO SUBSCRIPTION", "-4.00"), "chk-2", model.AccountTypeDebit)
	require.NoError(t, err)

	assert.Equal(t, "-4.00", txn.Amount.StringFixed(2))
	assert.Equal(t, 2025, txn.Date.Year())
	assert.Equal(t, 1, int(txn.Date.Month()))
	assert.Equal(t, 3, txn.Date.Day())
	assert.True(t, txn.Balance.IsZero())
}

func TestNormalize_InvalidDate(t *testing.T) {
	_, err := Normalize(tdRaw("NOTADATE", "X", "1.00", "", ""), "chk-1", model.AccountTypeDebit)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestNormalize_BadAmount(t *testing.T) {
	_, err := Normalize(chaseRaw("01/03/2025", "X", "NOTANUMBER"), "chk-1", model.AccountTypeDebit)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestNormalize_BadBalance(t *testing.T) {
	_, err := Normalize(tdRaw("2024-01-01", "X", "1.00", "", "junk"), "chk-1", model.AccountTypeDebit)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing balance")
}

func TestNormalize_WhitespaceCollapsed(t *testing.T) {
	txn, err := Normalize(tdRaw("2024-01-01", "  COFFEE   SHOP\t#42 ", "4.50", "", ""), "chk-1", model.AccountTypeDebit)
	require.NoError(t, err)
	assert.Equal(t, "COFFEE SHOP #42", txn.Description)
}

func TestNormalize_Deterministic(t *testing.T) {
	raw := tdRaw("2024-01-01", "COFFEE SHOP", "4.50", "", "95.50")

	a, err := Normalize(raw, "chk-1", model.AccountTypeDebit)
	require.NoError(t, err)
	b, err := Normalize(raw, "chk-1", model.AccountTypeDebit)
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint, b.Fingerprint)
	assert.NotEmpty(t, a.Fingerprint)
}

func TestNormalize_FingerprintIgnoresBalance(t *testing.T) {
	a, err := Normalize(tdRaw("2024-01-01", "COFFEE SHOP", "4.50", "", "95.50"), "chk-1", model.AccountTypeDebit)
	require.NoError(t, err)
	b, err := Normalize(tdRaw("2024-01-01", "COFFEE SHOP", "4.50", "", "10.00"), "chk-1", model.AccountTypeDebit)
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint, b.Fingerprint)
}

func TestNormalize_DateIsUTCMidnight(t *testing.T) {
	txn, err := Normalize(tdRaw("2024-03-15", "X", "1.00", "", ""), "chk-1", model.AccountTypeDebit)
	require.NoError(t, err)

	assert.Equal(t, 0, txn.Date.Hour())
	assert.Equal(t, "UTC", txn.Date.Location().String())
}
