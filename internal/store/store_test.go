package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midastouch-dev/midastouch/internal/fingerprint"
	"github.com/midastouch-dev/midastouch/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func txn(day int, desc, amount, accountID string) model.Transaction {
	date := time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
	amt := dec(amount)
	return model.Transaction{
		Date:        date,
		Description: desc,
		Amount:      amt,
		AccountID:   accountID,
		AccountType: model.AccountTypeDebit,
		Fingerprint: fingerprint.Compute(date, desc, amt, accountID),
	}
}

func collect(s *Store) []model.Transaction {
	var out []model.Transaction
	for t := range s.All() {
		out = append(out, t)
	}
	return out
}

func TestInsert_NewAndDuplicate(t *testing.T) {
	s := NewInMemory()

	coffee := txn(1, "COFFEE SHOP", "-4.50", "chk-1")
	assert.Equal(t, Inserted, s.Insert(coffee))
	assert.Equal(t, DuplicateSkipped, s.Insert(coffee))
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains(coffee.Fingerprint))
}

func TestAll_InsertionOrder(t *testing.T) {
	s := NewInMemory()
	s.Insert(txn(2, "PAYROLL", "2000.00", "chk-1"))
	s.Insert(txn(1, "COFFEE SHOP", "-4.50", "chk-1"))

	got := collect(s)
	require.Len(t, got, 2)
	assert.Equal(t, "PAYROLL", got[0].Description)
	assert.Equal(t, "COFFEE SHOP", got[1].Description)
}

func TestAll_Restartable(t *testing.T) {
	s := NewInMemory()
	s.Insert(txn(1, "COFFEE SHOP", "-4.50", "chk-1"))
	s.Insert(txn(2, "PAYROLL", "2000.00", "chk-1"))

	seq := s.All()
	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	assert.Equal(t, first, second)
}

func TestByAccount(t *testing.T) {
	s := NewInMemory()
	s.Insert(txn(1, "COFFEE SHOP", "-4.50", "chk-1"))
	s.Insert(txn(1, "HOTEL", "-120.00", "visa-1"))
	s.Insert(txn(2, "PAYROLL", "2000.00", "chk-1"))

	var got []model.Transaction
	for txn := range s.ByAccount("chk-1") {
		got = append(got, txn)
	}
	require.Len(t, got, 2)
	assert.Equal(t, "COFFEE SHOP", got[0].Description)
	assert.Equal(t, "PAYROLL", got[1].Description)
}

func TestAccounts(t *testing.T) {
	s := NewInMemory()
	s.Insert(txn(1, "COFFEE SHOP", "-4.50", "chk-1"))
	s.Insert(txn(1, "HOTEL", "-120.00", "visa-1"))
	s.Insert(txn(2, "PAYROLL", "2000.00", "chk-1"))

	assert.Equal(t, []string{"chk-1", "visa-1"}, s.Accounts())
}

func TestFlushAndOpen_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")

	s, err := Open(path)
	require.NoError(t, err)

	coffee := txn(1, "COFFEE SHOP", "-4.50", "chk-1")
	coffee.Balance = dec("95.50")
	payroll := txn(2, "PAYROLL", "2000.00", "chk-1")

	s.Insert(coffee)
	s.Insert(payroll)
	require.NoError(t, s.Flush())

	got, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())

	txns := collect(got)
	assert.Equal(t, coffee.Fingerprint, txns[0].Fingerprint)
	assert.Equal(t, "COFFEE SHOP", txns[0].Description)
	assert.True(t, txns[0].Amount.Equal(dec("-4.50")))
	assert.True(t, txns[0].Balance.Equal(dec("95.50")))
	assert.Equal(t, model.AccountTypeDebit, txns[0].AccountType)
	assert.Equal(t, payroll.Fingerprint, txns[1].Fingerprint)
	assert.True(t, txns[1].Balance.IsZero())
}

func TestFlush_ReplacesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")

	s, err := Open(path)
	require.NoError(t, err)
	s.Insert(txn(1, "COFFEE SHOP", "-4.50", "chk-1"))
	require.NoError(t, s.Flush())

	s.Insert(txn(2, "PAYROLL", "2000.00", "chk-1"))
	require.NoError(t, s.Flush())

	got, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestOpen_MissingFileIsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "transactions.csv"))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestOpen_MissingMarkerIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte(Header+"\n"), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestOpen_UnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")
	content := "#midastouch store v2\n" + Header + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestOpen_BadRowIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")
	content := "#midastouch store v1\n" + Header + "\n" +
		"abc,NOTADATE,desc,-4.50,,chk-1,debit\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.Contains(t, err.Error(), "parsing date")
}

func TestOpen_DuplicateFingerprintIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")
	row := "abc,2024-01-01,COFFEE SHOP,-4.50,,chk-1,debit\n"
	content := "#midastouch store v1\n" + Header + "\n" + row + row
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestSnapshot_VersionMarkerFirstLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")
	s, err := Open(path)
	require.NoError(t, err)
	s.Insert(txn(1, "COFFEE SHOP", "-4.50", "chk-1"))
	require.NoError(t, s.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "#midastouch store v1", lines[0])
	assert.Equal(t, Header, lines[1])
}

func TestInMemory_FlushNoop(t *testing.T) {
	s := NewInMemory()
	s.Insert(txn(1, "COFFEE SHOP", "-4.50", "chk-1"))
	assert.NoError(t, s.Flush())
}
