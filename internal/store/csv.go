package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/midastouch-dev/midastouch/internal/model"
)

// versionMarker is the first line of every snapshot file. The trailing
// integer is the format version; unknown versions fail explicitly instead
// of misparsing.
const versionMarker = "#midastouch store v"

// formatVersion is the snapshot format this build reads and writes.
const formatVersion = 1

// Header is the CSV header of the snapshot file.
const Header = "fingerprint,date,description,amount,balance,account_id,account_type"

const (
	numFields   = 7
	dateLayout  = "2006-01-02"
	colFP       = 0
	colDate     = 1
	colDesc     = 2
	colAmount   = 3
	colBalance  = 4
	colAcctID   = 5
	colAcctType = 6
)

// readSnapshot decodes a whole snapshot: version line, header, rows.
func readSnapshot(r io.Reader) ([]model.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	line, rest, found := strings.Cut(string(data), "\n")
	if !found || !strings.HasPrefix(line, versionMarker) {
		return nil, fmt.Errorf("%w: missing version marker", ErrCorrupt)
	}
	version, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, versionMarker)))
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable version marker %q", ErrCorrupt, line)
	}
	if version != formatVersion {
		return nil, fmt.Errorf("%w: v%d (this build reads v%d)", ErrUnsupportedVersion, version, formatVersion)
	}

	cr := csv.NewReader(strings.NewReader(rest))
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrCorrupt)
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := unmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrCorrupt, i+3, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// writeSnapshot encodes the whole snapshot in insertion order.
func writeSnapshot(w io.Writer, txns []model.Transaction) error {
	if _, err := fmt.Fprintf(w, "%s%d\n", versionMarker, formatVersion); err != nil {
		return fmt.Errorf("writing version marker: %w", err)
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, txn := range txns {
		if err := cw.Write(marshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+3, err)
		}
	}
	return cw.Error()
}

// marshalTransaction converts a Transaction to a CSV row.
func marshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colFP] = txn.Fingerprint
	row[colDate] = txn.Date.Format(dateLayout)
	row[colDesc] = txn.Description
	row[colAmount] = txn.Amount.StringFixed(2)
	if !txn.Balance.IsZero() {
		row[colBalance] = txn.Balance.StringFixed(2)
	}
	row[colAcctID] = txn.AccountID
	row[colAcctType] = string(txn.AccountType)
	return row
}

// unmarshalTransaction converts a CSV row to a Transaction.
func unmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateLayout, record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	var balance decimal.Decimal
	if record[colBalance] != "" {
		balance, err = decimal.NewFromString(record[colBalance])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing balance %q: %w", record[colBalance], err)
		}
	}

	acctType := model.AccountType(record[colAcctType])
	if !model.ValidAccountType(acctType) {
		return model.Transaction{}, fmt.Errorf("unknown account type %q", record[colAcctType])
	}

	if record[colFP] == "" {
		return model.Transaction{}, fmt.Errorf("missing fingerprint")
	}

	return model.Transaction{
		Date:        date,
		Description: record[colDesc],
		Amount:      amount,
		Balance:     balance,
		AccountID:   record[colAcctID],
		AccountType: acctType,
		Fingerprint: record[colFP],
	}, nil
}
