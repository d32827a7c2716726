package dialect

// TDDialect parses TD bank CSV exports. The files have no header row and
// split outflow and inflow into separate columns: withdrawal/deposit for
// checking exports, charge/payment for credit card exports (same layout).
type TDDialect struct{}

const (
	tdDateLayout = "2006-01-02"
	tdNumFields  = 5
	tdColDate    = 0
	tdColDesc    = 1
	tdColDebit   = 2
	tdColCredit  = 3
	tdColBalance = 4
)

// Name returns the dialect name.
func (d *TDDialect) Name() string { return "td" }

// Fields returns the expected column count.
func (d *TDDialect) Fields() int { return tdNumFields }

// HasHeader reports that TD exports carry no header row.
func (d *TDDialect) HasHeader() bool { return false }

// ParseRow extracts a RawRecord from one TD row.
func (d *TDDialect) ParseRow(rec []string) (RawRecord, error) {
	if len(rec) != tdNumFields {
		return RawRecord{}, shapeErr(tdNumFields, len(rec))
	}

	return RawRecord{
		Date:        rec[tdColDate],
		DateLayout:  tdDateLayout,
		Description: rec[tdColDesc],
		Debit:       rec[tdColDebit],
		Credit:      rec[tdColCredit],
		Split:       true,
		Balance:     rec[tdColBalance],
	}, nil
}
