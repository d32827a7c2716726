package dialect

// ChaseDialect parses Chase checking CSV exports. The files carry a header
// row and a single signed amount column (negative = outflow) plus a bank
// transaction type flag (ACH_DEBIT, etc.).
type ChaseDialect struct{}

const (
	chaseDateLayout = "01/02/2006"
	chaseNumFields  = 7
	chaseColDate    = 1
	chaseColDesc    = 2
	chaseColAmount  = 3
	chaseColType    = 4
	chaseColBalance = 5
)

// Name returns the dialect name.
func (d *ChaseDialect) Name() string { return "chase" }

// Fields returns the expected column count.
func (d *ChaseDialect) Fields() int { return chaseNumFields }

// HasHeader reports that Chase exports start with a header row.
func (d *ChaseDialect) HasHeader() bool { return true }

// ParseRow extracts a RawRecord from one Chase row.
func (d *ChaseDialect) ParseRow(rec []string) (RawRecord, error) {
	if len(rec) != chaseNumFields {
		return RawRecord{}, shapeErr(chaseNumFields, len(rec))
	}

	return RawRecord{
		Date:        rec[chaseColDate],
		DateLayout:  chaseDateLayout,
		Description: rec[chaseColDesc],
		Amount:      rec[chaseColAmount],
		Balance:     rec[chaseColBalance],
		Flags:       rec[chaseColType],
	}, nil
}
