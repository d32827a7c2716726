// Package importer drives the ingestion pipeline: CSV rows through a bank
// dialect, the normalizer, and the deduplicating store, with per-row
// failure accounting.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/midastouch-dev/midastouch/internal/dialect"
	"github.com/midastouch-dev/midastouch/internal/model"
	"github.com/midastouch-dev/midastouch/internal/normalize"
	"github.com/midastouch-dev/midastouch/internal/store"
)

// Params describes one import run.
type Params struct {
	Dialect     string
	AccountID   string
	AccountType model.AccountType
	// Strict aborts the whole file on any row failure: nothing is inserted
	// and nothing is flushed.
	Strict bool
}

// RowError records one failed row by its 1-based row number in the file.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// Summary itemizes an import run. Every data row lands in exactly one of
// Inserted, Duplicates, or Failed.
type Summary struct {
	RunID      string
	Inserted   int
	Duplicates int
	Failed     []RowError
}

// Importer runs imports against one store.
type Importer struct {
	registry *dialect.Registry
	store    *store.Store
	log      zerolog.Logger
}

// New creates an Importer.
func New(registry *dialect.Registry, st *store.Store, log zerolog.Logger) *Importer {
	return &Importer{registry: registry, store: st, log: log}
}

// RunFile imports the CSV file at path.
func (imp *Importer) RunFile(path string, params Params) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()
	return imp.Run(f, params)
}

// Run imports one CSV export. Row failures are recoverable: they are
// recorded in the summary and the import continues, unless Strict is set,
// in which case any failure aborts the run with no writes. The store is
// flushed once, after all inserts.
func (imp *Importer) Run(r io.Reader, params Params) (Summary, error) {
	d := imp.registry.Get(params.Dialect)
	if d == nil {
		return Summary{}, fmt.Errorf("unknown dialect %q", params.Dialect)
	}
	if !model.ValidAccountType(params.AccountType) {
		return Summary{}, fmt.Errorf("unknown account type %q", params.AccountType)
	}

	summary := Summary{RunID: uuid.NewString()}
	log := imp.log.With().
		Str("run_id", summary.RunID).
		Str("dialect", d.Name()).
		Str("account", params.AccountID).
		Logger()

	staged, failed, err := imp.parseRows(r, d, params)
	if err != nil {
		return Summary{}, err
	}
	summary.Failed = failed
	for _, re := range failed {
		log.Warn().Int("row", re.Row).Err(re.Err).Msg("row failed")
	}

	if params.Strict && len(failed) > 0 {
		log.Info().Int("failed", len(failed)).Msg("strict import aborted, nothing written")
		return summary, nil
	}

	// Statements exported newest-first are replayed oldest-first so that
	// insertion order tracks transaction order.
	if !datesNonDecreasing(staged) {
		reverse(staged)
	}

	for _, txn := range staged {
		switch imp.store.Insert(txn) {
		case store.Inserted:
			summary.Inserted++
		case store.DuplicateSkipped:
			summary.Duplicates++
		}
	}

	if summary.Inserted > 0 {
		if err := imp.store.Flush(); err != nil {
			return Summary{}, fmt.Errorf("flushing store: %w", err)
		}
	}

	log.Info().
		Int("inserted", summary.Inserted).
		Int("duplicates", summary.Duplicates).
		Int("failed", len(summary.Failed)).
		Msg("import finished")
	return summary, nil
}

// parseRows reads every data row, returning normalized transactions in row
// order plus the per-row failures.
func (imp *Importer) parseRows(r io.Reader, d dialect.Dialect, params Params) ([]model.Transaction, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // shape is checked per row by the dialect

	var staged []model.Transaction
	var failed []RowError

	row := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				failed = append(failed, RowError{Row: row, Err: err})
				continue
			}
			return nil, nil, fmt.Errorf("reading CSV: %w", err)
		}
		if row == 1 && d.HasHeader() {
			continue
		}

		raw, err := d.ParseRow(rec)
		if err != nil {
			failed = append(failed, RowError{Row: row, Err: err})
			continue
		}
		txn, err := normalize.Normalize(raw, params.AccountID, params.AccountType)
		if err != nil {
			failed = append(failed, RowError{Row: row, Err: err})
			continue
		}
		staged = append(staged, txn)
	}
	return staged, failed, nil
}

func datesNonDecreasing(txns []model.Transaction) bool {
	for i := 1; i < len(txns); i++ {
		if txns[i].Date.Before(txns[i-1].Date) {
			return false
		}
	}
	return true
}

func reverse(txns []model.Transaction) {
	for i, j := 0, len(txns)-1; i < j; i, j = i+1, j-1 {
		txns[i], txns[j] = txns[j], txns[i]
	}
}
