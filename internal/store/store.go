// Package store persists canonical transactions in a versioned snapshot
// file, keyed by content fingerprint. Inserting a fingerprint that is
// already present is a recorded no-op, so re-importing a statement (or an
// overlapping export of the same account) never duplicates records.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/midastouch-dev/midastouch/internal/model"
)

// ErrCorrupt reports an unreadable or internally inconsistent snapshot file.
var ErrCorrupt = errors.New("store file is corrupt")

// ErrUnsupportedVersion reports a snapshot written by an unknown format version.
var ErrUnsupportedVersion = errors.New("unsupported store version")

// Outcome is the result of an insert.
type Outcome int

const (
	// Inserted means the transaction was new and is now staged in memory.
	Inserted Outcome = iota
	// DuplicateSkipped means a transaction with the same fingerprint was
	// already present; the store is unchanged.
	DuplicateSkipped
)

// Store is an in-memory set of transactions backed by a snapshot file.
// Single process, single writer; callers serialize access.
type Store struct {
	path string // empty = in-memory only
	txns []model.Transaction
	byFP map[string]struct{}
}

// Open loads the snapshot at path into memory. A missing file yields an
// empty store; an unreadable one fails with ErrCorrupt or
// ErrUnsupportedVersion.
func Open(path string) (*Store, error) {
	s := &Store{path: path, byFP: make(map[string]struct{})}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	defer f.Close()

	txns, err := readSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("loading store %s: %w", path, err)
	}

	for _, txn := range txns {
		if _, dup := s.byFP[txn.Fingerprint]; dup {
			return nil, fmt.Errorf("%w: duplicate fingerprint %s in %s", ErrCorrupt, txn.Fingerprint, path)
		}
		s.byFP[txn.Fingerprint] = struct{}{}
		s.txns = append(s.txns, txn)
	}
	return s, nil
}

// NewInMemory creates a store with no backing file. Flush is a no-op.
func NewInMemory() *Store {
	return &Store{byFP: make(map[string]struct{})}
}

// Insert adds a transaction unless its fingerprint is already present.
// The snapshot is not written until Flush.
func (s *Store) Insert(txn model.Transaction) Outcome {
	if _, dup := s.byFP[txn.Fingerprint]; dup {
		return DuplicateSkipped
	}
	s.byFP[txn.Fingerprint] = struct{}{}
	s.txns = append(s.txns, txn)
	return Inserted
}

// Contains reports whether a fingerprint is already stored.
func (s *Store) Contains(fp string) bool {
	_, ok := s.byFP[fp]
	return ok
}

// Len returns the number of stored transactions.
func (s *Store) Len() int {
	return len(s.txns)
}

// All yields every transaction in insertion order. The sequence is
// restartable and reflects the store at call time.
func (s *Store) All() iter.Seq[model.Transaction] {
	txns := s.txns
	return func(yield func(model.Transaction) bool) {
		for _, txn := range txns {
			if !yield(txn) {
				return
			}
		}
	}
}

// ByAccount yields the transactions of one account in insertion order.
func (s *Store) ByAccount(accountID string) iter.Seq[model.Transaction] {
	txns := s.txns
	return func(yield func(model.Transaction) bool) {
		for _, txn := range txns {
			if txn.AccountID != accountID {
				continue
			}
			if !yield(txn) {
				return
			}
		}
	}
}

// Accounts returns the distinct account IDs in first-seen order.
func (s *Store) Accounts() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, txn := range s.txns {
		if _, ok := seen[txn.AccountID]; ok {
			continue
		}
		seen[txn.AccountID] = struct{}{}
		ids = append(ids, txn.AccountID)
	}
	return ids
}

// Flush writes the whole snapshot atomically: a temp file in the same
// directory, then a rename over the previous snapshot. A crash mid-flush
// leaves the previous snapshot intact.
func (s *Store) Flush() error {
	if s.path == "" {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating store dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writeSnapshot(tmp, s.txns); err != nil {
		tmp.Close()
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}
