// Package dialect holds one adapter per supported bank export format.
// Adapters are purely syntactic: they map a raw CSV row onto named raw
// string fields and never parse dates, resolve signs, or deduplicate.
package dialect

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRowShape reports a row that does not match the dialect's column layout.
var ErrRowShape = errors.New("row does not match dialect shape")

// RawRecord is the intermediate record an adapter extracts from one row.
// All fields are unparsed strings straight from the export.
type RawRecord struct {
	Date        string
	DateLayout  string // time layout the dialect's dates use
	Description string

	// Amount conventions are mutually exclusive: dialects with a single
	// signed amount column populate Amount and leave Split false; dialects
	// with separate outflow/inflow columns set Split and populate Debit
	// and/or Credit.
	Amount string
	Debit  string
	Credit string
	Split  bool

	Balance string // post-transaction balance, if the export carries one
	Flags   string // bank-specific type flag, if any
}

// Dialect converts raw rows of one bank's CSV export into RawRecords.
// Implementations must be stateless; adding a bank means adding a new
// implementation, never changing an existing one.
type Dialect interface {
	// Name is the registry key, lowercase.
	Name() string
	// Fields is the expected column count per row.
	Fields() int
	// HasHeader reports whether the first row of an export is a header.
	HasHeader() bool
	// ParseRow extracts a RawRecord from one row, or fails with ErrRowShape.
	ParseRow(rec []string) (RawRecord, error)
}

// Registry holds named dialects.
type Registry struct {
	dialects map[string]Dialect
}

// NewRegistry creates an empty dialect registry.
func NewRegistry() *Registry {
	return &Registry{dialects: make(map[string]Dialect)}
}

// Register adds a dialect. Panics on duplicate name.
func (r *Registry) Register(d Dialect) {
	key := strings.ToLower(d.Name())
	if _, ok := r.dialects[key]; ok {
		panic("duplicate dialect name: " + key)
	}
	r.dialects[key] = d
}

// Get returns the dialect for name, or nil.
func (r *Registry) Get(name string) Dialect {
	return r.dialects[strings.ToLower(name)]
}

// Names returns the registered dialect names, unsorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.dialects))
	for name := range r.dialects {
		names = append(names, name)
	}
	return names
}

// DefaultRegistry returns a registry with all built-in dialects.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&TDDialect{})
	r.Register(&ChaseDialect{})
	return r
}

func shapeErr(want, got int) error {
	return fmt.Errorf("%w: expected %d fields, got %d", ErrRowShape, want, got)
}
