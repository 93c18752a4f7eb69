package core

import (
	"context"

	"github.com/pkg/errors"
)

var ErrUnknownTable = errors.New("unknown table")

type (
	// Record is one flat table row keyed by column name.
	Record map[string]string

	// Schema declares a table: its columns, in persisted order, and its unique key column.
	Schema struct {
		Name    string
		Columns []string
		Key     string
	}

	// Store is the persistence boundary: flat per-entity tables.
	// Every implementation must honour the same failure modes:
	// *DuplicateKeyError, *NotFoundError and *IOFault.
	Store interface {
		// LoadAll returns every row of `table` in table order.
		LoadAll(ctx context.Context, table string) ([]Record, error)
		// Append adds `rec` at the end of `table` unless its key already exists.
		Append(ctx context.Context, table string, rec Record) error
		// Update replaces the row whose key is `key` with `rec`, in place.
		Update(ctx context.Context, table, key string, rec Record) error
		// Delete removes the row whose key is `key`.
		Delete(ctx context.Context, table, key string) error
		// ReplaceAll overwrites `table` with `rows`.
		ReplaceAll(ctx context.Context, table string, rows []Record) error
		Close() error
	}
)

// Copy returns a copy of `rec` holding exactly the schema columns.
func (s Schema) Copy(rec Record) Record {
	out := make(Record, len(s.Columns))
	for _, col := range s.Columns {
		out[col] = rec[col]
	}
	return out
}

// Values returns `rec` values in column order.
func (s Schema) Values(rec Record) []string {
	vals := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		vals[i] = rec[col]
	}
	return vals
}

// FromValues builds a Record from values in column order.
func (s Schema) FromValues(vals []string) Record {
	rec := make(Record, len(s.Columns))
	for i, col := range s.Columns {
		if i < len(vals) {
			rec[col] = vals[i]
		} else {
			rec[col] = ""
		}
	}
	return rec
}

func (s Schema) indexOf(rows []Record, key string) int {
	for i, row := range rows {
		if row[s.Key] == key {
			return i
		}
	}
	return -1
}

// CheckAppend fails with a *DuplicateKeyError if `rec`'s key is already in `rows`.
func (s Schema) CheckAppend(rows []Record, rec Record) error {
	if s.indexOf(rows, rec[s.Key]) >= 0 {
		return &DuplicateKeyError{Table: s.Name, Field: s.Key, Value: rec[s.Key]}
	}
	return nil
}

// ApplyUpdate returns `rows` with the row keyed `key` replaced by `rec`, in place.
// `rows` itself is left untouched.
func (s Schema) ApplyUpdate(rows []Record, key string, rec Record) ([]Record, error) {
	idx := s.indexOf(rows, key)
	if idx < 0 {
		return nil, &NotFoundError{Table: s.Name, Key: key}
	}
	if newKey := rec[s.Key]; newKey != key {
		if other := s.indexOf(rows, newKey); other >= 0 && other != idx {
			return nil, &DuplicateKeyError{Table: s.Name, Field: s.Key, Value: newKey}
		}
	}
	out := make([]Record, len(rows))
	copy(out, rows)
	out[idx] = s.Copy(rec)
	return out, nil
}

// ApplyDelete returns `rows` without the row keyed `key`, preserving order.
func (s Schema) ApplyDelete(rows []Record, key string) ([]Record, error) {
	idx := s.indexOf(rows, key)
	if idx < 0 {
		return nil, &NotFoundError{Table: s.Name, Key: key}
	}
	out := make([]Record, 0, len(rows)-1)
	out = append(out, rows[:idx]...)
	return append(out, rows[idx+1:]...), nil
}

// Schemas indexes schemas by table name.
type Schemas map[string]Schema

func NewSchemas(schemas ...Schema) Schemas {
	m := make(Schemas, len(schemas))
	for _, s := range schemas {
		m[s.Name] = s
	}
	return m
}

// Get returns the schema of `table` or an *IOFault if the table is unknown.
func (m Schemas) Get(table string) (Schema, error) {
	s, ok := m[table]
	if !ok {
		return Schema{}, &IOFault{Op: "opening table " + table, Err: ErrUnknownTable}
	}
	return s, nil
}
