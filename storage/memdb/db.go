// Package memdb is a core.Store kept in process memory.
// It backs the tests and the dev server when no data dir is wanted.
package memdb

import (
	"context"
	"sync"

	"github.com/tutorren/desk/core"
)

type (
	DB struct {
		mu      sync.RWMutex
		schemas core.Schemas
		tables  map[string][]core.Record
	}
)

var _ core.Store = (*DB)(nil) // interface compliance check

// Open creates an empty table per schema.
func Open(schemas ...core.Schema) *DB {
	db := &DB{
		schemas: core.NewSchemas(schemas...),
		tables:  make(map[string][]core.Record, len(schemas)),
	}
	for _, s := range schemas {
		db.tables[s.Name] = make([]core.Record, 0)
	}
	return db
}

func (db *DB) LoadAll(_ context.Context, table string) ([]core.Record, error) {
	s, err := db.schemas.Get(table)
	if err != nil {
		return nil, err
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	rows := db.tables[table]
	out := make([]core.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.Copy(row))
	}
	return out, nil
}

func (db *DB) Append(_ context.Context, table string, rec core.Record) error {
	s, err := db.schemas.Get(table)
	if err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if err = s.CheckAppend(db.tables[table], rec); err != nil {
		return err
	}
	db.tables[table] = append(db.tables[table], s.Copy(rec))
	return nil
}

func (db *DB) Update(_ context.Context, table, key string, rec core.Record) error {
	s, err := db.schemas.Get(table)
	if err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	rows, err := s.ApplyUpdate(db.tables[table], key, rec)
	if err != nil {
		return err
	}
	db.tables[table] = rows
	return nil
}

func (db *DB) Delete(_ context.Context, table, key string) error {
	s, err := db.schemas.Get(table)
	if err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	rows, err := s.ApplyDelete(db.tables[table], key)
	if err != nil {
		return err
	}
	db.tables[table] = rows
	return nil
}

func (db *DB) ReplaceAll(_ context.Context, table string, rows []core.Record) error {
	s, err := db.schemas.Get(table)
	if err != nil {
		return err
	}

	out := make([]core.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.Copy(row))
	}

	db.mu.Lock()
	db.tables[table] = out
	db.mu.Unlock()
	return nil
}

func (db *DB) Close() error { return nil }
