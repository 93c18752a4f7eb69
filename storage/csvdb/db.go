// Package csvdb stores each table as "<dir>/<table>.csv": a header row
// followed by one line per record, in table order.
package csvdb

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/tutorren/desk/core"
)

type DB struct {
	mu      sync.Mutex
	dir     string
	schemas core.Schemas
}

var _ core.Store = (*DB)(nil) // interface compliance check

// Open uses `dir` as the data directory, creating it and a header-only
// file for every missing table.
func Open(dir string, schemas ...core.Schema) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, core.NewIOFault("creating data dir", err)
	}
	db := &DB{dir: dir, schemas: core.NewSchemas(schemas...)}
	for _, s := range schemas {
		_, err := os.Stat(db.path(s.Name))
		switch {
		case err == nil:
			continue
		case !os.IsNotExist(err):
			return nil, core.NewIOFault("opening table "+s.Name, err)
		}
		if err = db.write(s, nil); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func (db *DB) path(table string) string {
	return filepath.Join(db.dir, table+".csv")
}

// read loads every row of `s`. Columns are matched by header name, so a
// file whose columns were reordered by hand still loads.
func (db *DB) read(s core.Schema) ([]core.Record, error) {
	f, err := os.Open(db.path(s.Name))
	if err != nil {
		return nil, core.NewIOFault("reading table "+s.Name, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return make([]core.Record, 0), nil
	}
	if err != nil {
		return nil, core.NewIOFault("reading table "+s.Name, err)
	}

	rows := make([]core.Record, 0)
	for {
		line, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, core.NewIOFault("reading table "+s.Name, err)
		}
		rec := make(core.Record, len(s.Columns))
		for i, col := range header {
			if i < len(line) {
				rec[col] = line[i]
			}
		}
		rows = append(rows, s.Copy(rec))
	}
	return rows, nil
}

// write atomically replaces the file of `s` with a header and `rows`.
func (db *DB) write(s core.Schema, rows []core.Record) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(s.Columns); err != nil {
		return core.NewIOFault("writing table "+s.Name, err)
	}
	for _, row := range rows {
		if err := w.Write(s.Values(row)); err != nil {
			return core.NewIOFault("writing table "+s.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return core.NewIOFault("writing table "+s.Name, err)
	}
	return core.NewIOFault("writing table "+s.Name, atomic.WriteFile(db.path(s.Name), &buf))
}

func (db *DB) LoadAll(_ context.Context, table string) ([]core.Record, error) {
	s, err := db.schemas.Get(table)
	if err != nil {
		return nil, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	return db.read(s)
}

// Append writes a single line at the end of the table file.
func (db *DB) Append(_ context.Context, table string, rec core.Record) error {
	s, err := db.schemas.Get(table)
	if err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	rows, err := db.read(s)
	if err != nil {
		return err
	}
	if err = s.CheckAppend(rows, rec); err != nil {
		return err
	}

	f, err := os.OpenFile(db.path(s.Name), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return core.NewIOFault("appending to table "+s.Name, err)
	}
	w := csv.NewWriter(f)
	if err = w.Write(s.Values(rec)); err == nil {
		w.Flush()
		err = w.Error()
	}
	if cErr := f.Close(); err == nil {
		err = cErr
	}
	return core.NewIOFault("appending to table "+s.Name, err)
}

func (db *DB) Update(_ context.Context, table, key string, rec core.Record) error {
	s, err := db.schemas.Get(table)
	if err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	rows, err := db.read(s)
	if err != nil {
		return err
	}
	if rows, err = s.ApplyUpdate(rows, key, rec); err != nil {
		return err
	}
	return db.write(s, rows)
}

func (db *DB) Delete(_ context.Context, table, key string) error {
	s, err := db.schemas.Get(table)
	if err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	rows, err := db.read(s)
	if err != nil {
		return err
	}
	if rows, err = s.ApplyDelete(rows, key); err != nil {
		return err
	}
	return db.write(s, rows)
}

func (db *DB) ReplaceAll(_ context.Context, table string, rows []core.Record) error {
	s, err := db.schemas.Get(table)
	if err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	return db.write(s, rows)
}

func (db *DB) Close() error { return nil }

// Dir returns the data directory.
func (db *DB) Dir() string { return db.dir }
