// Package sqldb stores the tables in postgres or sqlite. Table order is
// kept by the auto-incremented row_pos column.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/tutorren/desk/core"
	appfs "github.com/tutorren/desk/fs"
)

var _ core.Store = (*DB)(nil) // interface compliance check

type DB struct {
	db      *sqlx.DB
	engine  string
	schemas core.Schemas
}

// dataSource returns the driver name and DSN of `conf`.
func dataSource(conf core.StorageConfig) (string, string, error) {
	switch conf.Engine {
	case core.EnginePostgres:
		sslMode := "require"
		if conf.DisableTLS {
			sslMode = "disable"
		}
		q := make(url.Values)
		q.Set("sslmode", sslMode)
		q.Set("timezone", "utc")

		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(conf.User, conf.Password),
			Host:     conf.Address(),
			Path:     conf.Name,
			RawQuery: q.Encode(),
		}
		return "postgres", u.String(), nil
	case core.EngineSQLite:
		if err := os.MkdirAll(conf.DataDir, 0o755); err != nil {
			return "", "", errors.Wrap(err, "creating data dir")
		}
		return "sqlite", filepath.Join(conf.DataDir, conf.Name+".db"), nil
	default:
		return "", "", errors.Errorf("%q is not an sql engine", conf.Engine)
	}
}

// Open connects to the database of `conf` and waits for it to be ready.
func Open(ctx context.Context, conf core.StorageConfig, schemas ...core.Schema) (*DB, error) {
	driver, dsn, err := dataSource(conf)
	if err != nil {
		return nil, core.NewIOFault("opening database", err)
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, core.NewIOFault("opening database", err)
	}
	if conf.Engine == core.EngineSQLite {
		db.SetMaxOpenConns(1) // single writer
	}
	if err = ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, core.NewIOFault("opening database", err)
	}
	return &DB{db: db, engine: conf.Engine, schemas: core.NewSchemas(schemas...)}, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(ctx context.Context, db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}
	return errors.Wrap(err, "DB ping timeout")
}

func (db *DB) dialect() string {
	if db.engine == core.EngineSQLite {
		return "sqlite3"
	}
	return "postgres"
}

func (db *DB) migrationsDir() string {
	return "migrations/" + db.engine
}

// Migrate creates the missing tables.
func (db *DB) Migrate(ctx context.Context) error {
	return db.RunMigration(ctx, "up")
}

// RunMigration runs the goose `command` against the embedded migrations.
func (db *DB) RunMigration(ctx context.Context, command string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	goose.SetBaseFS(appfs.FS)
	if err := goose.SetDialect(db.dialect()); err != nil {
		return errors.Wrap(err, "setting migration dialect")
	}
	if err := goose.Run(command, db.db.DB, db.migrationsDir(), args...); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

// SQL returns the underlying connection pool.
func (db *DB) SQL() *sql.DB { return db.db.DB }

func (db *DB) Close() error { return db.db.Close() }

func selectQuery(s core.Schema) string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY row_pos", strings.Join(s.Columns, ", "), s.Name)
}

func insertQuery(s core.Schema) string {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(s.Columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", s.Name, strings.Join(s.Columns, ", "), marks)
}

func updateQuery(s core.Schema) string {
	sets := make([]string, 0, len(s.Columns))
	for _, col := range s.Columns {
		sets = append(sets, col+" = ?")
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", s.Name, strings.Join(sets, ", "), s.Key)
}

func args(s core.Schema, rec core.Record) []interface{} {
	vals := s.Values(rec)
	out := make([]interface{}, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

func (db *DB) load(ctx context.Context, tx *sqlx.Tx, s core.Schema) ([]core.Record, error) {
	rows, err := tx.QueryxContext(ctx, selectQuery(s))
	if err != nil {
		return nil, core.NewIOFault("reading table "+s.Name, err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]core.Record, 0)
	for rows.Next() {
		vals := make([]string, len(s.Columns))
		ptrs := make([]interface{}, len(vals))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err = rows.Scan(ptrs...); err != nil {
			return nil, core.NewIOFault("reading table "+s.Name, err)
		}
		out = append(out, s.FromValues(vals))
	}
	if err = rows.Err(); err != nil {
		return nil, core.NewIOFault("reading table "+s.Name, err)
	}
	return out, nil
}

// inTx runs `fn` in a transaction over the rows of `table`, committing on success.
func (db *DB) inTx(ctx context.Context, table string, fn func(tx *sqlx.Tx, s core.Schema, rows []core.Record) error) error {
	s, err := db.schemas.Get(table)
	if err != nil {
		return err
	}
	tx, err := db.db.BeginTxx(ctx, nil)
	if err != nil {
		return core.NewIOFault("opening table "+table, err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := db.load(ctx, tx, s)
	if err != nil {
		return err
	}
	if err = fn(tx, s, rows); err != nil {
		return err
	}
	return core.NewIOFault("writing table "+table, tx.Commit())
}

func (db *DB) LoadAll(ctx context.Context, table string) ([]core.Record, error) {
	var out []core.Record
	err := db.inTx(ctx, table, func(_ *sqlx.Tx, _ core.Schema, rows []core.Record) error {
		out = rows
		return nil
	})
	return out, err
}

func (db *DB) Append(ctx context.Context, table string, rec core.Record) error {
	return db.inTx(ctx, table, func(tx *sqlx.Tx, s core.Schema, rows []core.Record) error {
		if err := s.CheckAppend(rows, rec); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, tx.Rebind(insertQuery(s)), args(s, rec)...)
		return core.NewIOFault("appending to table "+s.Name, err)
	})
}

func (db *DB) Update(ctx context.Context, table, key string, rec core.Record) error {
	return db.inTx(ctx, table, func(tx *sqlx.Tx, s core.Schema, rows []core.Record) error {
		if _, err := s.ApplyUpdate(rows, key, rec); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, tx.Rebind(updateQuery(s)), append(args(s, rec), key)...)
		return core.NewIOFault("writing table "+s.Name, err)
	})
}

func (db *DB) Delete(ctx context.Context, table, key string) error {
	return db.inTx(ctx, table, func(tx *sqlx.Tx, s core.Schema, rows []core.Record) error {
		if _, err := s.ApplyDelete(rows, key); err != nil {
			return err
		}
		q := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", s.Name, s.Key)
		_, err := tx.ExecContext(ctx, tx.Rebind(q), key)
		return core.NewIOFault("writing table "+s.Name, err)
	})
}

func (db *DB) ReplaceAll(ctx context.Context, table string, rows []core.Record) error {
	return db.inTx(ctx, table, func(tx *sqlx.Tx, s core.Schema, _ []core.Record) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+s.Name); err != nil {
			return core.NewIOFault("writing table "+s.Name, err)
		}
		q := tx.Rebind(insertQuery(s))
		for _, row := range rows {
			if _, err := tx.ExecContext(ctx, q, args(s, row)...); err != nil {
				return core.NewIOFault("writing table "+s.Name, err)
			}
		}
		return nil
	})
}
