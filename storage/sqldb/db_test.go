package sqldb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorren/desk/core"
	"github.com/tutorren/desk/storage"
	"github.com/tutorren/desk/storage/sqldb"
	"github.com/tutorren/desk/tests"
)

func openSQLite(t *testing.T, dir string) *sqldb.DB {
	ctx := context.Background()
	db, err := sqldb.Open(ctx, core.StorageConfig{Engine: core.EngineSQLite, DataDir: dir, Name: "test"}, storage.Schemas...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(ctx))
	return db
}

func TestStore(t *testing.T) {
	testutil.RunStoreSuite(t, func(t *testing.T) core.Store {
		return openSQLite(t, t.TempDir())
	})
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openSQLite(t, t.TempDir())
	assert.NoError(t, db.Migrate(context.Background()))
}

func TestReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	rec := core.Record{"id": "C-001", "title": "Chemistry", "tutor_id": "T-001", "student_id": "S-001", "schedule": "Thu 16:00"}
	db := openSQLite(t, dir)
	require.NoError(t, db.Append(ctx, "classes", rec))
	require.NoError(t, db.Close())

	rows, err := openSQLite(t, dir).LoadAll(ctx, "classes")
	require.NoError(t, err)
	assert.Equal(t, []core.Record{rec}, rows)
}

func TestOpenRejectsFileEngine(t *testing.T) {
	_, err := sqldb.Open(context.Background(), core.StorageConfig{Engine: core.EngineCSV})
	assert.True(t, core.IsIOFault(err))
}
