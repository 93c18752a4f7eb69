package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorren/desk/core"
)

func tutorRec(id, name string) core.Record {
	return core.Record{"id": id, "name": name, "email": name + "@test.cd", "subjects": "Maths;Physics"}
}

func ids(rows []core.Record) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r["id"])
	}
	return out
}

// RunStoreSuite checks the core.Store contract against the store returned by `open`.
// `open` must return a store holding every table, empty.
func RunStoreSuite(t *testing.T, open func(t *testing.T) core.Store) {
	ctx := context.Background()

	t.Run("empty tables", func(t *testing.T) {
		store := open(t)
		for _, table := range []string{"users", "tutors", "students", "classes"} {
			rows, err := store.LoadAll(ctx, table)
			require.NoError(t, err, table)
			assert.Empty(t, rows, table)
		}
	})

	t.Run("unknown table", func(t *testing.T) {
		store := open(t)
		_, err := store.LoadAll(ctx, "lessons")
		assert.True(t, core.IsIOFault(err), "LoadAll() error = %v", err)
		assert.True(t, core.IsIOFault(store.Append(ctx, "lessons", core.Record{"id": "L-001"})))
	})

	t.Run("append keeps order and round-trips", func(t *testing.T) {
		store := open(t)
		recs := []core.Record{
			tutorRec("T-002", "bob"),
			tutorRec("T-001", "ann"),
			{"id": "T-003", "name": `Cid "the kid", jr`, "email": "", "subjects": "Art\nDance"},
		}
		for _, rec := range recs {
			require.NoError(t, store.Append(ctx, "tutors", rec))
		}
		rows, err := store.LoadAll(ctx, "tutors")
		require.NoError(t, err)
		assert.Equal(t, recs, rows)
	})

	t.Run("duplicate key append leaves the table unchanged", func(t *testing.T) {
		store := open(t)
		require.NoError(t, store.Append(ctx, "users", core.Record{"username": "admin", "password": "pwd", "role": "Manager"}))

		err := store.Append(ctx, "users", core.Record{"username": "admin", "password": "other", "role": "Tutor"})
		assert.True(t, core.IsDuplicateKey(err), "Append() error = %v", err)

		rows, err := store.LoadAll(ctx, "users")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "pwd", rows[0]["password"])
	})

	t.Run("update in place", func(t *testing.T) {
		store := open(t)
		for _, rec := range []core.Record{tutorRec("T-001", "ann"), tutorRec("T-002", "bob"), tutorRec("T-003", "cid")} {
			require.NoError(t, store.Append(ctx, "tutors", rec))
		}

		upd := tutorRec("T-002", "robert")
		require.NoError(t, store.Update(ctx, "tutors", "T-002", upd))
		rows, err := store.LoadAll(ctx, "tutors")
		require.NoError(t, err)
		assert.Equal(t, []string{"T-001", "T-002", "T-003"}, ids(rows))
		assert.Equal(t, "robert", rows[1]["name"])

		assert.True(t, core.IsNotFound(store.Update(ctx, "tutors", "T-404", tutorRec("T-404", "x"))))
		assert.True(t, core.IsDuplicateKey(store.Update(ctx, "tutors", "T-002", tutorRec("T-003", "x"))))

		require.NoError(t, store.Update(ctx, "tutors", "T-002", tutorRec("T-009", "robert")))
		rows, err = store.LoadAll(ctx, "tutors")
		require.NoError(t, err)
		assert.Equal(t, []string{"T-001", "T-009", "T-003"}, ids(rows))
	})

	t.Run("delete", func(t *testing.T) {
		store := open(t)
		for _, rec := range []core.Record{tutorRec("T-001", "ann"), tutorRec("T-002", "bob"), tutorRec("T-003", "cid")} {
			require.NoError(t, store.Append(ctx, "tutors", rec))
		}

		require.NoError(t, store.Delete(ctx, "tutors", "T-002"))
		assert.True(t, core.IsNotFound(store.Delete(ctx, "tutors", "T-002")))

		rows, err := store.LoadAll(ctx, "tutors")
		require.NoError(t, err)
		assert.Equal(t, []string{"T-001", "T-003"}, ids(rows))

		// the freed key can be reused
		require.NoError(t, store.Append(ctx, "tutors", tutorRec("T-002", "bee")))
		rows, err = store.LoadAll(ctx, "tutors")
		require.NoError(t, err)
		assert.Equal(t, []string{"T-001", "T-003", "T-002"}, ids(rows))
	})

	t.Run("replace all", func(t *testing.T) {
		store := open(t)
		require.NoError(t, store.Append(ctx, "tutors", tutorRec("T-001", "ann")))

		want := []core.Record{tutorRec("T-005", "eve"), tutorRec("T-004", "dan")}
		require.NoError(t, store.ReplaceAll(ctx, "tutors", want))
		rows, err := store.LoadAll(ctx, "tutors")
		require.NoError(t, err)
		assert.Equal(t, want, rows)

		require.NoError(t, store.ReplaceAll(ctx, "tutors", nil))
		rows, err = store.LoadAll(ctx, "tutors")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}
