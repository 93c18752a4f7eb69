package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tutorSchema = Schema{Name: "tutors", Columns: []string{"id", "name", "email", "subjects"}, Key: "id"}

func tutorRows() []Record {
	return []Record{
		{"id": "T-001", "name": "Ann", "email": "ann@test.cd", "subjects": "Maths"},
		{"id": "T-002", "name": "Bob", "email": "bob@test.cd", "subjects": "Physics;Chemistry"},
		{"id": "T-003", "name": "Cid", "email": "cid@test.cd", "subjects": ""},
	}
}

func keys(rows []Record) []string {
	ks := make([]string, 0, len(rows))
	for _, r := range rows {
		ks = append(ks, r["id"])
	}
	return ks
}

func TestSchemaValues(t *testing.T) {
	rec := Record{"email": "e", "id": "T-001", "extra": "dropped", "name": "n"}
	vals := tutorSchema.Values(rec)
	assert.Equal(t, []string{"T-001", "n", "e", ""}, vals)
	assert.Equal(t, Record{"id": "T-001", "name": "n", "email": "e", "subjects": ""}, tutorSchema.FromValues(vals))
	assert.Equal(t, Record{"id": "T-001", "name": "", "email": "", "subjects": ""}, tutorSchema.FromValues([]string{"T-001"}))
}

func TestSchemaCheckAppend(t *testing.T) {
	rows := tutorRows()

	err := tutorSchema.CheckAppend(rows, Record{"id": "T-002", "name": "Dup"})
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
	assert.EqualError(t, err, `tutors: id "T-002" already exists`)

	assert.NoError(t, tutorSchema.CheckAppend(rows, Record{"id": "T-004"}))
}

func TestSchemaApplyUpdate(t *testing.T) {
	rows := tutorRows()

	t.Run("keeps order", func(t *testing.T) {
		out, err := tutorSchema.ApplyUpdate(rows, "T-002", Record{"id": "T-002", "name": "Bobby", "email": "b@test.cd"})
		require.NoError(t, err)
		assert.Equal(t, []string{"T-001", "T-002", "T-003"}, keys(out))
		assert.Equal(t, "Bobby", out[1]["name"])
		assert.Equal(t, "", out[1]["subjects"])
		assert.Equal(t, "Bob", rows[1]["name"], "input rows must be left untouched")
	})
	t.Run("rename to a free key", func(t *testing.T) {
		out, err := tutorSchema.ApplyUpdate(rows, "T-002", Record{"id": "T-010", "name": "Bob"})
		require.NoError(t, err)
		assert.Equal(t, []string{"T-001", "T-010", "T-003"}, keys(out))
	})
	t.Run("rename onto another row", func(t *testing.T) {
		_, err := tutorSchema.ApplyUpdate(rows, "T-002", Record{"id": "T-003", "name": "Bob"})
		assert.True(t, IsDuplicateKey(err))
	})
	t.Run("absent key", func(t *testing.T) {
		_, err := tutorSchema.ApplyUpdate(rows, "T-404", Record{"id": "T-404"})
		assert.True(t, IsNotFound(err))
	})
}

func TestSchemaApplyDelete(t *testing.T) {
	rows := tutorRows()

	out, err := tutorSchema.ApplyDelete(rows, "T-002")
	require.NoError(t, err)
	assert.Equal(t, []string{"T-001", "T-003"}, keys(out))
	assert.Len(t, rows, 3)

	_, err = tutorSchema.ApplyDelete(rows, "T-404")
	assert.True(t, IsNotFound(err))
}

func TestSchemasGet(t *testing.T) {
	schemas := NewSchemas(tutorSchema)

	s, err := schemas.Get("tutors")
	require.NoError(t, err)
	assert.Equal(t, "id", s.Key)

	_, err = schemas.Get("lessons")
	assert.True(t, IsIOFault(err))
	assert.ErrorIs(t, err, ErrUnknownTable)
}
