package tutor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorren/desk/core"
	"github.com/tutorren/desk/core/tutor"
	"github.com/tutorren/desk/tests"
)

func strPtr(s string) *string { return &s }

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore()
	svc := testutil.NewServices(store).Tutors

	ann := testutil.CreateTutor(t, svc, "Ann", "ann@test.cd", "Maths, Physics")
	assert.Equal(t, tutor.Tutor{ID: "T-001", Name: "Ann", Email: "ann@test.cd", Subjects: []string{"Maths", "Physics"}}, ann)

	recs, err := store.LoadAll(ctx, "tutors")
	require.NoError(t, err)
	assert.Equal(t, "Maths;Physics", recs[0]["subjects"], "subjects are stored ;-joined")

	testutil.CreateTutor(t, svc, "Bob", "bob@test.cd", "")
	cid := testutil.CreateTutor(t, svc, "Cid", "cid@test.cd", "Art")
	assert.Equal(t, "T-003", cid.ID)

	require.NoError(t, svc.Delete(ctx, "T-003"))
	dan := testutil.CreateTutor(t, svc, "Dan", "dan@test.cd", "")
	assert.Equal(t, "T-003", dan.ID)

	_, err = svc.Create(ctx, tutor.NewTutor{Name: "Eve", Email: "not-an-email"})
	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email", vErr.Fields[0].Field)

	_, err = svc.Create(ctx, tutor.NewTutor{Email: "eve@test.cd"})
	assert.True(t, core.IsValidation(err))
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewServices(testutil.NewStore()).Tutors
	testutil.CreateTutor(t, svc, "Ann", "ann@test.cd", "Maths")
	testutil.CreateTutor(t, svc, "Bob", "bob@test.cd", "Physics")
	testutil.CreateTutor(t, svc, "Cid", "cid@test.cd", "Art")

	bob, err := svc.Update(ctx, "T-002", tutor.UpdateTutor{Name: strPtr("Robert"), Subjects: strPtr("Physics,Chemistry")})
	require.NoError(t, err)
	assert.Equal(t, tutor.Tutor{ID: "T-002", Name: "Robert", Email: "bob@test.cd", Subjects: []string{"Physics", "Chemistry"}}, bob)

	tutors, err := svc.List(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(tutors))
	for _, tt := range tutors {
		names = append(names, tt.Name)
	}
	assert.Equal(t, []string{"Ann", "Robert", "Cid"}, names, "update keeps table order")

	_, err = svc.Update(ctx, "T-404", tutor.UpdateTutor{Name: strPtr("x")})
	assert.True(t, core.IsNotFound(err))

	_, err = svc.Update(ctx, "T-001", tutor.UpdateTutor{Name: strPtr(" ")})
	assert.True(t, core.IsValidation(err))
}

func TestService_Options(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewServices(testutil.NewStore()).Tutors
	testutil.CreateTutor(t, svc, "Ann", "ann@test.cd", "")
	testutil.CreateTutor(t, svc, "Bob", "bob@test.cd", "")

	opts, err := svc.Options(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Option{
		{Value: "T-001", Label: "T-001 — Ann"},
		{Value: "T-002", Label: "T-002 — Bob"},
	}, opts)

	names, err := svc.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"T-001": "Ann", "T-002": "Bob"}, names)
}
