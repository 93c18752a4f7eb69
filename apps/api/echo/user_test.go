package echoapi_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/tutorren/desk/apps/api/echo"
	"github.com/tutorren/desk/core/user"
	"github.com/tutorren/desk/tests"
)

func Test_userApi_login(t *testing.T) {
	app := newTestApp(t)
	testutil.CreateUser(t, app.svcs.Users, "boss", "secret", user.RoleManager)

	app.run(t, []httpTest{
		{
			name: "missing fields", method: http.MethodPost, path: "/v1/login", body: []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"username": "this field is required", "password": "this field is required"}`),
		},
		{
			name: "wrong password", method: http.MethodPost, path: "/v1/login",
			body:     []byte(`{"username": "boss", "password": "nope"}`),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "unknown user", method: http.MethodPost, path: "/v1/login",
			body:     []byte(`{"username": "ghost", "password": "secret"}`),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "malformed body", method: http.MethodPost, path: "/v1/login", body: []byte(`{"username": `),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, httpErr{Error: "malformed Credentials"}),
		},
	})

	t.Run("success", func(t *testing.T) {
		rec := app.do(http.MethodPost, "/v1/login", "", []byte(`{"username": " boss ", "password": "secret"}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		claims := new(Claims)
		_, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(app.conf.SecretKey), nil
		})
		require.NoError(t, err)
		assert.Equal(t, "boss", claims.Username)
		assert.Equal(t, user.RoleManager, claims.Role)
		assert.NotEmpty(t, claims.Id)

		// the token opens authenticated endpoints
		rec = app.do(http.MethodGet, "/v1/tutors", resp.Token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func Test_userApi_auth(t *testing.T) {
	app := newTestApp(t)

	app.run(t, []httpTest{
		{
			name: "token required", path: "/v1/tutors",
			wantCode: http.StatusUnauthorized, wantData: marshalObj(t, httpErr{Error: "missing or malformed jwt"}),
		},
		{
			name: "bad token", path: "/v1/tutors", token: "not.a.token",
			wantCode: http.StatusUnauthorized, wantData: marshalObj(t, httpErr{Error: "invalid or expired jwt"}),
		},
	})
}

func Test_userApi_manage(t *testing.T) {
	app := newTestApp(t)
	boss := testutil.CreateUser(t, app.svcs.Users, "boss", "secret", user.RoleManager)
	tutorUsr := testutil.CreateUser(t, app.svcs.Users, "tina", "pwd", user.RoleTutor)
	bossToken := app.token(t, boss)

	app.run(t, []httpTest{
		{
			name: "manager required", path: "/v1/users", token: app.token(t, tutorUsr),
			wantCode: http.StatusForbidden, wantData: marshalObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "list hides passwords", path: "/v1/users", token: bossToken,
			wantData: []byte(`[{"username": "boss", "role": "Manager"}, {"username": "tina", "role": "Tutor"}]`),
		},
		{
			name: "roles", path: "/v1/users/roles", token: bossToken,
			wantData: marshalObj(t, user.AllRoles),
		},
		{
			name: "create", method: http.MethodPost, path: "/v1/users", token: bossToken,
			body:     []byte(`{"username": "emma", "password": "pwd", "role": "Employee"}`),
			wantCode: http.StatusCreated, wantData: []byte(`{"username": "emma", "role": "Employee"}`),
		},
		{
			name: "create duplicate", method: http.MethodPost, path: "/v1/users", token: bossToken,
			body:     []byte(`{"username": "emma", "password": "other", "role": "Tutor"}`),
			wantCode: http.StatusConflict, wantData: marshalObj(t, httpErr{Error: `users: username "emma" already exists`}),
		},
		{
			name: "create with unknown role", method: http.MethodPost, path: "/v1/users", token: bossToken,
			body:     []byte(`{"username": "zed", "password": "pwd", "role": "Janitor"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "update role", method: http.MethodPut, path: "/v1/users/emma", token: bossToken,
			body: []byte(`{"role": "Tutor"}`), wantData: []byte(`{"username": "emma", "role": "Tutor"}`),
		},
		{
			name: "manager cannot demote themselves", method: http.MethodPut, path: "/v1/users/boss", token: bossToken,
			body: []byte(`{"role": "Tutor"}`), wantCode: http.StatusForbidden,
		},
		{
			name: "manager cannot delete themselves", method: http.MethodDelete, path: "/v1/users/boss", token: bossToken,
			wantCode: http.StatusForbidden,
		},
		{
			name: "delete", method: http.MethodDelete, path: "/v1/users/emma", token: bossToken,
			wantCode: http.StatusNoContent,
		},
		{
			name: "retrieve deleted", path: "/v1/users/emma", token: bossToken,
			wantCode: http.StatusNotFound, wantData: marshalObj(t, httpErr{Error: `users: "emma" not found`}),
		},
	})
}
