package echoapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	. "github.com/tutorren/desk/apps/api/echo"
	"github.com/tutorren/desk/core/user"
	"github.com/tutorren/desk/services/export"
	"github.com/tutorren/desk/tests"
)

// seed books Ada with Sam on every day at 09:00, so that every report has content
// whatever the current weekday.
func seed(t *testing.T, app *testApp) string {
	ada := testutil.CreateTutor(t, app.svcs.Tutors, "Ada", "ada@test.local", "Maths")
	testutil.CreateTutor(t, app.svcs.Tutors, "Bob", "bob@test.local", "Physics")
	sam := testutil.CreateStudent(t, app.svcs.Students, "Sam", "sam@test.local", "Year 10")
	for _, day := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		testutil.CreateClass(t, app.svcs.Classes, "Algebra "+day, ada.ID, sam.ID, day+" 09:00")
	}
	return app.token(t, testutil.CreateUser(t, app.svcs.Users, "emma", "pwd", user.RoleEmployee))
}

func Test_reportApi_dashboard(t *testing.T) {
	app := newTestApp(t)
	token := seed(t, app)

	rec := app.do(http.MethodGet, "/v1/dashboard", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Counts.Tutors)
	assert.Equal(t, 1, resp.Counts.Students)
	assert.Equal(t, 7, resp.Counts.Classes)
	require.Len(t, resp.Upcoming, 1, "Bob has no class")
	assert.Equal(t, "Ada", resp.Upcoming[0].TutorName)
}

func Test_reportApi_options(t *testing.T) {
	app := newTestApp(t)
	token := seed(t, app)

	app.run(t, []httpTest{
		{
			name: "tutors", path: "/v1/options/tutors", token: token,
			wantData: []byte(`[{"value": "T-001", "label": "T-001 — Ada"}, {"value": "T-002", "label": "T-002 — Bob"}]`),
		},
		{
			name: "students", path: "/v1/options/students", token: token,
			wantData: []byte(`[{"value": "S-001", "label": "S-001 — Sam"}]`),
		},
		{name: "token required", path: "/v1/options/tutors", wantCode: http.StatusUnauthorized},
	})
}

func Test_reportApi_schedules(t *testing.T) {
	app := newTestApp(t)
	token := seed(t, app)

	rec := app.do(http.MethodGet, "/v1/reports/students", token)
	require.Equal(t, http.StatusOK, rec.Code)

	var groups []struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Entries []struct {
			Schedule string `json:"schedule"`
			With     string `json:"with"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, "Sam", groups[0].Name)
	require.Len(t, groups[0].Entries, 7)
	assert.Equal(t, "Mon 09:00", groups[0].Entries[0].Schedule)
	assert.Equal(t, "Sun 09:00", groups[0].Entries[6].Schedule)
	assert.Equal(t, "Ada", groups[0].Entries[0].With)
}

func Test_reportApi_exports(t *testing.T) {
	app := newTestApp(t)
	token := seed(t, app)

	t.Run("schedule pdf", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/v1/reports/schedule.pdf", token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, exportsvc.PDFContentType, rec.Header().Get("Content-Type"))
		assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Disposition"), `attachment; filename="schedule_`))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
	})

	t.Run("snapshot xlsx", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/v1/reports/snapshot.xlsx", token)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, exportsvc.XLSXContentType, rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")

		f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows("Snapshot")
		require.NoError(t, err)
		require.Len(t, rows, 1+3+2, "header, one class per day of the window, a blank row and the footer")
		for _, row := range rows[1:4] {
			require.Len(t, row, 6)
			assert.True(t, strings.HasPrefix(row[2], "Algebra "), row[2])
			assert.Equal(t, "Ada", row[3])
			assert.Equal(t, "Sam", row[4])
		}
		assert.Empty(t, rows[4])
		assert.True(t, strings.HasPrefix(rows[5][0], "Generated "), rows[5][0])
	})
}

func Test_reportApi_remind(t *testing.T) {
	app := newTestApp(t)
	token := seed(t, app)

	app.run(t, []httpTest{
		{
			name: "bad horizon", method: http.MethodPost, path: "/v1/reminders", token: token,
			body: []byte(`{"horizon": "soon"}`), wantCode: http.StatusBadRequest,
			wantData: []byte(`{"horizon": "enter a valid duration, e.g. 24h"}`),
		},
		{
			name: "send", method: http.MethodPost, path: "/v1/reminders", token: token,
			body: []byte(`{"horizon": "0"}`), wantData: marshalObj(t, RemindResponse{Sent: 1}),
		},
	})

	sent := app.mailSvc.SentMessages()
	require.Len(t, sent, 1, "Bob has no class")
	assert.Equal(t, "ada@test.local", sent[0].To[0].Address)
	assert.True(t, strings.HasPrefix(sent[0].Subject, "Upcoming class: Algebra "))
}

func Test_viewApi(t *testing.T) {
	app := newTestApp(t)
	boss := testutil.CreateUser(t, app.svcs.Users, "boss", "pwd", user.RoleManager)
	tina := testutil.CreateUser(t, app.svcs.Users, "tina", "pwd", user.RoleTutor)

	entities := func(t *testing.T, token string) ([]string, []View) {
		rec := app.do(http.MethodGet, "/v1/views", token)
		require.Equal(t, http.StatusOK, rec.Code)
		var views []View
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
		names := make([]string, 0, len(views))
		for _, v := range views {
			names = append(names, v.Entity)
		}
		return names, views
	}

	names, views := entities(t, app.token(t, boss))
	assert.Equal(t, []string{"tutor", "student", "class", "user"}, names)
	for _, v := range views {
		assert.Equal(t, v.Entity == "class", v.Has(FeatureAvailability), v.Entity)
	}

	names, _ = entities(t, app.token(t, tina))
	assert.Equal(t, []string{"tutor", "student", "class"}, names)
}
