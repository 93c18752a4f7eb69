package echoapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	. "github.com/tutorren/desk/apps/api/echo"
	"github.com/tutorren/desk/apps/shared"
	"github.com/tutorren/desk/core"
	"github.com/tutorren/desk/core/user"
	"github.com/tutorren/desk/services/email"
	"github.com/tutorren/desk/services/logger"
	"github.com/tutorren/desk/tests"
)

type testApp struct {
	conf    *core.Config
	svcs    *shared.Services
	mailSvc *emailsvc.ConsoleServiceMock
	server  *Server
}

func newTestConfig() *core.Config {
	return &core.Config{
		AppName:   "TutorRen",
		Env:       "TEST",
		TestMode:  true,
		SecretKey: "test-secret",
		Server:    core.ServerConfig{JWTExpirationDelta: time.Hour},
		Email: core.EmailConfig{
			Backend:          core.EmailConsole,
			DefaultFromEmail: mail.Address{Name: "TutorRen", Address: "noreply@test.local"},
		},
	}
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	conf := newTestConfig()
	logger := logsvc.NewNopLogger()
	core.ParseEmailTemplates(logger, true)

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	svcs := shared.NewServices(conf, testutil.NewStore(), mailSvc, logger)

	server := NewServer(ServerDeps{
		Conf:           conf,
		Logger:         logger,
		DisableReqLogs: true,
		UserSvc:        svcs.Users,
		TutorSvc:       svcs.Tutors,
		StudentSvc:     svcs.Students,
		ClassSvc:       svcs.Classes,
		ReportSvc:      svcs.Reports,
		ExportSvc:      svcs.Exports,
		ReminderSvc:    svcs.Reminders,
	})
	return &testApp{conf: conf, svcs: svcs, mailSvc: mailSvc, server: server}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func (app *testApp) do(method, path, token string, data ...[]byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) run(t *testing.T, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			rec := app.do(method, tt.path, tt.token, tt.body)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func (app *testApp) token(t *testing.T, usr user.User) string {
	token, err := GenerateToken(app.conf, GetUserClaims(app.conf, usr))
	if err != nil {
		t.Fatalf("token(): %v", err)
	}
	return token
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj(): %v", err)
	}
	return data
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	wantCode := tt.wantCode
	if wantCode == 0 {
		wantCode = http.StatusOK
	}
	if rec.Code != wantCode {
		t.Errorf("failed! code = %v; wantCode %v (body %s)", rec.Code, wantCode, rec.Body.String())
	}
	if tt.wantData != nil {
		require.JSONEq(t, string(tt.wantData), rec.Body.String())
	}
}
