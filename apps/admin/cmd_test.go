package main

import (
	"bytes"
	"context"
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorren/desk/apps/shared"
	"github.com/tutorren/desk/core"
	"github.com/tutorren/desk/core/user"
	emailsvc "github.com/tutorren/desk/services/email"
	logsvc "github.com/tutorren/desk/services/logger"
	"github.com/tutorren/desk/tests"
)

func setup(t *testing.T) (*commandLine, *emailsvc.ConsoleServiceMock) {
	conf := &core.Config{
		AppName:  "TutorRen",
		TestMode: true,
		Email: core.EmailConfig{
			DefaultFromEmail: mail.Address{Name: "TutorRen", Address: "noreply@test.local"},
		},
		Reminders: core.ReminderConfig{Horizon: 0},
	}
	logger := logsvc.NewNopLogger()
	core.ParseEmailTemplates(logger, true)
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	store := testutil.NewStore()

	return &commandLine{
		conf:  conf,
		store: store,
		svcs:  shared.NewServices(conf, store, mailSvc, logger),
		out:   new(bytes.Buffer),
	}, mailSvc
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func (tt cliTest) check(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		if tt.wantErr != nil || tt.wantErrStr != "" {
			t.Errorf("cli.run() error = nil, want %v%s", tt.wantErr, tt.wantErrStr)
		}
		return
	}
	switch {
	case tt.wantErr != nil:
		if err != tt.wantErr {
			t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
		}
	case tt.wantErrStr != "":
		if err.Error() != tt.wantErrStr {
			t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
		}
	default:
		t.Errorf("cli.run() unexpected error = %v", err)
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup(t)

	t.Run("memory store has no migrations", func(t *testing.T) {
		assert.Equal(t, errNoMigrations, cli.run([]string{"admin", "migrate", "up"}))
	})

	defaultRun := gooseRunFunc
	defer func() { gooseRunFunc = defaultRun }()
	gooseRunFunc = func(ctx context.Context, store core.Store, command string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "1"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "create", args: []string{"migrate", "create", "rooms", "sql"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli.run(args))
		})
	}
}

func Test_commandLine_users(t *testing.T) {
	cli, _ := setup(t)
	testutil.CreateUser(t, cli.svcs.Users, "boss", "old", user.RoleManager)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "adduser: no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "adduser: no password", args: []string{"adduser", "-username", "tina"}, wantErr: errHelp},
		{name: "adduser: bad role", args: []string{"adduser", "-username", "tina", "-role", "Janitor"}, extra: extra{pwd: "pwd"}, wantErrStr: "role: role must be one of Manager, Tutor or Employee"},
		{name: "adduser", args: []string{"adduser", "-username", "tina", "-role", user.RoleTutor}, extra: extra{pwd: "pwd"}},
		{name: "resetpassword: no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "resetpassword: no password", args: []string{"resetpassword", "-username", "boss"}, wantErr: errHelp},
		{name: "resetpassword", args: []string{"resetpassword", "-username", "boss"}, extra: extra{pwd: "new"}},
	}

	defaultRead := readPasswordFunc
	defer func() { readPasswordFunc = defaultRead }()
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli.run(args))
		})
	}

	ctx := context.Background()
	_, err := cli.svcs.Users.Authenticate(ctx, user.Credentials{Username: "boss", Password: "new"})
	assert.NoError(t, err, "password reset")
	tina, err := cli.svcs.Users.Authenticate(ctx, user.Credentials{Username: "tina", Password: "pwd"})
	require.NoError(t, err, "user added")
	assert.Equal(t, user.RoleTutor, tina.Role)

	t.Run("resetpassword: unknown user", func(t *testing.T) {
		readPasswordFunc = func(int) ([]byte, error) { return []byte("x"), nil }
		err := cli.run([]string{"admin", "resetpassword", "-username", "ghost"})
		assert.True(t, core.IsNotFound(err), "got %v", err)
	})
}

func Test_commandLine_reports(t *testing.T) {
	cli, mailSvc := setup(t)
	ada := testutil.CreateTutor(t, cli.svcs.Tutors, "Ada", "ada@test.local", "Maths")
	sam := testutil.CreateStudent(t, cli.svcs.Students, "Sam", "sam@test.local", "Year 10")
	testutil.CreateClass(t, cli.svcs.Classes, "Algebra", ada.ID, sam.ID, "Mon 09:00")
	dir := t.TempDir()

	t.Run("initdb", func(t *testing.T) {
		require.NoError(t, cli.run([]string{"admin", "initdb"}))
		out := cli.out.(*bytes.Buffer).String()
		assert.Contains(t, out, "users")
		assert.Contains(t, out, "classes")
	})

	t.Run("remind", func(t *testing.T) {
		require.NoError(t, cli.run([]string{"admin", "remind", "-horizon", "0"}))
		assert.Len(t, mailSvc.SentMessages(), 1)
	})

	t.Run("remind within a short horizon", func(t *testing.T) {
		// the only class starts more than a second from now
		if now := time.Now(); now.Weekday() == time.Monday && now.Hour() == 9 {
			t.Skip("the class is starting")
		}
		require.NoError(t, cli.remind(time.Now(), time.Second))
		assert.Len(t, mailSvc.SentMessages(), 1, "nothing more sent")
	})

	t.Run("export", func(t *testing.T) {
		out := filepath.Join(dir, "schedule.pdf")
		require.NoError(t, cli.run([]string{"admin", "export", "-out", out}))
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	})

	t.Run("snapshot", func(t *testing.T) {
		out := filepath.Join(dir, "snapshot.xlsx")
		require.NoError(t, cli.run([]string{"admin", "snapshot", "-out", out}))
		info, err := os.Stat(out)
		require.NoError(t, err)
		assert.NotZero(t, info.Size())
	})
}
