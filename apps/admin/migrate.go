package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tutorren/desk/core"
)

var errNoMigrations = errors.New("the configured storage engine has no schema migrations")

type migrator interface {
	RunMigration(ctx context.Context, command string, args ...string) error
}

// gooseRunFunc runs a goose command against `store` when it is an SQL database.
var gooseRunFunc = func(ctx context.Context, store core.Store, command string, args ...string) error { // mockable
	m, ok := store.(migrator)
	if !ok {
		return errNoMigrations
	}
	return m.RunMigration(ctx, command, args...)
}

func (cli *commandLine) migrate(args []string) error {
	return gooseRunFunc(context.Background(), cli.store, args[0], args[1:]...)
}
