package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/natefinch/atomic"
	"github.com/pkg/errors"

	exportsvc "github.com/tutorren/desk/services/export"
	"github.com/tutorren/desk/storage"
)

// initDB reports every table; opening the store already created the missing ones.
func (cli *commandLine) initDB() error {
	ctx := context.Background()
	for _, s := range storage.Schemas {
		rows, err := cli.store.LoadAll(ctx, s.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "%-10s %d row(s)\n", s.Name, len(rows))
	}
	return nil
}

func (cli *commandLine) remind(now time.Time, horizon time.Duration) error {
	sent, err := cli.svcs.Reminders.Send(context.Background(), now, horizon)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%d reminder(s) sent\n", sent)
	return nil
}

func (cli *commandLine) exportSchedule(out string) error {
	if out == "" {
		out = exportsvc.FileName("schedule", "pdf", time.Now())
	}
	return cli.writeFile(out, cli.svcs.Exports.WriteSchedulePDF)
}

func (cli *commandLine) exportSnapshot(out string) error {
	if out == "" {
		out = exportsvc.FileName("snapshot", "xlsx", time.Now())
	}
	return cli.writeFile(out, cli.svcs.Exports.WriteSnapshotXLSX)
}

// writeFile renders into memory, then replaces `path` atomically.
func (cli *commandLine) writeFile(path string, render func(context.Context, io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(context.Background(), &buf); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	fmt.Fprintf(cli.out, "written %s\n", path)
	return nil
}
