package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/tutorren/desk/apps/shared"
	"github.com/tutorren/desk/core"
	"github.com/tutorren/desk/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf  *core.Config
	store core.Store
	svcs  *shared.Services
	out   io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  initdb                                  - create missing tables and print their row counts")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]                  - run a goose migration command (sqlite|postgres)")
	fmt.Fprintln(cli.out, "  adduser -username USERNAME -role ROLE   - create or update a user; the password is prompted")
	fmt.Fprintln(cli.out, "  resetpassword -username USERNAME        - reset user's password")
	fmt.Fprintln(cli.out, "  remind [-horizon DURATION]              - email every tutor about their next class")
	fmt.Fprintln(cli.out, "  export [-out FILE.pdf]                  - write the weekly schedule report")
	fmt.Fprintln(cli.out, "  snapshot [-out FILE.xlsx]               - write the classes of the next three days")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserUname := addUserCmd.String("username", "", "The user's username. The password will be prompted next.")
	addUserRole := addUserCmd.String("role", user.RoleEmployee, fmt.Sprintf("One of %v.", user.AllRoles))

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The user's username. The password will be prompted next.")

	remindCmd := flag.NewFlagSet("remind", flag.ExitOnError)
	remindHorizon := remindCmd.Duration("horizon", cli.conf.Reminders.Horizon, "Only remind classes starting within this duration (0: no limit).")

	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportOut := exportCmd.String("out", "", "Output file. Defaults to schedule_<timestamp>.pdf.")

	snapshotCmd := flag.NewFlagSet("snapshot", flag.ExitOnError)
	snapshotOut := snapshotCmd.String("out", "", "Output file. Defaults to snapshot_<timestamp>.xlsx.")

	switch args[1] {
	case "initdb":
		return cli.initDB()
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserUname == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := cli.readPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserUname, pwd, *addUserRole)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.readPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordUname, pwd)
	case "remind":
		if err := remindCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.remind(time.Now(), *remindHorizon)
	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.exportSchedule(*exportOut)
	case "snapshot":
		if err := snapshotCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.exportSnapshot(*snapshotOut)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) readPassword() (string, error) {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
