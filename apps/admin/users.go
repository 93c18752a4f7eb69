package main

import (
	"context"
	"fmt"

	"github.com/tutorren/desk/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(uname, pwd, role string) error {
	usr, err := cli.svcs.Users.UpdateOrCreate(context.Background(), user.NewUser{
		Username: uname,
		Password: pwd,
		Role:     role,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "user %q saved with role %s\n", usr.Username, usr.Role)
	return nil
}

func (cli *commandLine) resetPassword(uname, pwd string) error {
	return cli.svcs.Users.SetPassword(context.Background(), uname, pwd)
}
