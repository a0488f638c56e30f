package main

import (
	"context"
	"time"

	"github.com/playlearnspark/backend/core"
	"github.com/playlearnspark/backend/core/user"
)

// addUser creates a user.User, or updates it when the username or email is
// already taken.
func (cli *commandLine) addUser(uname, email, pwd string, isAdmin bool) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	now := time.Now().UTC()
	usr, err := cli.usrRepo.GetUserByUsernameOrEmail(ctx, uname)
	if err == user.ErrNotFound {
		usr, err = cli.usrRepo.GetUserByUsernameOrEmail(ctx, email)
	}
	switch err {
	case nil:
		usr.Username = uname
		usr.Email = email
		usr.UpdatedAt = now
		if isAdmin {
			usr.Roles = user.AllRoles
		}
		usr.SetActive(true)
		if err := usr.SetPassword(pwd); err != nil {
			return err
		}
		active := true
		_, err = cli.usrRepo.UpdateUser(ctx, usr, &active)
		return err
	case user.ErrNotFound:
		usr = user.User{
			Username:  uname,
			Email:     email,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if isAdmin {
			usr.Roles = user.AllRoles
		}
		usr.SetActive(true)
		if err := usr.SetPassword(pwd); err != nil {
			return err
		}
		_, err = cli.usrRepo.CreateUser(ctx, usr)
		return err
	default:
		return err
	}
}
