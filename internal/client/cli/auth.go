package cli

import (
	"context"

	"github.com/tnguye65/pokecollection/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for username, email and password and creates an account.
// It does not log the user in. The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return a.fail(err)
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return a.fail(err)
	}

	password, err := getPassword(a.out)
	if err != nil {
		return a.fail(err)
	}
	defer common.WipeByteArray(password)

	acc, err := a.api.Register(ctx, userName, email, password)
	if err != nil {
		return a.fail(err)
	}

	a.println("Registered", acc.Username, "- you can log in now")
	return nil
}

// Login prompts for credentials. On success the session cookie is kept by
// the API client and the prompt shows the username.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return a.fail(err)
	}

	password, err := getPassword(a.out)
	if err != nil {
		return a.fail(err)
	}
	defer common.WipeByteArray(password)

	acc, err := a.api.Login(ctx, email, password)
	if err != nil {
		return a.fail(err)
	}

	a.userName = acc.Username
	a.setMode(ModeOnline)
	a.println("Login successful")
	return nil
}

// Logout ends the session on the server and forgets the local user.
func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		return a.fail(err)
	}
	a.userName = ""
	a.println("Logged out")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	acc, err := a.api.Me(ctx)
	if err != nil {
		return a.fail(err)
	}
	a.println(acc.Username, "<"+acc.Email+">")
	return nil
}
