package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/edupilot/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) credentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Signup prompts for an email and password and creates an account. The new
// session is used right away.
func (a *App) Signup(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Signup(ctx, email, string(password)); err != nil {
		return err
	}
	return a.startSession(ctx)
}

// Login prompts for credentials and opens a session.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, email, string(password)); err != nil {
		return err
	}
	return a.startSession(ctx)
}

// startSession asks the server who is logged in and loads both lists.
func (a *App) startSession(ctx context.Context) error {
	email, err := a.api.Session(ctx)
	if err != nil {
		return err
	}
	a.email = email
	a.setMode(ctx, ModeOnline)
	fmt.Fprintf(a.out, "Logged in as %s\n", email)

	if err := a.tasks.Load(ctx); err != nil {
		return err
	}
	return a.logs.Load(ctx)
}

// Logout ends the server session and forgets the loaded lists. A saved
// study log draft is kept.
func (a *App) Logout(ctx context.Context) error {
	err := a.api.Logout(ctx)

	a.email = ""
	a.resetStores()
	fmt.Fprintln(a.out, "Logged out.")
	return err
}
