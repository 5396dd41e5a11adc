package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email, and password and creates an account.
// On success the returned identity and token are stored in the session and
// the caches are warmed for the new user.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	res, err := a.container.Client.Register(ctx, name, email, password)
	if err != nil {
		return err
	}

	if err := a.container.Session.Login(ctx, res.User, res.Token); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", res.User.Name)
	return nil
}

// Login prompts for credentials, authenticates, and warms the caches.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	res, err := a.container.Client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := a.container.Session.Login(ctx, res.User, res.Token); err != nil {
		return err
	}

	a.container.Refresh(ctx)

	fmt.Fprintf(a.out, "Welcome back, %s!\n", res.User.Name)
	return nil
}

// Logout clears the session, in memory and on disk.
func (a *App) Logout(ctx context.Context) error {
	if err := a.container.Session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
