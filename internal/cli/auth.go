package cli

import (
	"context"
	"errors"
	"os"

	"github.com/avoronov/blogkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, password, and display name and creates a new
// account. A successful registration establishes the session immediately,
// the same as a login.
func (a *App) Register(ctx context.Context) error {
	if !a.navigate("/register") {
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.session.Register(ctx, email, password, name)
	if err != nil {
		if errors.Is(err, common.ErrAccountExists) {
			printlnFn("An account with this email already exists")
			return err
		}
		a.log.Error(ctx, "registration failed", "error", err)
		return err
	}

	printlnFn("Welcome,", user.Name)
	return nil
}

// Login prompts for credentials and authenticates against the local account
// table. Unknown accounts and wrong passwords are reported to the user
// without detail beyond the failure kind.
func (a *App) Login(ctx context.Context) error {
	if !a.navigate("/login") {
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.session.Login(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrAccountNotFound):
			printlnFn("No account with this email, use 'register' first")
		case errors.Is(err, common.ErrWrongPassword):
			printlnFn("Wrong password")
		default:
			a.log.Error(ctx, "login failed", "error", err)
		}
		return err
	}

	printlnFn("Welcome back,", user.Name)
	return nil
}

// Logout clears the session, expires the cookie, and removes the persisted
// session record. Accounts and the cached collection are kept.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.log.Warn(ctx, "logout cleanup incomplete", "error", err)
	}
	printlnFn("Logged out")
	return nil
}

// WhoAmI prints the current session identity, if any.
func (a *App) WhoAmI(ctx context.Context) error {
	u, ok := a.session.User()
	if !ok {
		printlnFn("Not logged in")
		return nil
	}
	printlnFn(u.Name, "<"+u.Email+">")
	return nil
}
