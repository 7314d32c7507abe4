package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/vpetrenko/promptmart/internal/client/session"
	"github.com/vpetrenko/promptmart/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, email, and password and creates a new
// account. A successful signup logs the user in immediately.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Signup(ctx, userName, email, password); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", userName)
	return nil
}

// Login prompts for credentials and authenticates against the backend.
//
// A credential rejection prints the server-provided message (for example
// "Invalid credentials"); a transport problem prints a generic failure so
// the user is not misled into retyping a valid password.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, userName, password); err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			fmt.Fprintln(a.out, err.Error())
		} else {
			fmt.Fprintln(a.out, "Login failed, please try again later")
		}
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", userName)
	return nil
}

// Logout drops the session and the persisted token. It always succeeds.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Whoami prints the current profile.
func (a *App) Whoami(ctx context.Context) error {
	user := a.session.User()
	if user == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "Username: %s\n", user.Username)
	fmt.Fprintf(a.out, "Email:    %s\n", user.Email)
	fmt.Fprintf(a.out, "Plan:     %s\n", user.Plan)
	if user.JoinedAt != nil {
		fmt.Fprintf(a.out, "Joined:   %s\n", user.JoinedAt.Format("2006-01-02"))
	}
	return nil
}

// EditProfile updates the locally held profile. Blank input keeps the
// current value. Changes live in the session only; the backend keeps its
// own record.
func (a *App) EditProfile(ctx context.Context) error {
	user := a.session.User()
	if user == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	var updates session.ProfileUpdate

	userName, err := getSimpleText(a.reader, fmt.Sprintf("Enter username [%s]", user.Username), os.Stdout)
	if err != nil {
		return err
	}
	if userName != "" {
		updates.Username = &userName
	}

	email, err := getSimpleText(a.reader, fmt.Sprintf("Enter email [%s]", user.Email), os.Stdout)
	if err != nil {
		return err
	}
	if email != "" {
		updates.Email = &email
	}

	avatar, err := getSimpleText(a.reader, "Enter avatar URL (blank to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if avatar != "" {
		updates.Avatar = &avatar
	}

	a.session.UpdateProfile(updates)
	fmt.Fprintln(a.out, "Profile updated")
	return nil
}
