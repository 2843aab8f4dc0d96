package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tradeboard/internal/client/authz"
	"github.com/dmitrijs2005/tradeboard/internal/client/models"
	"github.com/dmitrijs2005/tradeboard/internal/client/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

func (a *App) session(ctx context.Context) *models.Session {
	s, err := a.svc.Auth.Whoami(ctx)
	if err != nil {
		a.log.Warn(ctx, "reading session", "error", err)
		return nil
	}
	return s
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.session(ctx) != nil
}

func (a *App) isStaff(ctx context.Context) bool {
	return authz.CanAdminister(a.session(ctx))
}

// Login prompts for credentials and stores the session on success.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}

	s, err := a.svc.Auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", s.User.Name)
	if s.User.Role.IsStaff() {
		fmt.Fprintln(a.out, "Admin panel available: type 'admin'.")
	}
	return nil
}

// Signup creates an account. It does not sign in.
func (a *App) Signup(ctx context.Context, _ []string) error {
	var form services.SignupForm
	var err error

	if form.Name, err = getSimpleText(a.reader, "Enter name", a.out); err != nil {
		return err
	}
	if form.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if form.Password, err = getPassword(a.reader, "Enter password", a.out); err != nil {
		return err
	}
	if form.ConfirmPassword, err = getPassword(a.reader, "Confirm password", a.out); err != nil {
		return err
	}

	if err := a.svc.Auth.Signup(ctx, form); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account created. You can now log in.")
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.svc.Auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) Whoami(ctx context.Context, _ []string) error {
	s := a.session(ctx)
	if s == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "Logged in as %s <%s> (%s)\n", s.User.Name, s.User.Email, s.User.Role)
	return nil
}
