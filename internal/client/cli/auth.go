package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/meggy/internal/client/client"
	"github.com/dmitrijs2005/meggy/internal/client/services"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Register prompts for email, display name and password and creates the
// account. The new session is stored by the auth service.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	resp, err := a.auth.Register(ctx, services.NormalizeEmail(email), name, string(password))
	if err != nil {
		return err
	}

	a.cache.Clear()
	a.setUserName(resp.User.Email)
	fmt.Fprintf(a.out, "Welcome, %s! Your account is ready.\n", displayName(resp.User.Name, resp.User.Email))
	return nil
}

// Login prompts for credentials. The email is trimmed and lower-cased before
// it is sent.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	email = services.NormalizeEmail(email)
	if email == "" || len(password) == 0 {
		return client.Invalid("Please fill in all fields")
	}

	resp, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	a.cache.Clear()
	a.setUserName(resp.User.Email)
	fmt.Fprintf(a.out, "Logged in as %s.\n", displayName(resp.User.Name, resp.User.Email))
	return nil
}

// Logout ends the session. Local state is cleared even when the server
// cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	if err := a.dropSession(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Whoami shows the profile from the server, or the cached one when the
// server is unreachable.
func (a *App) Whoami(ctx context.Context) error {
	u, err := a.auth.CurrentUser(ctx)
	if err != nil {
		if !errors.Is(err, client.ErrNetwork) {
			return err
		}
		cached, cerr := a.auth.CachedUser(ctx)
		if cerr != nil || cached == nil {
			return err
		}
		fmt.Fprintln(a.out, "(offline, showing cached profile)")
		u = cached
	}

	a.setUserName(u.Email)
	fmt.Fprintf(a.out, "%s <%s>\n", u.Name, u.Email)
	fmt.Fprintf(a.out, "id: %s\n", u.ID)
	if !u.CreatedAt.IsZero() {
		fmt.Fprintf(a.out, "member since: %s\n", u.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

// Status prints connectivity and session details.
func (a *App) Status(ctx context.Context) error {
	fmt.Fprintf(a.out, "server: %s\n", a.config.ServerURL)

	mode := a.getMode()
	if mode == "" {
		mode = "unknown"
	}
	fmt.Fprintf(a.out, "connection: %s\n", mode)

	if exp, ok := a.auth.AccessTokenExpiry(ctx); ok {
		fmt.Fprintf(a.out, "access token expires: %s (in %s)\n",
			exp.Local().Format(time.DateTime), time.Until(exp).Round(time.Second))
	}
	if id := a.getOpenChat(); id != "" {
		fmt.Fprintf(a.out, "open conversation: %s\n", id)
	}
	return nil
}
