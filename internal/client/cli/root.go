package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/meggy/internal/client/client"
)

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	var parts []string
	if a.userName != "" {
		parts = append(parts, a.userName)
	}
	if a.mode != "" {
		parts = append(parts, string(a.mode))
	}
	if a.openChat != "" {
		parts = append(parts, "chat:"+shortID(a.openChat))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// resumeSession picks up a session left by a previous run. When only the
// refresh token survived, a new access token is requested.
func (a *App) resumeSession(ctx context.Context) {
	if !a.isLoggedIn(ctx) {
		if _, err := a.auth.RefreshAccessToken(ctx); err != nil {
			if !errors.Is(err, client.ErrNoRefreshToken) {
				a.log.Debug(ctx, "session not resumed", "error", err)
			}
			return
		}
	}

	u, err := a.auth.CachedUser(ctx)
	if err != nil || u == nil {
		return
	}
	a.setUserName(u.Email)
	fmt.Fprintf(a.out, "Welcome back, %s.\n", displayName(u.Name, u.Email))
}

// Root runs the interactive session until the user exits or input ends.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to Meggy CLI (type 'help' for commands)")

	a.checkOnline(ctx)
	a.resumeSession(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

// reportError prints the most specific message for err. A rejected session
// while logged in means the tokens are dead: local state is dropped and the
// user is sent back to login.
func (a *App) reportError(ctx context.Context, err error) {
	a.log.Debug(ctx, "command failed", "error", err)

	sessionLost := errors.Is(err, client.ErrUnauthorized) || errors.Is(err, client.ErrNoRefreshToken)
	if sessionLost && a.isLoggedIn(ctx) {
		if derr := a.dropSession(ctx); derr != nil {
			a.log.Error(ctx, "clear expired session", "error", derr)
			fmt.Fprintln(a.out, "Your session has expired, but the local session could not be cleared:", derr)
			return
		}
		fmt.Fprintln(a.out, "Your session has expired. Please log in again.")
		return
	}

	fmt.Fprintln(a.out, "Error:", client.UserMessage(err))
}

// dropSession clears tokens, cached server state and the open conversation.
func (a *App) dropSession(ctx context.Context) error {
	err := a.auth.Logout(ctx)
	a.cache.Clear()
	a.setUserName("")
	a.setOpenChat("")
	return err
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func displayName(name, email string) string {
	if name != "" {
		return name
	}
	return email
}
