package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	reportError(ctx context.Context, err error)

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Status(ctx context.Context) error

	ListAgents(ctx context.Context) error
	ShowAgent(ctx context.Context, id string) error
	NewAgent(ctx context.Context) error
	SetAgent(ctx context.Context, id string, assignments []string) error
	RemoveAgent(ctx context.Context, id string) error

	ListChats(ctx context.Context) error
	NewChat(ctx context.Context, agentID string) error
	OpenChat(ctx context.Context, id string) error
	RenameChat(ctx context.Context, id string) error
	RemoveChat(ctx context.Context, id string) error
	Say(ctx context.Context, text string) error
	History(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: whoami, status, agents, agent <id>, newagent, " +
		"setagent <id> key=value..., rmagent <id>, chats, newchat [agent-id], open <id>, " +
		"rename <id>, rmchat <id>, say <text>, history, logout, exit"
)

var errUsage = errors.New("usage")

// runREPL starts a simple read–eval–print loop for the Meggy CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Authentication presence selects the command set:
//
//	Not logged in:
//	  - help           : show available commands
//	  - register       : create an account
//	  - login          : authenticate
//	  - exit | quit    : leave the program
//
//	Logged in:
//	  - whoami, status                 : who and where
//	  - agents, agent <id>             : list / show agents
//	  - newagent, setagent, rmagent    : manage agents
//	  - chats, newchat, open, rename, rmchat : manage conversations
//	  - say <text>, history            : chat in the open conversation
//	  - logout, exit | quit
//
// Errors returned by handlers are passed to a.reportError.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("meggy %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		line = strings.TrimSpace(line)

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]
		rest := strings.TrimSpace(strings.TrimPrefix(line, cmd))

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "register", "login":
			if a.isLoggedIn(ctx) {
				printlnFn("Already logged in. Use 'logout' first.")
				continue
			}
			if cmd == "register" {
				cmdErr = a.Register(ctx)
			} else {
				cmdErr = a.Login(ctx)
			}

		default:
			if !isUserCommand(cmd) {
				printlnFn("Unknown command:", cmd)
				continue
			}
			if !a.isLoggedIn(ctx) {
				printlnFn("Please log in first (type 'login' or 'register').")
				continue
			}
			cmdErr = dispatch(ctx, a, cmd, args, rest)
		}

		if errors.Is(cmdErr, errUsage) {
			printlnFn(cmdErr.Error())
			continue
		}
		if cmdErr != nil {
			a.reportError(ctx, cmdErr)
		}
	}
}

var userCommands = map[string]struct{}{
	"whoami": {}, "status": {}, "logout": {},
	"agents": {}, "agent": {}, "newagent": {}, "setagent": {}, "rmagent": {},
	"chats": {}, "newchat": {}, "open": {}, "rename": {}, "rmchat": {},
	"say": {}, "history": {},
}

func isUserCommand(cmd string) bool {
	_, ok := userCommands[cmd]
	return ok
}

func usage(text string) error {
	return fmt.Errorf("%w: %s", errUsage, text)
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string, rest string) error {
	first := ""
	if len(args) > 0 {
		first = args[0]
	}

	switch cmd {
	case "whoami":
		return a.Whoami(ctx)
	case "status":
		return a.Status(ctx)
	case "logout":
		return a.Logout(ctx)

	case "agents":
		return a.ListAgents(ctx)
	case "agent":
		if first == "" {
			return usage("agent <id>")
		}
		return a.ShowAgent(ctx, first)
	case "newagent":
		return a.NewAgent(ctx)
	case "setagent":
		if first == "" || len(args) < 2 {
			return usage("setagent <id> key=value... (keys: " + strings.Join(agentUpdateKeys, ", ") + ")")
		}
		return a.SetAgent(ctx, first, args[1:])
	case "rmagent":
		if first == "" {
			return usage("rmagent <id>")
		}
		return a.RemoveAgent(ctx, first)

	case "chats":
		return a.ListChats(ctx)
	case "newchat":
		return a.NewChat(ctx, first)
	case "open":
		if first == "" {
			return usage("open <id>")
		}
		return a.OpenChat(ctx, first)
	case "rename":
		if first == "" {
			return usage("rename <id>")
		}
		return a.RenameChat(ctx, first)
	case "rmchat":
		if first == "" {
			return usage("rmchat <id>")
		}
		return a.RemoveChat(ctx, first)
	case "say":
		if rest == "" {
			return usage("say <text>")
		}
		return a.Say(ctx, rest)
	case "history":
		return a.History(ctx)
	}
	return nil
}
