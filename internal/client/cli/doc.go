// Package cli provides the interactive Meggy command-line client.
//
// It wires configuration, the session store, the API services, the query
// cache and an interactive REPL. Typical flow: resume the stored session (or
// log in), start a background connectivity watcher, and execute user
// commands.
//
// Key features:
//   - Register / Login / Logout, whoami, status
//   - Agents: list, show, create, update, delete
//   - Conversations: list, start, open, rename, delete
//   - Chat: send messages to the open conversation and read its history
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
