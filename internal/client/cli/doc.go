// Package cli provides the interactive command-line client for the card
// collection tracker.
//
// It wires configuration, the REST API client and a small REPL. Typical
// flow: log in, then add, list, update or remove collection items and look
// cards up in the catalog. A background watcher pings the server and shows
// whether it is reachable in the prompt.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
