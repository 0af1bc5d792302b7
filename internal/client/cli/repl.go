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

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context) error
	Update(ctx context.Context) error
	Remove(ctx context.Context) error
	Stats(ctx context.Context) error
	Search(ctx context.Context) error
	Card(ctx context.Context) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// Commands that need more input prompt for it on the same reader. The loop
// exits on EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help           show available commands
//	  - register       create an account
//	  - login          authenticate
//	  - search, card   look cards up in the catalog
//	  - exit | quit    leave the program
//
//	Logged in, additionally:
//	  - me             show the current account
//	  - add            add copies of a card
//	  - (l)ist         list the collection
//	  - update         change quantity, condition or notes of an item
//	  - remove         delete an item
//	  - stats          total and unique card counts
//	  - logout         end the session
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tcg %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: me, add, (l)ist, update, remove, stats, search, card, logout, exit")
			} else {
				printlnFn("Available commands: register, login, search, card, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "me":
			_ = a.Me(ctx)

		case "add":
			_ = a.Add(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "update":
			_ = a.Update(ctx)

		case "remove":
			_ = a.Remove(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "search":
			_ = a.Search(ctx)

		case "card":
			_ = a.Card(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
