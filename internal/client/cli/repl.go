package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
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
	Profile(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
	Create(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Search(ctx context.Context, text string) error
	Sort(ctx context.Context, field string) error
	Page(ctx context.Context, index int) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	Show(ctx context.Context, shortCode string) error
	Delete(ctx context.Context, shortCode string) error
	Dashboard(ctx context.Context) error
	Analytics(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the SnipURL CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help                          — show available commands
//	  - register                      — create an account
//	  - login                         — authenticate
//	  - exit | quit                   — leave the program
//
//	Logged in:
//	  - help                          — show available commands
//	  - create <url> [title...]       — shorten a link
//	  - l | list                      — show the current page of links
//	  - search [text...]              — filter the list (empty text clears)
//	  - sort <field>                  — sort the list (repeat to flip order)
//	  - page <n> | next | prev        — move between pages
//	  - show <code>                   — show one link
//	  - delete <code>                 — delete a link
//	  - dash | dashboard              — aggregated account overview
//	  - analytics <code> [days]       — per-link click analytics
//	  - export <code> [format] [days] — save analytics to a file
//	  - profile | update              — view / edit the cached profile
//	  - logout                        — log out
//	  - exit | quit                   — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("snip %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: create, (l)ist, search, sort, page, next, prev, show, delete, dashboard, analytics, export, profile, update, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "update":
			_ = a.UpdateProfile(ctx)

		case "create", "new":
			_ = a.Create(ctx, args)

		case "l", "list":
			_ = a.List(ctx)

		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))

		case "sort":
			if len(args) == 0 {
				printlnFn("Usage: sort <field> (createdAt, clickCount, title, originalUrl)")
				continue
			}
			_ = a.Sort(ctx, args[0])

		case "page":
			if len(args) == 0 {
				printlnFn("Usage: page <number>")
				continue
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				printlnFn("Usage: page <number>")
				continue
			}
			_ = a.Page(ctx, n)

		case "next":
			_ = a.NextPage(ctx)

		case "prev":
			_ = a.PrevPage(ctx)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <short-code>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <short-code>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "dash", "dashboard":
			_ = a.Dashboard(ctx)

		case "analytics":
			if len(args) == 0 {
				printlnFn("Usage: analytics <short-code> [days]")
				continue
			}
			_ = a.Analytics(ctx, args)

		case "export":
			if len(args) == 0 {
				printlnFn("Usage: export <short-code> [format] [days]")
				continue
			}
			_ = a.Export(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
