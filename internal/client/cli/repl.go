package cli

import (
	"bufio"
	"context"
	"fmt"
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
	Whoami(ctx context.Context) error
	EditProfile(ctx context.Context) error
	List(ctx context.Context) error
	SetCategory(ctx context.Context, name string) error
	Search(ctx context.Context, term string) error
	SetSort(ctx context.Context, option string) error
	ClearFilters(ctx context.Context) error
	Reload(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Preview(ctx context.Context, id string) error
	SuggestTags(ctx context.Context) error
	RateQuality(ctx context.Context) error
	SetPreviewKey(ctx context.Context) error
	Buy(ctx context.Context, id string) error
	Sales(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the promptmart CLI.
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
//	Always:
//	  - help           — show available commands
//	  - list           — show the catalog under the current filters
//	  - category NAME  — filter by category ("All" to reset)
//	  - search TERM    — filter by title/content substring
//	  - sort OPTION    — latest | popular | rating | priceLow | priceHigh
//	  - clear          — reset all filters
//	  - reload         — refetch the catalog from the server
//	  - show ID        — display a single prompt
//	  - preview ID     — run the prompt through the AI preview service
//	  - tags           — suggest tags for entered prompt text
//	  - rate           — score entered prompt text
//	  - setkey         — install the AI preview API key
//	  - exit | quit    — leave the program
//
//	Not logged in:
//	  - register       — create an account
//	  - login          — authenticate
//
//	Logged in:
//	  - whoami         — show the current profile
//	  - profile        — edit the local profile
//	  - add            — create a prompt
//	  - edit ID        — update an owned prompt
//	  - delete ID      — delete an owned prompt
//	  - buy ID         — purchase a premium prompt
//	  - sales          — seller dashboard
//	  - logout         — log out
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pm> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		rest := strings.Join(parts[1:], " ")

		switch cmd {
		case "help":
			printlnFn("Browse: (l)ist, category, search, sort, clear, reload, show")
			printlnFn("AI: preview, tags, rate, setkey")
			if a.isLoggedIn() {
				printlnFn("Account: whoami, profile, add, edit, delete, buy, sales, logout, exit")
			} else {
				printlnFn("Account: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "profile":
			_ = a.EditProfile(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "category":
			if rest == "" {
				printlnFn("Usage: category <name>")
				continue
			}
			_ = a.SetCategory(ctx, rest)

		case "search":
			_ = a.Search(ctx, rest)

		case "sort":
			if rest == "" {
				printlnFn("Usage: sort <option>")
				continue
			}
			_ = a.SetSort(ctx, rest)

		case "clear":
			_ = a.ClearFilters(ctx)

		case "reload":
			_ = a.Reload(ctx)

		case "show":
			if rest == "" {
				printlnFn("Usage: show <id>")
				continue
			}
			_ = a.Show(ctx, rest)

		case "add":
			_ = a.Add(ctx)

		case "edit":
			if rest == "" {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.Edit(ctx, rest)

		case "delete":
			if rest == "" {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, rest)

		case "preview":
			if rest == "" {
				printlnFn("Usage: preview <id>")
				continue
			}
			_ = a.Preview(ctx, rest)

		case "tags":
			_ = a.SuggestTags(ctx)

		case "rate":
			_ = a.RateQuality(ctx)

		case "setkey":
			_ = a.SetPreviewKey(ctx)

		case "buy":
			if rest == "" {
				printlnFn("Usage: buy <id>")
				continue
			}
			_ = a.Buy(ctx, rest)

		case "sales":
			_ = a.Sales(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
