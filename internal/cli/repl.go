package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = func(a ...any) { fmt.Println(a...) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Sort(ctx context.Context, order string) error
	More(ctx context.Context) error
	Show(ctx context.Context) error
	NewPost(ctx context.Context) error
	EditPost(ctx context.Context) error
	DeletePost(ctx context.Context) error
	Refresh(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the blogkeeper CLI.
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
//	Always available:
//	  - help           — show available commands
//	  - (l)ist         — show the current page of posts
//	  - search <text>  — filter posts; empty text clears the filter
//	  - sort <order>   — newest | oldest | title
//	  - more           — reveal the next page
//	  - show           — show a single post (interactive ID prompt)
//	  - refresh        — refetch the collection if it was never loaded
//	  - whoami         — show the current session
//	  - exit | quit    — leave the program
//
//	Not logged in:
//	  - register       — create an account
//	  - login          — authenticate
//
//	Logged in:
//	  - new            — create a post
//	  - edit           — edit a post (interactive ID prompt)
//	  - delete         — delete a post (interactive ID prompt)
//	  - logout         — log out
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("blog %s > ", statusFn()))
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
				printlnFn("Available commands: (l)ist, search <text>, sort <order>, more, show, new, edit, delete, refresh, whoami, logout, exit")
			} else {
				printlnFn("Available commands: (l)ist, search <text>, sort <order>, more, show, refresh, register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))

		case "sort":
			if len(args) == 0 {
				printlnFn("Usage: sort newest|oldest|title")
				continue
			}
			_ = a.Sort(ctx, args[0])

		case "more":
			_ = a.More(ctx)

		case "show":
			_ = a.Show(ctx)

		case "new":
			_ = a.NewPost(ctx)

		case "edit":
			_ = a.EditPost(ctx)

		case "delete":
			_ = a.DeletePost(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
