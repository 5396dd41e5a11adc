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
	Search(ctx context.Context, args []string) error
	ClearSearch(ctx context.Context) error
	SaveMovie(ctx context.Context, args []string) error
	ListSaved(ctx context.Context) error
	ShowMovie(ctx context.Context, args []string) error
	ShowWatchlist(ctx context.Context, args []string) error
	AddToWatchlist(ctx context.Context, args []string) error
	SetStatus(ctx context.Context, args []string) error
	RemoveFromWatchlist(ctx context.Context, args []string) error
	MovieReviews(ctx context.Context, args []string) error
	MyReviews(ctx context.Context) error
	SubmitReview(ctx context.Context, args []string) error
	DeleteReview(ctx context.Context, args []string) error
}

// runREPL starts a simple read-eval-print loop.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Before login only register, login, and exit are accepted. Errors from
// command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("wk %s> ", statusFn()))
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

		var err error

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: search <query>, clear, save <tmdb id>, movies, movie <id>,")
				printlnFn("  watchlist [status], add <tmdb id> <status>, status <tmdb id> <status>, remove <tmdb id>,")
				printlnFn("  reviews <movie id>, myreviews, review <movie id> <rating>, delreview <movie id>,")
				printlnFn("  logout, exit")
				printlnFn("Statuses: want_to_watch, watching, completed")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "search":
			err = a.Search(ctx, args)

		case "clear":
			err = a.ClearSearch(ctx)

		case "save":
			err = a.SaveMovie(ctx, args)

		case "movies":
			err = a.ListSaved(ctx)

		case "movie":
			err = a.ShowMovie(ctx, args)

		case "watchlist", "wl":
			err = a.ShowWatchlist(ctx, args)

		case "add":
			err = a.AddToWatchlist(ctx, args)

		case "status":
			err = a.SetStatus(ctx, args)

		case "remove":
			err = a.RemoveFromWatchlist(ctx, args)

		case "reviews":
			err = a.MovieReviews(ctx, args)

		case "myreviews":
			err = a.MyReviews(ctx)

		case "review":
			err = a.SubmitReview(ctx, args)

		case "delreview":
			err = a.DeleteReview(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
