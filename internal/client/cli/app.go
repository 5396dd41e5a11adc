package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/saciinol/watchkeeper/internal/client/bootstrap"
	"github.com/saciinol/watchkeeper/internal/client/config"
	"github.com/saciinol/watchkeeper/internal/logging"
)

// App is the interactive client. Command handlers live in auth.go,
// catalog.go, watchlist.go, and review.go; the dispatch loop is in repl.go.
type App struct {
	config    *config.Config
	container *bootstrap.Container
	reader    *bufio.Reader
	out       io.Writer
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	a := &App{
		config: cfg,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	container, err := bootstrap.New(ctx, cfg, log, func() {
		fmt.Fprintln(a.out, "Session expired, please log in again.")
	})
	if err != nil {
		return nil, err
	}
	a.container = container

	return a, nil
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.container.Close()

	if a.isLoggedIn() {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", a.container.Session.User().Name)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.container.Session.Authenticated()
}

func (a *App) getStatus() string {
	if u := a.container.Session.User(); u != nil && a.isLoggedIn() {
		return fmt.Sprintf("(%s)", u.Name)
	}
	return ""
}
