// Package server initializes and runs the backend: it opens the database,
// applies migrations, wires repositories into services, and serves the HTTP
// API with graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/saciinol/watchkeeper/internal/logging"
	"github.com/saciinol/watchkeeper/internal/server/config"
	"github.com/saciinol/watchkeeper/internal/server/httpapi"
	"github.com/saciinol/watchkeeper/internal/server/migrations"
	"github.com/saciinol/watchkeeper/internal/server/repositories/movies"
	"github.com/saciinol/watchkeeper/internal/server/repositories/reviews"
	"github.com/saciinol/watchkeeper/internal/server/repositories/users"
	"github.com/saciinol/watchkeeper/internal/server/services"
	"github.com/saciinol/watchkeeper/internal/server/tmdb"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := migrations.Run(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	movieRepo := movies.NewPostgresRepository(db)

	authService := services.NewAuthService(users.NewPostgresRepository(db), cfg)
	movieService := services.NewMovieService(movieRepo, tmdb.NewClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey))
	watchlistService := services.NewWatchlistService(db)
	reviewService := services.NewReviewService(reviews.NewPostgresRepository(db), movieRepo)

	server := httpapi.NewServer(cfg.EndpointAddr, logger, authService, movieService, watchlistService, reviewService)

	return &App{config: cfg, logger: logger, db: db, server: server}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
