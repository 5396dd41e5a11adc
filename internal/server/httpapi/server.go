package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/saciinol/watchkeeper/internal/logging"
	"github.com/saciinol/watchkeeper/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

// Server wires the services to HTTP routes.
type Server struct {
	addr      string
	log       logging.Logger
	auth      *services.AuthService
	movies    *services.MovieService
	watchlist *services.WatchlistService
	reviews   *services.ReviewService
}

func NewServer(addr string, log logging.Logger, auth *services.AuthService, movies *services.MovieService, watchlist *services.WatchlistService, reviews *services.ReviewService) *Server {
	return &Server{
		addr:      addr,
		log:       log,
		auth:      auth,
		movies:    movies,
		watchlist: watchlist,
		reviews:   reviews,
	}
}

// Handler builds the route table. Method-qualified patterns keep dispatch in
// the mux; the more specific /api/reviews/user/{userId} route wins over the
// {movieId} wildcard.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	mux.HandleFunc("GET /api/movies/search", s.handleSearchMovies)
	mux.HandleFunc("POST /api/movies", s.handleSaveMovie)
	mux.HandleFunc("GET /api/movies", s.handleListMovies)
	mux.HandleFunc("GET /api/movies/{id}", s.handleGetMovie)

	mux.HandleFunc("POST /api/watchlist", s.requireAuth(s.handleUpsertWatchlist))
	mux.HandleFunc("GET /api/watchlist/{userId}", s.requireAuth(s.handleGetWatchlist))
	mux.HandleFunc("DELETE /api/watchlist/{userId}/{movieId}", s.requireAuth(s.handleRemoveFromWatchlist))

	mux.HandleFunc("POST /api/reviews", s.requireAuth(s.handleUpsertReview))
	mux.HandleFunc("GET /api/reviews/user/{userId}", s.requireAuth(s.handleGetUserReviews))
	mux.HandleFunc("GET /api/reviews/{movieId}", s.handleGetMovieReviews)
	mux.HandleFunc("DELETE /api/reviews/{id}", s.requireAuth(s.handleDeleteReview))

	return requestLogger(s.log, mux)
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.Info(ctx, "http server listening", "addr", s.addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
