// Package api implements the client side of the watchkeeper REST boundary.
// The Gateway performs exactly one HTTP exchange per call, with no retries
// or backoff, and classifies every failure into the apierr taxonomy before
// surfacing it.
package api

import (
	"context"

	"github.com/saciinol/watchkeeper/internal/models"
)

// Client is the outbound call surface the domain stores depend on. Tests
// substitute a fake; Gateway is the real implementation.
type Client interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)

	SearchMovies(ctx context.Context, query string) ([]models.Movie, error)
	SaveMovie(ctx context.Context, movie models.Movie) (*models.Movie, error)
	ListMovies(ctx context.Context) ([]models.Movie, error)
	GetMovie(ctx context.Context, id models.MovieID) (*models.Movie, error)

	UpsertWatchlist(ctx context.Context, movie models.Movie, status models.Status) (*WatchlistUpsert, error)
	GetWatchlist(ctx context.Context, userID models.UserID) ([]models.WatchlistItem, error)
	RemoveFromWatchlist(ctx context.Context, userID models.UserID, movieID models.MovieID) error

	UpsertReview(ctx context.Context, movieID models.MovieID, rating int, comment string) (*models.Review, error)
	GetMovieReviews(ctx context.Context, movieID models.MovieID) ([]models.Review, error)
	GetUserReviews(ctx context.Context, userID models.UserID) ([]models.Review, error)
	DeleteReview(ctx context.Context, id models.ReviewID) error
}

// AuthResult is the payload of a successful login or registration.
type AuthResult struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// WatchlistUpsert is the composite payload of the watchlist upsert: the
// created-or-found movie together with the resulting entry.
type WatchlistUpsert struct {
	Movie     models.Movie          `json:"movie"`
	Watchlist models.WatchlistEntry `json:"watchlist"`
}
