package watchlists

import (
	"context"

	"github.com/saciinol/watchkeeper/internal/models"
)

type Repository interface {
	// Upsert creates the entry or, when the user already lists the movie,
	// moves the existing entry to the given status.
	Upsert(ctx context.Context, userID models.UserID, movieID models.MovieID, status models.Status) (*models.WatchlistEntry, error)
	ListByUser(ctx context.Context, userID models.UserID) ([]models.WatchlistItem, error)
	Delete(ctx context.Context, userID models.UserID, movieID models.MovieID) error
}
