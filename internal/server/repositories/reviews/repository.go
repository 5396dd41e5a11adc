package reviews

import (
	"context"

	"github.com/saciinol/watchkeeper/internal/models"
)

type Repository interface {
	// Upsert creates the review or replaces the rating and comment of the
	// user's existing review of the movie.
	Upsert(ctx context.Context, userID models.UserID, movieID models.MovieID, rating int, comment string) (*models.Review, error)
	ListByMovie(ctx context.Context, movieID models.MovieID) ([]models.Review, error)
	ListByUser(ctx context.Context, userID models.UserID) ([]models.Review, error)
	GetByID(ctx context.Context, id models.ReviewID) (*models.Review, error)
	Delete(ctx context.Context, id models.ReviewID) error
}
