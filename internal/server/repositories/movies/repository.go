package movies

import (
	"context"

	"github.com/saciinol/watchkeeper/internal/models"
)

type Repository interface {
	// Save inserts the movie or, when its catalog id is already present,
	// returns the previously saved row untouched.
	Save(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	List(ctx context.Context) ([]models.Movie, error)
	GetByID(ctx context.Context, id models.MovieID) (*models.Movie, error)
}
