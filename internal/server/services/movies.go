package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/saciinol/watchkeeper/internal/common"
	"github.com/saciinol/watchkeeper/internal/models"
	"github.com/saciinol/watchkeeper/internal/server/repositories/movies"
)

// Catalog is the external movie search surface. *tmdb.Client satisfies it.
type Catalog interface {
	Search(ctx context.Context, query string) ([]models.Movie, error)
}

type MovieService struct {
	repo    movies.Repository
	catalog Catalog
}

func NewMovieService(repo movies.Repository, catalog Catalog) *MovieService {
	return &MovieService{repo: repo, catalog: catalog}
}

// Search proxies the query to the external catalog. Results carry catalog
// ids only; nothing is persisted.
func (s *MovieService) Search(ctx context.Context, query string) ([]models.Movie, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", common.ErrValidation)
	}
	return s.catalog.Search(ctx, query)
}

// Save persists a catalog result. Saving an already saved movie returns the
// existing row.
func (s *MovieService) Save(ctx context.Context, movie models.Movie) (*models.Movie, error) {
	if movie.CatalogID <= 0 {
		return nil, fmt.Errorf("%w: tmdb_id is required", common.ErrValidation)
	}
	if movie.Title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	return s.repo.Save(ctx, &movie)
}

func (s *MovieService) List(ctx context.Context) ([]models.Movie, error) {
	return s.repo.List(ctx)
}

func (s *MovieService) GetByID(ctx context.Context, id models.MovieID) (*models.Movie, error) {
	return s.repo.GetByID(ctx, id)
}
