package movies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/saciinol/watchkeeper/internal/common"
	"github.com/saciinol/watchkeeper/internal/dbx"
	"github.com/saciinol/watchkeeper/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Save resolves concurrent saves of the same catalog entry in the database:
// the insert does nothing on conflict and the existing row is fetched.
func (r *PostgresRepository) Save(ctx context.Context, movie *models.Movie) (*models.Movie, error) {

	query :=
		`INSERT INTO movies (tmdb_id, title, year, poster_url, plot)
         VALUES ($1, $2, $3, $4, $5)
         ON CONFLICT (tmdb_id) DO NOTHING
         RETURNING id
         `

	err := r.db.QueryRowContext(ctx, query,
		movie.CatalogID, movie.Title, movie.Year, movie.PosterURL, movie.Plot).Scan(&movie.ID)

	if err == nil {
		return movie, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return r.getByCatalogID(ctx, movie.CatalogID)
}

func (r *PostgresRepository) getByCatalogID(ctx context.Context, id models.CatalogID) (*models.Movie, error) {
	query :=
		`SELECT id, tmdb_id, title, year, poster_url, plot FROM movies
         WHERE tmdb_id = $1
         `

	movie := &models.Movie{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&movie.ID, &movie.CatalogID, &movie.Title, &movie.Year, &movie.PosterURL, &movie.Plot)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return movie, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Movie, error) {
	query :=
		`SELECT id, tmdb_id, title, year, poster_url, plot FROM movies
         ORDER BY id DESC
         `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Movie
	for rows.Next() {
		var m models.Movie
		if err := rows.Scan(&m.ID, &m.CatalogID, &m.Title, &m.Year, &m.PosterURL, &m.Plot); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id models.MovieID) (*models.Movie, error) {
	query :=
		`SELECT id, tmdb_id, title, year, poster_url, plot FROM movies
         WHERE id = $1
         `

	movie := &models.Movie{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&movie.ID, &movie.CatalogID, &movie.Title, &movie.Year, &movie.PosterURL, &movie.Plot)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return movie, nil
}
