package watchlists

import (
	"context"
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

func (r *PostgresRepository) Upsert(ctx context.Context, userID models.UserID, movieID models.MovieID, status models.Status) (*models.WatchlistEntry, error) {

	query :=
		`INSERT INTO watchlists (user_id, movie_id, status)
         VALUES ($1, $2, $3)
         ON CONFLICT (user_id, movie_id) DO UPDATE SET status = EXCLUDED.status
         RETURNING id, user_id, movie_id, status
         `

	entry := &models.WatchlistEntry{}
	err := r.db.QueryRowContext(ctx, query, userID, movieID, status).Scan(
		&entry.ID, &entry.UserID, &entry.MovieID, &entry.Status)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID models.UserID) ([]models.WatchlistItem, error) {
	query :=
		`SELECT w.id, w.user_id, w.movie_id, w.status,
                m.tmdb_id, m.title, m.year, m.poster_url, m.plot
         FROM watchlists w
         JOIN movies m ON m.id = w.movie_id
         WHERE w.user_id = $1
         ORDER BY w.id DESC
         `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.WatchlistItem
	for rows.Next() {
		var it models.WatchlistItem
		if err := rows.Scan(&it.EntryID, &it.UserID, &it.MovieID, &it.Status,
			&it.CatalogID, &it.Title, &it.Year, &it.PosterURL, &it.Plot); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID models.UserID, movieID models.MovieID) error {
	query :=
		`DELETE FROM watchlists
         WHERE user_id = $1 AND movie_id = $2
         `

	res, err := r.db.ExecContext(ctx, query, userID, movieID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}
