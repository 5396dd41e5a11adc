package reviews

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

func (r *PostgresRepository) Upsert(ctx context.Context, userID models.UserID, movieID models.MovieID, rating int, comment string) (*models.Review, error) {

	query :=
		`INSERT INTO reviews (user_id, movie_id, rating, comment)
         VALUES ($1, $2, $3, $4)
         ON CONFLICT (user_id, movie_id) DO UPDATE SET rating = EXCLUDED.rating, comment = EXCLUDED.comment
         RETURNING id, user_id, movie_id, rating, comment, created_at
         `

	review := &models.Review{}
	err := r.db.QueryRowContext(ctx, query, userID, movieID, rating, comment).Scan(
		&review.ID, &review.UserID, &review.MovieID, &review.Rating, &review.Comment, &review.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return review, nil
}

func (r *PostgresRepository) ListByMovie(ctx context.Context, movieID models.MovieID) ([]models.Review, error) {
	query :=
		`SELECT r.id, r.user_id, r.movie_id, r.rating, r.comment, r.created_at, u.name
         FROM reviews r
         JOIN users u ON u.id = r.user_id
         WHERE r.movie_id = $1
         ORDER BY r.created_at DESC
         `

	rows, err := r.db.QueryContext(ctx, query, movieID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Review
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.MovieID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UserName); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID models.UserID) ([]models.Review, error) {
	query :=
		`SELECT r.id, r.user_id, r.movie_id, r.rating, r.comment, r.created_at, m.title, m.poster_url
         FROM reviews r
         JOIN movies m ON m.id = r.movie_id
         WHERE r.user_id = $1
         ORDER BY r.created_at DESC
         `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Review
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.MovieID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.Title, &rv.PosterURL); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id models.ReviewID) (*models.Review, error) {
	query :=
		`SELECT id, user_id, movie_id, rating, comment, created_at FROM reviews
         WHERE id = $1
         `

	review := &models.Review{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&review.ID, &review.UserID, &review.MovieID, &review.Rating, &review.Comment, &review.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return review, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id models.ReviewID) error {
	query :=
		`DELETE FROM reviews
         WHERE id = $1
         `

	res, err := r.db.ExecContext(ctx, query, id)
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
