package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saciinol/watchkeeper/internal/common"
	"github.com/saciinol/watchkeeper/internal/dbx"
	"github.com/saciinol/watchkeeper/internal/models"
	"github.com/saciinol/watchkeeper/internal/server/repositories/movies"
	"github.com/saciinol/watchkeeper/internal/server/repositories/watchlists"
)

// WatchlistUpsert is the upsert response: the resolved movie row plus the
// created or moved entry.
type WatchlistUpsert struct {
	Movie     models.Movie          `json:"movie"`
	Watchlist models.WatchlistEntry `json:"watchlist"`
}

// WatchlistService owns the find-or-create-then-upsert flow. It holds the
// raw handle because the two writes must share a transaction.
type WatchlistService struct {
	db *sql.DB
}

func NewWatchlistService(db *sql.DB) *WatchlistService {
	return &WatchlistService{db: db}
}

// Upsert resolves the movie (creating it on first sight) and puts it on the
// user's watchlist at the given status, atomically. Listing the same movie
// twice moves the existing entry instead of duplicating it.
func (s *WatchlistService) Upsert(ctx context.Context, userID models.UserID, movie models.Movie, status models.Status) (*WatchlistUpsert, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", common.ErrValidation, status)
	}
	if movie.CatalogID <= 0 {
		return nil, fmt.Errorf("%w: tmdb_id is required", common.ErrValidation)
	}
	if movie.Title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrValidation)
	}

	var result WatchlistUpsert
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		saved, err := movies.NewPostgresRepository(tx).Save(ctx, &movie)
		if err != nil {
			return err
		}

		entry, err := watchlists.NewPostgresRepository(tx).Upsert(ctx, userID, saved.ID, status)
		if err != nil {
			return err
		}

		result = WatchlistUpsert{Movie: *saved, Watchlist: *entry}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ListForUser returns the target user's watchlist. Watchlists are private:
// requesting someone else's is forbidden.
func (s *WatchlistService) ListForUser(ctx context.Context, requesterID, targetID models.UserID) ([]models.WatchlistItem, error) {
	if requesterID != targetID {
		return nil, common.ErrForbidden
	}
	return watchlists.NewPostgresRepository(s.db).ListByUser(ctx, targetID)
}

// Remove deletes the target user's entry for a movie. Only the owner may
// remove entries.
func (s *WatchlistService) Remove(ctx context.Context, requesterID, targetID models.UserID, movieID models.MovieID) error {
	if requesterID != targetID {
		return common.ErrForbidden
	}
	return watchlists.NewPostgresRepository(s.db).Delete(ctx, targetID, movieID)
}
