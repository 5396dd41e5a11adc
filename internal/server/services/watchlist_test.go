package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/saciinol/watchkeeper/internal/common"
	"github.com/saciinol/watchkeeper/internal/models"
)

// setupDB creates an in-memory database with the schema slice the watchlist
// flow touches.
func setupDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	schema := `
	CREATE TABLE movies (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tmdb_id INTEGER NOT NULL UNIQUE,
		title TEXT NOT NULL,
		year INTEGER,
		poster_url TEXT,
		plot TEXT
	);
	CREATE TABLE watchlists (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		movie_id INTEGER NOT NULL,
		status TEXT NOT NULL,
		UNIQUE (user_id, movie_id)
	);`
	_, err = db.Exec(schema)
	require.NoError(t, err)

	return db
}

func TestWatchlistService_UpsertCreatesThenMoves(t *testing.T) {
	db := setupDB(t)
	svc := NewWatchlistService(db)
	ctx := context.Background()

	year := 2014
	movie := models.Movie{CatalogID: 157336, Title: "Interstellar", Year: &year}

	first, err := svc.Upsert(ctx, 1, movie, models.StatusWantToWatch)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWantToWatch, first.Watchlist.Status)
	assert.NotZero(t, first.Movie.ID)

	second, err := svc.Upsert(ctx, 1, movie, models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, second.Watchlist.Status)

	// same movie row and same entry, only the status moved
	assert.Equal(t, first.Movie.ID, second.Movie.ID)
	assert.Equal(t, first.Watchlist.ID, second.Watchlist.ID)

	items, err := svc.ListForUser(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.StatusCompleted, items[0].Status)
	assert.Equal(t, "Interstellar", items[0].Title)
}

func TestWatchlistService_UpsertValidation(t *testing.T) {
	db := setupDB(t)
	svc := NewWatchlistService(db)
	ctx := context.Background()

	movie := models.Movie{CatalogID: 157336, Title: "Interstellar"}

	_, err := svc.Upsert(ctx, 1, movie, models.Status("binged"))
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Upsert(ctx, 1, models.Movie{Title: "No Catalog ID"}, models.StatusWatching)
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Upsert(ctx, 1, models.Movie{CatalogID: 1}, models.StatusWatching)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestWatchlistService_ListIsPrivate(t *testing.T) {
	db := setupDB(t)
	svc := NewWatchlistService(db)

	_, err := svc.ListForUser(context.Background(), 1, 2)
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestWatchlistService_Remove(t *testing.T) {
	db := setupDB(t)
	svc := NewWatchlistService(db)
	ctx := context.Background()

	movie := models.Movie{CatalogID: 603, Title: "The Matrix"}
	res, err := svc.Upsert(ctx, 1, movie, models.StatusWatching)
	require.NoError(t, err)

	err = svc.Remove(ctx, 1, 2, res.Movie.ID)
	assert.ErrorIs(t, err, common.ErrForbidden)

	require.NoError(t, svc.Remove(ctx, 1, 1, res.Movie.ID))

	err = svc.Remove(ctx, 1, 1, res.Movie.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	items, err := svc.ListForUser(ctx, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}
