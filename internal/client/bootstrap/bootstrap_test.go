package bootstrap

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saciinol/watchkeeper/internal/client/config"
	"github.com/saciinol/watchkeeper/internal/client/localdb"
	"github.com/saciinol/watchkeeper/internal/client/session"
	"github.com/saciinol/watchkeeper/internal/logging"
	"github.com/saciinol/watchkeeper/internal/models"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
	require.NoError(t, err)
}

// seedSession persists an authenticated session into the database at path.
func seedSession(t *testing.T, path, token string) {
	t.Helper()
	ctx := context.Background()

	db, err := localdb.Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	sess := session.NewStore(localdb.NewMetadataRepository(db))
	require.NoError(t, sess.Login(ctx, models.User{ID: 1, Name: "alice", Email: "alice@example.com"}, token))
}

func TestNew_RestoredSessionWarmsCaches(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "client.db")
	seedSession(t, dbPath, "token-123")

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/movies", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, []models.Movie{{ID: 7, CatalogID: 157336, Title: "Interstellar"}})
	})
	mux.HandleFunc("GET /api/watchlist/{userId}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		writeEnvelope(t, w, []models.WatchlistItem{
			{EntryID: 1, UserID: 1, MovieID: 7, CatalogID: 157336, Title: "Interstellar", Status: models.StatusWatching},
		})
	})
	mux.HandleFunc("GET /api/reviews/user/{userId}", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, []models.Review{{ID: 1, UserID: 1, MovieID: 7, Rating: 5}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := &config.Config{ServerURL: srv.URL, DatabasePath: dbPath}
	c, err := New(ctx, cfg, testLogger(), nil)
	require.NoError(t, err)
	defer c.Close()

	assert.True(t, c.Session.Authenticated())
	assert.Len(t, c.Catalog.Saved(), 1)
	assert.Len(t, c.Watchlist.Items(), 1)
	assert.Len(t, c.Reviews.UserReviews(), 1)
}

func TestNew_NoSessionMakesNoRequests(t *testing.T) {
	ctx := context.Background()

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	cfg := &config.Config{ServerURL: srv.URL, DatabasePath: filepath.Join(t.TempDir(), "client.db")}
	c, err := New(ctx, cfg, testLogger(), nil)
	require.NoError(t, err)
	defer c.Close()

	assert.False(t, c.Session.Authenticated())
	assert.Zero(t, hits.Load())
	assert.Empty(t, c.Watchlist.Items())
}

func TestNew_FailedPreloadDoesNotFailStartup(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "client.db")
	seedSession(t, dbPath, "token-123")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "internal error"})
	}))
	defer srv.Close()

	cfg := &config.Config{ServerURL: srv.URL, DatabasePath: dbPath}
	c, err := New(ctx, cfg, testLogger(), nil)
	require.NoError(t, err)
	defer c.Close()

	assert.True(t, c.Session.Authenticated())
	assert.Empty(t, c.Catalog.Saved())
	assert.Empty(t, c.Watchlist.Items())
}
