package httpapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/saciinol/watchkeeper/internal/logging"
	"github.com/saciinol/watchkeeper/internal/models"
	"github.com/saciinol/watchkeeper/internal/server/config"
	"github.com/saciinol/watchkeeper/internal/server/repositories/movies"
	"github.com/saciinol/watchkeeper/internal/server/repositories/reviews"
	"github.com/saciinol/watchkeeper/internal/server/repositories/users"
	"github.com/saciinol/watchkeeper/internal/server/services"
)

type stubCatalog struct {
	results []models.Movie
}

func (s *stubCatalog) Search(ctx context.Context, query string) ([]models.Movie, error) {
	return s.results, nil
}

func setupSchema(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	schema := `
	CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
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
	);
	CREATE TABLE reviews (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		movie_id INTEGER NOT NULL,
		rating INTEGER NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, movie_id)
	);`
	_, err = db.Exec(schema)
	require.NoError(t, err)

	return db
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db := setupSchema(t)
	cfg := &config.Config{SecretKey: "test-secret", TokenValidityDuration: time.Hour}
	log := logging.NewSlogLogger(slog.New(slog.DiscardHandler))

	movieRepo := movies.NewPostgresRepository(db)
	authService := services.NewAuthService(users.NewPostgresRepository(db), cfg)
	movieService := services.NewMovieService(movieRepo, &stubCatalog{})
	watchlistService := services.NewWatchlistService(db)
	reviewService := services.NewReviewService(reviews.NewPostgresRepository(db), movieRepo)

	server := NewServer(":0", log, authService, movieService, watchlistService, reviewService)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, method, url, token string, body any) (int, apiResponse) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func register(t *testing.T, ts *httptest.Server, name, email string) (models.User, string) {
	t.Helper()

	status, res := doJSON(t, http.MethodPost, ts.URL+"/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, status, "register failed: %s", res.Message)

	var auth struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &auth))
	require.NotEmpty(t, auth.Token)
	return auth.User, auth.Token
}

func TestAPI_AuthFlow(t *testing.T) {
	ts := newTestServer(t)

	user, _ := register(t, ts, "alice", "alice@example.com")
	assert.Equal(t, "alice", user.Name)

	status, res := doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, res.Success)

	status, res = doJSON(t, http.MethodPost, ts.URL+"/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Message)
}

func TestAPI_WatchlistFlow(t *testing.T) {
	ts := newTestServer(t)

	_, token := register(t, ts, "alice", "alice@example.com")
	_, otherToken := register(t, ts, "bob", "bob@example.com")

	// mutating the watchlist requires a token
	status, _ := doJSON(t, http.MethodPost, ts.URL+"/api/watchlist", "", map[string]any{
		"tmdb_id": 157336, "title": "Interstellar", "status": "watching",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, res := doJSON(t, http.MethodPost, ts.URL+"/api/watchlist", token, map[string]any{
		"tmdb_id": 157336, "title": "Interstellar", "status": "watching",
	})
	require.Equal(t, http.StatusOK, status, res.Message)

	var upsert struct {
		Movie     models.Movie          `json:"movie"`
		Watchlist models.WatchlistEntry `json:"watchlist"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &upsert))
	assert.Equal(t, models.StatusWatching, upsert.Watchlist.Status)
	assert.NotZero(t, upsert.Movie.ID)

	// adding the same movie again moves the entry instead of duplicating
	status, res = doJSON(t, http.MethodPost, ts.URL+"/api/watchlist", token, map[string]any{
		"tmdb_id": 157336, "title": "Interstellar", "status": "completed",
	})
	require.Equal(t, http.StatusOK, status)
	var second struct {
		Watchlist models.WatchlistEntry `json:"watchlist"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &second))
	assert.Equal(t, upsert.Watchlist.ID, second.Watchlist.ID)
	assert.Equal(t, models.StatusCompleted, second.Watchlist.Status)

	ownerURL := fmt.Sprintf("%s/api/watchlist/%d", ts.URL, upsert.Watchlist.UserID)

	status, res = doJSON(t, http.MethodGet, ownerURL, token, nil)
	require.Equal(t, http.StatusOK, status)
	var items []models.WatchlistItem
	require.NoError(t, json.Unmarshal(res.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Interstellar", items[0].Title)

	// someone else's watchlist is off limits
	status, _ = doJSON(t, http.MethodGet, ownerURL, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, http.MethodDelete,
		fmt.Sprintf("%s/api/watchlist/%d/%d", ts.URL, upsert.Watchlist.UserID, upsert.Movie.ID), token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, http.MethodDelete,
		fmt.Sprintf("%s/api/watchlist/%d/%d", ts.URL, upsert.Watchlist.UserID, upsert.Movie.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_ReviewFlow(t *testing.T) {
	ts := newTestServer(t)

	_, token := register(t, ts, "alice", "alice@example.com")
	_, otherToken := register(t, ts, "bob", "bob@example.com")

	status, res := doJSON(t, http.MethodPost, ts.URL+"/api/movies", token, map[string]any{
		"tmdb_id": 157336, "title": "Interstellar",
	})
	require.Equal(t, http.StatusCreated, status, res.Message)
	var movie models.Movie
	require.NoError(t, json.Unmarshal(res.Data, &movie))

	status, res = doJSON(t, http.MethodPost, ts.URL+"/api/reviews", token, map[string]any{
		"movie_id": movie.ID, "rating": 6,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, res = doJSON(t, http.MethodPost, ts.URL+"/api/reviews", token, map[string]any{
		"movie_id": movie.ID, "rating": 5, "comment": "masterpiece",
	})
	require.Equal(t, http.StatusCreated, status, res.Message)
	var review models.Review
	require.NoError(t, json.Unmarshal(res.Data, &review))

	// review listing for the movie is public and carries the author name
	status, res = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/reviews/%d", ts.URL, movie.ID), "", nil)
	require.Equal(t, http.StatusOK, status)
	var list []models.Review
	require.NoError(t, json.Unmarshal(res.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "alice", list[0].UserName)

	// for anyone but the author the review does not exist
	status, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/reviews/%d", ts.URL, review.ID), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/reviews/%d", ts.URL, review.ID), token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, res = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/reviews/%d", ts.URL, movie.ID), "", nil)
	require.Equal(t, http.StatusOK, status)
	list = nil
	require.NoError(t, json.Unmarshal(res.Data, &list))
	assert.Empty(t, list)
}

func TestAPI_UserReviewsRoutePrecedence(t *testing.T) {
	ts := newTestServer(t)

	user, token := register(t, ts, "alice", "alice@example.com")

	// /api/reviews/user/{userId} must not be swallowed by /api/reviews/{movieId}
	status, res := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/reviews/user/%d", ts.URL, user.ID), token, nil)
	require.Equal(t, http.StatusOK, status, res.Message)

	var list []models.Review
	require.NoError(t, json.Unmarshal(res.Data, &list))
	assert.Empty(t, list)
}
