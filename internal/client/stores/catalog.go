// Package stores holds the client's normalized in-memory domain state: the
// catalog, watchlist, and review caches. Each store owns its collection
// exclusively and is constructed explicitly (no package-level state); the
// bootstrap coordinator wires them together and hands them to consumers.
//
// Read operations record classified failures in a store-local error field
// and reset the affected collection, so the UI never shows stale data next
// to an error banner. Write operations leave local state untouched on
// failure and propagate the classified error.
package stores

import (
	"context"
	"strings"
	"sync"

	"github.com/saciinol/watchkeeper/internal/client/api"
	"github.com/saciinol/watchkeeper/internal/models"
)

// CatalogStore caches movie entities keyed by their external catalog id.
// It keeps two disjoint collections: a transient search-result list,
// replaced wholesale on each search, and the saved collection, accumulated
// and deduplicated by catalog id. A focus slot holds the movie currently
// being viewed.
type CatalogStore struct {
	mu      sync.Mutex
	client  api.Client
	results []models.Movie
	saved   []models.Movie
	current *models.Movie
	lastErr error
}

func NewCatalogStore(client api.Client) *CatalogStore {
	return &CatalogStore{client: client}
}

// Search replaces the search results with the payload of one catalog query.
// A blank query clears results locally and issues no network call; that is
// a no-op, not an error. Rapid duplicate calls are the caller's concern
// (debounce is a UI behavior): each non-blank call issues exactly one
// request. Failures clear the results, are recorded for passive display,
// and are also returned so programmatic callers can branch.
func (s *CatalogStore) Search(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		s.mu.Lock()
		s.results = nil
		s.lastErr = nil
		s.mu.Unlock()
		return nil
	}

	found, err := s.client.SearchMovies(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.results = nil
		s.lastErr = err
		return err
	}
	s.results = found
	s.lastErr = nil
	return nil
}

// Results returns a copy of the current search results.
func (s *CatalogStore) Results() []models.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Movie(nil), s.results...)
}

// ClearSearch drops the search results and any recorded error.
func (s *CatalogStore) ClearSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = nil
	s.lastErr = nil
}

// LoadByID fetches one movie by its internal store id into the focus slot.
// A not_found classification is returned as-is so callers can render
// "not found" instead of "retry".
func (s *CatalogStore) LoadByID(ctx context.Context, id models.MovieID) error {
	movie, err := s.client.GetMovie(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.current = nil
		s.lastErr = err
		return err
	}
	s.current = movie
	s.lastErr = nil
	return nil
}

// Current returns a copy of the focused movie, or nil.
func (s *CatalogStore) Current() *models.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	m := *s.current
	return &m
}

// Save persists a movie. The server upsert is insert-or-return-existing, so
// either outcome is success; the returned movie carries the store-assigned
// id. Locally the saved collection is deduplicated by catalog id: adding a
// movie already present is a no-op.
func (s *CatalogStore) Save(ctx context.Context, movie models.Movie) (*models.Movie, error) {
	saved, err := s.client.SaveMovie(ctx, movie)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.findSaved(saved.CatalogID); !ok {
		s.saved = append(s.saved, *saved)
	}
	m := *saved
	return &m, nil
}

// LoadSaved replaces the saved collection with the server's list.
func (s *CatalogStore) LoadSaved(ctx context.Context) error {
	movies, err := s.client.ListMovies(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.saved = nil
		s.lastErr = err
		return err
	}
	s.saved = movies
	s.lastErr = nil
	return nil
}

// Saved returns a copy of the saved collection.
func (s *CatalogStore) Saved() []models.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Movie(nil), s.saved...)
}

// IsSaved reports whether a movie with the given catalog id has been saved.
func (s *CatalogStore) IsSaved(id models.CatalogID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.findSaved(id)
	return ok
}

// Err returns the last recorded read failure, or nil.
func (s *CatalogStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// findSaved scans the saved slice. The collection is small (one user's
// saved movies), so a flat scan is cheaper than maintaining an index.
func (s *CatalogStore) findSaved(id models.CatalogID) (int, bool) {
	for i := range s.saved {
		if s.saved[i].CatalogID == id {
			return i, true
		}
	}
	return 0, false
}
