package stores

import (
	"context"
	"fmt"
	"sync"

	"github.com/saciinol/watchkeeper/internal/apierr"
	"github.com/saciinol/watchkeeper/internal/client/api"
	"github.com/saciinol/watchkeeper/internal/models"
)

// WatchlistStore caches the session user's watchlist: one ordered list of
// entries joined with the movie fields they reference. The per-status views
// are derived on read as pure filters over the canonical list; nothing
// derived is stored, so there is nothing to invalidate.
//
// Entries are matched by the movie's external catalog id during browsing
// and removed by internal store id; the distinct id types keep the two
// spaces from mixing. Lookups are flat scans: a personal watchlist is
// bounded and small, so a scan beats maintaining an index at every
// mutation.
type WatchlistStore struct {
	mu      sync.Mutex
	client  api.Client
	items   []models.WatchlistItem
	lastErr error
}

func NewWatchlistStore(client api.Client) *WatchlistStore {
	return &WatchlistStore{client: client}
}

// Load replaces the whole list with the server's view of the user's
// watchlist. The server serves only the session's own user; a cross-user id
// comes back as a permission classification, recorded like any other read
// failure.
func (s *WatchlistStore) Load(ctx context.Context, userID models.UserID) error {
	items, err := s.client.GetWatchlist(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.items = nil
		s.lastErr = err
		return err
	}
	s.items = items
	s.lastErr = nil
	return nil
}

// Items returns a copy of the canonical list.
func (s *WatchlistStore) Items() []models.WatchlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.WatchlistItem(nil), s.items...)
}

// ByStatus returns the derived view for one status, computed on read.
func (s *WatchlistStore) ByStatus(status models.Status) []models.WatchlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.WatchlistItem
	for _, it := range s.items {
		if it.Status == status {
			out = append(out, it)
		}
	}
	return out
}

// Get returns the entry for a movie by its catalog id, if present.
func (s *WatchlistStore) Get(id models.CatalogID) (models.WatchlistItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.find(id); ok {
		return s.items[i], true
	}
	return models.WatchlistItem{}, false
}

// AddOrUpdate upserts a movie onto the watchlist. The server creates the
// movie if it has never been saved and returns both the created-or-found
// movie and the resulting entry; locally this lands as a single atomic
// update: status and entry id are overwritten in place when an entry for
// the movie's catalog id already exists, otherwise a composite item is
// appended. Movie fields are merged by value. On failure local state is
// unchanged.
func (s *WatchlistStore) AddOrUpdate(ctx context.Context, movie models.Movie, status models.Status) error {
	if !status.Valid() {
		return apierr.New(apierr.KindValidation, fmt.Sprintf("invalid status %q", status))
	}

	res, err := s.client.UpsertWatchlist(ctx, movie, status)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.find(res.Movie.CatalogID); ok {
		s.items[i].Status = res.Watchlist.Status
		s.items[i].EntryID = res.Watchlist.ID
		return nil
	}
	s.items = append(s.items, merge(res.Movie, res.Watchlist))
	return nil
}

// UpdateStatus changes the status of an existing entry. It is a strict
// no-op when no entry exists for the movie: it never creates one, and in
// that case it issues no network call. This is what separates it from
// AddOrUpdate.
func (s *WatchlistStore) UpdateStatus(ctx context.Context, id models.CatalogID, status models.Status) error {
	if !status.Valid() {
		return apierr.New(apierr.KindValidation, fmt.Sprintf("invalid status %q", status))
	}

	s.mu.Lock()
	item, ok := s.getLocked(id)
	s.mu.Unlock()
	if !ok {
		return nil
	}

	res, err := s.client.UpsertWatchlist(ctx, itemMovie(item), status)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.find(id); ok {
		s.items[i].Status = res.Watchlist.Status
		s.items[i].EntryID = res.Watchlist.ID
	}
	return nil
}

// Remove deletes the entry referencing the given internal movie id. On
// failure (including not_found) local state is unchanged.
func (s *WatchlistStore) Remove(ctx context.Context, userID models.UserID, movieID models.MovieID) error {
	if err := s.client.RemoveFromWatchlist(ctx, userID, movieID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].MovieID == movieID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return nil
}

// Err returns the last recorded read failure, or nil.
func (s *WatchlistStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *WatchlistStore) find(id models.CatalogID) (int, bool) {
	for i := range s.items {
		if s.items[i].CatalogID == id {
			return i, true
		}
	}
	return 0, false
}

// getLocked is find plus value copy; callers must hold s.mu.
func (s *WatchlistStore) getLocked(id models.CatalogID) (models.WatchlistItem, bool) {
	if i, ok := s.find(id); ok {
		return s.items[i], true
	}
	return models.WatchlistItem{}, false
}

// merge builds the composite item from a movie and its entry, copying movie
// fields by value so later catalog mutations cannot reach into it.
func merge(m models.Movie, e models.WatchlistEntry) models.WatchlistItem {
	return models.WatchlistItem{
		EntryID:   e.ID,
		UserID:    e.UserID,
		MovieID:   m.ID,
		Status:    e.Status,
		CatalogID: m.CatalogID,
		Title:     m.Title,
		Year:      m.Year,
		PosterURL: m.PosterURL,
		Plot:      m.Plot,
	}
}

// itemMovie reconstructs the movie payload embedded in an item, used when
// re-upserting to change status.
func itemMovie(it models.WatchlistItem) models.Movie {
	return models.Movie{
		ID:        it.MovieID,
		CatalogID: it.CatalogID,
		Title:     it.Title,
		Year:      it.Year,
		PosterURL: it.PosterURL,
		Plot:      it.Plot,
	}
}
