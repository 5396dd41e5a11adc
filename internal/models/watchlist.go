package models

// Status is the lifecycle state of a watchlist entry. Transitions carry no
// ordering constraint: any status may follow any other.
type Status string

const (
	StatusWantToWatch Status = "want_to_watch"
	StatusWatching    Status = "watching"
	StatusCompleted   Status = "completed"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusWantToWatch, StatusWatching, StatusCompleted:
		return true
	}
	return false
}

// WatchlistEntry is a watchlists row as stored: at most one per
// (user, movie) pair, enforced by the store's upsert.
type WatchlistEntry struct {
	ID      EntryID `json:"id"`
	UserID  UserID  `json:"user_id"`
	MovieID MovieID `json:"movie_id"`
	Status  Status  `json:"status"`
}

// WatchlistItem is an entry joined with the movie fields it references, the
// shape the watchlist listing endpoint returns. Movie fields are embedded by
// value at merge time; a later catalog update does not reach into an item
// already merged.
type WatchlistItem struct {
	EntryID   EntryID   `json:"id"`
	UserID    UserID    `json:"user_id"`
	MovieID   MovieID   `json:"movie_id"`
	Status    Status    `json:"status"`
	CatalogID CatalogID `json:"tmdb_id"`
	Title     string    `json:"title"`
	Year      *int      `json:"year"`
	PosterURL *string   `json:"poster_url"`
	Plot      *string   `json:"plot"`
}
