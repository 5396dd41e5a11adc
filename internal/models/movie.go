package models

// Movie is a catalog entity. Year, PosterURL and Plot are nullable upstream,
// so they are pointers here and on the wire.
type Movie struct {
	ID        MovieID   `json:"id,omitempty"`
	CatalogID CatalogID `json:"tmdb_id"`
	Title     string    `json:"title"`
	Year      *int      `json:"year"`
	PosterURL *string   `json:"poster_url"`
	Plot      *string   `json:"plot"`
}

// Saved reports whether the movie has a store-assigned id.
func (m Movie) Saved() bool { return m.ID != 0 }
