// Package models defines the domain types shared by the client and server
// halves of watchkeeper: movies, watchlist entries, reviews, and users.
package models

// Movies live in two identifier spaces. The upstream catalog (TMDB) assigns
// one id before the movie is ever saved; the persistent store assigns the
// other on first save. Keeping them as distinct types makes accidental
// cross-space use a compile error instead of a data bug.

// CatalogID identifies a movie in the upstream catalog. Stable and immutable
// once assigned by the provider.
type CatalogID int64

// MovieID identifies a movie row in the persistent store. Zero for
// search-result-only instances that have not been saved yet.
type MovieID int64

// UserID identifies a registered user.
type UserID int64

// EntryID identifies a watchlist row.
type EntryID int64

// ReviewID identifies a review row.
type ReviewID int64
