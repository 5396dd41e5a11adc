package models

import "time"

// Rating bounds for a review.
const (
	MinRating = 1
	MaxRating = 5
)

// MaxCommentLength bounds the free-text comment.
const MaxCommentLength = 2000

// Review is a reviews row: at most one per (user, movie) pair, enforced by
// the store's upsert. UserName, Title and PosterURL are join artifacts
// present only in responses that include them.
type Review struct {
	ID        ReviewID  `json:"id"`
	UserID    UserID    `json:"user_id"`
	MovieID   MovieID   `json:"movie_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	UserName  string    `json:"user_name,omitempty"`
	Title     string    `json:"title,omitempty"`
	PosterURL *string   `json:"poster_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidRating reports whether r is an integer in [MinRating, MaxRating].
func ValidRating(r int) bool { return r >= MinRating && r <= MaxRating }
