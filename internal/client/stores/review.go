package stores

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/saciinol/watchkeeper/internal/apierr"
	"github.com/saciinol/watchkeeper/internal/client/api"
	"github.com/saciinol/watchkeeper/internal/models"
)

// ReviewStore caches reviews in two parallel views: a per-movie mapping,
// populated lazily one movie at a time, and the current user's reviews
// across all movies. The two views are always committed together inside one
// critical section, so no caller can observe one updated without the other.
type ReviewStore struct {
	mu          sync.Mutex
	client      api.Client
	reviews     map[models.MovieID][]models.Review
	userReviews []models.Review
	lastErr     error
}

func NewReviewStore(client api.Client) *ReviewStore {
	return &ReviewStore{client: client, reviews: make(map[models.MovieID][]models.Review)}
}

// LoadForMovie replaces exactly one movie's entry in the mapping; other
// movies' cached reviews are untouched. On failure that entry is dropped
// and the error recorded.
func (s *ReviewStore) LoadForMovie(ctx context.Context, movieID models.MovieID) error {
	reviews, err := s.client.GetMovieReviews(ctx, movieID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		delete(s.reviews, movieID)
		s.lastErr = err
		return err
	}
	s.reviews[movieID] = reviews
	s.lastErr = nil
	return nil
}

// LoadForUser replaces the whole user-reviews list.
func (s *ReviewStore) LoadForUser(ctx context.Context, userID models.UserID) error {
	reviews, err := s.client.GetUserReviews(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.userReviews = nil
		s.lastErr = err
		return err
	}
	s.userReviews = reviews
	s.lastErr = nil
	return nil
}

// MovieReviews returns a copy of a movie's cached reviews; empty when that
// movie has not been loaded.
func (s *ReviewStore) MovieReviews(movieID models.MovieID) []models.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Review(nil), s.reviews[movieID]...)
}

// UserReviews returns a copy of the current user's reviews.
func (s *ReviewStore) UserReviews() []models.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Review(nil), s.userReviews...)
}

// UserReviewFor returns the user's review of one movie, if any.
func (s *ReviewStore) UserReviewFor(movieID models.MovieID) (models.Review, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.userReviews {
		if r.MovieID == movieID {
			return r, true
		}
	}
	return models.Review{}, false
}

// AverageRating is the arithmetic mean of the movie's cached ratings,
// rounded to one decimal. Zero reviews yield 0, not NaN.
func (s *ReviewStore) AverageRating(movieID models.MovieID) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	rs := s.reviews[movieID]
	if len(rs) == 0 {
		return 0
	}
	sum := 0
	for _, r := range rs {
		sum += r.Rating
	}
	return math.Round(float64(sum)/float64(len(rs))*10) / 10
}

// Submit upserts the user's review of a movie. The rating is validated
// before any network call; obviously invalid data never leaves the client
// (the server re-validates and stays the source of truth). On success the
// per-movie list (matched by user id) and the per-user list (matched by
// movie id) are updated together in one critical section.
func (s *ReviewStore) Submit(ctx context.Context, movieID models.MovieID, rating int, comment string, userID models.UserID, userName string) (*models.Review, error) {
	if !models.ValidRating(rating) {
		return nil, apierr.New(apierr.KindValidation,
			fmt.Sprintf("rating must be an integer between %d and %d", models.MinRating, models.MaxRating))
	}
	if len(comment) > models.MaxCommentLength {
		return nil, apierr.New(apierr.KindValidation, "comment too long")
	}

	review, err := s.client.UpsertReview(ctx, movieID, rating, comment)
	if err != nil {
		return nil, err
	}

	r := *review
	if r.UserName == "" {
		r.UserName = userName
	}
	if r.UserID == 0 {
		r.UserID = userID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[movieID] = upsertBy(s.reviews[movieID], r, func(x models.Review) bool { return x.UserID == r.UserID })
	s.userReviews = upsertBy(s.userReviews, r, func(x models.Review) bool { return x.MovieID == movieID })
	return &r, nil
}

// Remove deletes a review from both views in one step.
func (s *ReviewStore) Remove(ctx context.Context, reviewID models.ReviewID, movieID models.MovieID) error {
	if err := s.client.DeleteReview(ctx, reviewID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[movieID] = deleteByID(s.reviews[movieID], reviewID)
	s.userReviews = deleteByID(s.userReviews, reviewID)
	return nil
}

// Err returns the last recorded read failure, or nil.
func (s *ReviewStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// upsertBy replaces the first element matching pred, or appends.
func upsertBy(rs []models.Review, r models.Review, pred func(models.Review) bool) []models.Review {
	for i := range rs {
		if pred(rs[i]) {
			out := append([]models.Review(nil), rs...)
			out[i] = r
			return out
		}
	}
	return append(append([]models.Review(nil), rs...), r)
}

func deleteByID(rs []models.Review, id models.ReviewID) []models.Review {
	out := rs[:0:0]
	for _, r := range rs {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}
