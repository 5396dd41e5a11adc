package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/saciinol/watchkeeper/internal/common"
	"github.com/saciinol/watchkeeper/internal/models"
	"github.com/saciinol/watchkeeper/internal/server/repositories/movies"
	"github.com/saciinol/watchkeeper/internal/server/repositories/reviews"
)

type ReviewService struct {
	repo      reviews.Repository
	movieRepo movies.Repository
}

func NewReviewService(repo reviews.Repository, movieRepo movies.Repository) *ReviewService {
	return &ReviewService{repo: repo, movieRepo: movieRepo}
}

// Upsert creates or replaces the user's review of a movie. The identity
// comes from the authenticated request, never the body.
func (s *ReviewService) Upsert(ctx context.Context, userID models.UserID, movieID models.MovieID, rating int, comment string) (*models.Review, error) {
	if !models.ValidRating(rating) {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", common.ErrValidation, models.MinRating, models.MaxRating)
	}
	if len(comment) > models.MaxCommentLength {
		return nil, fmt.Errorf("%w: comment too long", common.ErrValidation)
	}

	if _, err := s.movieRepo.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	return s.repo.Upsert(ctx, userID, movieID, rating, comment)
}

func (s *ReviewService) ListByMovie(ctx context.Context, movieID models.MovieID) ([]models.Review, error) {
	return s.repo.ListByMovie(ctx, movieID)
}

// ListForUser returns the target user's reviews. Only the owner may list
// their own reviews through this endpoint.
func (s *ReviewService) ListForUser(ctx context.Context, requesterID, targetID models.UserID) ([]models.Review, error) {
	if requesterID != targetID {
		return nil, common.ErrForbidden
	}
	return s.repo.ListByUser(ctx, targetID)
}

// Delete removes a review. Only its author may delete it; for anyone else
// the review does not exist, so the answer is not found rather than
// forbidden.
func (s *ReviewService) Delete(ctx context.Context, requesterID models.UserID, id models.ReviewID) error {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if review.UserID != requesterID {
		return common.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
