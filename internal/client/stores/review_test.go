package stores

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saciinol/watchkeeper/internal/apierr"
	"github.com/saciinol/watchkeeper/internal/models"
)

func TestReviewStore_AverageRating(t *testing.T) {
	fake := &fakeClient{}
	store := NewReviewStore(fake)

	assert.Equal(t, 0.0, store.AverageRating(7))

	fake.movieReviews = []models.Review{
		{ID: 1, UserID: 1, MovieID: 7, Rating: 5},
		{ID: 2, UserID: 2, MovieID: 7, Rating: 5},
		{ID: 3, UserID: 3, MovieID: 7, Rating: 4},
	}
	require.NoError(t, store.LoadForMovie(context.Background(), 7))
	assert.Equal(t, 4.7, store.AverageRating(7))
}

func TestReviewStore_SubmitRejectsOutOfRangeRating(t *testing.T) {
	fake := &fakeClient{}
	store := NewReviewStore(fake)

	for _, rating := range []int{0, 6, -1} {
		_, err := store.Submit(context.Background(), 7, rating, "", 1, "alice")
		require.Error(t, err)
		assert.True(t, apierr.Is(err, apierr.KindValidation))
	}
	assert.Empty(t, fake.reviewUpserts)

	for _, rating := range []int{1, 5} {
		_, err := store.Submit(context.Background(), 7, rating, "", 1, "alice")
		require.NoError(t, err)
	}
	assert.Len(t, fake.reviewUpserts, 2)
}

func TestReviewStore_DoubleSubmitKeepsOneReview(t *testing.T) {
	fake := &fakeClient{}
	store := NewReviewStore(fake)

	_, err := store.Submit(context.Background(), 7, 4, "great", 1, "alice")
	require.NoError(t, err)
	_, err = store.Submit(context.Background(), 7, 2, "rewatched, weaker", 1, "alice")
	require.NoError(t, err)

	movieView := store.MovieReviews(7)
	require.Len(t, movieView, 1)
	assert.Equal(t, 2, movieView[0].Rating)

	userView := store.UserReviews()
	require.Len(t, userView, 1)
	assert.Equal(t, 2, userView[0].Rating)

	got, ok := store.UserReviewFor(7)
	require.True(t, ok)
	assert.Equal(t, "rewatched, weaker", got.Comment)
}

func TestReviewStore_SubmitFillsUserFields(t *testing.T) {
	fake := &fakeClient{reviewResult: &models.Review{ID: 9, MovieID: 7, Rating: 5}}
	store := NewReviewStore(fake)

	review, err := store.Submit(context.Background(), 7, 5, "", 3, "carol")
	require.NoError(t, err)
	assert.Equal(t, models.UserID(3), review.UserID)
	assert.Equal(t, "carol", review.UserName)
}

func TestReviewStore_LoadForMovieFailureDropsOnlyThatMovie(t *testing.T) {
	fake := &fakeClient{movieReviews: []models.Review{{ID: 1, UserID: 1, MovieID: 7, Rating: 5}}}
	store := NewReviewStore(fake)
	require.NoError(t, store.LoadForMovie(context.Background(), 7))

	fake.movieReviews = []models.Review{{ID: 2, UserID: 1, MovieID: 8, Rating: 3}}
	require.NoError(t, store.LoadForMovie(context.Background(), 8))

	fake.movieReviewsErr = errors.New("boom")
	require.Error(t, store.LoadForMovie(context.Background(), 8))

	assert.Len(t, store.MovieReviews(7), 1)
	assert.Empty(t, store.MovieReviews(8))
	assert.Error(t, store.Err())
}

func TestReviewStore_LoadForUser(t *testing.T) {
	fake := &fakeClient{userReviews: []models.Review{
		{ID: 1, UserID: 1, MovieID: 7, Rating: 5, Title: "Interstellar"},
		{ID: 2, UserID: 1, MovieID: 8, Rating: 3, Title: "Dune"},
	}}
	store := NewReviewStore(fake)

	require.NoError(t, store.LoadForUser(context.Background(), 1))
	assert.Len(t, store.UserReviews(), 2)

	fake.userReviewsErr = errors.New("boom")
	require.Error(t, store.LoadForUser(context.Background(), 1))
	assert.Empty(t, store.UserReviews())
}

func TestReviewStore_RemoveDeletesFromBothViews(t *testing.T) {
	fake := &fakeClient{}
	store := NewReviewStore(fake)

	review, err := store.Submit(context.Background(), 7, 4, "", 1, "alice")
	require.NoError(t, err)

	require.NoError(t, store.Remove(context.Background(), review.ID, 7))
	assert.Empty(t, store.MovieReviews(7))
	assert.Empty(t, store.UserReviews())
	assert.Equal(t, []models.ReviewID{review.ID}, fake.deletedReviews)
}

func TestReviewStore_RemoveFailureKeepsBothViews(t *testing.T) {
	fake := &fakeClient{}
	store := NewReviewStore(fake)
	review, err := store.Submit(context.Background(), 7, 4, "", 1, "alice")
	require.NoError(t, err)

	fake.deleteErr = apierr.New(apierr.KindPermission, "not your review")
	require.Error(t, store.Remove(context.Background(), review.ID, 7))
	assert.Len(t, store.MovieReviews(7), 1)
	assert.Len(t, store.UserReviews(), 1)
}
