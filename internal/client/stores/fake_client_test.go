package stores

import (
	"context"

	"github.com/saciinol/watchkeeper/internal/client/api"
	"github.com/saciinol/watchkeeper/internal/models"
)

// fakeClient records calls and returns whatever the test configured.
type fakeClient struct {
	searchQueries []string
	searchResult  []models.Movie
	searchErr     error

	savedMovies []models.Movie
	saveResult  *models.Movie
	saveErr     error

	listResult []models.Movie
	listErr    error

	getResult *models.Movie
	getErr    error

	watchlistUpserts []upsertCall
	upsertResult     *api.WatchlistUpsert
	upsertErr        error

	watchlistResult []models.WatchlistItem
	watchlistErr    error

	removedMovies []models.MovieID
	removeErr     error

	reviewUpserts []reviewCall
	reviewResult  *models.Review
	reviewErr     error

	movieReviews    []models.Review
	movieReviewsErr error

	userReviews    []models.Review
	userReviewsErr error

	deletedReviews []models.ReviewID
	deleteErr      error
}

type upsertCall struct {
	movie  models.Movie
	status models.Status
}

type reviewCall struct {
	movieID models.MovieID
	rating  int
	comment string
}

var _ api.Client = (*fakeClient)(nil)

func (f *fakeClient) Login(ctx context.Context, email, password string) (*api.AuthResult, error) {
	return nil, nil
}

func (f *fakeClient) Register(ctx context.Context, name, email, password string) (*api.AuthResult, error) {
	return nil, nil
}

func (f *fakeClient) SearchMovies(ctx context.Context, query string) ([]models.Movie, error) {
	f.searchQueries = append(f.searchQueries, query)
	return f.searchResult, f.searchErr
}

func (f *fakeClient) SaveMovie(ctx context.Context, movie models.Movie) (*models.Movie, error) {
	f.savedMovies = append(f.savedMovies, movie)
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	if f.saveResult != nil {
		return f.saveResult, nil
	}
	m := movie
	m.ID = models.MovieID(movie.CatalogID)
	return &m, nil
}

func (f *fakeClient) ListMovies(ctx context.Context) ([]models.Movie, error) {
	return f.listResult, f.listErr
}

func (f *fakeClient) GetMovie(ctx context.Context, id models.MovieID) (*models.Movie, error) {
	return f.getResult, f.getErr
}

func (f *fakeClient) UpsertWatchlist(ctx context.Context, movie models.Movie, status models.Status) (*api.WatchlistUpsert, error) {
	f.watchlistUpserts = append(f.watchlistUpserts, upsertCall{movie: movie, status: status})
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	if f.upsertResult != nil {
		return f.upsertResult, nil
	}
	m := movie
	if m.ID == 0 {
		m.ID = models.MovieID(movie.CatalogID)
	}
	return &api.WatchlistUpsert{
		Movie:     m,
		Watchlist: models.WatchlistEntry{ID: 1, UserID: 1, MovieID: m.ID, Status: status},
	}, nil
}

func (f *fakeClient) GetWatchlist(ctx context.Context, userID models.UserID) ([]models.WatchlistItem, error) {
	return f.watchlistResult, f.watchlistErr
}

func (f *fakeClient) RemoveFromWatchlist(ctx context.Context, userID models.UserID, movieID models.MovieID) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removedMovies = append(f.removedMovies, movieID)
	return nil
}

func (f *fakeClient) UpsertReview(ctx context.Context, movieID models.MovieID, rating int, comment string) (*models.Review, error) {
	f.reviewUpserts = append(f.reviewUpserts, reviewCall{movieID: movieID, rating: rating, comment: comment})
	if f.reviewErr != nil {
		return nil, f.reviewErr
	}
	if f.reviewResult != nil {
		return f.reviewResult, nil
	}
	return &models.Review{ID: 1, UserID: 1, MovieID: movieID, Rating: rating, Comment: comment}, nil
}

func (f *fakeClient) GetMovieReviews(ctx context.Context, movieID models.MovieID) ([]models.Review, error) {
	return f.movieReviews, f.movieReviewsErr
}

func (f *fakeClient) GetUserReviews(ctx context.Context, userID models.UserID) ([]models.Review, error) {
	return f.userReviews, f.userReviewsErr
}

func (f *fakeClient) DeleteReview(ctx context.Context, id models.ReviewID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedReviews = append(f.deletedReviews, id)
	return nil
}
