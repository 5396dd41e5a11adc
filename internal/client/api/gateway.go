package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/saciinol/watchkeeper/internal/apierr"
	"github.com/saciinol/watchkeeper/internal/client/session"
	"github.com/saciinol/watchkeeper/internal/models"
)

const defaultTimeout = 20 * time.Second

// Gateway talks to the watchkeeper server over HTTP/JSON. It attaches the
// session's bearer credential to every call and stamps each request with a
// correlation id.
//
// On an auth-rejected response the gateway clears the session before
// rejecting the call and fires the configured hook (the redirect-equivalent
// event); this is the only path on which it mutates the session store.
// Identity-scoped calls made without a credential fail fast with an auth
// classification and never reach the network.
type Gateway struct {
	baseURL        string
	httpc          *http.Client
	session        *session.Store
	onAuthRejected func()
}

// Config carries Gateway construction parameters. Session and BaseURL are
// required; the rest default sensibly.
type Config struct {
	BaseURL    string
	Session    *session.Store
	HTTPClient *http.Client
	// OnAuthRejected runs after the session has been cleared because the
	// server rejected the credential.
	OnAuthRejected func()
}

func NewGateway(cfg Config) *Gateway {
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultTimeout}
	}
	return &Gateway{
		baseURL:        cfg.BaseURL,
		httpc:          httpc,
		session:        cfg.Session,
		onAuthRejected: cfg.OnAuthRejected,
	}
}

// envelope is the server's uniform response shape.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// call performs one HTTP exchange. body (if non-nil) is sent as JSON; on
// success the envelope's data field is decoded into out (if non-nil).
func (g *Gateway) call(ctx context.Context, method, path string, body any, out any, identityScoped bool) error {
	token := g.session.Credential()
	if identityScoped && token == "" {
		return apierr.New(apierr.KindAuth, "not authenticated")
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.httpc.Do(req)
	if err != nil {
		return apierr.Wrap(apierr.KindNetwork, "no response from server", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return g.classify(ctx, resp)
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return apierr.Wrap(apierr.KindServer, "malformed response", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return apierr.Wrap(apierr.KindServer, "malformed response payload", err)
	}
	return nil
}

func (g *Gateway) classify(ctx context.Context, resp *http.Response) error {
	kind := apierr.FromStatus(resp.StatusCode)

	message := http.StatusText(resp.StatusCode)
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err == nil && env.Message != "" {
		message = env.Message
	}

	if kind == apierr.KindAuth {
		// Forced logout: clear the session so every in-flight and
		// subsequent identity-scoped call fails fast, then signal the
		// redirect-equivalent event.
		_ = g.session.Logout(ctx)
		if g.onAuthRejected != nil {
			g.onAuthRejected()
		}
	}

	return apierr.New(kind, message)
}

func (g *Gateway) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out AuthResult
	if err := g.call(ctx, http.MethodPost, "/api/auth/login", body, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out AuthResult
	if err := g.call(ctx, http.MethodPost, "/api/auth/register", body, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) SearchMovies(ctx context.Context, query string) ([]models.Movie, error) {
	path := "/api/movies/search?q=" + url.QueryEscape(query)
	var out []models.Movie
	if err := g.call(ctx, http.MethodGet, path, nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Gateway) SaveMovie(ctx context.Context, movie models.Movie) (*models.Movie, error) {
	var out models.Movie
	if err := g.call(ctx, http.MethodPost, "/api/movies", movie, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) ListMovies(ctx context.Context) ([]models.Movie, error) {
	var out []models.Movie
	if err := g.call(ctx, http.MethodGet, "/api/movies", nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Gateway) GetMovie(ctx context.Context, id models.MovieID) (*models.Movie, error) {
	var out models.Movie
	if err := g.call(ctx, http.MethodGet, fmt.Sprintf("/api/movies/%d", id), nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// watchlistUpsertRequest is the flat wire shape of the watchlist upsert:
// movie fields plus the requested status.
type watchlistUpsertRequest struct {
	models.Movie
	Status models.Status `json:"status"`
}

func (g *Gateway) UpsertWatchlist(ctx context.Context, movie models.Movie, status models.Status) (*WatchlistUpsert, error) {
	body := watchlistUpsertRequest{Movie: movie, Status: status}
	var out WatchlistUpsert
	if err := g.call(ctx, http.MethodPost, "/api/watchlist", body, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) GetWatchlist(ctx context.Context, userID models.UserID) ([]models.WatchlistItem, error) {
	var out []models.WatchlistItem
	if err := g.call(ctx, http.MethodGet, fmt.Sprintf("/api/watchlist/%d", userID), nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Gateway) RemoveFromWatchlist(ctx context.Context, userID models.UserID, movieID models.MovieID) error {
	return g.call(ctx, http.MethodDelete, fmt.Sprintf("/api/watchlist/%d/%d", userID, movieID), nil, nil, true)
}

type reviewUpsertRequest struct {
	MovieID models.MovieID `json:"movie_id"`
	Rating  int            `json:"rating"`
	Comment string         `json:"comment,omitempty"`
}

func (g *Gateway) UpsertReview(ctx context.Context, movieID models.MovieID, rating int, comment string) (*models.Review, error) {
	body := reviewUpsertRequest{MovieID: movieID, Rating: rating, Comment: comment}
	var out models.Review
	if err := g.call(ctx, http.MethodPost, "/api/reviews", body, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) GetMovieReviews(ctx context.Context, movieID models.MovieID) ([]models.Review, error) {
	var out []models.Review
	if err := g.call(ctx, http.MethodGet, fmt.Sprintf("/api/reviews/%d", movieID), nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Gateway) GetUserReviews(ctx context.Context, userID models.UserID) ([]models.Review, error) {
	var out []models.Review
	if err := g.call(ctx, http.MethodGet, fmt.Sprintf("/api/reviews/user/%d", userID), nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Gateway) DeleteReview(ctx context.Context, id models.ReviewID) error {
	return g.call(ctx, http.MethodDelete, fmt.Sprintf("/api/reviews/%d", id), nil, nil, true)
}
