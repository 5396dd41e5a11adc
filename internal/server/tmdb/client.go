// Package tmdb is a minimal client for The Movie Database search API,
// mapping its result shape onto our movie model.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/saciinol/watchkeeper/internal/models"
)

const (
	defaultTimeout = 10 * time.Second
	posterBaseURL  = "https://image.tmdb.org/t/p/w500"
)

type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
}

// searchResponse mirrors the slice of the TMDB payload we care about.
type searchResponse struct {
	Results []struct {
		ID          int64  `json:"id"`
		Title       string `json:"title"`
		ReleaseDate string `json:"release_date"`
		PosterPath  string `json:"poster_path"`
		Overview    string `json:"overview"`
	} `json:"results"`
}

func (c *Client) Search(ctx context.Context, query string) ([]models.Movie, error) {
	u, err := url.Parse(c.baseURL + "/search/movie")
	if err != nil {
		return nil, fmt.Errorf("tmdb: %w", err)
	}
	q := u.Query()
	q.Set("api_key", c.apiKey)
	q.Set("query", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("tmdb: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tmdb: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tmdb: unexpected status %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("tmdb: decoding response: %w", err)
	}

	result := make([]models.Movie, 0, len(sr.Results))
	for _, r := range sr.Results {
		m := models.Movie{
			CatalogID: models.CatalogID(r.ID),
			Title:     r.Title,
		}
		if year := releaseYear(r.ReleaseDate); year != 0 {
			y := year
			m.Year = &y
		}
		if r.PosterPath != "" {
			p := posterBaseURL + r.PosterPath
			m.PosterURL = &p
		}
		if r.Overview != "" {
			o := r.Overview
			m.Plot = &o
		}
		result = append(result, m)
	}

	return result, nil
}

// releaseYear extracts the year from a "YYYY-MM-DD" date, 0 when absent or
// malformed.
func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
