package httpapi

import (
	"net/http"

	"github.com/saciinol/watchkeeper/internal/common"
	"github.com/saciinol/watchkeeper/internal/models"
)

// watchlistUpsertRequest is the flat body the client sends: the movie fields
// plus the desired status.
type watchlistUpsertRequest struct {
	models.Movie
	Status models.Status `json:"status"`
}

func (s *Server) handleUpsertWatchlist(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		respondError(w, common.ErrUnauthorized)
		return
	}

	var req watchlistUpsertRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	res, err := s.watchlist.Upsert(r.Context(), user.ID, req.Movie, req.Status)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, res)
}

func (s *Server) handleGetWatchlist(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		respondError(w, common.ErrUnauthorized)
		return
	}

	targetID, err := pathInt(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}

	items, err := s.watchlist.ListForUser(r.Context(), user.ID, models.UserID(targetID))
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, items)
}

func (s *Server) handleRemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		respondError(w, common.ErrUnauthorized)
		return
	}

	targetID, err := pathInt(r, "userId")
	if err != nil {
		respondError(w, err)
		return
	}
	movieID, err := pathInt(r, "movieId")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := s.watchlist.Remove(r.Context(), user.ID, models.UserID(targetID), models.MovieID(movieID)); err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, map[string]string{"message": "removed from watchlist"})
}
