package httpapi

import (
	"net/http"

	"github.com/saciinol/watchkeeper/internal/common"
	"github.com/saciinol/watchkeeper/internal/models"
)

type reviewUpsertRequest struct {
	MovieID models.MovieID `json:"movie_id"`
	Rating  int            `json:"rating"`
	Comment string         `json:"comment"`
}

func (s *Server) handleUpsertReview(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		respondError(w, common.ErrUnauthorized)
		return
	}

	var req reviewUpsertRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	review, err := s.reviews.Upsert(r.Context(), user.ID, req.MovieID, req.Rating, req.Comment)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusCreated, review)
}

func (s *Server) handleGetMovieReviews(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathInt(r, "movieId")
	if err != nil {
		respondError(w, err)
		return
	}

	result, err := s.reviews.ListByMovie(r.Context(), models.MovieID(movieID))
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, result)
}

func (s *Server) handleGetUserReviews(w http.ResponseWriter, r *http.Request) {
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

	result, err := s.reviews.ListForUser(r.Context(), user.ID, models.UserID(targetID))
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, result)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		respondError(w, common.ErrUnauthorized)
		return
	}

	id, err := pathInt(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := s.reviews.Delete(r.Context(), user.ID, models.ReviewID(id)); err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, map[string]string{"message": "review deleted"})
}
