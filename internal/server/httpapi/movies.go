package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/saciinol/watchkeeper/internal/common"
	"github.com/saciinol/watchkeeper/internal/models"
)

func pathInt(r *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s", common.ErrValidation, name)
	}
	return v, nil
}

func (s *Server) handleSearchMovies(w http.ResponseWriter, r *http.Request) {
	result, err := s.movies.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, result)
}

func (s *Server) handleSaveMovie(w http.ResponseWriter, r *http.Request) {
	var movie models.Movie
	if err := decodeBody(r, &movie); err != nil {
		respondError(w, err)
		return
	}

	saved, err := s.movies.Save(r.Context(), movie)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusCreated, saved)
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	result, err := s.movies.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, result)
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	movie, err := s.movies.GetByID(r.Context(), models.MovieID(id))
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, movie)
}
