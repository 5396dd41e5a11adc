// Package httpapi exposes the server's use cases over HTTP/JSON. Every
// response is wrapped in a uniform envelope: {"success": true, "data": ...}
// on success, {"success": false, "message": ...} on failure. Handlers stay
// thin; semantics live in the services.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saciinol/watchkeeper/internal/common"
)

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successEnvelope{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(errorStatus(err))
	_ = json.NewEncoder(w).Encode(errorEnvelope{Success: false, Message: errorMessage(err)})
}

// errorStatus maps the sentinel taxonomy onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrEmailTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage keeps internal failure detail off the wire.
func errorMessage(err error) string {
	if errorStatus(err) == http.StatusInternalServerError {
		return "internal error"
	}
	return err.Error()
}
