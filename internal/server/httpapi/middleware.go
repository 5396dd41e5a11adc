package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/saciinol/watchkeeper/internal/common"
	"github.com/saciinol/watchkeeper/internal/logging"
	srvmodels "github.com/saciinol/watchkeeper/internal/server/models"
)

type ctxKey int

const userKey ctxKey = iota

// userFrom returns the authenticated user placed in the context by
// requireAuth. The bool is false on routes that skipped the middleware.
func userFrom(ctx context.Context) (*srvmodels.User, bool) {
	u, ok := ctx.Value(userKey).(*srvmodels.User)
	return u, ok
}

// requestLogger logs one line per request with method, path, status, and
// duration, echoing any X-Request-Id the client sent.
func requestLogger(log logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start).String(),
		}
		if id := r.Header.Get("X-Request-Id"); id != "" {
			args = append(args, "request_id", id)
		}
		log.Info(r.Context(), "request handled", args...)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// requireAuth resolves the bearer token to a user and stores it in the
// request context. Requests without a valid token are rejected with 401.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, common.ErrUnauthorized)
			return
		}

		user, err := s.auth.UserFromToken(r.Context(), token)
		if err != nil {
			respondError(w, err)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}
