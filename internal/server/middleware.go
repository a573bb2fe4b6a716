package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/scplayer/internal/shared"
)

// statusRecorder wraps http.ResponseWriter to capture the status code
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs the method, path, status and duration of every request.
func RequestLogger(logger *log.Logger) Middleware {
	logger = shared.WithLogger(logger, "component", "http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start).Round(time.Millisecond),
			)
		})
	}
}

// Sessions loads the user behind the session cookie into the request context.
//
// Requests without a valid session pass through anonymously; a stale cookie is expired.
func Sessions(sessions SessionStore, users UserFinder, cookies Cookies, logger *log.Logger) Middleware {
	logger = shared.WithLogger(logger, "component", "sessions")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := cookies.SessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, err := sessions.Get(r.Context(), token)
			if err != nil {
				if !errors.Is(err, shared.ErrNotFound) {
					logger.Error("failed to load session", "error", err)
				}
				cookies.ClearSession(w)
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.Get(r.Context(), session.UserID())
			if err != nil {
				logger.Warn("session without user", "user", session.UserID(), "error", err)
				cookies.ClearSession(w)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user, session)))
		})
	}
}
