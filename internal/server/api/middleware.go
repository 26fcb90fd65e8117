package api

import (
	"context"
	"net/http"
	"time"

	"github.com/JokeryEU/shoplistapp-server/internal/common"
	"github.com/JokeryEU/shoplistapp-server/internal/server/models"
	"github.com/JokeryEU/shoplistapp-server/internal/server/rbac"
	"github.com/JokeryEU/shoplistapp-server/internal/shared"
	"github.com/go-chi/chi/v5"
)

const (
	maxRequestBodySize = 1 << 20
	requestIDBytes     = 8
	requestIDHeader    = "X-Request-ID"
)

func (s *HTTPServer) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id, _ = shared.MakeRandHexString(requestIDBytes)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.logger.Info(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", requestIDFromContext(r.Context()),
		)
	})
}

func (s *HTTPServer) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error(r.Context(), "panic recovered in HTTP handler",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", requestIDFromContext(r.Context()),
				)
				writeJSON(w, http.StatusInternalServerError, errorResponse{
					Status: http.StatusInternalServerError,
					Error:  msgInternal,
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *HTTPServer) bodySizeLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		}
		next.ServeHTTP(w, r)
	})
}

// authMiddleware resolves the accessToken cookie to a user and stores it in
// the request context. It never attempts a refresh.
func (s *HTTPServer) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(common.AccessTokenCookieName)
		if err != nil || c.Value == "" {
			s.writeError(w, r, common.ErrUnauthenticated)
			return
		}

		user, err := s.users.Authenticate(r.Context(), c.Value)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

func (s *HTTPServer) requireRoles(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := rbac.RequireRole(userFromContext(r.Context()), roles...); err != nil {
				s.writeError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// listOwnerMiddleware admits only the owner of the list named by {id}.
func (s *HTTPServer) listOwnerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := rbac.RequireListOwner(r.Context(), s.lists, id, userFromContext(r.Context())); err != nil {
			s.writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusWriter records the status code written by the handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
