package api

import (
	"net/http"

	"github.com/JokeryEU/shoplistapp-server/internal/server/models"
	"github.com/go-chi/chi/v5"
)

// Router builds the route table. Every route below the auth group passes
// the authentication gate; role and ownership gates are added per route.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errMethodNotAllowed)
	})

	r.Get("/healthz", s.handleHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/refresh", s.handleRefresh)
		r.With(s.authMiddleware).Post("/logout", s.handleLogout)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Route("/users", func(r chi.Router) {
			r.With(s.requireRoles(models.RoleAdmin)).Get("/", s.handleListUsers)
			r.Get("/profile", s.handleGetProfile)
			r.Put("/profile", s.handleUpdateProfile)
		})

		r.Route("/list", func(r chi.Router) {
			r.With(s.requireRoles(models.RoleAdmin)).Get("/", s.handleListAllLists)
			r.Get("/user", s.handleListMyLists)
			r.Post("/user", s.handleCreateList)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(s.listOwnerMiddleware)
				r.Get("/", s.handleGetList)
				r.Post("/", s.handleAddItem)
				r.Put("/", s.handleUpdateList)
				r.Delete("/", s.handleDeleteList)
				r.Post("/invited", s.handleInvite)
				r.Delete("/invited", s.handleUninvite)
				r.Put("/item/{itemId}", s.handleUpdateItem)
				r.Delete("/item/{itemId}", s.handleRemoveItem)
			})
		})
	})

	return r
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
