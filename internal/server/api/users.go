package api

import (
	"errors"
	"net/http"

	"github.com/JokeryEU/shoplistapp-server/internal/common"
	"github.com/JokeryEU/shoplistapp-server/internal/server/services"
)

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := s.decode(r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := s.users.Register(r.Context(), services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "user_id", sess.User.ID)
	s.setAuthCookies(w, sess.Tokens)
	writeJSON(w, http.StatusCreated, userResponse{User: sess.User})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decode(r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	sess, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.setAuthCookies(w, sess.Tokens)
	writeJSON(w, http.StatusOK, userResponse{User: sess.User})
}

func (s *HTTPServer) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var presented string
	if c, err := r.Cookie(common.RefreshTokenCookieName); err == nil {
		presented = c.Value
	}

	sess, err := s.users.Refresh(r.Context(), presented)
	if err != nil {
		if errors.Is(err, common.ErrSessionRevoked) {
			s.logger.Warn(r.Context(), "refresh token reuse",
				"error", err,
				"request_id", requestIDFromContext(r.Context()))
			s.clearAuthCookies(w)
		}
		s.writeError(w, r, err)
		return
	}

	s.setAuthCookies(w, sess.Tokens)
	writeJSON(w, http.StatusOK, userResponse{User: sess.User})
}

func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Logout(r.Context(), userFromContext(r.Context())); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.clearAuthCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Profile(r.Context(), userFromContext(r.Context()).ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if err := s.decode(r, &req, true); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.users.UpdateProfile(r.Context(), userFromContext(r.Context()), services.ProfileUpdate{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListUsers(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
