package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *HTTPServer) handleListAllLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.lists.ListAll(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

func (s *HTTPServer) handleListMyLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.lists.ListForUser(r.Context(), userFromContext(r.Context()).ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

func (s *HTTPServer) handleCreateList(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := s.decode(r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	list, err := s.lists.Create(r.Context(), userFromContext(r.Context()), req.Title, req.Icon)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

// Handlers below run behind listOwnerMiddleware.

func (s *HTTPServer) handleGetList(w http.ResponseWriter, r *http.Request) {
	list, err := s.lists.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *HTTPServer) handleUpdateList(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := s.decode(r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	list, err := s.lists.Update(r.Context(), chi.URLParam(r, "id"), req.Title, req.Icon)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *HTTPServer) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	if err := s.lists.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleInvite(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := s.decode(r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	list, err := s.lists.Invite(r.Context(), chi.URLParam(r, "id"), req.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *HTTPServer) handleUninvite(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := s.decode(r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	list, err := s.lists.Uninvite(r.Context(), chi.URLParam(r, "id"), req.Email)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *HTTPServer) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := s.decode(r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	list, err := s.lists.AddItem(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

func (s *HTTPServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req itemUpdateRequest
	if err := s.decode(r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	list, err := s.lists.UpdateItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemId"), req.patch())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *HTTPServer) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := s.lists.RemoveItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemId")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
