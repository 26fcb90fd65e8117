package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JokeryEU/shoplistapp-server/internal/common"
)

const (
	msgInternal           = "Internal Server Error"
	msgInvalidCredentials = "Invalid email or password"
	msgDuplicateEmail     = "Email already in use!"
	msgUnauthenticated    = "Please log in!"
	msgInvalidRefresh     = "Invalid refresh token"
	msgForbidden          = "Not allowed!"
	msgUserNotFound       = "No user found!"
	msgListNotFound       = "No list found!"
	msgItemNotFound       = "No item found!"
	msgRouteNotFound      = "Not Found"
	msgMethodNotAllowed   = "Method Not Allowed"
	msgBadRequest         = "Bad request"
)

// Router fallbacks for unknown paths and unsupported methods.
var (
	errRouteNotFound    = errors.New("route not found")
	errMethodNotAllowed = errors.New("method not allowed")
)

// errorResponse is the body of every failed request. Details is only set
// for validation failures.
type errorResponse struct {
	Status  int                 `json:"status"`
	Error   string              `json:"error"`
	Details []common.FieldError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// errorStatus maps a domain error to a status code and public message.
func errorStatus(err error) (int, string) {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusBadRequest, msgInvalidCredentials
	case errors.Is(err, common.ErrDuplicateIdentity):
		return http.StatusBadRequest, msgDuplicateEmail
	case errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest, msgBadRequest
	case errors.Is(err, common.ErrUnauthenticated):
		return http.StatusUnauthorized, msgUnauthenticated
	case errors.Is(err, common.ErrInvalidCredential):
		return http.StatusUnauthorized, msgInvalidRefresh
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden, msgForbidden
	case errors.Is(err, common.ErrUserNotFound):
		return http.StatusNotFound, msgUserNotFound
	case errors.Is(err, common.ErrItemNotFound):
		return http.StatusNotFound, msgItemNotFound
	case errors.Is(err, errRouteNotFound):
		return http.StatusNotFound, msgRouteNotFound
	case errors.Is(err, errMethodNotAllowed):
		return http.StatusMethodNotAllowed, msgMethodNotAllowed
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, msgListNotFound
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// writeError renders err. Unmapped errors are logged and hidden behind 500.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := errorStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestIDFromContext(r.Context()),
		)
	}

	resp := errorResponse{Status: status, Error: msg}
	var verr *common.ValidationError
	if errors.As(err, &verr) {
		resp.Details = verr.Fields
	}
	writeJSON(w, status, resp)
}
