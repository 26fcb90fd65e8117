package api

import (
	"net/http"
	"time"

	"github.com/JokeryEU/shoplistapp-server/internal/common"
	"github.com/JokeryEU/shoplistapp-server/internal/server/services"
)

// authCookie builds a credential cookie. Setting and clearing share these
// attributes; a browser ignores a clear whose attributes differ.
func (s *HTTPServer) authCookie(name, value string, maxAge time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if s.secureCookies {
		c.SameSite = http.SameSiteNoneMode
	}
	if maxAge > 0 {
		c.MaxAge = int(maxAge / time.Second)
	} else {
		c.MaxAge = -1
	}
	return c
}

func (s *HTTPServer) setAuthCookies(w http.ResponseWriter, pair *services.TokenPair) {
	http.SetCookie(w, s.authCookie(common.AccessTokenCookieName, pair.AccessToken, s.users.AccessTTL()))
	http.SetCookie(w, s.authCookie(common.RefreshTokenCookieName, pair.RefreshToken, s.users.RefreshTTL()))
}

func (s *HTTPServer) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, s.authCookie(common.AccessTokenCookieName, "", 0))
	http.SetCookie(w, s.authCookie(common.RefreshTokenCookieName, "", 0))
}
