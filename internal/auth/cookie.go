package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SessionTransport carries the session token between client and server in a
// named cookie. The cookie name and secure flag come from configuration at
// construction time.
type SessionTransport struct {
	name   string
	secure bool
}

// NewSessionTransport creates a transport writing the named cookie. secure
// should be true in production-like environments.
func NewSessionTransport(name string, secure bool) *SessionTransport {
	return &SessionTransport{name: name, secure: secure}
}

// CookieName returns the configured cookie name.
func (t *SessionTransport) CookieName() string {
	return t.name
}

// Read returns the token carried by the request, or "" when the cookie is
// absent. Absence is not an error.
func (t *SessionTransport) Read(c echo.Context) string {
	cookie, err := c.Cookie(t.name)
	if err != nil || cookie == nil {
		return ""
	}
	return cookie.Value
}

// Set attaches the session cookie to the response: HTTP-only, lax same-site,
// root path, max-age matching the token lifetime.
func (t *SessionTransport) Set(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     t.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionTokenExpiry / time.Second),
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear overwrites the cookie with an empty value and zero max-age. The token
// itself remains valid until expiry; only the client-side holder is dropped.
func (t *SessionTransport) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     t.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
