package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Decision is the outcome of the access gate for one request.
type Decision int

const (
	// Allow lets the request through.
	Allow Decision = iota
	// RedirectToSignIn sends unauthenticated traffic to the sign-in page.
	RedirectToSignIn
	// RedirectToDashboard sends authenticated traffic away from auth pages.
	RedirectToDashboard
)

const (
	// SignInPath is the sign-in page location.
	SignInPath = "/auth/sign-in"
	// DashboardPath is the post-sign-in landing location.
	DashboardPath = "/dashboard"
)

// Gate is the request-level access filter. It checks only token presence;
// validity is the resolver's job downstream. An expired-but-present token
// therefore passes the gate and surfaces as unauthorized from the API rather
// than a redirect.
type Gate struct {
	transport *SessionTransport
}

// NewGate creates an access gate reading token presence from the transport.
func NewGate(transport *SessionTransport) *Gate {
	return &Gate{transport: transport}
}

// Decide is a pure function of token presence and path category. Paths fall
// into three categories: public (the landing page), auth (sign-in/sign-up
// pages and their API endpoints) and protected (everything else).
func (g *Gate) Decide(hasToken bool, path string) Decision {
	isAuthPage := strings.HasPrefix(path, "/auth")
	isAPIAuth := strings.HasPrefix(path, "/api/auth")
	isPublic := path == "/"

	if !hasToken && !isAuthPage && !isAPIAuth && !isPublic {
		return RedirectToSignIn
	}
	if hasToken && isAuthPage {
		return RedirectToDashboard
	}
	return Allow
}

// Middleware applies the gate to every request. Infra endpoints (health
// check, swagger UI) are skipped; they carry no user data.
func (g *Gate) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if path == "/healthz" || strings.HasPrefix(path, "/swagger") {
				return next(c)
			}

			hasToken := g.transport.Read(c) != ""
			switch g.Decide(hasToken, path) {
			case RedirectToSignIn:
				return c.Redirect(http.StatusTemporaryRedirect, SignInPath)
			case RedirectToDashboard:
				return c.Redirect(http.StatusTemporaryRedirect, DashboardPath)
			default:
				return next(c)
			}
		}
	}
}
