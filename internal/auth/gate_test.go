package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGate_Decide(t *testing.T) {
	gate := NewGate(NewSessionTransport("session", false))

	tests := []struct {
		name     string
		hasToken bool
		path     string
		want     Decision
	}{
		{"no token, landing page", false, "/", Allow},
		{"no token, sign-in page", false, "/auth/sign-in", Allow},
		{"no token, sign-up page", false, "/auth/sign-up", Allow},
		{"no token, auth api", false, "/api/auth/sign-in", Allow},
		{"no token, dashboard", false, "/dashboard", RedirectToSignIn},
		{"no token, protected api", false, "/api/expenses", RedirectToSignIn},
		{"token, landing page", true, "/", Allow},
		{"token, sign-in page", true, "/auth/sign-in", RedirectToDashboard},
		{"token, sign-up page", true, "/auth/sign-up", RedirectToDashboard},
		{"token, auth api", true, "/api/auth/sign-out", Allow},
		{"token, dashboard", true, "/dashboard", Allow},
		{"token, protected api", true, "/api/reports", Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gate.Decide(tt.hasToken, tt.path))
		})
	}
}

func TestGate_Middleware(t *testing.T) {
	transport := NewSessionTransport("session", false)
	gate := NewGate(transport)

	run := func(path string, withCookie bool) *httptest.ResponseRecorder {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if withCookie {
			// The gate checks presence only; any value passes, even one the
			// resolver would reject.
			req.AddCookie(&http.Cookie{Name: "session", Value: "expired-or-not"})
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := gate.Middleware()(func(c echo.Context) error {
			return c.String(http.StatusOK, "through")
		})
		assert.NoError(t, handler(c))
		return rec
	}

	t.Run("unauthenticated protected page redirects to sign-in", func(t *testing.T) {
		rec := run("/dashboard", false)
		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, SignInPath, rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("authenticated auth page redirects to dashboard", func(t *testing.T) {
		rec := run("/auth/sign-in", true)
		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, DashboardPath, rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("stale token still passes the gate", func(t *testing.T) {
		rec := run("/api/expenses", true)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("health check skips the gate", func(t *testing.T) {
		rec := run("/healthz", false)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
