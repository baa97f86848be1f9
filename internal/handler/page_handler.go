package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PageHandler serves minimal page stubs. The real UI lives elsewhere; these
// exist so the access gate has page traffic to steer.
type PageHandler struct{}

// NewPageHandler creates a new page handler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Landing serves the public landing page.
func (h *PageHandler) Landing(c echo.Context) error {
	return c.HTML(http.StatusOK, "<h1>Expense Tracker</h1>")
}

// SignIn serves the sign-in page.
func (h *PageHandler) SignIn(c echo.Context) error {
	return c.HTML(http.StatusOK, "<h1>Sign in</h1>")
}

// SignUp serves the sign-up page.
func (h *PageHandler) SignUp(c echo.Context) error {
	return c.HTML(http.StatusOK, "<h1>Sign up</h1>")
}

// Dashboard serves the dashboard page.
func (h *PageHandler) Dashboard(c echo.Context) error {
	return c.HTML(http.StatusOK, "<h1>Dashboard</h1>")
}
