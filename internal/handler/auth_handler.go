package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"spendtrack/internal/auth"
	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/service"
)

// AuthHandler handles sign-up, sign-in, sign-out and session introspection.
type AuthHandler struct {
	authService service.AuthService
	transport   *auth.SessionTransport
	resolver    *auth.Resolver
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, transport *auth.SessionTransport, resolver *auth.Resolver) *AuthHandler {
	return &AuthHandler{authService: authService, transport: transport, resolver: resolver}
}

// SignUpRequest represents a sign-up request.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
}

// SignInRequest represents a sign-in request.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse wraps a user record.
type UserResponse struct {
	User interface{} `json:"user"`
}

// SignUp godoc
// @Summary Create an account and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignUpRequest true "Sign-up data"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/sign-up [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.SignUp(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyUsed) {
			return echo.NewHTTPError(http.StatusConflict, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "EMAIL_ALREADY_USED",
			})
		}
		c.Logger().Errorf("sign-up: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to create user",
			Code:  "SIGN_UP_FAILED",
		})
	}

	h.transport.Set(c, token)
	return c.JSON(http.StatusCreated, UserResponse{User: user})
}

// SignIn godoc
// @Summary Authenticate and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignInRequest true "Credentials"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/sign-in [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_CREDENTIALS",
			})
		}
		c.Logger().Errorf("sign-in: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to sign in",
			Code:  "SIGN_IN_FAILED",
		})
	}

	h.transport.Set(c, token)
	return c.JSON(http.StatusOK, UserResponse{User: user})
}

// SignOut godoc
// @Summary End the session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /auth/sign-out [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	// Stateless sessions: clearing the cookie is all sign-out does. The
	// token itself stays valid until its expiry.
	h.transport.Clear(c)
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Me godoc
// @Summary Return the signed-in user
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user := h.resolver.Resolve(c)
	if user == nil {
		return auth.Unauthorized(c)
	}
	return c.JSON(http.StatusOK, UserResponse{User: user})
}
