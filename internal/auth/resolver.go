package auth

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"spendtrack/internal/errors"
	"spendtrack/internal/model"
	"spendtrack/internal/repository"
)

const (
	// ContextClaimsKey is where the JWT middleware stores verified claims.
	ContextClaimsKey = "session"
	// ContextUserKey is where the resolver stores the resolved user record.
	ContextUserKey = "currentUser"
)

// Resolver turns an inbound request into a verified user record, or nil.
// It performs one token verification and at most one store lookup per call;
// results are never cached across requests.
type Resolver struct {
	tokens    *TokenService
	transport *SessionTransport
	users     repository.UserRepository
}

// NewResolver creates an authentication resolver.
func NewResolver(tokens *TokenService, transport *SessionTransport, users repository.UserRepository) *Resolver {
	return &Resolver{tokens: tokens, transport: transport, users: users}
}

// Resolve extracts the session token from the request cookie, verifies it and
// looks up the subject's user record. Every failure collapses to nil: missing
// cookie, invalid or expired token, and a deleted user with a still-valid
// token all look the same to callers.
func (r *Resolver) Resolve(c echo.Context) *model.User {
	token := r.transport.Read(c)
	if token == "" {
		return nil
	}
	claims, ok := r.tokens.Verify(token)
	if !ok {
		return nil
	}
	return r.lookup(c, claims)
}

// Middleware resolves the user for routes already guarded by the JWT
// middleware, which parsed the token and stored claims under
// ContextClaimsKey. A verified token whose subject no longer exists is
// rejected with the same unauthorized signal as a bad token.
func (r *Resolver) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ContextClaimsKey).(*Claims)
			if !ok {
				return Unauthorized(c)
			}
			user := r.lookup(c, claims)
			if user == nil {
				return Unauthorized(c)
			}
			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

func (r *Resolver) lookup(c echo.Context, claims *Claims) *model.User {
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil
	}
	user, err := r.users.FindProfileByID(c.Request().Context(), userID)
	if err != nil {
		return nil
	}
	return user
}

// CurrentUser returns the user attached by the resolver middleware, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(ContextUserKey).(*model.User)
	return user
}

// Unauthorized writes the API-layer unauthorized signal: a 401 JSON body,
// never a redirect.
func Unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{
		Error: "unauthorized",
		Code:  "UNAUTHORIZED",
	})
}
