package router

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"spendtrack/internal/auth"
	"spendtrack/internal/config"
	"spendtrack/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokens *auth.TokenService,
	gate *auth.Gate,
	resolver *auth.Resolver,
	authHandler *handler.AuthHandler,
	categoryHandler *handler.CategoryHandler,
	expenseHandler *handler.ExpenseHandler,
	reportHandler *handler.ReportHandler,
	pageHandler *handler.PageHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(gate.Middleware())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Pages. The gate redirects around these by token presence; actual
	// rendering is out of scope.
	e.GET("/", pageHandler.Landing)
	e.GET(auth.SignInPath, pageHandler.SignIn)
	e.GET("/auth/sign-up", pageHandler.SignUp)
	e.GET(auth.DashboardPath, pageHandler.Dashboard)

	api := e.Group("/api")

	// Auth routes: always reachable, sessionless by definition.
	api.POST("/auth/sign-up", authHandler.SignUp)
	api.POST("/auth/sign-in", authHandler.SignIn)
	api.POST("/auth/sign-out", authHandler.SignOut)
	api.GET("/auth/me", authHandler.Me)

	// Secured routes: the JWT middleware verifies the cookie token once, the
	// resolver middleware turns its subject into a user record.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ContextKey:  auth.ContextClaimsKey,
		TokenLookup: "cookie:" + cfg.CookieName,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, ok := tokens.Verify(token)
			if !ok {
				return nil, errors.New("invalid session token")
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return auth.Unauthorized(c)
		},
	}), resolver.Middleware())

	// Category routes
	secured.GET("/categories", categoryHandler.List)
	secured.POST("/categories", categoryHandler.Create)
	secured.PATCH("/categories/:id", categoryHandler.Update)
	secured.DELETE("/categories/:id", categoryHandler.Delete)

	// Expense routes
	secured.GET("/expenses", expenseHandler.List)
	secured.POST("/expenses", expenseHandler.Create)
	secured.GET("/expenses/:id", expenseHandler.Get)
	secured.PATCH("/expenses/:id", expenseHandler.Update)
	secured.DELETE("/expenses/:id", expenseHandler.Delete)

	// Report routes
	secured.GET("/reports", reportHandler.Monthly)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
