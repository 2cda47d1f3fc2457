package router

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"stockfolio/internal/auth"
	"stockfolio/internal/config"
	"stockfolio/internal/handler"
	"stockfolio/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessions *auth.SessionService,
	sessionStore auth.SessionStoreInterface,
	users repository.UserRepository,
	authHandler *handler.AuthHandler,
	pageHandler *handler.PageHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.Validator = &CustomValidator{validator: validator.New()}

	// Public pages; a session cookie still populates the current user so the
	// navigation and the already-signed-in redirects work.
	loadUser := auth.LoadUser(sessions, sessionStore, users)
	e.GET("/", pageHandler.Index, loadUser)
	e.GET("/index", pageHandler.Index, loadUser)
	e.GET("/login", authHandler.LoginPage, loadUser)
	e.POST("/login", authHandler.Login, loadUser)
	e.GET("/logout", authHandler.Logout, loadUser)
	e.GET("/register", authHandler.RegisterPage, loadUser)
	e.POST("/register", authHandler.Register, loadUser)

	// Pages gated behind a valid session
	requireAuth := auth.RequireAuth(cfg.SecretKey, sessionStore, users)
	e.GET("/dashboard", pageHandler.Dashboard, requireAuth)
	e.GET("/profile", pageHandler.Profile, requireAuth)
	e.GET("/stock_tracker", pageHandler.StockTrackerPage, requireAuth)
	e.POST("/stock_tracker", pageHandler.StockTracker, requireAuth)
	e.GET("/recommendations", pageHandler.Recommendations, requireAuth)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
