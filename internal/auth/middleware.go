package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"stockfolio/internal/model"
	"stockfolio/internal/repository"
)

const (
	tokenContextKey  = "session_token"
	claimsContextKey = "session_claims"
	userContextKey   = "current_user"
)

// RequireAuth gates a route group behind a valid, unrevoked session cookie.
// Requests without one are redirected to the login page; authenticated
// requests get the user record loaded into the echo context.
func RequireAuth(secret string, store SessionStoreInterface, users repository.UserRepository) echo.MiddlewareFunc {
	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "cookie:" + CookieName,
		ContextKey:  tokenContextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.Redirect(http.StatusFound, "/login")
		},
	})

	loadUser := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get(tokenContextKey).(*jwt.Token)
			if !ok {
				return c.Redirect(http.StatusFound, "/login")
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				return c.Redirect(http.StatusFound, "/login")
			}
			if store.IsRevoked(c.Request().Context(), claims.ID) {
				return c.Redirect(http.StatusFound, "/login")
			}
			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return c.Redirect(http.StatusFound, "/login")
			}
			c.Set(claimsContextKey, claims)
			c.Set(userContextKey, user)
			return next(c)
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return jwtMiddleware(loadUser(next))
	}
}

// CurrentUser returns the authenticated user for the request, or nil when the
// request is anonymous.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

// CurrentClaims returns the session claims for the request, or nil.
func CurrentClaims(c echo.Context) *Claims {
	claims, _ := c.Get(claimsContextKey).(*Claims)
	return claims
}

// LoadUser is the best-effort variant of RequireAuth for public pages: a valid
// session cookie populates the current user, anything else is ignored.
func LoadUser(sessions *SessionService, store SessionStoreInterface, users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}
			claims, err := sessions.Validate(cookie.Value)
			if err != nil || store.IsRevoked(c.Request().Context(), claims.ID) {
				return next(c)
			}
			if user, err := users.FindByID(c.Request().Context(), claims.UserID); err == nil {
				c.Set(claimsContextKey, claims)
				c.Set(userContextKey, user)
			}
			return next(c)
		}
	}
}
