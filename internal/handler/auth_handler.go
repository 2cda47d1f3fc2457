package handler

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"stockfolio/internal/auth"
	"stockfolio/internal/errors"
	"stockfolio/internal/service"
	"stockfolio/internal/view"
)

// AuthHandler serves the login, register and logout pages.
type AuthHandler struct {
	authService service.AuthService
	sessions    *auth.SessionService
	store       auth.SessionStoreInterface
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessions *auth.SessionService, store auth.SessionStoreInterface) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, store: store}
}

// LoginForm is the login page submission.
type LoginForm struct {
	Username   string `form:"username" validate:"required"`
	Password   string `form:"password" validate:"required"`
	RememberMe bool   `form:"remember_me"`
}

// RegisterForm is the registration page submission.
type RegisterForm struct {
	Username  string `form:"username" validate:"required"`
	Email     string `form:"email" validate:"required,email"`
	Password  string `form:"password" validate:"required,min=6"`
	Password2 string `form:"password2" validate:"required,eqfield=Password"`
}

// LoginPage renders the sign-in form. Authenticated users are sent home.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	if auth.CurrentUser(c) != nil {
		return c.Redirect(http.StatusFound, "/")
	}
	return c.Render(http.StatusOK, "login.html", echo.Map{
		"Title":    "Sign In",
		"User":     nil,
		"Username": "",
	})
}

// Login handles the sign-in submission: on success it establishes the session
// cookie and redirects home, otherwise it flashes a generic error.
func (h *AuthHandler) Login(c echo.Context) error {
	if auth.CurrentUser(c) != nil {
		return c.Redirect(http.StatusFound, "/")
	}

	var form LoginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	if err := c.Validate(&form); err != nil {
		view.AddFlash(c, "danger", "Invalid username or password")
		return c.Redirect(http.StatusFound, "/login")
	}

	user, err := h.authService.Authenticate(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		if stderrors.Is(err, errors.ErrInvalidCredentials) {
			view.AddFlash(c, "danger", "Invalid username or password")
			return c.Redirect(http.StatusFound, "/login")
		}
		return err
	}

	token, expiresAt, err := h.sessions.Issue(user, form.RememberMe)
	if err != nil {
		return err
	}

	cookie := &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if form.RememberMe {
		// persistent cookie; without remember it dies with the browser session
		cookie.Expires = expiresAt
	}
	c.SetCookie(cookie)

	return c.Redirect(http.StatusFound, "/")
}

// Logout revokes the current session token and clears the cookie. Without an
// active session it is a plain redirect home.
func (h *AuthHandler) Logout(c echo.Context) error {
	if claims := auth.CurrentClaims(c); claims != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		_ = h.store.Revoke(c.Request().Context(), claims.ID, ttl)
	}

	c.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.Redirect(http.StatusFound, "/")
}

// RegisterPage renders the registration form. Authenticated users are sent home.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	if auth.CurrentUser(c) != nil {
		return c.Redirect(http.StatusFound, "/")
	}
	return h.renderRegister(c, &RegisterForm{}, nil)
}

// Register handles the registration submission. Field problems redisplay the
// form with inline errors; success redirects to the login page.
func (h *AuthHandler) Register(c echo.Context) error {
	if auth.CurrentUser(c) != nil {
		return c.Redirect(http.StatusFound, "/")
	}

	var form RegisterForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderRegister(c, &form, fieldErrors(err))
	}

	_, err := h.authService.Register(c.Request().Context(), form.Username, form.Email, form.Password)
	switch {
	case stderrors.Is(err, errors.ErrDuplicateUsername):
		return h.renderRegister(c, &form, map[string]string{"username": "Please use a different username."})
	case stderrors.Is(err, errors.ErrDuplicateEmail):
		return h.renderRegister(c, &form, map[string]string{"email": "Please use a different email address."})
	case err != nil:
		return err
	}

	view.AddFlash(c, "info", "Congratulations, you are now a registered user!")
	return c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) renderRegister(c echo.Context, form *RegisterForm, errs map[string]string) error {
	if errs == nil {
		errs = map[string]string{}
	}
	return c.Render(http.StatusOK, "register.html", echo.Map{
		"Title":    "Register",
		"User":     nil,
		"Username": form.Username,
		"Email":    form.Email,
		"Errors":   errs,
	})
}

// fieldErrors turns validator failures into per-field form messages.
func fieldErrors(err error) map[string]string {
	errs := map[string]string{}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errs
	}
	for _, fe := range verrs {
		var field, msg string
		switch fe.Field() {
		case "Username":
			field = "username"
		case "Email":
			field = "email"
		case "Password":
			field = "password"
		case "Password2":
			field = "password2"
		default:
			continue
		}
		switch fe.Tag() {
		case "required":
			msg = "This field is required."
		case "email":
			msg = "Invalid email address."
		case "min":
			msg = "Password must be at least 6 characters."
		case "eqfield":
			msg = "Passwords must match."
		default:
			msg = "Invalid value."
		}
		errs[field] = msg
	}
	return errs
}
