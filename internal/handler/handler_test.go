package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockfolio/internal/auth"
	"stockfolio/internal/config"
	"stockfolio/internal/db"
	"stockfolio/internal/handler"
	"stockfolio/internal/market"
	"stockfolio/internal/model"
	"stockfolio/internal/repository"
	"stockfolio/internal/router"
	"stockfolio/internal/service"
	"stockfolio/internal/view"
)

// newTestApp assembles the application against an in-memory database and the
// given market data endpoint, mirroring cmd/server.
func newTestApp(t *testing.T, providerURL string) *echo.Echo {
	t.Helper()

	e := echo.New()

	renderer, err := view.NewRenderer()
	require.NoError(t, err)
	e.Renderer = renderer
	e.HTTPErrorHandler = view.ErrorHandler

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	gormDB, err := db.Open(dsn)
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&model.User{}))

	cfg := &config.Config{SecretKey: "test-secret"}
	userRepo := repository.NewUserRepository(gormDB)
	sessions := auth.NewSessionService(cfg.SecretKey)
	sessionStore := auth.NewSessionStore(nil) // no redis in tests

	authHandler := handler.NewAuthHandler(service.NewAuthService(userRepo), sessions, sessionStore)
	pageHandler := handler.NewPageHandler(market.NewProvider(providerURL, "test-key"), service.NewProfileService())

	router.Register(e, cfg, sessions, sessionStore, userRepo, authHandler, pageHandler)
	return e
}

// deadProviderURL returns an endpoint that refuses connections, forcing the
// mock-data fallback.
func deadProviderURL() string {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	return srv.URL
}

func get(e *echo.Echo, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postForm(e *echo.Echo, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName && c.Value != "" {
			return c
		}
	}
	return nil
}

func register(t *testing.T, e *echo.Echo, username, email, password string) {
	t.Helper()
	rec := postForm(e, "/register", url.Values{
		"username":  {username},
		"email":     {email},
		"password":  {password},
		"password2": {password},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func login(t *testing.T, e *echo.Echo, username, password string) *http.Cookie {
	t.Helper()
	rec := postForm(e, "/login", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie, "login must set a session cookie")
	return cookie
}

func TestRegisterThenLogin(t *testing.T) {
	e := newTestApp(t, deadProviderURL())

	register(t, e, "alice", "alice@example.com", "secret123")
	cookie := login(t, e, "alice", "secret123")

	rec := get(e, "/dashboard", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dashboard")
}

func TestLoginWrongPassword(t *testing.T) {
	e := newTestApp(t, deadProviderURL())
	register(t, e, "alice", "alice@example.com", "secret123")

	rec := postForm(e, "/login", url.Values{
		"username": {"alice"},
		"password": {"wrong-password"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	assert.Nil(t, sessionCookie(rec), "failed login must not establish a session")

	// the flashed message shows on the redisplayed form
	followUp := get(e, "/login", rec.Result().Cookies()...)
	assert.Contains(t, followUp.Body.String(), "Invalid username or password")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	e := newTestApp(t, deadProviderURL())
	register(t, e, "alice", "alice@example.com", "secret123")

	rec := postForm(e, "/register", url.Values{
		"username":  {"alice"},
		"email":     {"other@example.com"},
		"password":  {"secret123"},
		"password2": {"secret123"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please use a different username.")
}

func TestStockTrackerFallsBackToMockData(t *testing.T) {
	e := newTestApp(t, deadProviderURL())
	register(t, e, "alice", "alice@example.com", "secret123")
	cookie := login(t, e, "alice", "secret123")

	rec := postForm(e, "/stock_tracker", url.Values{"ticker": {"AAPL"}}, cookie)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Error retrieving stock data. Displaying mock data.")
	assert.Contains(t, body, "data:image/png;base64,")
}

func TestStockTrackerSingleEntrySeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Time Series (Daily)": {
			"2026-08-21": {"1. open": "230.10", "2. high": "233.00", "3. low": "229.50", "4. close": "232.14", "5. volume": "50124300"}
		}}`))
	}))
	defer srv.Close()

	e := newTestApp(t, srv.URL)
	register(t, e, "alice", "alice@example.com", "secret123")
	cookie := login(t, e, "alice", "secret123")

	rec := postForm(e, "/stock_tracker", url.Values{"ticker": {"AAPL"}}, cookie)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "data:image/png;base64,")
}

func TestStockTrackerOmitsChartOnBadSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Time Series (Daily)": {
			"2026-08-21": {"4. close": "232.14"},
			"2026-08-20": {"4. close": "n/a"}
		}}`))
	}))
	defer srv.Close()

	e := newTestApp(t, srv.URL)
	register(t, e, "alice", "alice@example.com", "secret123")
	cookie := login(t, e, "alice", "secret123")

	rec := postForm(e, "/stock_tracker", url.Values{"ticker": {"AAPL"}}, cookie)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Chart could not be rendered for this series.")
	assert.NotContains(t, body, "data:image/png;base64,")
}

func TestNon404ErrorsRenderAs500(t *testing.T) {
	e := newTestApp(t, deadProviderURL())

	// no POST route exists for /profile; the error page still goes out as 500
	rec := postForm(e, "/profile", url.Values{})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something Went Wrong")
}

func TestDashboardRequiresLogin(t *testing.T) {
	e := newTestApp(t, deadProviderURL())

	rec := get(e, "/dashboard")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestLogoutEndsSession(t *testing.T) {
	e := newTestApp(t, deadProviderURL())
	register(t, e, "alice", "alice@example.com", "secret123")
	cookie := login(t, e, "alice", "secret123")

	rec := get(e, "/logout", cookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	// the cookie is expired in the response
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			assert.Empty(t, c.Value)
		}
	}
}

func TestUnknownRouteRenders404(t *testing.T) {
	e := newTestApp(t, deadProviderURL())

	rec := get(e, "/no_such_page")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page Not Found")
}
