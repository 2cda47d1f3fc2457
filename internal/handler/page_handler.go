package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"stockfolio/internal/auth"
	"stockfolio/internal/chart"
	"stockfolio/internal/market"
	"stockfolio/internal/model"
	"stockfolio/internal/service"
	"stockfolio/internal/view"
)

// PageHandler serves the content pages: landing, dashboard, profile, stock
// tracker and recommendations.
type PageHandler struct {
	market   *market.Provider
	profiles service.ProfileService
}

// NewPageHandler creates a new page handler.
func NewPageHandler(market *market.Provider, profiles service.ProfileService) *PageHandler {
	return &PageHandler{market: market, profiles: profiles}
}

// StockForm is the stock tracker submission.
type StockForm struct {
	Ticker string `form:"ticker" validate:"required"`
}

// dashboardRow is one line of the dashboard table.
type dashboardRow struct {
	Ticker string
	Date   string
	Close  string
}

// Index renders the landing page.
func (h *PageHandler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", echo.Map{
		"Title": "Home",
		"User":  auth.CurrentUser(c),
	})
}

// Dashboard lists the latest close for each of the user's preferred tickers.
func (h *PageHandler) Dashboard(c echo.Context) error {
	user := auth.CurrentUser(c)
	profile := h.profiles.Profile(user)

	rows := make([]dashboardRow, 0, len(profile.PreferredStocks))
	for _, ticker := range profile.PreferredStocks {
		series, _ := h.market.GetSeries(c.Request().Context(), ticker)
		if latest, ok := series.Latest(); ok {
			rows = append(rows, dashboardRow{Ticker: ticker, Date: latest.Date, Close: latest.Close})
		}
	}

	return c.Render(http.StatusOK, "dashboard.html", echo.Map{
		"Title":  "Dashboard",
		"User":   user,
		"Stocks": rows,
	})
}

// Profile renders the profile page.
func (h *PageHandler) Profile(c echo.Context) error {
	user := auth.CurrentUser(c)
	return c.Render(http.StatusOK, "profile.html", echo.Map{
		"Title":   "Profile",
		"User":    user,
		"Profile": h.profiles.Profile(user),
	})
}

// StockTrackerPage renders the empty ticker form.
func (h *PageHandler) StockTrackerPage(c echo.Context) error {
	return h.renderStockTracker(c, "", nil, "", nil)
}

// StockTracker handles a ticker submission: fetches the series, renders the
// chart, and warns when the provider fell back to mock data.
func (h *PageHandler) StockTracker(c echo.Context) error {
	var form StockForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	if err := c.Validate(&form); err != nil {
		view.AddFlash(c, "danger", "Please enter a ticker symbol.")
		return c.Redirect(http.StatusFound, "/stock_tracker")
	}

	var flashes []view.Flash
	series, live := h.market.GetSeries(c.Request().Context(), form.Ticker)
	if !live {
		flashes = append(flashes, view.Flash{
			Category: "danger",
			Message:  "Error retrieving stock data. Displaying mock data.",
		})
	}

	// any render failure omits the chart; the page still goes out
	graphURL, err := chart.Render(form.Ticker, series)
	if err != nil {
		log.Printf("ERROR chart: render %s: %v", form.Ticker, err)
		flashes = append(flashes, view.Flash{
			Category: "warning",
			Message:  "Chart could not be rendered for this series.",
		})
		graphURL = ""
	}

	return h.renderStockTracker(c, form.Ticker, series, graphURL, flashes)
}

func (h *PageHandler) renderStockTracker(c echo.Context, ticker string, series model.TimeSeries, graphURL string, flashes []view.Flash) error {
	return c.Render(http.StatusOK, "stock_tracker.html", echo.Map{
		"Title":    "Stock Tracker",
		"User":     auth.CurrentUser(c),
		"Ticker":   ticker,
		"Series":   series,
		"GraphURL": graphURL,
		"Flashes":  flashes,
	})
}

// Recommendations renders the recommendation list.
func (h *PageHandler) Recommendations(c echo.Context) error {
	return c.Render(http.StatusOK, "recommendations.html", echo.Map{
		"Title":           "Recommendations",
		"User":            auth.CurrentUser(c),
		"Recommendations": h.profiles.Recommendations(),
	})
}
