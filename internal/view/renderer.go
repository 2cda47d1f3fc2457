package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer implements echo.Renderer over the embedded page templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Render executes the named page template. Flash messages queued via cookie
// are merged with any the handler passed directly under "Flashes".
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	page, ok := data.(echo.Map)
	if !ok {
		page = echo.Map{}
	}
	pending, _ := page["Flashes"].([]Flash)
	page["Flashes"] = append(TakeFlashes(c), pending...)
	return r.templates.ExecuteTemplate(w, name, page)
}

// ErrorHandler renders the dedicated 404 and 500 views. Every failure that is
// not a 404 goes out as a 500; those are the only non-2xx pages served.
// Unhandled faults are logged with the request ID before the 500 page renders.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if he, ok := err.(*echo.HTTPError); ok && he.Code == http.StatusNotFound {
		_ = c.Render(http.StatusNotFound, "404.html", echo.Map{"Title": "Not Found"})
		return
	}

	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	log.Printf("ERROR request %s %s %s: %v", requestID, c.Request().Method, c.Request().URL.Path, err)
	_ = c.Render(http.StatusInternalServerError, "500.html", echo.Map{"Title": "Server Error"})
}
