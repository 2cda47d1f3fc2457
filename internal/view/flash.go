package view

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

const flashCookie = "flash"

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// AddFlash queues a flash message for the next rendered page. Category is a
// presentation hint ("info", "warning", "danger").
func AddFlash(c echo.Context, category, message string) {
	flashes := readFlashes(c.Request())
	flashes = append(flashes, Flash{Category: category, Message: message})

	payload, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
	})
}

// TakeFlashes returns the pending flash messages and clears them.
func TakeFlashes(c echo.Context) []Flash {
	flashes := readFlashes(c.Request())
	if len(flashes) > 0 {
		c.SetCookie(&http.Cookie{
			Name:     flashCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
	}
	return flashes
}

func readFlashes(r *http.Request) []Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	payload, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(payload, &flashes); err != nil {
		return nil
	}
	return flashes
}
