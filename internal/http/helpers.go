package http

import (
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"finboard/internal/core"
	"finboard/internal/workspace"
)

const (
	workspaceCookie = "finboard_ws"
	clientCookie    = "finboard_client"
	themeCookie     = "theme"

	clientCookieMaxAge = 365 * 24 * 60 * 60
)

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	return stripControl(strings.TrimSpace(s))
}

// stripControl drops control characters other than tab, newline and
// carriage return. Spaces are kept.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// cookieID returns the cookie's value when it is a well-formed id, and
// otherwise issues a new one.
func cookieID(w http.ResponseWriter, r *http.Request, name string, maxAge int) string {
	if c, err := r.Cookie(name); err == nil && workspace.ValidID(c.Value) {
		return c.Value
	}
	id := workspace.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    id,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// workspaceIDFromCookie tags request logs with the browser's workspace. A
// malformed cookie is ignored, matching cookieID.
func workspaceIDFromCookie(r *http.Request) string {
	if c, err := r.Cookie(workspaceCookie); err == nil && workspace.ValidID(c.Value) {
		return c.Value
	}
	return ""
}

// themeFromCookie is the first-paint guess before the store is consulted.
func themeFromCookie(r *http.Request) core.Theme {
	if c, err := r.Cookie(themeCookie); err == nil {
		return core.ParseTheme(c.Value)
	}
	return core.ThemeLight
}

func setThemeCookie(w http.ResponseWriter, theme core.Theme) {
	http.SetCookie(w, &http.Cookie{
		Name:     themeCookie,
		Value:    string(theme),
		Path:     "/",
		MaxAge:   clientCookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// clampPercent bounds a bar width to [0, 100].
func clampPercent(p float64) float64 {
	return math.Max(0, math.Min(p, 100))
}

var templateFuncs = template.FuncMap{
	"money":      func(m core.Money) string { return m.String() },
	"whole":      func(m core.Money) string { return m.Whole() },
	"abs":        func(m core.Money) core.Money { return m.Abs() },
	"negative":   func(m core.Money) bool { return m.Cents < 0 },
	"pct":        func(p float64) string { return strconv.FormatFloat(p, 'f', 1, 64) },
	"bar":        func(p float64) string { return strconv.FormatFloat(clampPercent(p), 'f', 1, 64) + "%" },
	"date":       func(d core.Date) string { return d.String() },
	"longDate":   longDate,
	"plain":      plainAmount,
	"tone":       core.CategoryTone,
	"monthBadge": func(t time.Time) string { return t.Format("January 2006") },
}

func longDate(d core.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("Jan 2, 2006")
}

// plainAmount renders the magnitude of m for a number input, e.g. "125.50".
func plainAmount(m core.Money) string {
	c := m.Abs().Cents
	return fmt.Sprintf("%d.%02d", c/100, c%100)
}
