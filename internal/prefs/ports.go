// Package prefs defines the port for the one preference that outlives a
// page: the light/dark theme of a browser.
package prefs

import (
	"context"

	"finboard/internal/core"
)

// ThemeStore persists the theme per browser id.
type ThemeStore interface {
	// GetTheme returns the stored theme. ok is false when the browser
	// has never toggled.
	GetTheme(ctx context.Context, clientID string) (theme core.Theme, ok bool, err error)
	SetTheme(ctx context.Context, clientID string, theme core.Theme) error
}

// ThemeCounter is implemented by stores that can report how many browsers
// have a stored theme.
type ThemeCounter interface {
	CountThemes(ctx context.Context) (int, error)
}

// ResolveTheme reads clientID's theme, falling back when nothing is stored
// or the store fails.
func ResolveTheme(ctx context.Context, s ThemeStore, clientID string, fallback core.Theme) (core.Theme, error) {
	if s == nil || clientID == "" {
		return fallback, nil
	}
	theme, ok, err := s.GetTheme(ctx, clientID)
	if err != nil {
		return fallback, err
	}
	if !ok {
		return fallback, nil
	}
	return theme, nil
}
