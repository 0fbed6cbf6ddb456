package memory

import (
	"context"
	"sync"

	"finboard/internal/core"
)

// Store keeps themes in process memory. Contents are lost on restart.
type Store struct {
	mu     sync.RWMutex
	themes map[string]core.Theme
}

func New() *Store {
	return &Store{themes: make(map[string]core.Theme)}
}

// GetTheme implements prefs.ThemeStore.
func (s *Store) GetTheme(_ context.Context, clientID string) (core.Theme, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.themes[clientID]
	return t, ok, nil
}

// SetTheme implements prefs.ThemeStore.
func (s *Store) SetTheme(_ context.Context, clientID string, theme core.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.themes[clientID] = theme
	return nil
}

// CountThemes implements prefs.ThemeCounter.
func (s *Store) CountThemes(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.themes), nil
}
