package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/core"
	"finboard/internal/prefs"
)

var (
	_ prefs.ThemeStore   = (*SQLiteRepository)(nil)
	_ prefs.ThemeCounter = (*SQLiteRepository)(nil)
)

func newTestRepo(t *testing.T) (*SQLiteRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "finboard.db")
	repo, err := NewSQLiteRepository(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo, path
}

func TestSQLiteThemeRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, ok, err := repo.GetTheme(ctx, "browser-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.SetTheme(ctx, "browser-1", core.ThemeDark))
	got, ok, err := repo.GetTheme(ctx, "browser-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, core.ThemeDark, got)

	require.NoError(t, repo.SetTheme(ctx, "browser-1", core.ThemeLight))
	got, _, err = repo.GetTheme(ctx, "browser-1")
	require.NoError(t, err)
	assert.Equal(t, core.ThemeLight, got)

	n, err := repo.CountThemes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSQLiteThemeNormalizesUnknownValues(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetTheme(ctx, "b", core.Theme("solarized")))
	got, ok, err := repo.GetTheme(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, core.ThemeLight, got)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	repo, path := newTestRepo(t)
	require.NoError(t, repo.SetTheme(context.Background(), "keep", core.ThemeDark))

	// Re-running on an up-to-date schema is a no-op and keeps data.
	require.NoError(t, RunMigrations(path))

	got, ok, err := repo.GetTheme(context.Background(), "keep")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, core.ThemeDark, got)
}
