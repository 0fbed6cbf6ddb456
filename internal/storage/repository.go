package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"finboard/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository stores theme preferences in a single SQLite table.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks the database connection for /readyz.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// GetTheme implements prefs.ThemeStore
func (r *SQLiteRepository) GetTheme(ctx context.Context, clientID string) (core.Theme, bool, error) {
	var theme string
	err := r.db.QueryRowContext(ctx,
		`SELECT theme FROM theme_preferences WHERE client_id = ?`, clientID).Scan(&theme)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get theme for %s: %w", clientID, err)
	}
	return core.ParseTheme(theme), true, nil
}

// SetTheme implements prefs.ThemeStore
func (r *SQLiteRepository) SetTheme(ctx context.Context, clientID string, theme core.Theme) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO theme_preferences (client_id, theme, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(client_id) DO UPDATE SET theme = excluded.theme, updated_at = excluded.updated_at`,
		clientID, string(core.ParseTheme(string(theme))), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set theme for %s: %w", clientID, err)
	}

	slog.DebugContext(ctx, "Theme preference saved to SQLite",
		"client_id", clientID,
		"theme", theme)
	return nil
}

// CountThemes implements prefs.ThemeCounter.
func (r *SQLiteRepository) CountThemes(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM theme_preferences`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count themes: %w", err)
	}
	return n, nil
}
