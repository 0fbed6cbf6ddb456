package memory

import (
	"context"
	"errors"
	"testing"

	"finboard/internal/core"
	"finboard/internal/prefs"
)

var (
	_ prefs.ThemeStore   = (*Store)(nil)
	_ prefs.ThemeCounter = (*Store)(nil)
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, ok, err := s.GetTheme(ctx, "a"); ok || err != nil {
		t.Fatalf("expected empty store, ok=%v err=%v", ok, err)
	}
	if err := s.SetTheme(ctx, "a", core.ThemeDark); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := s.GetTheme(ctx, "a")
	if err != nil || !ok || got != core.ThemeDark {
		t.Fatalf("unexpected get: %q ok=%v err=%v", got, ok, err)
	}
	if err := s.SetTheme(ctx, "a", core.ThemeLight); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, _, _ := s.GetTheme(ctx, "a"); got != core.ThemeLight {
		t.Fatalf("overwrite not applied: %q", got)
	}
	if n, err := s.CountThemes(ctx); err != nil || n != 1 {
		t.Fatalf("CountThemes = %d, %v, want 1", n, err)
	}
}

type failingStore struct{}

func (failingStore) GetTheme(context.Context, string) (core.Theme, bool, error) {
	return "", false, errors.New("boom")
}
func (failingStore) SetTheme(context.Context, string, core.Theme) error { return nil }

func TestResolveTheme(t *testing.T) {
	ctx := context.Background()
	s := New()
	_ = s.SetTheme(ctx, "dark-user", core.ThemeDark)

	cases := []struct {
		name    string
		store   prefs.ThemeStore
		client  string
		want    core.Theme
		wantErr bool
	}{
		{"stored", s, "dark-user", core.ThemeDark, false},
		{"unknown browser", s, "new", core.ThemeLight, false},
		{"no client id", s, "", core.ThemeLight, false},
		{"nil store", nil, "dark-user", core.ThemeLight, false},
		{"store error", failingStore{}, "x", core.ThemeLight, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := prefs.ResolveTheme(ctx, tc.store, tc.client, core.ThemeLight)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("theme = %q, want %q", got, tc.want)
			}
		})
	}
}
