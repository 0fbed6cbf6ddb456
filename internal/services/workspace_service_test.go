package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"finboard/internal/amqp"
	"finboard/internal/core"
	"finboard/internal/prefs/memory"
	"finboard/internal/workspace"
)

type fakePublisher struct {
	mu   sync.Mutex
	msgs []*amqp.ActivityMessage
	err  error
}

func (f *fakePublisher) PublishActivity(_ context.Context, msg *amqp.ActivityMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
	return f.err
}

func (f *fakePublisher) kinds() []amqp.ActivityKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]amqp.ActivityKind, len(f.msgs))
	for i, m := range f.msgs {
		out[i] = m.Kind
	}
	return out
}

func newTestWorkspace() *workspace.Workspace {
	ws, _ := workspace.NewStore(10, time.Minute, workspace.Seed{}).Get(workspace.NewID())
	return ws
}

func TestWorkspaceService_TransactionLifecycle(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewWorkspaceService(memory.New(), pub, nil)
	ws := newTestWorkspace()
	ctx := context.Background()

	added, err := svc.AddTransaction(ctx, ws, core.Transaction{
		Date:        core.MustDate("2024-07-13"),
		Description: "Bookstore",
		Category:    "Shopping",
		Amount:      core.Dollars(30),
		Type:        core.Expense,
	})
	if err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	if added.ID != 11 || added.Amount != core.Dollars(-30) {
		t.Errorf("AddTransaction() = %+v", added)
	}

	edited, err := svc.EditTransaction(ctx, ws, 3, core.TransactionEdit{
		Date:        core.MustDate("2024-07-11"),
		Description: "Salary",
		Category:    "Salary",
		Amount:      core.Dollars(-4600),
	})
	if err != nil {
		t.Fatalf("EditTransaction() error = %v", err)
	}
	if edited.Amount != core.Dollars(4600) || edited.Type != core.Income {
		t.Errorf("income keeps its sign: %+v", edited)
	}

	if err := svc.DeleteTransaction(ctx, ws, 2); err != nil {
		t.Fatalf("DeleteTransaction() error = %v", err)
	}
	if err := svc.DeleteTransaction(ctx, ws, 999); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("DeleteTransaction(999) error = %v, want ErrNotFound", err)
	}

	ws.Read(func(st *workspace.State) {
		if len(st.Ledger) != 10 {
			t.Errorf("ledger has %d rows, want 10", len(st.Ledger))
		}
		if _, ok := core.FindTransaction(st.Ledger, 2); ok {
			t.Error("transaction 2 should be gone")
		}
	})

	want := []amqp.ActivityKind{amqp.TransactionCreated, amqp.TransactionUpdated, amqp.TransactionDeleted}
	got := pub.kinds()
	if len(got) != len(want) {
		t.Fatalf("published %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d kind = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestWorkspaceService_InvalidInputLeavesStateAlone(t *testing.T) {
	pub := &fakePublisher{}
	svc := NewWorkspaceService(memory.New(), pub, nil)
	ws := newTestWorkspace()
	ctx := context.Background()

	_, err := svc.AddTransaction(ctx, ws, core.Transaction{Date: core.MustDate("2024-07-13"), Category: "Food", Type: core.Expense})
	if !errors.Is(err, core.ErrEmptyDescription) {
		t.Errorf("AddTransaction() error = %v, want ErrEmptyDescription", err)
	}
	_, err = svc.EditTransaction(ctx, ws, 42, core.TransactionEdit{Date: core.MustDate("2024-07-13"), Description: "x", Category: "Food"})
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("EditTransaction(42) error = %v, want ErrNotFound", err)
	}
	if err := svc.UpdateProfile(ctx, ws, core.Profile{Name: "  ", Email: "jane@example.com"}); !errors.Is(err, core.ErrEmptyName) {
		t.Errorf("UpdateProfile() error = %v, want ErrEmptyName", err)
	}

	ws.Read(func(st *workspace.State) {
		if len(st.Ledger) != 10 {
			t.Errorf("ledger has %d rows, want 10", len(st.Ledger))
		}
		if st.Settings.Profile.Name != "John Doe" {
			t.Errorf("profile changed to %+v", st.Settings.Profile)
		}
	})
	if n := len(pub.kinds()); n != 0 {
		t.Errorf("published %d messages for rejected input", n)
	}
}

func TestWorkspaceService_BudgetGoalsSettings(t *testing.T) {
	svc := NewWorkspaceService(memory.New(), nil, nil)
	ws := newTestWorkspace()
	ctx := context.Background()

	cat, err := svc.AddBudgetCategory(ctx, ws, core.BudgetCategory{Name: "Pets", Budgeted: core.Dollars(90), Spent: core.Dollars(50)})
	if err != nil {
		t.Fatalf("AddBudgetCategory() error = %v", err)
	}
	if cat.ID != 9 || cat.Spent.Cents != 0 || cat.Color == "" {
		t.Errorf("AddBudgetCategory() = %+v", cat)
	}

	goal, err := svc.AddGoal(ctx, ws, core.SavingsGoal{Name: "Bike", Target: core.Dollars(800), Deadline: core.MustDate("2025-01-01")})
	if err != nil {
		t.Fatalf("AddGoal() error = %v", err)
	}
	if goal.ID != 6 || goal.Priority != core.PriorityMedium {
		t.Errorf("AddGoal() = %+v", goal)
	}
	if err := svc.DeleteGoal(ctx, ws, 1); err != nil {
		t.Fatalf("DeleteGoal() error = %v", err)
	}

	if err := svc.UpdateProfile(ctx, ws, core.Profile{Name: "Jane Roe", Email: "jane@example.com", Currency: "EUR"}); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	svc.UpdateNotifications(ctx, ws, core.NotificationPrefs{WeeklyReports: true})
	svc.UpdatePrivacy(ctx, ws, core.PrivacyPrefs{DataSharing: true})

	ws.Read(func(st *workspace.State) {
		if len(st.Budget) != 9 || len(st.Goals) != 5 {
			t.Errorf("budget %d goals %d", len(st.Budget), len(st.Goals))
		}
		if st.Settings.Profile.Currency != "EUR" || !st.Settings.Notifications.WeeklyReports || !st.Settings.Privacy.DataSharing {
			t.Errorf("settings = %+v", st.Settings)
		}
	})
}

func TestWorkspaceService_ToggleTheme(t *testing.T) {
	store := memory.New()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewWorkspaceService(store, pub, nil)
	ctx := context.Background()

	if got := svc.Theme(ctx, "browser", core.ThemeLight); got != core.ThemeLight {
		t.Fatalf("Theme() = %s, want fallback", got)
	}

	next, err := svc.ToggleTheme(ctx, "browser", core.ThemeLight)
	if err != nil {
		t.Fatalf("ToggleTheme() error = %v", err)
	}
	if next != core.ThemeDark {
		t.Errorf("ToggleTheme() = %s, want dark", next)
	}
	if got := svc.Theme(ctx, "browser", core.ThemeLight); got != core.ThemeDark {
		t.Errorf("stored theme = %s, want dark", got)
	}

	next, _ = svc.ToggleTheme(ctx, "browser", core.ThemeLight)
	if next != core.ThemeLight {
		t.Errorf("second toggle = %s, want light", next)
	}
	if len(pub.kinds()) != 2 {
		t.Errorf("a failing publisher must not block toggles")
	}
}

type uncountedThemes struct{}

func (uncountedThemes) GetTheme(context.Context, string) (core.Theme, bool, error) {
	return "", false, nil
}
func (uncountedThemes) SetTheme(context.Context, string, core.Theme) error { return nil }

func TestWorkspaceService_ThemePreferences(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewWorkspaceService(store, nil, nil)

	if n, ok := svc.ThemePreferences(ctx); !ok || n != 0 {
		t.Fatalf("ThemePreferences() = %d, %v, want 0, true", n, ok)
	}
	_, _ = svc.ToggleTheme(ctx, "a", core.ThemeLight)
	_, _ = svc.ToggleTheme(ctx, "b", core.ThemeLight)
	_, _ = svc.ToggleTheme(ctx, "a", core.ThemeLight)
	if n, ok := svc.ThemePreferences(ctx); !ok || n != 2 {
		t.Errorf("ThemePreferences() = %d, %v, want 2, true", n, ok)
	}

	if _, ok := NewWorkspaceService(uncountedThemes{}, nil, nil).ThemePreferences(ctx); ok {
		t.Error("a store without a counter should report ok=false")
	}
}
