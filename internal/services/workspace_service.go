package services

import (
	"context"
	"fmt"
	"log/slog"

	"finboard/internal/amqp"
	"finboard/internal/core"
	"finboard/internal/log"
	"finboard/internal/prefs"
	"finboard/internal/workspace"
)

// ActivityPublisher sends mutation records to the activity feed.
type ActivityPublisher interface {
	PublishActivity(ctx context.Context, msg *amqp.ActivityMessage) error
}

// WorkspaceService applies local mutations to a workspace, logs them and
// announces them on the activity feed. The feed is best effort: a failed
// publish never fails the mutation.
type WorkspaceService struct {
	themes    prefs.ThemeStore
	publisher ActivityPublisher
	mutations *log.MutationLogger
}

// NewWorkspaceService wires the service. publisher may be nil.
func NewWorkspaceService(themes prefs.ThemeStore, publisher ActivityPublisher, logger *log.Logger) *WorkspaceService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &WorkspaceService{
		themes:    themes,
		publisher: publisher,
		mutations: log.NewMutationLogger(logger),
	}
}

// AddTransaction prepends draft to the ledger with the next id.
func (s *WorkspaceService) AddTransaction(ctx context.Context, ws *workspace.Workspace, draft core.Transaction) (core.Transaction, error) {
	var added core.Transaction
	err := ws.Update(func(st *workspace.State) error {
		next, tx, err := core.AppendTransaction(st.Ledger, draft)
		if err != nil {
			return err
		}
		st.Ledger, added = next, tx
		return nil
	})
	if err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}

	s.record(ctx, ws, log.ComponentTransaction, log.OpCreate, amqp.TransactionCreated, added.ID, added.Amount.Cents, added.Category)
	return added, nil
}

// EditTransaction replaces the fields of the transaction matching id.
func (s *WorkspaceService) EditTransaction(ctx context.Context, ws *workspace.Workspace, id int64, edit core.TransactionEdit) (core.Transaction, error) {
	var updated core.Transaction
	err := ws.Update(func(st *workspace.State) error {
		next, tx, err := core.ReplaceTransaction(st.Ledger, id, edit)
		if err != nil {
			return err
		}
		st.Ledger, updated = next, tx
		return nil
	})
	if err != nil {
		return core.Transaction{}, fmt.Errorf("edit transaction: %w", err)
	}

	s.record(ctx, ws, log.ComponentTransaction, log.OpUpdate, amqp.TransactionUpdated, updated.ID, updated.Amount.Cents, updated.Category)
	return updated, nil
}

// DeleteTransaction removes the transaction matching id.
func (s *WorkspaceService) DeleteTransaction(ctx context.Context, ws *workspace.Workspace, id int64) error {
	var removed core.Transaction
	err := ws.Update(func(st *workspace.State) error {
		tx, _ := core.FindTransaction(st.Ledger, id)
		next, err := core.RemoveTransaction(st.Ledger, id)
		if err != nil {
			return err
		}
		st.Ledger, removed = next, tx
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.record(ctx, ws, log.ComponentTransaction, log.OpDelete, amqp.TransactionDeleted, id, removed.Amount.Cents, removed.Category)
	return nil
}

// AddBudgetCategory appends a category with nothing spent yet.
func (s *WorkspaceService) AddBudgetCategory(ctx context.Context, ws *workspace.Workspace, draft core.BudgetCategory) (core.BudgetCategory, error) {
	var added core.BudgetCategory
	err := ws.Update(func(st *workspace.State) error {
		next, c, err := core.AppendBudgetCategory(st.Budget, draft)
		if err != nil {
			return err
		}
		st.Budget, added = next, c
		return nil
	})
	if err != nil {
		return core.BudgetCategory{}, fmt.Errorf("add budget category: %w", err)
	}

	s.record(ctx, ws, log.ComponentBudget, log.OpCreate, amqp.BudgetCreated, added.ID, added.Budgeted.Cents, added.Name)
	return added, nil
}

// AddGoal appends a savings goal.
func (s *WorkspaceService) AddGoal(ctx context.Context, ws *workspace.Workspace, draft core.SavingsGoal) (core.SavingsGoal, error) {
	var added core.SavingsGoal
	err := ws.Update(func(st *workspace.State) error {
		next, g, err := core.AppendGoal(st.Goals, draft)
		if err != nil {
			return err
		}
		st.Goals, added = next, g
		return nil
	})
	if err != nil {
		return core.SavingsGoal{}, fmt.Errorf("add goal: %w", err)
	}

	s.record(ctx, ws, log.ComponentGoal, log.OpCreate, amqp.GoalCreated, added.ID, added.Target.Cents, "")
	return added, nil
}

// DeleteGoal removes the goal matching id.
func (s *WorkspaceService) DeleteGoal(ctx context.Context, ws *workspace.Workspace, id int64) error {
	err := ws.Update(func(st *workspace.State) error {
		next, err := core.RemoveGoal(st.Goals, id)
		if err != nil {
			return err
		}
		st.Goals = next
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}

	s.record(ctx, ws, log.ComponentGoal, log.OpDelete, amqp.GoalDeleted, id, 0, "")
	return nil
}

// UpdateProfile replaces the profile after validating it.
func (s *WorkspaceService) UpdateProfile(ctx context.Context, ws *workspace.Workspace, p core.Profile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	ws.Mutate(func(st *workspace.State) {
		st.Settings.Profile = p
	})
	s.record(ctx, ws, log.ComponentSettings, log.OpUpdate, amqp.SettingsUpdated, 0, 0, "profile")
	return nil
}

// UpdateNotifications replaces the notification preferences.
func (s *WorkspaceService) UpdateNotifications(ctx context.Context, ws *workspace.Workspace, n core.NotificationPrefs) {
	ws.Mutate(func(st *workspace.State) {
		st.Settings.Notifications = n
	})
	s.record(ctx, ws, log.ComponentSettings, log.OpUpdate, amqp.SettingsUpdated, 0, 0, "notifications")
}

// UpdatePrivacy replaces the privacy preferences.
func (s *WorkspaceService) UpdatePrivacy(ctx context.Context, ws *workspace.Workspace, p core.PrivacyPrefs) {
	ws.Mutate(func(st *workspace.State) {
		st.Settings.Privacy = p
	})
	s.record(ctx, ws, log.ComponentSettings, log.OpUpdate, amqp.SettingsUpdated, 0, 0, "privacy")
}

// Theme returns the stored theme for the browser, or fallback.
func (s *WorkspaceService) Theme(ctx context.Context, clientID string, fallback core.Theme) core.Theme {
	theme, err := prefs.ResolveTheme(ctx, s.themes, clientID, fallback)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read theme preference", "client_id", clientID, "error", err)
	}
	return theme
}

// ThemePreferences counts browsers with a stored theme. ok is false when
// the store cannot count or the count failed.
func (s *WorkspaceService) ThemePreferences(ctx context.Context) (n int, ok bool) {
	counter, ok := s.themes.(prefs.ThemeCounter)
	if !ok {
		return 0, false
	}
	n, err := counter.CountThemes(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to count theme preferences", "error", err)
		return 0, false
	}
	return n, true
}

// ToggleTheme flips the browser's theme and persists the result.
func (s *WorkspaceService) ToggleTheme(ctx context.Context, clientID string, current core.Theme) (core.Theme, error) {
	next := s.Theme(ctx, clientID, current).Toggle()
	if err := s.themes.SetTheme(ctx, clientID, next); err != nil {
		return current, fmt.Errorf("persist theme: %w", err)
	}

	slog.InfoContext(ctx, "Theme toggled", log.FieldComponent, log.ComponentTheme, log.FieldTheme, next)
	s.publish(ctx, amqp.NewActivityMessage(amqp.ThemeToggled, "", 0, 0, string(next)))
	return next, nil
}

func (s *WorkspaceService) record(ctx context.Context, ws *workspace.Workspace, component, op string, kind amqp.ActivityKind, id, cents int64, category string) {
	s.mutations.Applied(ctx, component, op, id, cents, category)
	s.publish(ctx, amqp.NewActivityMessage(kind, ws.ID, id, cents, category))
}

func (s *WorkspaceService) publish(ctx context.Context, msg *amqp.ActivityMessage) {
	if s.publisher == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping activity message", "kind", msg.Kind)
		return
	}
	if err := s.publisher.PublishActivity(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish activity message", "kind", msg.Kind, "error", err)
	}
}
