package core

import (
	"fmt"
	"math"
	"time"
)

// UrgentDays is the deadline horizon below which days-left is highlighted.
const UrgentDays = 30

// Percent returns current/target*100.
func (g SavingsGoal) Percent() float64 {
	return Percent(g.Current, g.Target)
}

// Remaining is target minus current. Negative once the goal is exceeded.
func (g SavingsGoal) Remaining() Money {
	return g.Target.Sub(g.Current)
}

// Achieved reports progress of at least 100%.
func (g SavingsGoal) Achieved() bool {
	return atLeastPercent(g.Current, g.Target, 100)
}

// ProgressTone: >=90% green, >=50% blue, otherwise orange.
func (g SavingsGoal) ProgressTone() string {
	switch {
	case atLeastPercent(g.Current, g.Target, 90):
		return "green"
	case atLeastPercent(g.Current, g.Target, 50):
		return "blue"
	default:
		return "orange"
	}
}

// Tone maps a priority tier to its badge tone.
func (p Priority) Tone() string {
	switch p {
	case PriorityHigh:
		return "red"
	case PriorityMedium:
		return "yellow"
	case PriorityLow:
		return "green"
	default:
		return "gray"
	}
}

// DaysLeft returns ceil((deadline-now)/24h). Zero or negative means overdue.
func (g SavingsGoal) DaysLeft(now time.Time) int {
	diff := g.Deadline.Sub(now)
	return int(math.Ceil(float64(diff) / float64(24*time.Hour)))
}

// DeadlineState is the countdown rendered next to a goal.
type DeadlineState struct {
	Days    int
	Overdue bool
	Urgent  bool
}

// Label renders "N days left" or "Overdue".
func (d DeadlineState) Label() string {
	if d.Overdue {
		return "Overdue"
	}
	return fmt.Sprintf("%d days left", d.Days)
}

// DeadlineAt classifies the goal deadline relative to now.
func (g SavingsGoal) DeadlineAt(now time.Time) DeadlineState {
	days := g.DaysLeft(now)
	return DeadlineState{
		Days:    days,
		Overdue: days <= 0,
		Urgent:  days > 0 && days < UrgentDays,
	}
}

// SavingsTotals summarizes every goal.
type SavingsTotals struct {
	Targets         Money
	Saved           Money
	Remaining       Money
	OverallProgress float64
	Achieved        int
}

// OverallProgressLabel formats OverallProgress with one decimal.
func (t SavingsTotals) OverallProgressLabel() string {
	return fmt.Sprintf("%.1f", t.OverallProgress)
}

// SummarizeGoals sums targets and current savings across goals.
func SummarizeGoals(goals []SavingsGoal) SavingsTotals {
	var t SavingsTotals
	for _, g := range goals {
		t.Targets = t.Targets.Add(g.Target)
		t.Saved = t.Saved.Add(g.Current)
		if g.Achieved() {
			t.Achieved++
		}
	}
	t.Remaining = t.Targets.Sub(t.Saved)
	t.OverallProgress = Percent(t.Saved, t.Targets)
	return t
}

// AppendGoal adds draft with the next id. An empty priority defaults to medium.
func AppendGoal(goals []SavingsGoal, draft SavingsGoal) ([]SavingsGoal, SavingsGoal, error) {
	if draft.Priority == "" {
		draft.Priority = PriorityMedium
	}
	if err := draft.Validate(); err != nil {
		return goals, SavingsGoal{}, err
	}
	var highest int64
	for _, g := range goals {
		if g.ID > highest {
			highest = g.ID
		}
	}
	draft.ID = highest + 1
	out := make([]SavingsGoal, 0, len(goals)+1)
	out = append(out, goals...)
	out = append(out, draft)
	return out, draft, nil
}

// RemoveGoal returns goals without the one matching id.
func RemoveGoal(goals []SavingsGoal, id int64) ([]SavingsGoal, error) {
	out := make([]SavingsGoal, 0, len(goals))
	for _, g := range goals {
		if g.ID != id {
			out = append(out, g)
		}
	}
	if len(out) == len(goals) {
		return goals, fmt.Errorf("goal %d: %w", id, ErrNotFound)
	}
	return out, nil
}
