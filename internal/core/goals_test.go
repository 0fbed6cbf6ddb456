package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalProgressTone(t *testing.T) {
	target := Dollars(1000)
	cases := []struct {
		current  Money
		tone     string
		achieved bool
	}{
		{Dollars(499), "orange", false},
		{Dollars(500), "blue", false},
		{Dollars(899), "blue", false},
		{Dollars(900), "green", false},
		{Dollars(999), "green", false},
		{Dollars(1000), "green", true},
		{Dollars(1001), "green", true},
	}
	for _, tc := range cases {
		g := SavingsGoal{Name: "g", Target: target, Current: tc.current}
		assert.Equal(t, tc.tone, g.ProgressTone(), "current=%s", tc.current)
		assert.Equal(t, tc.achieved, g.Achieved(), "current=%s", tc.current)
	}
}

func TestPriorityTone(t *testing.T) {
	assert.Equal(t, "red", PriorityHigh.Tone())
	assert.Equal(t, "yellow", PriorityMedium.Tone())
	assert.Equal(t, "green", PriorityLow.Tone())
	assert.Equal(t, "gray", Priority("urgent").Tone())
}

func TestDaysLeft(t *testing.T) {
	g := SavingsGoal{Name: "g", Deadline: MustDate("2024-08-01")}
	cases := []struct {
		name    string
		now     time.Time
		days    int
		overdue bool
		urgent  bool
		label   string
	}{
		{"partial day rounds up", time.Date(2024, 7, 31, 12, 0, 0, 0, time.UTC), 1, false, true, "1 days left"},
		{"exact day", time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC), 30, false, false, "30 days left"},
		{"29 days is urgent", time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC), 29, false, true, "29 days left"},
		{"deadline instant", time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), 0, true, false, "Overdue"},
		{"past", time.Date(2024, 8, 3, 6, 0, 0, 0, time.UTC), -2, true, false, "Overdue"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := g.DeadlineAt(tc.now)
			assert.Equal(t, tc.days, st.Days)
			assert.Equal(t, tc.overdue, st.Overdue)
			assert.Equal(t, tc.urgent, st.Urgent)
			assert.Equal(t, tc.label, st.Label())
		})
	}
}

func TestSummarizeGoals(t *testing.T) {
	goals := []SavingsGoal{
		{ID: 1, Name: "Emergency Fund", Target: Dollars(10000), Current: Dollars(6500)},
		{ID: 2, Name: "New Laptop", Target: Dollars(2000), Current: Dollars(2000)},
	}
	tot := SummarizeGoals(goals)
	assert.Equal(t, Dollars(12000), tot.Targets)
	assert.Equal(t, Dollars(8500), tot.Saved)
	assert.Equal(t, Dollars(3500), tot.Remaining)
	assert.Equal(t, "70.8", tot.OverallProgressLabel())
	assert.Equal(t, 1, tot.Achieved)
}

func TestAppendAndRemoveGoal(t *testing.T) {
	goals := []SavingsGoal{{ID: 1, Name: "Emergency Fund", Target: Dollars(10000)}}

	got, added, err := AppendGoal(goals, SavingsGoal{Name: "Bike", Target: Dollars(900)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), added.ID)
	assert.Equal(t, PriorityMedium, added.Priority)
	require.Len(t, got, 2)

	_, _, err = AppendGoal(goals, SavingsGoal{Name: "Bike", Priority: "someday"})
	assert.ErrorIs(t, err, ErrInvalidPriority)

	left, err := RemoveGoal(got, 1)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, int64(2), left[0].ID)

	_, err = RemoveGoal(got, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}
