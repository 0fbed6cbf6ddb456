// Package workspace holds the per-browser view state. Each view owns its
// dataset; mounting a view re-seeds it from the mock fixtures.
package workspace

import (
	"fmt"
	"sync"
	"sync/atomic"

	"finboard/internal/core"
	"finboard/internal/mock"
)

// View names one of the navigable pages.
type View string

const (
	Dashboard    View = "dashboard"
	Transactions View = "transactions"
	Budget       View = "budget"
	Savings      View = "savings"
	Reports      View = "reports"
	Settings     View = "settings"
)

// Views lists every view in sidebar order.
var Views = []View{Dashboard, Transactions, Budget, Savings, Reports, Settings}

// Seed controls the ledger fixture.
type Seed struct {
	ExtraTransactions int
	Seed              int64
}

// LedgerFilter is the ledger's search box and category select.
type LedgerFilter struct {
	Search   string
	Category string
}

// State is the mutable data of every view. It is only reachable through
// Workspace.Read, Mutate and Update, which hold the workspace lock.
type State struct {
	Ledger   []core.Transaction
	Filter   LedgerFilter
	Budget   []core.BudgetCategory
	Goals    []core.SavingsGoal
	Settings core.Settings
	Year     int
}

// mountCounts totals mounts per view across every workspace of a store.
// The map is filled once and only the counters change afterwards.
type mountCounts map[View]*atomic.Uint64

func newMountCounts() mountCounts {
	m := make(mountCounts, len(Views))
	for _, v := range Views {
		m[v] = new(atomic.Uint64)
	}
	return m
}

// Workspace is one browser's state.
type Workspace struct {
	ID string

	mu     sync.Mutex
	seed   Seed
	state  State
	mounts mountCounts
}

func newWorkspace(id string, seed Seed, mounts mountCounts) *Workspace {
	ws := &Workspace{ID: id, seed: seed, mounts: mounts}
	for _, v := range Views {
		ws.reseed(v)
	}
	return ws
}

// Mount re-seeds the view's dataset, discarding earlier mutations.
func (w *Workspace) Mount(v View) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.reseed(v) {
		return fmt.Errorf("mount %q: unknown view", v)
	}
	if c := w.mounts[v]; c != nil {
		c.Add(1)
	}
	return nil
}

func (w *Workspace) reseed(v View) bool {
	switch v {
	case Transactions:
		w.state.Ledger = mock.SeededTransactions(w.seed.ExtraTransactions, w.seed.Seed)
		w.state.Filter = LedgerFilter{Category: core.AllCategories}
	case Budget:
		w.state.Budget = mock.BudgetCategories()
	case Savings:
		w.state.Goals = mock.SavingsGoals()
	case Settings:
		w.state.Settings = mock.Settings()
	case Reports:
		years := mock.YearlyComparison()
		w.state.Year = years[len(years)-1].Year
	case Dashboard:
	default:
		return false
	}
	return true
}

// Read runs fn with the workspace locked. fn must not keep references to
// the state's slices.
func (w *Workspace) Read(fn func(s *State)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(&w.state)
}

// Mutate runs an infallible change with the workspace locked.
func (w *Workspace) Mutate(fn func(s *State)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(&w.state)
}

// Update runs fn with the workspace locked. A returned error leaves
// whatever fn already assigned in place, so fn should assign only on success.
func (w *Workspace) Update(fn func(s *State) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return fn(&w.state)
}
