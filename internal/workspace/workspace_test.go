package workspace

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/core"
)

func TestStoreGetCreatesSeededWorkspace(t *testing.T) {
	s := NewStore(10, time.Minute, Seed{Seed: 42})
	id := NewID()
	require.True(t, ValidID(id))

	ws, created := s.Get(id)
	require.True(t, created)
	assert.Equal(t, id, ws.ID)

	ws.Read(func(st *State) {
		assert.Len(t, st.Ledger, 10)
		assert.Len(t, st.Budget, 8)
		assert.Len(t, st.Goals, 5)
		assert.Equal(t, "John Doe", st.Settings.Profile.Name)
		assert.Equal(t, core.AllCategories, st.Filter.Category)
		assert.Equal(t, 2024, st.Year)
	})

	again, created := s.Get(id)
	assert.False(t, created)
	assert.Same(t, ws, again)
	assert.Equal(t, 1, s.Size())
}

func TestMountReseedsOnlyThatView(t *testing.T) {
	s := NewStore(10, time.Minute, Seed{})
	ws, _ := s.Get(NewID())

	require.NoError(t, ws.Update(func(st *State) error {
		var err error
		st.Ledger, err = core.RemoveTransaction(st.Ledger, 1)
		if err != nil {
			return err
		}
		st.Goals, err = core.RemoveGoal(st.Goals, 1)
		return err
	}))

	require.NoError(t, ws.Mount(Transactions))
	assert.Equal(t, uint64(1), s.Mounts(Transactions))

	ws.Read(func(st *State) {
		assert.Len(t, st.Ledger, 10, "ledger re-seeded on mount")
		assert.Len(t, st.Goals, 4, "other views keep their mutations")
	})

	assert.Error(t, ws.Mount(View("nope")))
}

func TestStoreMountsSurviveEviction(t *testing.T) {
	s := NewStore(1, time.Minute, Seed{})
	a, _ := s.Get(NewID())
	require.NoError(t, a.Mount(Budget))
	require.NoError(t, a.Mount(Budget))

	b, _ := s.Get(NewID())
	require.NoError(t, b.Mount(Budget))
	require.NoError(t, b.Mount(Reports))

	assert.Equal(t, 1, s.Size())
	assert.Equal(t, uint64(3), s.Mounts(Budget))
	assert.Equal(t, uint64(1), s.Mounts(Reports))
	assert.Equal(t, uint64(0), s.Mounts(Settings))
	assert.Equal(t, uint64(0), s.Mounts(View("nope")))
}

func TestMutate(t *testing.T) {
	s := NewStore(10, time.Minute, Seed{})
	ws, _ := s.Get(NewID())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ws.Mutate(func(st *State) {
				st.Year++
			})
		}()
	}
	wg.Wait()

	ws.Mutate(func(st *State) {
		st.Filter = LedgerFilter{Search: "Shop ", Category: "Food"}
	})
	ws.Read(func(st *State) {
		assert.Equal(t, 2044, st.Year)
		assert.Equal(t, LedgerFilter{Search: "Shop ", Category: "Food"}, st.Filter)
	})
}

func TestExtraTransactionsSeedLedger(t *testing.T) {
	s := NewStore(10, time.Minute, Seed{ExtraTransactions: 20, Seed: 7})
	ws, _ := s.Get(NewID())
	ws.Read(func(st *State) {
		assert.Len(t, st.Ledger, 30)
	})
}

func TestStoreBoundedBySize(t *testing.T) {
	s := NewStore(2, time.Minute, Seed{})
	a := NewID()
	s.Get(a)
	s.Get(NewID())
	s.Get(NewID())

	assert.Equal(t, 2, s.Size())
	assert.Equal(t, uint64(1), s.Evictions())
	_, created := s.Get(a)
	assert.True(t, created, "evicted workspace comes back freshly seeded")
}

func TestConcurrentUpdates(t *testing.T) {
	s := NewStore(10, time.Minute, Seed{})
	ws, _ := s.Get(NewID())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ws.Update(func(st *State) error {
				next, _, err := core.AppendTransaction(st.Ledger, core.Transaction{
					Date:        core.MustDate("2024-07-13"),
					Description: "Lunch",
					Category:    "Food",
					Amount:      core.Dollars(12),
					Type:        core.Expense,
				})
				if err == nil {
					st.Ledger = next
				}
				return err
			})
		}()
	}
	wg.Wait()

	ws.Read(func(st *State) {
		require.Len(t, st.Ledger, 30)
		ids := map[int64]bool{}
		for _, tx := range st.Ledger {
			assert.False(t, ids[tx.ID], "duplicate id %d", tx.ID)
			ids[tx.ID] = true
		}
	})
}
