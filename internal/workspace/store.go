package workspace

import (
	"time"

	"github.com/google/uuid"

	"finboard/internal/cache"
)

// Store keeps workspaces in a bounded LRU cache. Idle workspaces expire.
type Store struct {
	cache  *cache.LRUCache[*Workspace]
	seed   Seed
	mounts mountCounts
}

func NewStore(maxSize int, ttl time.Duration, seed Seed) *Store {
	return &Store{
		cache:  cache.NewLRUCache[*Workspace](maxSize, ttl),
		seed:   seed,
		mounts: newMountCounts(),
	}
}

// NewID returns a fresh workspace id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like one NewID produced.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Get returns the workspace for id, creating a freshly seeded one when it
// is unknown or has expired. The bool reports whether it was created.
func (s *Store) Get(id string) (*Workspace, bool) {
	return s.cache.GetOrCreate(id, func() *Workspace {
		return newWorkspace(id, s.seed, s.mounts)
	})
}

// Mounts reports how often v has been mounted by any workspace, including
// ones since evicted.
func (s *Store) Mounts(v View) uint64 {
	if c := s.mounts[v]; c != nil {
		return c.Load()
	}
	return 0
}

// Size returns the number of live workspaces.
func (s *Store) Size() int {
	return s.cache.Size()
}

// Evictions returns how many workspaces were pushed out by the size bound.
func (s *Store) Evictions() uint64 {
	return s.cache.Evictions()
}

// Cleaner exposes the cache to a cache.Manager for periodic expiry.
func (s *Store) Cleaner() cache.Cleaner {
	return s.cache
}
