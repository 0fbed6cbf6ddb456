package backend

import (
	"context"

	"finboard/internal/amqp"
	"finboard/internal/prefs"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// ReadinessFunc checks the backend for the /readyz endpoint.
type ReadinessFunc func(ctx context.Context) error

// BackendResult bundles the theme store with the optional activity
// publisher built alongside it.
type BackendResult struct {
	Themes    prefs.ThemeStore
	Publisher *amqp.Client // nil when AMQP is not configured or unreachable
	Ready     ReadinessFunc
	Cleanup   CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a backend instance based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Activity feed, optional for every backend type
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
