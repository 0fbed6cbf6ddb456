package log

import (
	"context"
	"log/slog"
	"net/http"
)

type ctxKey struct{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

func fromContext(ctx context.Context) (*Logger, bool) {
	logger, ok := ctx.Value(ctxKey{}).(*Logger)
	return logger, ok && logger != nil
}

// FromContext returns the request logger. Outside a request it wraps
// slog.Default under the "unknown" component.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := fromContext(ctx); ok {
		return logger
	}
	return &Logger{
		Logger:    slog.Default(),
		component: "unknown",
	}
}

// RequestTag names one attribute of the request logger and how to read it
// from the request. Empty values are left out.
type RequestTag struct {
	Key   string
	Value func(*http.Request) string
}

// Middleware gives each request its own logger carrying tags, so every line
// a handler writes through FromContext can be joined on them.
func Middleware(logger *Logger, tags ...RequestTag) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := logger
			var attrs []any
			for _, tag := range tags {
				if v := tag.Value(r); v != "" {
					attrs = append(attrs, tag.Key, v)
				}
			}
			if len(attrs) > 0 {
				l = l.With(attrs...)
			}
			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), l)))
		})
	}
}

// MutationLogger writes one line per change to workspace data, plus the
// rejected and failed attempts. A request logger in ctx takes precedence
// over the fallback.
type MutationLogger struct {
	fallback *Logger
}

func NewMutationLogger(fallback *Logger) *MutationLogger {
	return &MutationLogger{fallback: fallback}
}

func (m *MutationLogger) logger(ctx context.Context) *Logger {
	if l, ok := fromContext(ctx); ok {
		return l
	}
	if m.fallback != nil {
		return m.fallback
	}
	return FromContext(ctx)
}

// Applied logs an accepted change. category may be empty.
func (m *MutationLogger) Applied(ctx context.Context, component, op string, id, amountCents int64, category string) {
	fields := NewFields().
		WithMutation(component, id, amountCents, category).
		WithOperation(op).
		WithComponent(component)
	m.logger(ctx).InfoContext(ctx, "Workspace data changed", fields.ToSlice()...)
}

// Rejected logs input the domain refused. The workspace is unchanged.
func (m *MutationLogger) Rejected(ctx context.Context, component, op string, err error) {
	fields := NewFields().
		WithError(err).
		WithOperation(op).
		WithComponent(component)
	m.logger(ctx).InfoContext(ctx, "Mutation rejected", fields.ToSlice()...)
}

// Failed logs an unexpected error behind a 500.
func (m *MutationLogger) Failed(ctx context.Context, component, op string, err error) {
	fields := NewFields().
		WithError(err).
		WithOperation(op).
		WithComponent(component)
	fields["error_type"] = ErrorTypeInternal
	m.logger(ctx).ErrorContext(ctx, "Mutation failed", fields.ToSlice()...)
}
