// Package worker consumes the activity feed published by the web process.
package worker

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"finboard/internal/amqp"
	"finboard/internal/cache"
)

// Redeliveries arrive shortly after the original, so ids are only
// remembered for a while.
const (
	seenMax = 10000
	seenTTL = time.Hour
)

// ActivityWorker keeps running totals of workspace mutations per kind.
type ActivityWorker struct {
	mu       sync.Mutex
	counts   map[amqp.ActivityKind]int64
	amounts  map[amqp.ActivityKind]int64
	seen     *cache.LRUCache[struct{}]
	lastSeen time.Time
	logger   *slog.Logger
}

// KindCount is one row of a Snapshot.
type KindCount struct {
	Kind        amqp.ActivityKind
	Count       int64
	AmountCents int64
}

func NewActivityWorker(logger *slog.Logger) *ActivityWorker {
	return newActivityWorker(logger, seenMax, seenTTL)
}

func newActivityWorker(logger *slog.Logger, maxSeen int, ttl time.Duration) *ActivityWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityWorker{
		counts:  make(map[amqp.ActivityKind]int64),
		amounts: make(map[amqp.ActivityKind]int64),
		seen:    cache.NewLRUCache[struct{}](maxSeen, ttl),
		logger:  logger,
	}
}

// SeenCleaner lets a cache.Manager sweep expired message ids.
func (w *ActivityWorker) SeenCleaner() cache.Cleaner {
	return w.seen
}

// HandleActivity records one message. Redelivered ids are counted once.
func (w *ActivityWorker) HandleActivity(ctx context.Context, msg *amqp.ActivityMessage) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if msg.ID != "" {
		if _, first := w.seen.GetOrCreate(msg.ID, func() struct{} { return struct{}{} }); !first {
			w.logger.DebugContext(ctx, "Skipping redelivered activity", "id", msg.ID)
			return nil
		}
	}

	w.counts[msg.Kind]++
	w.amounts[msg.Kind] += msg.AmountCents
	if msg.Timestamp.After(w.lastSeen) {
		w.lastSeen = msg.Timestamp
	}

	w.logger.InfoContext(ctx, "Activity recorded",
		"id", msg.ID,
		"kind", msg.Kind,
		"entity_id", msg.EntityID,
		"amount_cents", msg.AmountCents)
	return nil
}

// Snapshot returns the current totals sorted by kind.
func (w *ActivityWorker) Snapshot() []KindCount {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]KindCount, 0, len(w.counts))
	for kind, n := range w.counts {
		out = append(out, KindCount{Kind: kind, Count: n, AmountCents: w.amounts[kind]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// ReportEvery logs the totals on each tick until ctx is done.
func (w *ActivityWorker) ReportEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.report(ctx)
			return
		case <-ticker.C:
			w.report(ctx)
		}
	}
}

func (w *ActivityWorker) report(ctx context.Context) {
	snap := w.Snapshot()
	if len(snap) == 0 {
		return
	}
	args := make([]any, 0, len(snap)*2)
	for _, k := range snap {
		args = append(args, string(k.Kind), k.Count)
	}
	w.logger.InfoContext(ctx, "Activity totals", args...)
}
