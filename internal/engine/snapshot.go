package engine

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"transferguard/internal/engine/cache"
	"transferguard/internal/engine/ports"
	"transferguard/internal/evidence"
	"transferguard/internal/review"
	"transferguard/internal/scc"
	"transferguard/pkg/sentinel"
)

// Connectivity flags which sources answered during the snapshot fetch.
// A false flag means that source's data is last-known or empty.
type Connectivity struct {
	Events   bool `json:"events"`
	Registry bool `json:"registry"`
	Queue    bool `json:"queue"`
	Decided  bool `json:"decided"`
}

// Snapshot is one cycle's view of the four external sources. The sources are
// updated independently and may be mutually stale; the engine evaluates
// whatever it holds rather than blocking for a consistent view.
type Snapshot struct {
	Events       []evidence.Event
	Records      []scc.RegistryRecord
	Queue        []review.QueueItem
	Decided      review.DecidedSet
	Connectivity Connectivity
	FetchedAt    time.Time
}

// snapshot fetches all four sources in parallel. A failing source degrades to
// its cached last-known value (or empty) and clears its connectivity flag;
// it never fails the snapshot as a whole.
func (e *Engine) snapshot(ctx context.Context, now time.Time) Snapshot {
	snap := Snapshot{FetchedAt: now, Decided: review.DecidedSet{}}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		events, err := e.events.FetchEvents(ctx, ports.EventFilters{})
		if err != nil {
			e.degrade(ctx, "events", err, cache.KeyEvents, &snap.Events)
			return nil
		}
		snap.Events = events
		snap.Connectivity.Events = true
		e.remember(ctx, cache.KeyEvents, events)
		return nil
	})

	g.Go(func() error {
		records, err := e.registry.FetchRecords(ctx)
		if err != nil {
			e.degrade(ctx, "registry", err, cache.KeyRegistry, &snap.Records)
			return nil
		}
		snap.Records = records
		snap.Connectivity.Registry = true
		e.remember(ctx, cache.KeyRegistry, records)
		return nil
	})

	g.Go(func() error {
		queue, err := e.queue.FetchPending(ctx)
		if err != nil {
			e.degrade(ctx, "queue", err, cache.KeyQueue, &snap.Queue)
			return nil
		}
		snap.Queue = queue
		snap.Connectivity.Queue = true
		e.remember(ctx, cache.KeyQueue, queue)
		return nil
	})

	g.Go(func() error {
		decided, err := e.decided.FetchDecidedIDs(ctx)
		if err != nil {
			e.degrade(ctx, "decided", err, cache.KeyDecided, &snap.Decided)
			return nil
		}
		snap.Decided = decided
		snap.Connectivity.Decided = true
		e.remember(ctx, cache.KeyDecided, decided)
		return nil
	})

	// Fetch closures always return nil: degradation replaces propagation.
	_ = g.Wait()
	return snap
}

// degrade logs a fetch failure and restores the last-known payload when the
// cache has one. The out pointer keeps whatever it held (usually empty)
// otherwise.
func (e *Engine) degrade(ctx context.Context, source string, fetchErr error, key string, out any) {
	if e.metrics != nil {
		e.metrics.IncSourceFailure(source)
	}
	if e.logger != nil {
		e.logger.WarnContext(ctx, "source unavailable, degrading to last-known snapshot",
			"source", source,
			"error", fetchErr,
		)
	}
	if e.cache == nil {
		return
	}
	if err := e.cache.Load(ctx, key, out); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		if e.logger != nil {
			e.logger.WarnContext(ctx, "snapshot cache read failed", "source", source, "error", err)
		}
	}
}

// remember saves a fresh payload as the new last-known snapshot. Cache write
// failures are logged and otherwise ignored; the cycle already has its data.
func (e *Engine) remember(ctx context.Context, key string, payload any) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Save(ctx, key, payload); err != nil && e.logger != nil {
		e.logger.WarnContext(ctx, "snapshot cache write failed", "key", key, "error", err)
	}
}
