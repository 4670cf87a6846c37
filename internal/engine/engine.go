// Package engine orchestrates one evaluation cycle: snapshot the external
// sources, reconcile the review queue, and aggregate compliance metrics.
// Every cycle is a stateless recompute from the snapshot - nothing is
// incrementally mutated between cycles, which trades recomputation cost for
// the elimination of drift. Overlapping cycles stay correct because queue
// dedup rests on the identifier-union index, not mutual exclusion.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"transferguard/internal/engine/cache"
	"transferguard/internal/engine/ports"
	"transferguard/internal/platform/metrics"
	"transferguard/internal/review"
	"transferguard/internal/stats"
)

// Report is the outcome of one evaluation cycle, held for the read API.
type Report struct {
	Overview     stats.Overview          `json:"overview"`
	Attention    []review.AttentionEntry `json:"attention"`
	Pending      []review.QueueItem      `json:"pending"`
	Connectivity Connectivity            `json:"connectivity"`
	Created      int                     `json:"created"`
	Failures     int                     `json:"failures"`
	GeneratedAt  time.Time               `json:"generated_at"`
}

// Engine runs the classification and reconciliation cycle.
type Engine struct {
	events   ports.EvidenceEventSource
	registry ports.SCCRegistrySource
	queue    ports.ReviewQueueSink
	decided  ports.DecidedIDSource

	reconciler *review.Reconciler
	aggregator *stats.Aggregator

	cache   cache.Store
	logger  *slog.Logger
	metrics *metrics.Metrics

	interval     time.Duration
	cycleTimeout time.Duration
	clock        func() time.Time

	mu   sync.RWMutex
	last *Report
}

// Option tweaks engine construction.
type Option func(*Engine)

// WithCache sets the last-known snapshot store used for degradation.
func WithCache(store cache.Store) Option {
	return func(e *Engine) { e.cache = store }
}

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithInterval overrides the default 5s polling cadence.
func WithInterval(d time.Duration) Option {
	return func(e *Engine) { e.interval = d }
}

// WithCycleTimeout bounds one cycle's fetches and writes.
func WithCycleTimeout(d time.Duration) Option {
	return func(e *Engine) { e.cycleTimeout = d }
}

// WithClock injects the per-cycle time source for deterministic tests.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

func New(
	events ports.EvidenceEventSource,
	registry ports.SCCRegistrySource,
	queue ports.ReviewQueueSink,
	decided ports.DecidedIDSource,
	reconciler *review.Reconciler,
	aggregator *stats.Aggregator,
	logger *slog.Logger,
	opts ...Option,
) *Engine {
	e := &Engine{
		events:       events,
		registry:     registry,
		queue:        queue,
		decided:      decided,
		reconciler:   reconciler,
		aggregator:   aggregator,
		logger:       logger,
		interval:     5 * time.Second,
		cycleTimeout: 30 * time.Second,
		clock:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// RunCycle executes one full evaluation cycle and publishes the report.
// A single now is taken up front; no downstream rule reads the wall clock.
func (e *Engine) RunCycle(ctx context.Context) *Report {
	started := e.clock()
	now := started

	snap := e.snapshot(ctx, now)

	res := e.reconciler.Reconcile(ctx, e.queue, review.Input{
		Events:  snap.Events,
		Records: snap.Records,
		Queue:   snap.Queue,
		Decided: snap.Decided,
		Now:     now,
	})

	// Freshly created items are pending too; fold them into the view rather
	// than waiting a cycle for the sink to reflect them.
	pending := append(append([]review.QueueItem{}, snap.Queue...), res.Created...)

	report := &Report{
		Overview:     e.aggregator.Aggregate(snap.Events, snap.Records, snap.Decided, now),
		Attention:    e.reconciler.AttentionView(snap.Events, snap.Records, snap.Decided, now),
		Pending:      pending,
		Connectivity: snap.Connectivity,
		Created:      len(res.Created),
		Failures:     res.Failures,
		GeneratedAt:  now,
	}

	e.mu.Lock()
	e.last = report
	e.mu.Unlock()

	if e.metrics != nil {
		e.metrics.ObserveCycle(time.Since(started))
		e.metrics.QueueItemsCreated.Add(float64(report.Created))
		e.metrics.EnqueueFailures.Add(float64(report.Failures))
	}
	if e.logger != nil {
		e.logger.DebugContext(ctx, "evaluation cycle complete",
			"events", len(snap.Events),
			"created", report.Created,
			"failures", report.Failures,
			"pending_approvals", report.Overview.PendingApprovalsCount,
		)
	}
	return report
}

// LastReport returns the most recent cycle report, if any cycle has run.
func (e *Engine) LastReport() (*Report, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.last == nil {
		return nil, false
	}
	return e.last, true
}
