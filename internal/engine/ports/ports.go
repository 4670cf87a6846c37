// Package ports defines the interfaces the engine needs from its external
// collaborators. They keep the engine independent of HTTP, caching, or any
// specific upstream implementation.
package ports

import (
	"context"
	"time"

	"transferguard/internal/evidence"
	"transferguard/internal/review"
	"transferguard/internal/scc"
)

// EventFilters narrows an evidence fetch. Zero values mean "no filter".
type EventFilters struct {
	Since      time.Time
	EventTypes []string
	Limit      int
}

// EvidenceEventSource reads the hash-chained decision ledger. The chain itself
// is opaque here; this engine never validates or mutates it.
type EvidenceEventSource interface {
	FetchEvents(ctx context.Context, filters EventFilters) ([]evidence.Event, error)
}

// SCCRegistrySource reads the contractual safeguard registry. Create, patch,
// and revoke happen elsewhere; the engine only reads resulting state.
type SCCRegistrySource interface {
	FetchRecords(ctx context.Context) ([]scc.RegistryRecord, error)
}

// ReviewQueueSink reads pending work items and creates new ones. Approve and
// reject are human-driven; the engine observes them only through status and
// the decided-id source.
type ReviewQueueSink interface {
	FetchPending(ctx context.Context) ([]review.QueueItem, error)
	Create(ctx context.Context, item review.NewQueueItem) (review.QueueItem, error)
}

// DecidedIDSource reads the identifiers of evidence events that already carry
// a final human decision.
type DecidedIDSource interface {
	FetchDecidedIDs(ctx context.Context) (review.DecidedSet, error)
}
