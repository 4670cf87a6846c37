package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"transferguard/internal/countries"
	"transferguard/internal/evidence"
	"transferguard/internal/scc"
)

// EventState names where an event sits in the review lifecycle.
type EventState string

const (
	StateDecided       EventState = "DECIDED"
	StateNotApplicable EventState = "NOT_APPLICABLE"
	StateNeedsReview   EventState = "NEEDS_REVIEW"
	StateEnqueued      EventState = "ENQUEUED"
)

// CoverageEvaluator is the safeguard check the reconciler consults.
type CoverageEvaluator interface {
	HasValidCoverage(code string, records []scc.RegistryRecord, now time.Time) bool
}

// Sink creates queue items. Approve/reject are human-driven and out of the
// reconciler's hands; it only reads resulting state via the queue snapshot.
type Sink interface {
	Create(ctx context.Context, item NewQueueItem) (QueueItem, error)
}

// Input is one cycle's snapshot. The three sources behind it are updated
// independently and may be mutually stale; the reconciler evaluates whatever
// it holds. Now is injected once per cycle so no rule reads the wall clock.
type Input struct {
	Events  []evidence.Event
	Records []scc.RegistryRecord
	Queue   []QueueItem
	Decided DecidedSet
	Now     time.Time
}

// Result reports what one reconciliation pass did.
type Result struct {
	Created  []QueueItem
	Failures int
}

// Reconciler decides which evidence events still require human review and
// enqueues them without duplicating work items across polling cycles.
//
// Per-event states: NotApplicable -> NeedsReview -> Enqueued, with Decided as
// a terminal override. Re-running against an unchanged snapshot never grows
// the queue: correctness comes from the identifier-union index, not locking.
type Reconciler struct {
	resolver *countries.Resolver
	coverage CoverageEvaluator
	logger   *slog.Logger
}

func NewReconciler(resolver *countries.Resolver, coverage CoverageEvaluator, logger *slog.Logger) *Reconciler {
	return &Reconciler{resolver: resolver, coverage: coverage, logger: logger}
}

// StateOf classifies a single event against the cycle snapshot.
func (r *Reconciler) StateOf(ev evidence.Event, in Input, ix QueueIndex) EventState {
	if in.Decided.ContainsAny(ev.ID, ev.EventID) {
		return StateDecided
	}
	if !IsReviewClass(ev) {
		return StateNotApplicable
	}
	if !r.needsSafeguard(ev, in.Records, in.Now) {
		return StateNotApplicable
	}
	if ix.Has(ev.Identifiers()...) {
		return StateEnqueued
	}
	return StateNeedsReview
}

// NeedsReview reports whether an event is review-class, undecided, and
// uncovered - the full pending set, independent of enqueue status.
func (r *Reconciler) NeedsReview(ev evidence.Event, records []scc.RegistryRecord, decided DecidedSet, now time.Time) bool {
	if decided.ContainsAny(ev.ID, ev.EventID) {
		return false
	}
	return IsReviewClass(ev) && r.needsSafeguard(ev, records, now)
}

// Reconcile runs one pass: classify every event and enqueue the ones in
// NeedsReview state. One creation failure never prevents processing of the
// remaining events. Items created mid-batch feed back into the index so a
// batch cannot duplicate itself either.
func (r *Reconciler) Reconcile(ctx context.Context, sink Sink, in Input) Result {
	ix := BuildQueueIndex(in.Queue)
	var res Result
	for _, ev := range in.Events {
		if r.StateOf(ev, in, ix) != StateNeedsReview {
			continue
		}
		item, err := sink.Create(ctx, r.buildItem(ev))
		if err != nil {
			res.Failures++
			if r.logger != nil {
				r.logger.ErrorContext(ctx, "review queue item creation failed",
					"evidence_id", ev.ID,
					"event_id", ev.EventID,
					"error", err,
				)
			}
			continue
		}
		ix.Add(item)
		res.Created = append(res.Created, item)
	}
	return res
}

// IsReviewClass reports whether the event calls for human review at all.
func IsReviewClass(ev evidence.Event) bool {
	return ev.EventType == evidence.TypeDataTransferReview ||
		strings.EqualFold(ev.VerificationStatus, evidence.StatusReview)
}

// needsSafeguard is true when the destination lacks valid SCC coverage.
// An event with no destination at all still needs review: fail closed on
// missing data.
func (r *Reconciler) needsSafeguard(ev evidence.Event, records []scc.RegistryRecord, now time.Time) bool {
	if !ev.HasDestination() {
		return true
	}
	code := r.destinationCode(ev)
	if code == "" {
		return true
	}
	return !r.coverage.HasValidCoverage(code, records, now)
}

func (r *Reconciler) destinationCode(ev evidence.Event) string {
	if ev.Payload.DestinationCode != "" {
		return r.resolver.Resolve(ev.Payload.DestinationCode)
	}
	return r.resolver.Resolve(ev.Payload.DestinationName)
}

func (r *Reconciler) buildItem(ev evidence.Event) NewQueueItem {
	code := r.destinationCode(ev)
	name := ev.Payload.DestinationName
	if name == "" {
		name = ev.Payload.DestinationCode
	}
	return NewQueueItem{
		EvidenceEventID: primaryID(ev),
		Action:          actionKey(code),
		Context: map[string]string{
			ContextEventID:     ev.EventID,
			ContextEvidenceID:  ev.ID,
			ContextDestination: name,
			ContextCode:        code,
			ContextCategory:    ev.PrimaryDataCategory(),
			ContextReason:      reviewReason(ev, name, code),
		},
	}
}

// actionKey is the stable action identifier for a destination. Keeping it
// stable across cycles lets downstream tooling group items by destination.
func actionKey(code string) string {
	if code == "" {
		return "transfer_data_to_unknown"
	}
	return "transfer_data_to_" + strings.ToLower(code)
}

func reviewReason(ev evidence.Event, name, code string) string {
	if !ev.HasDestination() {
		return "transfer destination missing from event payload; manual review required"
	}
	if code == "" {
		return fmt.Sprintf("destination %q could not be resolved to a country code; manual review required", name)
	}
	return fmt.Sprintf("transfer to %s (%s) has no valid SCC coverage", name, code)
}

func primaryID(ev evidence.Event) string {
	if ev.ID != "" {
		return ev.ID
	}
	return ev.EventID
}
