package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"transferguard/internal/countries"
	"transferguard/internal/evidence"
	"transferguard/internal/scc"
)

// =============================================================================
// Reconciler Test Suite
// =============================================================================
// The reconciler carries the dedup and fail-closed behavior that keeps
// overlapping polling cycles from duplicating human work; it is exercised
// here in isolation with an in-memory sink.

type ReconcilerSuite struct {
	suite.Suite
	reconciler *Reconciler
	sink       *InMemorySink
	now        time.Time
}

func TestReconcilerSuite(t *testing.T) {
	suite.Run(t, new(ReconcilerSuite))
}

func (s *ReconcilerSuite) SetupTest() {
	resolver := countries.DefaultResolver()
	s.reconciler = NewReconciler(resolver, scc.NewEvaluator(resolver), nil)
	s.sink = NewInMemorySink()
	s.now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
}

func (s *ReconcilerSuite) reviewEvent(id, destination string) evidence.Event {
	return evidence.Event{
		ID:         id,
		EventID:    "ev-" + id,
		OccurredAt: s.now.Add(-time.Hour),
		EventType:  evidence.TypeDataTransferReview,
		Payload:    evidence.Payload{DestinationName: destination},
	}
}

func (s *ReconcilerSuite) snapshot(events []evidence.Event) Input {
	queue, err := s.sink.FetchPending(context.Background())
	s.Require().NoError(err)
	return Input{Events: events, Queue: queue, Decided: DecidedSet{}, Now: s.now}
}

// =============================================================================
// State Machine
// =============================================================================

func (s *ReconcilerSuite) TestStateOf() {
	s.Run("decided overrides everything", func() {
		ev := s.reviewEvent("e1", "India")
		in := Input{Decided: NewDecidedSet("e1"), Now: s.now}
		s.Equal(StateDecided, s.reconciler.StateOf(ev, in, QueueIndex{}))
	})

	s.Run("decided matches the secondary event id too", func() {
		ev := s.reviewEvent("e1", "India")
		in := Input{Decided: NewDecidedSet("ev-e1"), Now: s.now}
		s.Equal(StateDecided, s.reconciler.StateOf(ev, in, QueueIndex{}))
	})

	s.Run("non review events are not applicable", func() {
		ev := evidence.Event{ID: "e2", EventType: evidence.TypeDataTransferCompleted}
		in := Input{Decided: DecidedSet{}, Now: s.now}
		s.Equal(StateNotApplicable, s.reconciler.StateOf(ev, in, QueueIndex{}))
	})

	s.Run("covered destination is not applicable", func() {
		ev := s.reviewEvent("e3", "India")
		in := Input{
			Records: []scc.RegistryRecord{{DestinationCountry: "IN", Status: scc.StatusActive}},
			Decided: DecidedSet{},
			Now:     s.now,
		}
		s.Equal(StateNotApplicable, s.reconciler.StateOf(ev, in, QueueIndex{}))
	})

	s.Run("missing destination fails closed to needs review", func() {
		ev := evidence.Event{ID: "e4", EventType: evidence.TypeDataTransferReview}
		in := Input{Decided: DecidedSet{}, Now: s.now}
		s.Equal(StateNeedsReview, s.reconciler.StateOf(ev, in, QueueIndex{}))
	})

	s.Run("identifier already queued is enqueued", func() {
		ev := s.reviewEvent("e5", "India")
		ix := QueueIndex{"ev-e5": struct{}{}}
		in := Input{Decided: DecidedSet{}, Now: s.now}
		s.Equal(StateEnqueued, s.reconciler.StateOf(ev, in, ix))
	})
}

// =============================================================================
// Reconcile
// =============================================================================

func (s *ReconcilerSuite) TestReconcileCreatesItems() {
	events := []evidence.Event{s.reviewEvent("e1", "India"), s.reviewEvent("e2", "Brazil")}
	res := s.reconciler.Reconcile(context.Background(), s.sink, s.snapshot(events))

	s.Len(res.Created, 2)
	s.Zero(res.Failures)

	item := res.Created[0]
	s.Equal("e1", item.EvidenceEventID)
	s.Equal("transfer_data_to_in", item.Action)
	s.Equal("India", item.Context[ContextDestination])
	s.Equal("IN", item.Context[ContextCode])
	s.Equal("ev-e1", item.Context[ContextEventID])
	s.Equal("e1", item.Context[ContextEvidenceID])
	s.NotEmpty(item.Context[ContextReason])
	s.Equal(StatusPending, item.Status)
}

func (s *ReconcilerSuite) TestReconcileUnknownDestinationAction() {
	ev := evidence.Event{ID: "e1", EventType: evidence.TypeDataTransferReview}
	res := s.reconciler.Reconcile(context.Background(), s.sink, s.snapshot([]evidence.Event{ev}))
	s.Require().Len(res.Created, 1)
	s.Equal("transfer_data_to_unknown", res.Created[0].Action)
}

func (s *ReconcilerSuite) TestReconcileIdempotent() {
	events := []evidence.Event{s.reviewEvent("e1", "India"), s.reviewEvent("e2", "Brazil")}

	first := s.reconciler.Reconcile(context.Background(), s.sink, s.snapshot(events))
	s.Len(first.Created, 2)
	s.Equal(2, s.sink.Len())

	// Re-run against the refreshed snapshot: identical inputs, no growth.
	second := s.reconciler.Reconcile(context.Background(), s.sink, s.snapshot(events))
	s.Empty(second.Created)
	s.Equal(2, s.sink.Len())
}

func (s *ReconcilerSuite) TestReconcileDedupWithinBatch() {
	// The same evidence delivered twice in one batch creates one item.
	events := []evidence.Event{s.reviewEvent("e1", "India"), s.reviewEvent("e1", "India")}
	res := s.reconciler.Reconcile(context.Background(), s.sink, s.snapshot(events))
	s.Len(res.Created, 1)
}

func (s *ReconcilerSuite) TestReconcileDedupByContextIDs() {
	// An existing item that references the event only through its context
	// still suppresses re-enqueueing.
	existing := []QueueItem{{
		ID:      "item-1",
		Context: map[string]string{ContextEventID: "ev-e1"},
		Status:  StatusPending,
	}}
	in := Input{
		Events:  []evidence.Event{s.reviewEvent("e1", "India")},
		Queue:   existing,
		Decided: DecidedSet{},
		Now:     s.now,
	}
	res := s.reconciler.Reconcile(context.Background(), s.sink, in)
	s.Empty(res.Created)
}

func (s *ReconcilerSuite) TestReconcileDecidedNeverEnqueued() {
	in := s.snapshot([]evidence.Event{s.reviewEvent("e1", "India")})
	in.Decided = NewDecidedSet("e1")
	res := s.reconciler.Reconcile(context.Background(), s.sink, in)
	s.Empty(res.Created)
	s.Zero(s.sink.Len())
}

func (s *ReconcilerSuite) TestReconcileContinuesPastCreateFailure() {
	sink := &flakySink{inner: s.sink, failFor: "e1"}
	events := []evidence.Event{
		s.reviewEvent("e1", "India"),
		s.reviewEvent("e2", "Brazil"),
		s.reviewEvent("e3", "Vietnam"),
	}
	res := s.reconciler.Reconcile(context.Background(), sink, s.snapshot(events))
	s.Equal(1, res.Failures)
	s.Len(res.Created, 2)
}

// =============================================================================
// Attention View
// =============================================================================

func (s *ReconcilerSuite) TestAttentionViewDropsStaleEvents() {
	fresh := s.reviewEvent("fresh", "India")
	stale := s.reviewEvent("stale", "Brazil")
	stale.OccurredAt = s.now.Add(-8 * 24 * time.Hour)

	events := []evidence.Event{fresh, stale}
	view := s.reconciler.AttentionView(events, nil, DecidedSet{}, s.now)

	s.Require().Len(view, 1)
	s.Equal("fresh", view[0].Event.ID)
	s.Equal(evidence.SeverityHigh, view[0].Severity)
	s.Equal("IN", view[0].Code)

	// The stale event still needs review; only the attention view drops it.
	s.True(s.reconciler.NeedsReview(stale, nil, DecidedSet{}, s.now))
}

func (s *ReconcilerSuite) TestAttentionViewExcludesDecidedAndCovered() {
	covered := s.reviewEvent("covered", "India")
	decided := s.reviewEvent("done", "Brazil")
	records := []scc.RegistryRecord{{DestinationCountry: "IN", Status: scc.StatusActive}}

	view := s.reconciler.AttentionView(
		[]evidence.Event{covered, decided},
		records,
		NewDecidedSet("done"),
		s.now,
	)
	s.Empty(view)
}

// flakySink fails creation for one designated evidence id.
type flakySink struct {
	inner   *InMemorySink
	failFor string
}

func (f *flakySink) Create(ctx context.Context, item NewQueueItem) (QueueItem, error) {
	if item.EvidenceEventID == f.failFor {
		return QueueItem{}, errors.New("upstream write refused")
	}
	return f.inner.Create(ctx, item)
}
