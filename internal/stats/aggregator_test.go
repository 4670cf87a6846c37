package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transferguard/internal/countries"
	"transferguard/internal/evidence"
	"transferguard/internal/review"
	"transferguard/internal/scc"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newAggregator() *Aggregator {
	resolver := countries.DefaultResolver()
	coverage := scc.NewEvaluator(resolver)
	return NewAggregator(resolver, coverage, review.NewReconciler(resolver, coverage, nil))
}

func event(id, eventType, status, destination string, occurred time.Time) evidence.Event {
	return evidence.Event{
		ID:                 id,
		OccurredAt:         occurred,
		EventType:          eventType,
		VerificationStatus: status,
		Payload:            evidence.Payload{DestinationName: destination},
	}
}

func TestAggregateScenario(t *testing.T) {
	// Three events in the last 24h: one blocked, one allowed to an EU
	// country, one pending review to an uncovered third country.
	agg := newAggregator()
	events := []evidence.Event{
		event("e1", evidence.TypeDataTransferBlocked, evidence.StatusBlock, "Russia", now.Add(-2*time.Hour)),
		event("e2", "DATA_TRANSFER_EVALUATION", evidence.StatusAllow, "Germany", now.Add(-3*time.Hour)),
		event("e3", evidence.TypeDataTransferReview, evidence.StatusReview, "Vietnam", now.Add(-4*time.Hour)),
	}

	over := agg.Aggregate(events, nil, review.DecidedSet{}, now)

	assert.Equal(t, 1, over.Blocked24h)
	assert.Contains(t, over.AdequateCountries24h, "DE")
	assert.Equal(t, 1, over.PendingApprovalsCount)
}

func TestBlocked24h(t *testing.T) {
	agg := newAggregator()

	t.Run("counts block status severity and rejection types", func(t *testing.T) {
		events := []evidence.Event{
			event("e1", "DATA_TRANSFER_EVALUATION", evidence.StatusBlock, "", now.Add(-time.Hour)),
			event("e2", evidence.TypeDataTransferBlocked, "", "", now.Add(-time.Hour)),
			event("e3", evidence.TypeHumanOversightRejected, "", "", now.Add(-time.Hour)),
			{ID: "e4", OccurredAt: now.Add(-time.Hour), Payload: evidence.Payload{Severity: "BLOCK"}},
			event("e5", "DATA_TRANSFER_EVALUATION", evidence.StatusAllow, "", now.Add(-time.Hour)),
		}
		assert.Equal(t, 4, agg.Blocked24h(events, now))
	})

	t.Run("ignores events outside the window", func(t *testing.T) {
		events := []evidence.Event{
			event("old", evidence.TypeDataTransferBlocked, "", "", now.Add(-25*time.Hour)),
		}
		assert.Zero(t, agg.Blocked24h(events, now))
	})
}

func TestAdequateCountries24h(t *testing.T) {
	agg := newAggregator()
	events := []evidence.Event{
		event("e1", "T", "", "Germany", now.Add(-time.Hour)),
		event("e2", "T", "", "Germany", now.Add(-time.Hour)), // duplicate code
		event("e3", "T", "", "Japan", now.Add(-time.Hour)),
		event("e4", "T", "", "Vietnam", now.Add(-time.Hour)), // scc required
		event("e5", "T", "", "France", now.Add(-30*time.Hour)), // stale
	}
	assert.Equal(t, []string{"DE", "JP"}, agg.AdequateCountries24h(events, now))
}

func TestSCCCoveragePct(t *testing.T) {
	agg := newAggregator()

	t.Run("half covered rounds to fifty", func(t *testing.T) {
		// Two distinct SCC-required destinations ever transferred to, one
		// currently covered.
		events := []evidence.Event{
			event("e1", "T", "", "India", now.Add(-100*24*time.Hour)),
			event("e2", "T", "", "Brazil", now.Add(-time.Hour)),
		}
		records := []scc.RegistryRecord{{DestinationCountry: "IN", Status: scc.StatusActive}}
		assert.Equal(t, 50, agg.SCCCoveragePct(events, records, now))
	})

	t.Run("zero when no scc required destination exists", func(t *testing.T) {
		events := []evidence.Event{event("e1", "T", "", "Germany", now)}
		assert.Zero(t, agg.SCCCoveragePct(events, nil, now))
	})

	t.Run("third covered rounds to thirty three", func(t *testing.T) {
		events := []evidence.Event{
			event("e1", "T", "", "India", now),
			event("e2", "T", "", "Brazil", now),
			event("e3", "T", "", "Vietnam", now),
		}
		records := []scc.RegistryRecord{{DestinationCountry: "IN", Status: scc.StatusActive}}
		assert.Equal(t, 33, agg.SCCCoveragePct(events, records, now))
	})
}

func TestPendingApprovalsIgnoresStaleness(t *testing.T) {
	agg := newAggregator()
	stale := event("old", evidence.TypeDataTransferReview, "", "Vietnam", now.Add(-10*24*time.Hour))

	// Older than the attention window, still pending.
	assert.Equal(t, 1, agg.PendingApprovalsCount([]evidence.Event{stale}, nil, review.DecidedSet{}, now))
}

func TestPendingApprovalsExcludesDecided(t *testing.T) {
	agg := newAggregator()
	ev := event("e1", evidence.TypeDataTransferReview, "", "Vietnam", now.Add(-time.Hour))
	require.Equal(t, 1, agg.PendingApprovalsCount([]evidence.Event{ev}, nil, review.DecidedSet{}, now))
	assert.Zero(t, agg.PendingApprovalsCount([]evidence.Event{ev}, nil, review.NewDecidedSet("e1"), now))
}

func TestExpiringSoonSummaries(t *testing.T) {
	agg := newAggregator()
	expiry := now.Add(10 * 24 * time.Hour)
	records := []scc.RegistryRecord{{
		ID: "scc-1", PartnerName: "Acme Corp", DestinationCountry: "US",
		Status: scc.StatusActive, ExpiresAt: &expiry,
	}}

	over := agg.Aggregate(nil, records, review.DecidedSet{}, now)
	assert.Equal(t, 1, over.ExpiringSoonCount)
	require.Len(t, over.ExpiringSoon, 1)
	assert.Equal(t, "Acme Corp", over.ExpiringSoon[0].PartnerName)
	assert.Equal(t, 10, over.ExpiringSoon[0].DaysUntilExpiry)
}
