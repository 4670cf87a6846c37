package review

import (
	"time"

	"transferguard/internal/evidence"
	"transferguard/internal/scc"
)

// StalenessWindow bounds the immediate attention list. Older events stay
// PENDING in the backing queue and keep counting toward pending approvals;
// they are only suppressed from this view.
const StalenessWindow = 7 * 24 * time.Hour

// AttentionEntry is one line of the immediate attention list, pre-labeled
// for audit display.
type AttentionEntry struct {
	Event       evidence.Event    `json:"event"`
	Severity    evidence.Severity `json:"severity"`
	Destination string            `json:"destination"`
	Code        string            `json:"code"`
	Reason      string            `json:"reason"`
}

// AttentionView filters the NeedsReview set down to events recent enough to
// act on: anything whose occurrence time is older than StalenessWindow
// relative to now is dropped, even if still undecided and uncovered.
func (r *Reconciler) AttentionView(events []evidence.Event, records []scc.RegistryRecord, decided DecidedSet, now time.Time) []AttentionEntry {
	cutoff := now.Add(-StalenessWindow)
	var view []AttentionEntry
	for _, ev := range events {
		if !r.NeedsReview(ev, records, decided, now) {
			continue
		}
		if ev.OccurredAt.Before(cutoff) {
			continue
		}
		code := r.destinationCode(ev)
		name := ev.Payload.DestinationName
		if name == "" {
			name = ev.Payload.DestinationCode
		}
		view = append(view, AttentionEntry{
			Event:       ev,
			Severity:    evidence.DeriveSeverity(ev),
			Destination: name,
			Code:        code,
			Reason:      reviewReason(ev, name, code),
		})
	}
	return view
}
