package review

import "time"

// ItemStatus is the human decision state of a queue item. Items are created
// PENDING by the reconciler and transitioned only by human action upstream.
type ItemStatus string

const (
	StatusPending  ItemStatus = "PENDING"
	StatusApproved ItemStatus = "APPROVED"
	StatusRejected ItemStatus = "REJECTED"
)

// Context keys carried on queue items. The reconciler reads event_id and
// evidence_id back out of existing items when building the dedup index.
const (
	ContextEventID     = "event_id"
	ContextEvidenceID  = "evidence_id"
	ContextDestination = "destination_country"
	ContextCode        = "destination_code"
	ContextCategory    = "data_category"
	ContextReason      = "reason"
)

// QueueItem is a work item representing a transfer decision awaiting human
// sign-off.
type QueueItem struct {
	ID              string            `json:"id"`
	EvidenceEventID string            `json:"evidence_event_id"`
	Action          string            `json:"action"`
	Context         map[string]string `json:"context,omitempty"`
	Status          ItemStatus        `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
}

// NewQueueItem is the creation request sent to the queue sink. The sink
// assigns the id.
type NewQueueItem struct {
	EvidenceEventID string
	Action          string
	Context         map[string]string
}

// DecidedSet holds evidence/event identifiers that already carry a final
// human decision. Membership suppresses re-enqueueing unconditionally.
type DecidedSet map[string]struct{}

// NewDecidedSet builds a set from raw identifiers, skipping empties.
func NewDecidedSet(ids ...string) DecidedSet {
	s := make(DecidedSet, len(ids))
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

// ContainsAny reports whether any of the given identifiers is decided.
func (s DecidedSet) ContainsAny(ids ...string) bool {
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := s[id]; ok {
			return true
		}
	}
	return false
}
