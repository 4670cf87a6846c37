package evidence

import "time"

// Event types emitted by the upstream evaluation engine. The set is open;
// unlisted types flow through classification but never trigger review.
const (
	TypeDataTransferReview     = "DATA_TRANSFER_REVIEW"
	TypeDataTransferBlocked    = "DATA_TRANSFER_BLOCKED"
	TypeDataTransferCompleted  = "DATA_TRANSFER_COMPLETED"
	TypeHumanOversightApproved = "HUMAN_OVERSIGHT_APPROVED"
	TypeHumanOversightRejected = "HUMAN_OVERSIGHT_REJECTED"
	TypeErasureCompleted       = "GDPR_ERASURE_COMPLETED"
)

// Verification statuses stamped on an event by the upstream engine.
const (
	StatusAllow    = "ALLOW"
	StatusBlock    = "BLOCK"
	StatusReview   = "REVIEW"
	StatusVerified = "VERIFIED"
)

// Event is an immutable record of a transfer decision, sealed in an external
// hash-chained store. The chain fields ride along opaquely in Payload.Extra;
// this engine never validates or mutates them.
type Event struct {
	ID                 string    `json:"id"`
	EventID            string    `json:"event_id"`
	CorrelationID      string    `json:"correlation_id"`
	OccurredAt         time.Time `json:"occurred_at"`
	EventType          string    `json:"event_type"`
	VerificationStatus string    `json:"verification_status"`
	SourceSystem       string    `json:"source_system"`
	Payload            Payload   `json:"payload"`
}

// Payload is the canonical shape of an event payload after ingestion
// normalization. Downstream components read these fields only and never
// special-case upstream field-name variants.
type Payload struct {
	DestinationCode string         `json:"destination_code,omitempty"`
	DestinationName string         `json:"destination_name,omitempty"`
	DataCategories  []string       `json:"data_categories,omitempty"`
	Severity        string         `json:"severity,omitempty"`
	Decision        string         `json:"decision,omitempty"`
	Extra           map[string]any `json:"extra,omitempty"`
}

// Identifiers returns the non-empty identifiers this event is known by.
func (e Event) Identifiers() []string {
	ids := make([]string, 0, 2)
	if e.ID != "" {
		ids = append(ids, e.ID)
	}
	if e.EventID != "" && e.EventID != e.ID {
		ids = append(ids, e.EventID)
	}
	return ids
}

// HasDestination reports whether the payload names a destination at all,
// by code or free text.
func (e Event) HasDestination() bool {
	return e.Payload.DestinationCode != "" || e.Payload.DestinationName != ""
}

// PrimaryDataCategory returns the first data category, or "" when none was
// recorded. Review queue context captures a single category for display.
func (e Event) PrimaryDataCategory() string {
	if len(e.Payload.DataCategories) == 0 {
		return ""
	}
	return e.Payload.DataCategories[0]
}
