package sources

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"transferguard/internal/engine/ports"
	"transferguard/internal/evidence"
)

// EventClient reads the evidence-event ledger.
type EventClient struct {
	*Client
}

func NewEventClient(c *Client) *EventClient {
	return &EventClient{Client: c}
}

// eventDTO is the upstream wire shape. Payload arrives as a raw map with
// upstream-specific field naming and opaque hash-chain fields; normalization
// into the canonical shape happens here, at the ingestion boundary.
type eventDTO struct {
	ID                 string         `json:"id"`
	EventID            string         `json:"event_id"`
	CorrelationID      string         `json:"correlation_id"`
	OccurredAt         time.Time      `json:"occurred_at"`
	CreatedAt          time.Time      `json:"created_at"`
	EventType          string         `json:"event_type"`
	VerificationStatus string         `json:"verification_status"`
	SourceSystem       string         `json:"source_system"`
	Payload            map[string]any `json:"payload"`
}

func (c *EventClient) FetchEvents(ctx context.Context, filters ports.EventFilters) ([]evidence.Event, error) {
	query := url.Values{}
	if !filters.Since.IsZero() {
		query.Set("since", filters.Since.UTC().Format(time.RFC3339))
	}
	if len(filters.EventTypes) > 0 {
		query.Set("event_type", strings.Join(filters.EventTypes, ","))
	}
	if filters.Limit > 0 {
		query.Set("limit", strconv.Itoa(filters.Limit))
	}

	var dtos []eventDTO
	if err := c.getJSON(ctx, "/api/evidence-events", query, &dtos); err != nil {
		return nil, fmt.Errorf("fetch evidence events: %w", err)
	}

	events := make([]evidence.Event, 0, len(dtos))
	for _, dto := range dtos {
		events = append(events, dto.toEvent())
	}
	return events, nil
}

func (d eventDTO) toEvent() evidence.Event {
	occurred := d.OccurredAt
	if occurred.IsZero() {
		occurred = d.CreatedAt
	}
	return evidence.Event{
		ID:                 d.ID,
		EventID:            d.EventID,
		CorrelationID:      d.CorrelationID,
		OccurredAt:         occurred,
		EventType:          d.EventType,
		VerificationStatus: d.VerificationStatus,
		SourceSystem:       d.SourceSystem,
		Payload:            evidence.NormalizePayload(d.Payload),
	}
}
