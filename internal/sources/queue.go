package sources

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"transferguard/internal/review"
)

// QueueClient reads and appends to the remote review queue. Approve/reject
// transitions are human-driven upstream; this client never issues them.
type QueueClient struct {
	*Client
}

func NewQueueClient(c *Client) *QueueClient {
	return &QueueClient{Client: c}
}

type queueItemDTO struct {
	ID              string            `json:"id"`
	EvidenceEventID string            `json:"evidence_event_id"`
	Action          string            `json:"action"`
	Context         map[string]string `json:"context"`
	Status          string            `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
}

type createItemDTO struct {
	EvidenceEventID string            `json:"evidence_event_id"`
	Action          string            `json:"action"`
	Context         map[string]string `json:"context"`
	// IdempotencyKey lets the upstream reject accidental duplicate posts from
	// overlapping cycles that raced past the identifier-union check.
	IdempotencyKey string `json:"idempotency_key"`
}

func (c *QueueClient) FetchPending(ctx context.Context) ([]review.QueueItem, error) {
	query := url.Values{"status": []string{string(review.StatusPending)}}
	var dtos []queueItemDTO
	if err := c.getJSON(ctx, "/api/review-queue", query, &dtos); err != nil {
		return nil, fmt.Errorf("fetch pending review items: %w", err)
	}

	items := make([]review.QueueItem, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, dto.toItem())
	}
	return items, nil
}

func (c *QueueClient) Create(ctx context.Context, item review.NewQueueItem) (review.QueueItem, error) {
	body := createItemDTO{
		EvidenceEventID: item.EvidenceEventID,
		Action:          item.Action,
		Context:         item.Context,
		IdempotencyKey:  uuid.NewString(),
	}
	var created queueItemDTO
	if err := c.postJSON(ctx, "/api/review-queue", body, &created); err != nil {
		return review.QueueItem{}, fmt.Errorf("create review item for %s: %w", item.EvidenceEventID, err)
	}
	return created.toItem(), nil
}

func (d queueItemDTO) toItem() review.QueueItem {
	return review.QueueItem{
		ID:              d.ID,
		EvidenceEventID: d.EvidenceEventID,
		Action:          d.Action,
		Context:         d.Context,
		Status:          review.ItemStatus(d.Status),
		CreatedAt:       d.CreatedAt,
	}
}
