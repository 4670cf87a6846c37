package sources

import (
	"context"
	"fmt"

	"transferguard/internal/review"
)

// DecidedClient reads the identifiers of evidence events that already carry a
// final human decision.
type DecidedClient struct {
	*Client
}

func NewDecidedClient(c *Client) *DecidedClient {
	return &DecidedClient{Client: c}
}

func (c *DecidedClient) FetchDecidedIDs(ctx context.Context) (review.DecidedSet, error) {
	var ids []string
	if err := c.getJSON(ctx, "/api/decisions/ids", nil, &ids); err != nil {
		return nil, fmt.Errorf("fetch decided ids: %w", err)
	}
	return review.NewDecidedSet(ids...), nil
}
