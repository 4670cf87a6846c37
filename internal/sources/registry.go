package sources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"transferguard/internal/scc"
)

// RegistryClient reads the SCC registry. Registry administration (create,
// patch, revoke) is external; only resulting state is read here.
type RegistryClient struct {
	*Client
}

func NewRegistryClient(c *Client) *RegistryClient {
	return &RegistryClient{Client: c}
}

type registryDTO struct {
	ID                 string     `json:"id"`
	PartnerName        string     `json:"partner_name"`
	DestinationCountry string     `json:"destination_country"`
	Status             string     `json:"status"`
	ExpiresAt          *time.Time `json:"expires_at"`
	TIACompleted       bool       `json:"tia_completed"`
	DPAID              string     `json:"dpa_id"`
}

func (c *RegistryClient) FetchRecords(ctx context.Context) ([]scc.RegistryRecord, error) {
	var dtos []registryDTO
	if err := c.getJSON(ctx, "/api/scc-registry", nil, &dtos); err != nil {
		return nil, fmt.Errorf("fetch scc registry: %w", err)
	}

	records := make([]scc.RegistryRecord, 0, len(dtos))
	for _, dto := range dtos {
		records = append(records, scc.RegistryRecord{
			ID:                 dto.ID,
			PartnerName:        dto.PartnerName,
			DestinationCountry: dto.DestinationCountry,
			Status:             scc.Status(strings.ToLower(dto.Status)),
			ExpiresAt:          dto.ExpiresAt,
			TIACompleted:       dto.TIACompleted,
			DPAID:              dto.DPAID,
		})
	}
	return records, nil
}
