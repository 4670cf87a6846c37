package scc

import (
	"math"
	"time"
)

// Status of a registry record. Only active records can provide coverage;
// expired and revoked records remain listed for audit history.
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
	StatusRevoked Status = "revoked"
)

// RegistryRecord is one contractual transfer safeguard held with a partner.
// Records are mutated only by registry administration, which is external;
// the engine reads resulting state.
type RegistryRecord struct {
	ID                 string     `json:"id"`
	PartnerName        string     `json:"partner_name"`
	DestinationCountry string     `json:"destination_country"` // ISO-2 code or free-text name
	Status             Status     `json:"status"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	TIACompleted       bool       `json:"tia_completed"`
	DPAID              string     `json:"dpa_id,omitempty"`
}

// DaysUntilExpiry returns whole days from now until the record expires.
// The second return is false for records without an expiry.
func (r RegistryRecord) DaysUntilExpiry(now time.Time) (int, bool) {
	if r.ExpiresAt == nil {
		return 0, false
	}
	// Floor, not truncate: a record that expired hours ago is day -1, never 0.
	return int(math.Floor(r.ExpiresAt.Sub(now).Hours() / 24)), true
}
