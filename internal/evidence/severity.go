package evidence

import "strings"

// Severity labels an event for audit display.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityLow      Severity = "LOW"
	SeverityInfo     Severity = "INFO"
	SeverityErasure  Severity = "ERASURE"
)

// DeriveSeverity labels an event from its raw fields.
// This is pure domain logic - no I/O, no side effects.
// Rule priority (first match wins):
//  1. blocked transfer - critical
//  2. human oversight rejected - critical
//  3. human oversight approved - low
//  4. erasure event or crypto-shredder source - erasure
//  5. pending review - high
//  6. evaluation resolved to allow/verified - low
//  7. anything else - informational
func DeriveSeverity(e Event) Severity {
	label := strings.ToUpper(e.EventType)
	status := strings.ToUpper(e.VerificationStatus)

	switch {
	case strings.Contains(label, "BLOCKED") || status == StatusBlock || strings.EqualFold(e.Payload.Severity, StatusBlock):
		return SeverityCritical
	case label == TypeHumanOversightRejected:
		return SeverityCritical
	case label == TypeHumanOversightApproved:
		return SeverityLow
	case strings.Contains(label, "ERASURE") || strings.Contains(strings.ToLower(e.SourceSystem), "crypto_shredder"):
		return SeverityErasure
	case strings.Contains(label, "REVIEW") || status == StatusReview:
		return SeverityHigh
	case strings.Contains(label, "EVALUATION") && allowDecision(e, status):
		return SeverityLow
	default:
		return SeverityInfo
	}
}

func allowDecision(e Event, status string) bool {
	decision := strings.ToUpper(e.Payload.Decision)
	return decision == StatusAllow || decision == StatusVerified ||
		status == StatusAllow || status == StatusVerified
}
