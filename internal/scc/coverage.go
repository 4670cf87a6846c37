package scc

import (
	"strings"
	"time"

	"transferguard/internal/countries"
)

// ExpiryWarningWindow bounds how far ahead a record counts as expiring soon.
const ExpiryWarningWindow = 30

// Evaluator answers whether a destination currently holds a valid contractual
// safeguard. It normalizes record destinations through the shared resolver so
// both code- and name-valued registry entries are accepted.
type Evaluator struct {
	resolver *countries.Resolver
}

func NewEvaluator(resolver *countries.Resolver) *Evaluator {
	return &Evaluator{resolver: resolver}
}

// HasValidCoverage reports whether at least one record covers code at now.
// A record counts iff its status is active, its normalized destination equals
// code, and it either has no expiry or expires strictly in the future.
func (e *Evaluator) HasValidCoverage(code string, records []RegistryRecord, now time.Time) bool {
	if code == "" {
		return false
	}
	for _, rec := range records {
		if e.covers(rec, code, now) {
			return true
		}
	}
	return false
}

// CoveredCodes returns the set of destination codes with valid coverage.
func (e *Evaluator) CoveredCodes(records []RegistryRecord, now time.Time) map[string]bool {
	covered := make(map[string]bool)
	for _, rec := range records {
		if !activeAt(rec, now) {
			continue
		}
		if code := e.DestinationCode(rec); code != "" {
			covered[code] = true
		}
	}
	return covered
}

// DestinationCode normalizes a record's destination to an ISO-2 code,
// or "" when the destination cannot be resolved.
func (e *Evaluator) DestinationCode(rec RegistryRecord) string {
	return e.resolver.Resolve(rec.DestinationCountry)
}

func (e *Evaluator) covers(rec RegistryRecord, code string, now time.Time) bool {
	return activeAt(rec, now) && e.DestinationCode(rec) == code
}

func activeAt(rec RegistryRecord, now time.Time) bool {
	if !strings.EqualFold(string(rec.Status), string(StatusActive)) {
		return false
	}
	return rec.ExpiresAt == nil || rec.ExpiresAt.After(now)
}

// ExpiringSoon returns records expiring within the warning window:
// 0 <= daysUntilExpiry <= ExpiryWarningWindow. Already-expired records and
// records without an expiry are excluded.
func ExpiringSoon(records []RegistryRecord, now time.Time) []RegistryRecord {
	var soon []RegistryRecord
	for _, rec := range records {
		days, ok := rec.DaysUntilExpiry(now)
		if ok && days >= 0 && days <= ExpiryWarningWindow {
			soon = append(soon, rec)
		}
	}
	return soon
}
