package stats

import (
	"math"
	"sort"
	"time"

	"transferguard/internal/countries"
	"transferguard/internal/evidence"
	"transferguard/internal/review"
	"transferguard/internal/scc"
)

// recentWindow is the lookback for the 24-hour dashboard figures.
const recentWindow = 24 * time.Hour

// Overview is the rolling compliance picture computed from one snapshot.
type Overview struct {
	Blocked24h            int              `json:"blocked_24h"`
	AdequateCountries24h  []string         `json:"adequate_countries_24h"`
	SCCCoveragePct        int              `json:"scc_coverage_pct"`
	ExpiringSoonCount     int              `json:"expiring_soon_count"`
	ExpiringSoon          []ExpiringRecord `json:"expiring_soon"`
	PendingApprovalsCount int              `json:"pending_approvals_count"`
}

// ExpiringRecord summarizes a registry record inside the expiry warning
// window; the bare count is not actionable on its own.
type ExpiringRecord struct {
	ID              string `json:"id"`
	PartnerName     string `json:"partner_name"`
	Destination     string `json:"destination"`
	DaysUntilExpiry int    `json:"days_until_expiry"`
}

// Aggregator computes time-windowed compliance statistics. All methods are
// pure functions of (events, records, decided, now); state is recomputed
// from snapshots each cycle rather than incrementally mutated.
type Aggregator struct {
	resolver   *countries.Resolver
	coverage   *scc.Evaluator
	reconciler *review.Reconciler
}

func NewAggregator(resolver *countries.Resolver, coverage *scc.Evaluator, reconciler *review.Reconciler) *Aggregator {
	return &Aggregator{resolver: resolver, coverage: coverage, reconciler: reconciler}
}

// Aggregate computes the full overview for one cycle.
func (a *Aggregator) Aggregate(events []evidence.Event, records []scc.RegistryRecord, decided review.DecidedSet, now time.Time) Overview {
	expiring := scc.ExpiringSoon(records, now)
	return Overview{
		Blocked24h:            a.Blocked24h(events, now),
		AdequateCountries24h:  a.AdequateCountries24h(events, now),
		SCCCoveragePct:        a.SCCCoveragePct(events, records, now),
		ExpiringSoonCount:     len(expiring),
		ExpiringSoon:          summarizeExpiring(expiring, now),
		PendingApprovalsCount: a.PendingApprovalsCount(events, records, decided, now),
	}
}

// Blocked24h counts events in the last 24 hours that were blocked by the
// engine or rejected by human oversight.
func (a *Aggregator) Blocked24h(events []evidence.Event, now time.Time) int {
	count := 0
	for _, ev := range events {
		if !withinWindow(ev, now) {
			continue
		}
		if isBlocked(ev) {
			count++
		}
	}
	return count
}

// AdequateCountries24h lists the distinct destination codes, among last-24h
// events, classified EU/EEA or adequate. Sorted for stable output.
func (a *Aggregator) AdequateCountries24h(events []evidence.Event, now time.Time) []string {
	seen := make(map[string]bool)
	for _, ev := range events {
		if !withinWindow(ev, now) {
			continue
		}
		code := a.destinationCode(ev)
		if code == "" {
			continue
		}
		switch countries.Classify(code).Category {
		case countries.CategoryEuEea, countries.CategoryAdequate:
			seen[code] = true
		}
	}
	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// SCCCoveragePct is the share of distinct SCC-required destinations ever
// transferred to that currently hold valid coverage, rounded to a whole
// percentage. Zero when no such destination exists.
func (a *Aggregator) SCCCoveragePct(events []evidence.Event, records []scc.RegistryRecord, now time.Time) int {
	destinations := make(map[string]bool)
	for _, ev := range events {
		code := a.destinationCode(ev)
		if code == "" {
			continue
		}
		if countries.Classify(code).Category == countries.CategorySccRequired {
			destinations[code] = true
		}
	}
	if len(destinations) == 0 {
		return 0
	}
	covered := 0
	for code := range destinations {
		if a.coverage.HasValidCoverage(code, records, now) {
			covered++
		}
	}
	return int(math.Round(float64(covered) / float64(len(destinations)) * 100))
}

// PendingApprovalsCount counts every event still needing review, without the
// attention view's staleness filter - a strict superset of that view.
func (a *Aggregator) PendingApprovalsCount(events []evidence.Event, records []scc.RegistryRecord, decided review.DecidedSet, now time.Time) int {
	count := 0
	for _, ev := range events {
		if a.reconciler.NeedsReview(ev, records, decided, now) {
			count++
		}
	}
	return count
}

func (a *Aggregator) destinationCode(ev evidence.Event) string {
	if ev.Payload.DestinationCode != "" {
		return a.resolver.Resolve(ev.Payload.DestinationCode)
	}
	return a.resolver.Resolve(ev.Payload.DestinationName)
}

func withinWindow(ev evidence.Event, now time.Time) bool {
	return ev.OccurredAt.After(now.Add(-recentWindow)) && !ev.OccurredAt.After(now)
}

func isBlocked(ev evidence.Event) bool {
	return ev.VerificationStatus == evidence.StatusBlock ||
		ev.Payload.Severity == evidence.StatusBlock ||
		ev.EventType == evidence.TypeDataTransferBlocked ||
		ev.EventType == evidence.TypeHumanOversightRejected
}

func summarizeExpiring(records []scc.RegistryRecord, now time.Time) []ExpiringRecord {
	out := make([]ExpiringRecord, 0, len(records))
	for _, rec := range records {
		days, _ := rec.DaysUntilExpiry(now)
		out = append(out, ExpiringRecord{
			ID:              rec.ID,
			PartnerName:     rec.PartnerName,
			Destination:     rec.DestinationCountry,
			DaysUntilExpiry: days,
		})
	}
	return out
}
