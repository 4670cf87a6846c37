package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"transferguard/internal/engine"
	"transferguard/internal/review"
)

// ReportReader is what the handlers need from the engine: the latest cycle
// report. Handlers never trigger evaluation themselves.
type ReportReader interface {
	LastReport() (*engine.Report, bool)
}

// HealthChecker reports on an optional backing dependency (redis).
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handler is the thin read-only HTTP layer over the engine. It delegates to
// the latest report without embedding business logic so transport concerns
// remain isolated.
type Handler struct {
	reports ReportReader
	health  HealthChecker // nil when no shared cache is configured
	logger  *slog.Logger
}

func NewHandler(reports ReportReader, health HealthChecker, logger *slog.Logger) *Handler {
	return &Handler{reports: reports, health: health, logger: logger}
}

// Register mounts the dashboard read endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/v1/overview", h.HandleOverview)
	r.Get("/api/v1/attention", h.HandleAttention)
	r.Get("/api/v1/queue/pending", h.HandlePending)
	r.Get("/healthz", h.HandleHealth)
}

// HandleOverview serves the aggregated compliance metrics plus per-source
// connectivity flags.
func (h *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	report, ok := h.reports.LastReport()
	if !ok {
		h.writeNoReport(w)
		return
	}
	h.writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"overview":     report.Overview,
		"connectivity": report.Connectivity,
		"generated_at": report.GeneratedAt,
	})
}

// HandleAttention serves the staleness-filtered immediate attention list.
func (h *Handler) HandleAttention(w http.ResponseWriter, r *http.Request) {
	report, ok := h.reports.LastReport()
	if !ok {
		h.writeNoReport(w)
		return
	}
	entries := report.Attention
	if entries == nil {
		entries = []review.AttentionEntry{}
	}
	h.writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"entries":      entries,
		"generated_at": report.GeneratedAt,
	})
}

// HandlePending serves the pending review queue as last observed.
func (h *Handler) HandlePending(w http.ResponseWriter, r *http.Request) {
	report, ok := h.reports.LastReport()
	if !ok {
		h.writeNoReport(w)
		return
	}
	h.writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"items":        report.Pending,
		"generated_at": report.GeneratedAt,
	})
}

// HandleHealth reports engine liveness: last cycle time, last cycle failure
// count, and cache health when a shared cache is configured.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]any{"status": "ok"}

	if report, ok := h.reports.LastReport(); ok {
		body["last_cycle"] = report.GeneratedAt
		body["last_cycle_failures"] = report.Failures
	} else {
		body["last_cycle"] = nil
	}

	if h.health != nil {
		if err := h.health.Health(r.Context()); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["cache"] = err.Error()
		}
	}
	h.writeJSON(r.Context(), w, status, body)
}

func (h *Handler) writeNoReport(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "5")
	w.WriteHeader(http.StatusServiceUnavailable)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "no evaluation cycle has completed yet"})
}

func (h *Handler) writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil && h.logger != nil {
		h.logger.ErrorContext(ctx, "failed to write response", "error", err)
	}
}
