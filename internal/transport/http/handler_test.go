package httptransport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transferguard/internal/engine"
	"transferguard/internal/review"
	"transferguard/internal/stats"
)

type stubReports struct {
	report *engine.Report
}

func (s *stubReports) LastReport() (*engine.Report, bool) {
	if s.report == nil {
		return nil, false
	}
	return s.report, true
}

func newTestRouter(reports ReportReader) http.Handler {
	return NewRouter(NewHandler(reports, nil, nil))
}

func TestHandleOverview(t *testing.T) {
	t.Run("serves the latest report", func(t *testing.T) {
		reports := &stubReports{report: &engine.Report{
			Overview:     stats.Overview{Blocked24h: 3, PendingApprovalsCount: 2},
			Connectivity: engine.Connectivity{Events: true, Registry: true, Queue: true, Decided: true},
			GeneratedAt:  time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		}}

		rec := httptest.NewRecorder()
		newTestRouter(reports).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/overview", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Overview     stats.Overview      `json:"overview"`
			Connectivity engine.Connectivity `json:"connectivity"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, 3, body.Overview.Blocked24h)
		assert.Equal(t, 2, body.Overview.PendingApprovalsCount)
		assert.True(t, body.Connectivity.Events)
	})

	t.Run("503 before the first cycle", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestRouter(&stubReports{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/overview", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "5", rec.Header().Get("Retry-After"))
	})
}

func TestHandleAttention(t *testing.T) {
	reports := &stubReports{report: &engine.Report{
		Attention: []review.AttentionEntry{{Code: "VN", Reason: "no valid SCC coverage"}},
	}}

	rec := httptest.NewRecorder()
	newTestRouter(reports).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/attention", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Entries []review.AttentionEntry `json:"entries"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Entries, 1)
	assert.Equal(t, "VN", body.Entries[0].Code)
}

func TestHandlePending(t *testing.T) {
	reports := &stubReports{report: &engine.Report{
		Pending: []review.QueueItem{{ID: "item-1", Status: review.StatusPending}},
	}}

	rec := httptest.NewRecorder()
	newTestRouter(reports).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/queue/pending", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Items []review.QueueItem `json:"items"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "item-1", body.Items[0].ID)
}

func TestHandleHealth(t *testing.T) {
	t.Run("ok with a completed cycle", func(t *testing.T) {
		reports := &stubReports{report: &engine.Report{
			Failures:    1,
			GeneratedAt: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		}}

		rec := httptest.NewRecorder()
		newTestRouter(reports).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "ok", body["status"])
		assert.EqualValues(t, 1, body["last_cycle_failures"])
	})

	t.Run("ok before the first cycle", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestRouter(&stubReports{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
