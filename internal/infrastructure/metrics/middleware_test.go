package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func doRequest(t *testing.T, collector *Collector, method, pattern string, status int) {
	t.Helper()

	r := chi.NewRouter()
	r.Use(Middleware(collector, nil))
	r.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))

	req := httptest.NewRequest(method, pattern, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != status {
		t.Fatalf("expected status %d, got %d", status, rec.Code)
	}
}

func TestMiddleware_RecordsRequest(t *testing.T) {
	collector := NewCollector()

	doRequest(t, collector, http.MethodGet, "/v1/things", http.StatusOK)

	apiMetrics := collector.GetAPIMetrics()
	if count, ok := apiMetrics.RequestCounts["GET /v1/things"]; !ok || count != 1 {
		t.Errorf("expected request count 1 for GET /v1/things, got %d", count)
	}
}

func TestMiddleware_RecordsDuration(t *testing.T) {
	collector := NewCollector()

	doRequest(t, collector, http.MethodGet, "/v1/timed", http.StatusOK)

	apiMetrics := collector.GetAPIMetrics()
	if _, ok := apiMetrics.TotalDurationSeconds["GET /v1/timed"]; !ok {
		t.Error("expected duration to be recorded for GET /v1/timed")
	}
}

func TestMiddleware_RecordsServerError(t *testing.T) {
	collector := NewCollector()

	doRequest(t, collector, http.MethodPost, "/v1/broken", http.StatusInternalServerError)

	apiMetrics := collector.GetAPIMetrics()
	if count, ok := apiMetrics.ErrorCounts["POST /v1/broken"]; !ok || count != 1 {
		t.Errorf("expected error count 1 for POST /v1/broken, got %d", count)
	}
}

func TestMiddleware_ClientErrorNotRecorded(t *testing.T) {
	collector := NewCollector()

	doRequest(t, collector, http.MethodGet, "/v1/missing", http.StatusNotFound)

	// 4xx responses are the caller's fault, not server errors
	apiMetrics := collector.GetAPIMetrics()
	if count, ok := apiMetrics.ErrorCounts["GET /v1/missing"]; ok && count > 0 {
		t.Errorf("expected no error count for GET /v1/missing, got %d", count)
	}
	if count, ok := apiMetrics.RequestCounts["GET /v1/missing"]; !ok || count != 1 {
		t.Errorf("expected request count 1 for GET /v1/missing, got %d", count)
	}
}

func TestMiddleware_MultipleRequests(t *testing.T) {
	collector := NewCollector()

	for i := 0; i < 5; i++ {
		doRequest(t, collector, http.MethodGet, "/v1/repeat", http.StatusOK)
	}

	apiMetrics := collector.GetAPIMetrics()
	if count, ok := apiMetrics.RequestCounts["GET /v1/repeat"]; !ok || count != 5 {
		t.Errorf("expected request count 5, got %d", count)
	}
}
