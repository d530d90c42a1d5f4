package handler

import (
	"fmt"
	"net/http"

	"github.com/ticklist/ticklist/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "ticklist_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "ticklist_logins_total{status=\"success\"} %d\n", snap.LoginSuccesses)
	writeMetric(w, "ticklist_logins_total{status=\"failure\"} %d\n", snap.LoginFailures)

	writeMetric(w, "ticklist_auth_cache_hits_total %d\n", snap.AuthCacheHits)
	writeMetric(w, "ticklist_auth_cache_misses_total %d\n", snap.AuthCacheMisses)

	writeMetric(w, "ticklist_todos_created_total %d\n", snap.TodosCreated)
	writeMetric(w, "ticklist_todos_updated_total %d\n", snap.TodosUpdated)
	writeMetric(w, "ticklist_todos_deleted_total %d\n", snap.TodosDeleted)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
