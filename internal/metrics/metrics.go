package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HttpRequestsTotal counts handled HTTP requests.
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of http requests handled by the service.",
		},
		[]string{"path", "method", "code"},
	)

	// StoreOperationsTotal counts calls against the external job store.
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operations_total",
			Help: "Total number of operations issued to the job store.",
		},
		[]string{"op", "status"},
	)

	// StaleListResultsTotal counts superseded list responses that were
	// discarded instead of overwriting newer state.
	StaleListResultsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stale_list_results_total",
			Help: "Total number of late list responses discarded by the sequence guard.",
		},
	)
)

// ObserveStoreOp records one store call outcome.
func ObserveStoreOp(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	StoreOperationsTotal.WithLabelValues(op, status).Inc()
}
