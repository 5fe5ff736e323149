package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, route, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "route", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route", "status"},
	)

	// Searches counts storage searches by outcome (ok, invalid, limit, error).
	Searches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "storage_searches_total", Help: "Storage searches by outcome."},
		[]string{"outcome"},
	)
	// CombosEvaluated counts listing combinations inspected by the fitter.
	CombosEvaluated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "storage_combos_evaluated_total", Help: "Listing combinations evaluated."},
	)
	// LocationFitDuration records per-location search time in seconds.
	LocationFitDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "storage_location_fit_duration_seconds", Help: "Per-location combination search time.", Buckets: []float64{.0001, .001, .01, .05, .1, .5, 1, 5}},
	)
	// ResultSaveFailures counts result sets that could not be persisted.
	ResultSaveFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "storage_result_save_failures_total", Help: "Result sets that failed to persist."},
	)
)

var regOnce sync.Once

// Register adds all collectors to Registry. Safe to call more than once.
func Register() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(Searches)
		Registry.MustRegister(CombosEvaluated)
		Registry.MustRegister(LocationFitDuration)
		Registry.MustRegister(ResultSaveFailures)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
