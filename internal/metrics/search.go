package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search-path Prometheus metrics.
var (
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "everseek",
			Name:      "queries_total",
			Help:      "Total number of launcher queries",
		},
		[]string{"outcome"}, // "ok" / "empty" / "too_short" / "error"
	)

	QueryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "everseek",
			Name:      "query_duration_seconds",
			Help:      "End-to-end query handling duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	ResultsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "everseek",
			Name:      "results_returned",
			Help:      "Number of results returned per query",
			Buckets:   []float64{0, 1, 2, 5, 10, 15},
		},
	)

	EngineRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "everseek",
			Name:      "engine_requests_total",
			Help:      "Total number of requests to the search engine",
		},
		[]string{"status"}, // "success" / "unavailable" / "protocol_error"
	)

	EngineRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "everseek",
			Name:      "engine_request_duration_seconds",
			Help:      "Search engine request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	QueryCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "everseek",
			Name:      "query_cache_total",
			Help:      "Query cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	LaunchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "everseek",
			Name:      "launches_total",
			Help:      "Total number of launched results",
		},
		[]string{"status"}, // "success" / "error"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers the search-path metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(QueriesTotal)
	prometheus.MustRegister(QueryDuration)
	prometheus.MustRegister(ResultsReturned)
	prometheus.MustRegister(EngineRequestsTotal)
	prometheus.MustRegister(EngineRequestDuration)
	prometheus.MustRegister(QueryCacheTotal)
	prometheus.MustRegister(LaunchesTotal)
	searchMetricsRegistered = true
}
