package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// resolutionsTotal counts resolutions by outcome.
	// Labels: outcome (unambiguous, ambiguous, disambiguation, no_candidates, error)
	resolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wikiresolver",
		Subsystem: "resolver",
		Name:      "resolutions_total",
		Help:      "Total query resolutions by outcome",
	}, []string{"outcome"})

	// fetchRequestsTotal counts MediaWiki API requests by status.
	// Labels: status (ok, retry, network_error, retrieval_error, client_error)
	fetchRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wikiresolver",
		Subsystem: "wikipedia",
		Name:      "requests_total",
		Help:      "MediaWiki API requests by status",
	}, []string{"status"})

	fetchLatencySeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "wikiresolver",
		Subsystem: "wikipedia",
		Name:      "search_latency_seconds",
		Help:      "End-to-end candidate fetch latency including retries",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
	})

	// cacheLookupsTotal counts response cache lookups.
	// Labels: result (hit, miss, error)
	cacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wikiresolver",
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Response cache lookups by result",
	}, []string{"result"})
)

func RecordResolution(outcome string) {
	resolutionsTotal.WithLabelValues(outcome).Inc()
}

func RecordFetchRequest(status string) {
	fetchRequestsTotal.WithLabelValues(status).Inc()
}

func ObserveSearch(d time.Duration) {
	fetchLatencySeconds.Observe(d.Seconds())
}

func RecordCacheLookup(result string) {
	cacheLookupsTotal.WithLabelValues(result).Inc()
}
