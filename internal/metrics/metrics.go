// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Cache request outcomes used as the "result" label.
const (
	ResultHit     = "hit"
	ResultMiss    = "miss"
	ResultExpired = "expired"
)

// Cache and search collectors.
var (
	CacheRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cloudscape",
			Name:      "cache_requests_total",
			Help:      "Cache lookups by bucket and outcome",
		},
		[]string{"bucket", "result"}, // "hit" / "miss" / "expired"
	)

	CacheEvictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cloudscape",
			Name:      "cache_evictions_total",
			Help:      "Entries evicted because a bucket was full",
		},
		[]string{"bucket"},
	)

	CacheEntries = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "cloudscape",
			Name:      "cache_entries",
			Help:      "Current number of entries per bucket",
		},
		[]string{"bucket"},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "cloudscape",
			Name:      "search_duration_seconds",
			Help:      "Uncached component search duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	SearchResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cloudscape",
			Name:      "search_requests_total",
			Help:      "Component searches by match mode",
		},
		[]string{"mode"}, // "all" / "exact" / "fuzzy"
	)
)

var registerOnce sync.Once

// Register registers all collectors with r. Safe to call more than once.
func Register(r prometheus.Registerer) {
	registerOnce.Do(func() {
		r.MustRegister(CacheRequestsTotal)
		r.MustRegister(CacheEvictionsTotal)
		r.MustRegister(CacheEntries)
		r.MustRegister(SearchDuration)
		r.MustRegister(SearchResultsTotal)
		r.MustRegister(HTTPRequestsTotal)
		r.MustRegister(HTTPRequestDuration)
	})
}
