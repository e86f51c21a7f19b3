package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ProximityRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ambutrack_proximity_requests_total",
		Help: "Total nearest-ambulance resolutions requested",
	})
	ProximityDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ambutrack_proximity_duration_ms",
		Help:    "Nearest-ambulance resolution duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ambutrack_cache_hits_total",
		Help: "Total proximity cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ambutrack_cache_misses_total",
		Help: "Total proximity cache misses",
	})
	CacheErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ambutrack_cache_errors_total",
		Help: "Total cache failures degraded to fresh computation",
	})
	CacheInvalidationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ambutrack_cache_invalidations_total",
		Help: "Total proximity cache invalidations after ambulance mutations",
	})
	NearestQueryFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ambutrack_nearest_query_failures_total",
		Help: "Total spatial store nearest-query failures",
	})
)

func init() {
	prometheus.MustRegister(
		ProximityRequestsTotal,
		ProximityDurationMs,
		CacheHitsTotal,
		CacheMissesTotal,
		CacheErrorsTotal,
		CacheInvalidationsTotal,
		NearestQueryFailuresTotal,
	)
}

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
