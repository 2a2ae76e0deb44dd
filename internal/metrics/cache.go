package metrics

import "github.com/prometheus/client_golang/prometheus"

var cacheLookupsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "moviesapi",
		Name:      "cache_lookups_total",
		Help:      "Cache lookups by entity type and outcome",
	},
	[]string{"entity", "outcome"},
)

func init() {
	prometheus.MustRegister(cacheLookupsTotal)
}

// CacheHit records a cache hit for an entity type.
func CacheHit(entity string) {
	cacheLookupsTotal.WithLabelValues(entity, "hit").Inc()
}

// CacheMiss records a cache miss for an entity type.
func CacheMiss(entity string) {
	cacheLookupsTotal.WithLabelValues(entity, "miss").Inc()
}
