package geo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	routeResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "intel",
		Subsystem: "geo",
		Name:      "route_resolutions_total",
		Help:      "Resolved routes by the strategy that produced them.",
	}, []string{"source"})

	routingFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "intel",
		Subsystem: "geo",
		Name:      "routing_fallbacks_total",
		Help:      "Primary resolver failures answered by the fallback resolver.",
	})

	routeCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "intel",
		Subsystem: "geo",
		Name:      "route_cache_total",
		Help:      "Route cache lookups by result.",
	}, []string{"result"})
)
