package pricing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var deliveryQuotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "intel",
	Subsystem: "pricing",
	Name:      "delivery_quotes_total",
	Help:      "Delivery fee quotes by the policy rule that priced them.",
}, []string{"rule"})
