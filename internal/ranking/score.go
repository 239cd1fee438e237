package ranking

import (
	"math"

	"github.com/richxcame/marketplace-intel/internal/aggregation"
)

// volumeSaturation is the order count at which the volume signal stops growing
const volumeSaturation = 50.0

// VendorMetrics are the per-period rates a composite score is built from
type VendorMetrics struct {
	FulfillmentRate  float64
	CancellationRate float64
	OrderCount       int
}

// ScoreRule is one weighted signal of the composite score
type ScoreRule struct {
	Name   string
	Weight float64
	Signal func(VendorMetrics) float64
}

// CompositeRules are summed independently. The result is not clamped.
var CompositeRules = []ScoreRule{
	{
		Name:   "fulfillment",
		Weight: 0.5,
		Signal: func(m VendorMetrics) float64 { return m.FulfillmentRate },
	},
	{
		Name:   "cancellation",
		Weight: -0.3,
		Signal: func(m VendorMetrics) float64 { return m.CancellationRate },
	},
	{
		Name:   "volume",
		Weight: 0.2,
		Signal: func(m VendorMetrics) float64 { return math.Min(1, float64(m.OrderCount)/volumeSaturation) },
	},
}

// CompositeScore sums every rule's weighted signal
func CompositeScore(m VendorMetrics) float64 {
	score := 0.0
	for _, rule := range CompositeRules {
		score += rule.Weight * rule.Signal(m)
	}
	return score
}

// MetricsFromOutcome derives rates from raw counts. A vendor without orders has zero rates.
func MetricsFromOutcome(o aggregation.VendorOutcome) VendorMetrics {
	m := VendorMetrics{OrderCount: o.TotalOrders}
	if o.TotalOrders > 0 {
		m.FulfillmentRate = float64(o.DeliveredOrders) / float64(o.TotalOrders)
		m.CancellationRate = float64(o.CancelledOrders) / float64(o.TotalOrders)
	}
	return m
}
