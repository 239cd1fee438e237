package ranking

import (
	"sort"

	"github.com/richxcame/marketplace-intel/internal/aggregation"
	"github.com/richxcame/marketplace-intel/pkg/common"
)

// Rank orders vendors by fulfillment rate, then faster average delivery, then order volume.
// Vendors with no delivered orders and vendors with no delivery time sort last within their key.
// Vendors with zero orders are dropped.
func Rank(outcomes []aggregation.VendorOutcome, limit int) []RankedVendor {
	eligible := make([]aggregation.VendorOutcome, 0, len(outcomes))
	for _, o := range outcomes {
		if o.TotalOrders > 0 {
			eligible = append(eligible, o)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return rankedBefore(eligible[i], eligible[j])
	})

	if limit > 0 && len(eligible) > limit {
		eligible = eligible[:limit]
	}

	ranked := make([]RankedVendor, 0, len(eligible))
	for _, o := range eligible {
		m := MetricsFromOutcome(o)
		ranked = append(ranked, RankedVendor{
			VendorID:            o.VendorID,
			Name:                o.VendorName,
			OrderCount:          o.TotalOrders,
			FulfillmentRatePct:  common.Round2(m.FulfillmentRate * 100),
			CancellationRatePct: common.Round2(m.CancellationRate * 100),
			AvgDeliveryHours:    common.Round2Ptr(o.AvgDeliveryHours),
		})
	}
	return ranked
}

func rankedBefore(a, b aggregation.VendorOutcome) bool {
	aDelivered, bDelivered := a.DeliveredOrders > 0, b.DeliveredOrders > 0
	if aDelivered != bDelivered {
		return aDelivered
	}

	aRate := MetricsFromOutcome(a).FulfillmentRate
	bRate := MetricsFromOutcome(b).FulfillmentRate
	if aRate != bRate {
		return aRate > bRate
	}

	switch {
	case a.AvgDeliveryHours != nil && b.AvgDeliveryHours == nil:
		return true
	case a.AvgDeliveryHours == nil && b.AvgDeliveryHours != nil:
		return false
	case a.AvgDeliveryHours != nil && *a.AvgDeliveryHours != *b.AvgDeliveryHours:
		return *a.AvgDeliveryHours < *b.AvgDeliveryHours
	}

	if a.TotalOrders != b.TotalOrders {
		return a.TotalOrders > b.TotalOrders
	}

	return a.VendorID.String() < b.VendorID.String()
}
