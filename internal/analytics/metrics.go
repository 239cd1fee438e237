package analytics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/richxcame/marketplace-intel/pkg/common"
)

// MonthOverMonthGrowth is the percentage change from last month.
// With nothing last month it is 100 when this month is positive and 0 otherwise.
func MonthOverMonthGrowth(thisMonth, lastMonth float64) float64 {
	if lastMonth == 0 {
		if thisMonth > 0 {
			return 100
		}
		return 0
	}
	return common.Round2((thisMonth - lastMonth) / lastMonth * 100)
}

// LifetimeValue estimates customer value from order value, order frequency and an assumed gross margin
func LifetimeValue(averageOrderValue, averageOrdersPerCustomer, grossMargin float64) float64 {
	return averageOrderValue * averageOrdersPerCustomer * grossMargin
}

// safeDiv returns 0 when the denominator is 0
func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// ratioOrNil divides when the denominator is known and positive
func ratioOrNil(numerator float64, denominator *float64) *float64 {
	if denominator == nil || *denominator <= 0 {
		return nil
	}
	v := common.Round2(numerator / *denominator)
	return &v
}

var dashboardCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "intel",
		Subsystem: "analytics",
		Name:      "dashboard_cache_total",
		Help:      "Dashboard cache lookups by result",
	},
	[]string{"result"},
)
