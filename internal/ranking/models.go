package ranking

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultLookbackMonths = 3
	DefaultLimit          = 10
)

// RankingQuery selects the leaderboard window and size
type RankingQuery struct {
	LookbackMonths int `json:"lookback_months" validate:"gte=1,lte=24"`
	Limit          int `json:"limit" validate:"gte=1,lte=100"`
}

// DefaultRankingQuery returns the three month, top ten leaderboard
func DefaultRankingQuery() RankingQuery {
	return RankingQuery{LookbackMonths: DefaultLookbackMonths, Limit: DefaultLimit}
}

// RankedVendor is one leaderboard row
type RankedVendor struct {
	VendorID            uuid.UUID `json:"vendor_id"`
	Name                string    `json:"name"`
	OrderCount          int       `json:"order_count"`
	FulfillmentRatePct  float64   `json:"fulfillment_rate_pct"`
	CancellationRatePct float64   `json:"cancellation_rate_pct"`
	AvgDeliveryHours    *float64  `json:"avg_delivery_hours"`
}

// ReliabilitySnapshot is the materialised reliability of a vendor for one calendar month
type ReliabilitySnapshot struct {
	VendorID         uuid.UUID `json:"vendor_id"`
	VendorName       string    `json:"vendor_name,omitempty"`
	PeriodDate       time.Time `json:"period_date"`
	FulfillmentRate  float64   `json:"fulfillment_rate"`
	CancellationRate float64   `json:"cancellation_rate"`
	AvgDeliveryHours *float64  `json:"avg_delivery_hours"`
	OrderCount       int       `json:"order_count"`
	CompositeScore   float64   `json:"composite_score"`
	RefreshedAt      time.Time `json:"refreshed_at"`
}

// RefreshRequest triggers a snapshot refresh for the month containing PeriodDate
type RefreshRequest struct {
	PeriodDate string `json:"period_date" validate:"required,period_month"`
}

// RefreshResult acknowledges a refresh
type RefreshResult struct {
	PeriodDate       string `json:"period_date"`
	VendorsRefreshed int    `json:"vendors_refreshed"`
}
