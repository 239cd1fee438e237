package pricing

import (
	"github.com/google/uuid"
	"github.com/richxcame/marketplace-intel/internal/geo"
	"github.com/richxcame/marketplace-intel/pkg/models"
)

// Rule names the branch of the fee policy that produced a quote
type Rule string

const (
	RuleOutOfRange   Rule = "out_of_range"
	RuleCrossRegion  Rule = "cross_region"
	RuleInRegionFlat Rule = "in_region_flat"
	RulePerKm        Rule = "per_km"
	RuleMinimum      Rule = "minimum"
)

// QuoteRequest asks for the delivery fee from a vendor to a customer
type QuoteRequest struct {
	VendorID          uuid.UUID `json:"vendor_id" validate:"required"`
	CustomerLatitude  *float64  `json:"customer_latitude,omitempty" validate:"required_with=CustomerLongitude,omitempty,latitude"`
	CustomerLongitude *float64  `json:"customer_longitude,omitempty" validate:"required_with=CustomerLatitude,omitempty,longitude"`
	CustomerRegion    *string   `json:"customer_region,omitempty" validate:"omitempty,max=100"`
}

// Coordinates returns the customer location, or nil when it was not supplied
func (r QuoteRequest) Coordinates() *models.Coordinates {
	if r.CustomerLatitude == nil || r.CustomerLongitude == nil {
		return nil
	}
	return &models.Coordinates{Latitude: *r.CustomerLatitude, Longitude: *r.CustomerLongitude}
}

// FeeDecision is the outcome of applying a vendor's policy
type FeeDecision struct {
	Fee        float64
	DistanceKm *float64
	Rule       Rule
}

// Quote is the delivery fee answer returned to callers.
// A zero fee with OutOfRange set means the customer is beyond the vendor's radius, not free delivery.
type Quote struct {
	VendorID        uuid.UUID   `json:"vendor_id"`
	DeliveryFee     float64     `json:"delivery_fee"`
	DistanceKm      *float64    `json:"distance_km"`
	DurationMinutes *float64    `json:"duration_minutes,omitempty"`
	DistanceSource  *geo.Source `json:"distance_source,omitempty"`
	Rule            Rule        `json:"rule"`
	OutOfRange      bool        `json:"out_of_range"`
	CrossRegion     bool        `json:"cross_region"`
}
