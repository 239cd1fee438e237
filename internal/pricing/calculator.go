package pricing

import (
	"context"
	"math"
	"strings"

	"github.com/richxcame/marketplace-intel/internal/geo"
	"github.com/richxcame/marketplace-intel/pkg/common"
	"github.com/richxcame/marketplace-intel/pkg/models"
)

// CalculateDeliveryFee applies the vendor's policy to an already resolved distance.
// The first matching rule wins.
func CalculateDeliveryFee(vendor *models.Vendor, distanceKm *float64, customerRegion *string) FeeDecision {
	if distanceKm != nil && vendor.MaxDeliveryRadiusKm != nil && *distanceKm > *vendor.MaxDeliveryRadiusKm {
		return FeeDecision{Fee: 0, DistanceKm: distanceKm, Rule: RuleOutOfRange}
	}

	if regionsDiffer(vendor.Region, customerRegion) && vendor.CrossRegionFee != nil {
		return FeeDecision{Fee: *vendor.CrossRegionFee, DistanceKm: distanceKm, Rule: RuleCrossRegion}
	}

	if vendor.InRegionFlatRate != nil && regionsMatch(vendor.Region, customerRegion) {
		return FeeDecision{Fee: *vendor.InRegionFlatRate, DistanceKm: distanceKm, Rule: RuleInRegionFlat}
	}

	minimum := 0.0
	if vendor.MinDeliveryFee != nil {
		minimum = *vendor.MinDeliveryFee
	}

	if distanceKm != nil && vendor.PerKmRate != nil && *vendor.PerKmRate > 0 {
		fee := math.Max(minimum, *distanceKm**vendor.PerKmRate)
		return FeeDecision{Fee: common.Round2(fee), DistanceKm: distanceKm, Rule: RulePerKm}
	}

	return FeeDecision{Fee: minimum, DistanceKm: distanceKm, Rule: RuleMinimum}
}

func normalizeRegion(region *string) (string, bool) {
	if region == nil {
		return "", false
	}
	r := strings.TrimSpace(*region)
	return r, r != ""
}

func regionsMatch(vendorRegion, customerRegion *string) bool {
	v, okV := normalizeRegion(vendorRegion)
	c, okC := normalizeRegion(customerRegion)
	return okV && okC && strings.EqualFold(v, c)
}

func regionsDiffer(vendorRegion, customerRegion *string) bool {
	v, okV := normalizeRegion(vendorRegion)
	c, okC := normalizeRegion(customerRegion)
	return okV && okC && !strings.EqualFold(v, c)
}

// Calculator resolves distance and prices a delivery
type Calculator struct {
	resolver geo.Resolver
}

// NewCalculator creates a calculator backed by the given distance resolver
func NewCalculator(resolver geo.Resolver) *Calculator {
	if resolver == nil {
		resolver = geo.NewFallbackResolver(nil, geo.HaversineResolver{})
	}
	return &Calculator{resolver: resolver}
}

// Quote prices a delivery. Distance is only resolved when both the vendor and the customer locations are known.
func (c *Calculator) Quote(ctx context.Context, vendor *models.Vendor, customer *models.Coordinates, customerRegion *string) (*Quote, error) {
	var route *geo.Route
	if vendor.Location != nil && customer != nil {
		var err error
		route, err = c.resolver.Resolve(ctx, *vendor.Location, *customer)
		if err != nil {
			return nil, err
		}
	}

	var distance *float64
	if route != nil {
		d := route.DistanceKm
		distance = &d
	}

	decision := CalculateDeliveryFee(vendor, distance, customerRegion)

	quote := &Quote{
		VendorID:    vendor.ID,
		DeliveryFee: decision.Fee,
		DistanceKm:  common.Round2Ptr(decision.DistanceKm),
		Rule:        decision.Rule,
		OutOfRange:  decision.Rule == RuleOutOfRange,
		CrossRegion: regionsDiffer(vendor.Region, customerRegion),
	}
	if route != nil {
		quote.DurationMinutes = common.Round2Ptr(route.DurationMinutes)
		source := route.Source
		quote.DistanceSource = &source
	}

	return quote, nil
}
