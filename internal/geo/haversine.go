package geo

import (
	"context"
	"math"

	"github.com/richxcame/marketplace-intel/pkg/models"
)

const earthRadiusKm = 6371.0

// HaversineKm calculates the great-circle distance between two coordinates in kilometers
func HaversineKm(a, b models.Coordinates) float64 {
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180.0
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180.0

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Latitude*math.Pi/180.0)*math.Cos(b.Latitude*math.Pi/180.0)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	// rounding can push h just past 1 for antipodal points
	h = math.Min(1, math.Max(0, h))

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// HaversineResolver estimates distance without calling out. It never fails and never estimates duration.
type HaversineResolver struct{}

var _ Resolver = HaversineResolver{}

// Resolve returns the great-circle distance
func (HaversineResolver) Resolve(_ context.Context, origin, destination models.Coordinates) (*Route, error) {
	return &Route{
		DistanceKm: HaversineKm(origin, destination),
		Source:     SourceHaversine,
	}, nil
}
