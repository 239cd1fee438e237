package geo

import (
	"context"

	"github.com/richxcame/marketplace-intel/pkg/config"
	"github.com/richxcame/marketplace-intel/pkg/models"
	redisClient "github.com/richxcame/marketplace-intel/pkg/redis"
)

// Source identifies which strategy produced a route
type Source string

const (
	SourceRouting   Source = "routing"
	SourceHaversine Source = "haversine"
)

// Route is the resolved distance between two points.
// DurationMinutes is nil when the strategy does not estimate travel time.
type Route struct {
	DistanceKm      float64  `json:"distance_km"`
	DurationMinutes *float64 `json:"duration_minutes,omitempty"`
	Source          Source   `json:"source"`
}

// Resolver resolves the distance between an origin and a destination
type Resolver interface {
	Resolve(ctx context.Context, origin, destination models.Coordinates) (*Route, error)
}

// NewResolver builds the production chain: cache, then routing service with haversine fallback.
// With routing disabled only the haversine estimate is used.
func NewResolver(cfg *config.RoutingConfig, redis *redisClient.Client) Resolver {
	if cfg == nil || !cfg.Enabled {
		return NewFallbackResolver(nil, HaversineResolver{})
	}
	chain := NewFallbackResolver(NewRoutingResolver(cfg), HaversineResolver{})
	return NewCachedResolver(chain, redis, cfg.CacheTTL())
}
