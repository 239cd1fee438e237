package geo

import (
	"context"

	"github.com/richxcame/marketplace-intel/pkg/logger"
	"github.com/richxcame/marketplace-intel/pkg/models"
	"go.uber.org/zap"
)

// FallbackResolver tries the primary resolver and answers with the fallback on any primary error.
// Primary errors are logged and never returned.
type FallbackResolver struct {
	primary  Resolver
	fallback Resolver
}

var _ Resolver = (*FallbackResolver)(nil)

// NewFallbackResolver creates a two-branch resolver. A nil primary always uses the fallback.
func NewFallbackResolver(primary, fallback Resolver) *FallbackResolver {
	if fallback == nil {
		fallback = HaversineResolver{}
	}
	return &FallbackResolver{primary: primary, fallback: fallback}
}

// Resolve returns the primary route, or the fallback route when the primary fails
func (r *FallbackResolver) Resolve(ctx context.Context, origin, destination models.Coordinates) (*Route, error) {
	if r.primary != nil {
		route, err := r.primary.Resolve(ctx, origin, destination)
		if err == nil && route != nil {
			routeResolutionsTotal.WithLabelValues(string(route.Source)).Inc()
			return route, nil
		}

		routingFallbacksTotal.Inc()
		logger.WithContext(ctx).Warn("primary distance resolver failed, using fallback",
			zap.Error(err),
		)
	}

	route, err := r.fallback.Resolve(ctx, origin, destination)
	if err != nil {
		return nil, err
	}
	routeResolutionsTotal.WithLabelValues(string(route.Source)).Inc()
	return route, nil
}
