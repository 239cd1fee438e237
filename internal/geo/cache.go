package geo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/richxcame/marketplace-intel/pkg/logger"
	"github.com/richxcame/marketplace-intel/pkg/models"
	redisClient "github.com/richxcame/marketplace-intel/pkg/redis"
	"go.uber.org/zap"
)

const routeCachePrefix = "geo:route:"

// CachedResolver memoises routing-service answers in Redis.
// Fallback estimates are not cached so a recovered routing service is used again immediately.
type CachedResolver struct {
	next  Resolver
	redis *redisClient.Client
	ttl   time.Duration
}

var _ Resolver = (*CachedResolver)(nil)

// NewCachedResolver wraps next with a Redis cache. A nil client or non-positive ttl disables caching.
func NewCachedResolver(next Resolver, redis *redisClient.Client, ttl time.Duration) *CachedResolver {
	return &CachedResolver{next: next, redis: redis, ttl: ttl}
}

// Resolve serves a cached route when present, otherwise delegates and stores routing answers
func (r *CachedResolver) Resolve(ctx context.Context, origin, destination models.Coordinates) (*Route, error) {
	if r.redis == nil || r.ttl <= 0 {
		return r.next.Resolve(ctx, origin, destination)
	}

	key := routeCacheKey(origin, destination)
	log := logger.WithContext(ctx)

	var cached Route
	err := r.redis.GetJSON(ctx, key, &cached)
	switch {
	case err == nil:
		routeCacheTotal.WithLabelValues("hit").Inc()
		return &cached, nil
	case errors.Is(err, redisClient.ErrCacheMiss):
		routeCacheTotal.WithLabelValues("miss").Inc()
	default:
		routeCacheTotal.WithLabelValues("error").Inc()
		log.Warn("route cache read failed", zap.String("key", key), zap.Error(err))
	}

	route, err := r.next.Resolve(ctx, origin, destination)
	if err != nil {
		return nil, err
	}

	if route.Source == SourceRouting {
		if err := r.redis.SetJSON(ctx, key, route, r.ttl); err != nil {
			log.Warn("route cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return route, nil
}

// routeCacheKey rounds to five decimals, roughly one metre
func routeCacheKey(origin, destination models.Coordinates) string {
	return fmt.Sprintf("%s%.5f,%.5f:%.5f,%.5f", routeCachePrefix,
		origin.Latitude, origin.Longitude, destination.Latitude, destination.Longitude)
}
