package geo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/richxcame/marketplace-intel/pkg/config"
	"github.com/richxcame/marketplace-intel/pkg/httpclient"
	"github.com/richxcame/marketplace-intel/pkg/models"
	"github.com/richxcame/marketplace-intel/pkg/resilience"
)

const distanceMatrixPath = "/distancematrix/json"

const statusOK = "OK"

// ErrNoRoute is returned when the routing service answers without a usable element
var ErrNoRoute = errors.New("routing service returned no route")

type distanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value float64 `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value float64 `json:"value"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// RoutingResolver asks an external distance-matrix service for road distance and travel time
type RoutingResolver struct {
	client  *httpclient.Client
	apiKey  string
	breaker *resilience.CircuitBreaker
}

var _ Resolver = (*RoutingResolver)(nil)

// NewRoutingResolver creates a resolver with a short request timeout behind a circuit breaker
func NewRoutingResolver(cfg *config.RoutingConfig) *RoutingResolver {
	settings := resilience.SettingsFor("routing", resilience.Tuning{
		ConsecutiveFailures: cfg.BreakerFailures,
		OpenFor:             cfg.BreakerOpenFor(),
	})
	return &RoutingResolver{
		client:  httpclient.NewClient(cfg.BaseURL, cfg.Timeout()),
		apiKey:  cfg.APIKey,
		breaker: resilience.NewCircuitBreaker(settings, resilience.GracefulDegradation("routing")),
	}
}

// Resolve calls the distance-matrix endpoint. Any non-OK answer is an error.
func (r *RoutingResolver) Resolve(ctx context.Context, origin, destination models.Coordinates) (*Route, error) {
	result, err := r.breaker.Execute(ctx, func(ctx context.Context) (interface{}, error) {
		return r.fetch(ctx, origin, destination)
	})
	if err != nil {
		return nil, err
	}

	route, ok := result.(*Route)
	if !ok || route == nil {
		return nil, ErrNoRoute
	}
	return route, nil
}

func (r *RoutingResolver) fetch(ctx context.Context, origin, destination models.Coordinates) (*Route, error) {
	query := url.Values{}
	query.Set("origins", formatLatLng(origin))
	query.Set("destinations", formatLatLng(destination))
	if r.apiKey != "" {
		query.Set("key", r.apiKey)
	}

	var resp distanceMatrixResponse
	if err := r.client.GetJSON(ctx, distanceMatrixPath, query, &resp); err != nil {
		return nil, fmt.Errorf("distance matrix request failed: %w", err)
	}

	if resp.Status != statusOK {
		return nil, fmt.Errorf("distance matrix status %s: %w", resp.Status, ErrNoRoute)
	}
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return nil, ErrNoRoute
	}

	element := resp.Rows[0].Elements[0]
	if element.Status != statusOK {
		return nil, fmt.Errorf("distance matrix element status %s: %w", element.Status, ErrNoRoute)
	}

	minutes := element.Duration.Value / 60.0
	return &Route{
		DistanceKm:      element.Distance.Value / 1000.0,
		DurationMinutes: &minutes,
		Source:          SourceRouting,
	}, nil
}

func formatLatLng(c models.Coordinates) string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}
