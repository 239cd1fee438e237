package geo

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/richxcame/marketplace-intel/pkg/config"
	"github.com/richxcame/marketplace-intel/pkg/models"
	redisClient "github.com/richxcame/marketplace-intel/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	route *Route
	err   error
	calls int
}

func (s *stubResolver) Resolve(context.Context, models.Coordinates, models.Coordinates) (*Route, error) {
	s.calls++
	return s.route, s.err
}

func TestHaversineKm(t *testing.T) {
	lagos := models.Coordinates{Latitude: 6.5, Longitude: 3.3}

	tests := []struct {
		name string
		a, b models.Coordinates
		want float64
		tol  float64
	}{
		{name: "same point", a: lagos, b: lagos, want: 0, tol: 0},
		{name: "one degree of latitude", a: models.Coordinates{}, b: models.Coordinates{Latitude: 1}, want: 111.19, tol: 0.01},
		{name: "ten km east on the equator", a: models.Coordinates{}, b: models.Coordinates{Longitude: 0.0899322}, want: 10, tol: 0.01},
		{name: "antipodal points", a: models.Coordinates{Latitude: -86.78, Longitude: -179}, b: models.Coordinates{Latitude: 86.78, Longitude: 1}, want: math.Pi * earthRadiusKm, tol: 0.01},
		{name: "pole to pole", a: models.Coordinates{Latitude: 90}, b: models.Coordinates{Latitude: -90}, want: math.Pi * earthRadiusKm, tol: 0.01},
		{name: "lagos to abuja", a: models.Coordinates{Latitude: 6.5244, Longitude: 3.3792}, b: models.Coordinates{Latitude: 9.0765, Longitude: 7.3986}, want: 524, tol: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, HaversineKm(tt.a, tt.b), tt.tol)
		})
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	a := models.Coordinates{Latitude: 6.45, Longitude: 3.39}
	b := models.Coordinates{Latitude: -33.86, Longitude: 151.2}

	assert.Equal(t, HaversineKm(a, b), HaversineKm(b, a))
}

func TestHaversineResolver_NoDuration(t *testing.T) {
	route, err := HaversineResolver{}.Resolve(context.Background(), models.Coordinates{}, models.Coordinates{Latitude: 1})

	require.NoError(t, err)
	assert.Equal(t, SourceHaversine, route.Source)
	assert.Nil(t, route.DurationMinutes)
	assert.Greater(t, route.DistanceKm, 0.0)
}

func newRoutingServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, distanceMatrixPath, r.URL.Path)
		assert.Equal(t, "6.5,3.3", r.URL.Query().Get("origins"))
		assert.Equal(t, "6.6,3.4", r.URL.Query().Get("destinations"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func routingConfig(baseURL string) *config.RoutingConfig {
	return &config.RoutingConfig{
		Enabled:            true,
		BaseURL:            baseURL,
		APIKey:             "test-key",
		TimeoutMs:          500,
		BreakerFailures:    2,
		BreakerOpenSeconds: 30,
	}
}

var (
	origin      = models.Coordinates{Latitude: 6.5, Longitude: 3.3}
	destination = models.Coordinates{Latitude: 6.6, Longitude: 3.4}
)

func TestRoutingResolver_Success(t *testing.T) {
	server, _ := newRoutingServer(t, http.StatusOK, `{
		"status": "OK",
		"rows": [{"elements": [{"status": "OK", "distance": {"value": 12500}, "duration": {"value": 1500}}]}]
	}`)

	route, err := NewRoutingResolver(routingConfig(server.URL)).Resolve(context.Background(), origin, destination)

	require.NoError(t, err)
	assert.Equal(t, SourceRouting, route.Source)
	assert.InDelta(t, 12.5, route.DistanceKm, 1e-9)
	require.NotNil(t, route.DurationMinutes)
	assert.InDelta(t, 25.0, *route.DurationMinutes, 1e-9)
}

func TestRoutingResolver_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `oops`},
		{name: "denied", status: http.StatusOK, body: `{"status": "REQUEST_DENIED", "rows": []}`},
		{name: "no elements", status: http.StatusOK, body: `{"status": "OK", "rows": [{"elements": []}]}`},
		{name: "element not found", status: http.StatusOK, body: `{"status": "OK", "rows": [{"elements": [{"status": "ZERO_RESULTS"}]}]}`},
		{name: "malformed json", status: http.StatusOK, body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newRoutingServer(t, tt.status, tt.body)

			route, err := NewRoutingResolver(routingConfig(server.URL)).Resolve(context.Background(), origin, destination)

			assert.Error(t, err)
			assert.Nil(t, route)
		})
	}
}

func TestRoutingResolver_BreakerOpensAfterFailures(t *testing.T) {
	server, hits := newRoutingServer(t, http.StatusServiceUnavailable, `down`)
	resolver := NewRoutingResolver(routingConfig(server.URL))

	for i := 0; i < 2; i++ {
		_, err := resolver.Resolve(context.Background(), origin, destination)
		require.Error(t, err)
	}

	_, err := resolver.Resolve(context.Background(), origin, destination)
	assert.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestRoutingResolver_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := routingConfig(server.URL)
	cfg.TimeoutMs = 20

	start := time.Now()
	_, err := NewRoutingResolver(cfg).Resolve(context.Background(), origin, destination)

	assert.Error(t, err)
	assert.Less(t, time.Since(start), 150*time.Millisecond)
}

func TestFallbackResolver_UsesPrimary(t *testing.T) {
	minutes := 7.0
	primary := &stubResolver{route: &Route{DistanceKm: 3.2, DurationMinutes: &minutes, Source: SourceRouting}}
	fallback := &stubResolver{route: &Route{DistanceKm: 2.9, Source: SourceHaversine}}

	route, err := NewFallbackResolver(primary, fallback).Resolve(context.Background(), origin, destination)

	require.NoError(t, err)
	assert.Equal(t, SourceRouting, route.Source)
	assert.Equal(t, 0, fallback.calls)
}

func TestFallbackResolver_SwallowsPrimaryError(t *testing.T) {
	primary := &stubResolver{err: errors.New("timeout")}

	route, err := NewFallbackResolver(primary, HaversineResolver{}).Resolve(context.Background(), origin, destination)

	require.NoError(t, err)
	assert.Equal(t, SourceHaversine, route.Source)
	assert.InDelta(t, HaversineKm(origin, destination), route.DistanceKm, 1e-9)
	assert.Equal(t, 1, primary.calls)
}

func TestFallbackResolver_NilPrimary(t *testing.T) {
	route, err := NewFallbackResolver(nil, nil).Resolve(context.Background(), origin, destination)

	require.NoError(t, err)
	assert.Equal(t, SourceHaversine, route.Source)
}

func TestFallbackResolver_RoutingOutage(t *testing.T) {
	server, _ := newRoutingServer(t, http.StatusBadGateway, `bad gateway`)

	resolver := NewFallbackResolver(NewRoutingResolver(routingConfig(server.URL)), HaversineResolver{})
	route, err := resolver.Resolve(context.Background(), origin, destination)

	require.NoError(t, err)
	assert.Equal(t, SourceHaversine, route.Source)
}

func TestCachedResolver_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	minutes := 12.0
	cached := Route{DistanceKm: 8.4, DurationMinutes: &minutes, Source: SourceRouting}
	data, err := json.Marshal(cached)
	require.NoError(t, err)

	key := routeCacheKey(origin, destination)
	mock.ExpectGet(key).SetVal(string(data))

	next := &stubResolver{}
	route, err := NewCachedResolver(next, redisClient.Wrap(db), time.Hour).Resolve(context.Background(), origin, destination)

	require.NoError(t, err)
	assert.Equal(t, cached.DistanceKm, route.DistanceKm)
	assert.Equal(t, 0, next.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedResolver_MissStoresRoutingAnswer(t *testing.T) {
	db, mock := redismock.NewClientMock()
	minutes := 12.0
	fresh := &Route{DistanceKm: 8.4, DurationMinutes: &minutes, Source: SourceRouting}
	data, err := json.Marshal(fresh)
	require.NoError(t, err)

	key := routeCacheKey(origin, destination)
	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, data, time.Hour).SetVal("OK")

	next := &stubResolver{route: fresh}
	route, err := NewCachedResolver(next, redisClient.Wrap(db), time.Hour).Resolve(context.Background(), origin, destination)

	require.NoError(t, err)
	assert.Same(t, fresh, route)
	assert.Equal(t, 1, next.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedResolver_DoesNotCacheFallback(t *testing.T) {
	db, mock := redismock.NewClientMock()
	key := routeCacheKey(origin, destination)
	mock.ExpectGet(key).RedisNil()

	next := &stubResolver{route: &Route{DistanceKm: 4, Source: SourceHaversine}}
	route, err := NewCachedResolver(next, redisClient.Wrap(db), time.Hour).Resolve(context.Background(), origin, destination)

	require.NoError(t, err)
	assert.Equal(t, SourceHaversine, route.Source)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedResolver_ReadErrorStillResolves(t *testing.T) {
	db, mock := redismock.NewClientMock()
	key := routeCacheKey(origin, destination)
	mock.ExpectGet(key).SetErr(errors.New("connection refused"))

	next := &stubResolver{route: &Route{DistanceKm: 4, Source: SourceHaversine}}
	route, err := NewCachedResolver(next, redisClient.Wrap(db), time.Hour).Resolve(context.Background(), origin, destination)

	require.NoError(t, err)
	assert.Equal(t, 4.0, route.DistanceKm)
}

func TestCachedResolver_Disabled(t *testing.T) {
	next := &stubResolver{route: &Route{DistanceKm: 1, Source: SourceRouting}}

	_, err := NewCachedResolver(next, nil, time.Hour).Resolve(context.Background(), origin, destination)

	require.NoError(t, err)
	assert.Equal(t, 1, next.calls)
}

func TestRouteCacheKey(t *testing.T) {
	key := routeCacheKey(
		models.Coordinates{Latitude: 6.123456789, Longitude: 3.1},
		models.Coordinates{Latitude: -1, Longitude: 0},
	)
	assert.Equal(t, "geo:route:6.12346,3.10000:-1.00000,0.00000", key)
}

func TestNewResolver_DisabledUsesHaversine(t *testing.T) {
	resolver := NewResolver(&config.RoutingConfig{Enabled: false}, nil)

	route, err := resolver.Resolve(context.Background(), origin, destination)

	require.NoError(t, err)
	assert.Equal(t, SourceHaversine, route.Source)
}
