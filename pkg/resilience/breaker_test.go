package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream unavailable")

func TestSettingsFor_Defaults(t *testing.T) {
	s := SettingsFor("routing", Tuning{})

	assert.Equal(t, "routing", s.Name)
	assert.Zero(t, s.Interval)
	assert.Equal(t, 30*time.Second, s.Timeout)
	assert.Equal(t, uint32(5), s.FailureThreshold)
	assert.Equal(t, uint32(1), s.SuccessThreshold)
}

func TestSettingsFor_KeepsOperatorValues(t *testing.T) {
	s := SettingsFor("routing", Tuning{ConsecutiveFailures: 3, OpenFor: 10 * time.Second, TrialCalls: 2})

	assert.Equal(t, 10*time.Second, s.Timeout)
	assert.Equal(t, uint32(3), s.FailureThreshold)
	assert.Equal(t, uint32(2), s.SuccessThreshold)
}

func TestCircuitBreaker_PassesThroughSuccess(t *testing.T) {
	cb := NewCircuitBreaker(SettingsFor("test-success", Tuning{ConsecutiveFailures: 2}), nil)

	result, err := cb.Execute(context.Background(), func(ctx context.Context) (interface{}, error) {
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker(SettingsFor("test-open", Tuning{ConsecutiveFailures: 2}), nil)
	calls := 0
	failing := func(ctx context.Context) (interface{}, error) {
		calls++
		return nil, errUpstream
	}

	_, err := cb.Execute(context.Background(), failing)
	assert.ErrorIs(t, err, errUpstream)
	_, err = cb.Execute(context.Background(), failing)
	assert.ErrorIs(t, err, errUpstream)

	_, err = cb.Execute(context.Background(), failing)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 2, calls, "open breaker must not call the upstream")
	assert.Equal(t, gobreaker.StateOpen, cb.State())
}

func TestCircuitBreaker_CustomFallback(t *testing.T) {
	cb := NewCircuitBreaker(SettingsFor("test-fallback", Tuning{ConsecutiveFailures: 1}), func(ctx context.Context, err error) (interface{}, error) {
		return "degraded", nil
	})

	_, _ = cb.Execute(context.Background(), func(ctx context.Context) (interface{}, error) {
		return nil, errUpstream
	})
	result, err := cb.Execute(context.Background(), func(ctx context.Context) (interface{}, error) {
		return "fresh", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "degraded", result)
}

func TestCircuitBreaker_CancelledContextDoesNotTrip(t *testing.T) {
	cb := NewCircuitBreaker(SettingsFor("test-cancel", Tuning{ConsecutiveFailures: 1}), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cb.Execute(ctx, func(ctx context.Context) (interface{}, error) {
		t.Fatal("operation must not run with a cancelled context")
		return nil, nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestNextBreakerName(t *testing.T) {
	assert.Equal(t, "routing", nextBreakerName("routing"))
	assert.Contains(t, nextBreakerName(""), "breaker-")
}
