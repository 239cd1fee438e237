package resilience

import "time"

// Tuning is breaker configuration in the terms operators set it
type Tuning struct {
	// ConsecutiveFailures trips the breaker
	ConsecutiveFailures int
	// OpenFor is how long calls short-circuit before a trial call is let through
	OpenFor time.Duration
	// TrialCalls must all succeed in half-open state before the breaker closes
	TrialCalls int
}

// SettingsFor fills defaults (5 failures, 30s open, 1 trial call).
// Interval stays zero: only a success resets the consecutive-failure count, never a timer.
func SettingsFor(name string, t Tuning) Settings {
	if t.ConsecutiveFailures <= 0 {
		t.ConsecutiveFailures = 5
	}
	if t.OpenFor <= 0 {
		t.OpenFor = 30 * time.Second
	}
	if t.TrialCalls <= 0 {
		t.TrialCalls = 1
	}

	return Settings{
		Name:             name,
		Timeout:          t.OpenFor,
		FailureThreshold: uint32(t.ConsecutiveFailures),
		SuccessThreshold: uint32(t.TrialCalls),
	}
}
