package models

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CountsTowardRevenue(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.Equal(t, s != OrderStatusCancelled, s.CountsTowardRevenue(), string(s))
	}
}

func TestNonRevenueOrderStatuses(t *testing.T) {
	assert.Equal(t, []string{"CANCELLED"}, NonRevenueOrderStatuses)

	for _, s := range OrderStatuses {
		assert.Equal(t, !s.CountsTowardRevenue(), slices.Contains(NonRevenueOrderStatuses, string(s)), string(s))
	}
}

func TestFailedPaymentStatuses(t *testing.T) {
	assert.Equal(t, []string{"failed", "error"}, FailedPaymentStatuses)

	for _, s := range PaymentStatuses {
		assert.Equal(t, s.IsFailure(), slices.Contains(FailedPaymentStatuses, string(s)), string(s))
	}
	assert.False(t, PaymentStatus("refunded").IsFailure())
}
