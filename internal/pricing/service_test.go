package pricing

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/richxcame/marketplace-intel/internal/geo"
	"github.com/richxcame/marketplace-intel/pkg/common"
	"github.com/richxcame/marketplace-intel/pkg/models"
	"github.com/richxcame/marketplace-intel/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockVendorPolicyRepository struct {
	mock.Mock
}

func (m *mockVendorPolicyRepository) GetVendorPolicy(ctx context.Context, vendorID uuid.UUID) (*models.Vendor, error) {
	args := m.Called(ctx, vendorID)
	vendor, _ := args.Get(0).(*models.Vendor)
	return vendor, args.Error(1)
}

func TestComputeDeliveryFee_PerKm(t *testing.T) {
	repo := new(mockVendorPolicyRepository)
	service := NewService(repo, geo.HaversineResolver{})
	vendorID := uuid.New()

	repo.On("GetVendorPolicy", mock.Anything, vendorID).Return(&models.Vendor{
		ID:             vendorID,
		Location:       &models.Coordinates{Latitude: 6.5, Longitude: 3.3},
		PerKmRate:      ptr(150.0),
		MinDeliveryFee: ptr(500.0),
	}, nil).Once()

	quote, err := service.ComputeDeliveryFee(context.Background(), QuoteRequest{
		VendorID:          vendorID,
		CustomerLatitude:  ptr(6.6),
		CustomerLongitude: ptr(3.4),
	})

	require.NoError(t, err)
	assert.Equal(t, RulePerKm, quote.Rule)
	require.NotNil(t, quote.DistanceKm)
	assert.InDelta(t, 15.6, *quote.DistanceKm, 0.1)
	assert.Greater(t, quote.DeliveryFee, 500.0)
	repo.AssertExpectations(t)
}

func TestComputeDeliveryFee_ValidationRunsBeforeLookup(t *testing.T) {
	repo := new(mockVendorPolicyRepository)
	service := NewService(repo, geo.HaversineResolver{})

	tests := []struct {
		name  string
		req   QuoteRequest
		field string
	}{
		{name: "missing vendor", req: QuoteRequest{}, field: "vendor_id"},
		{name: "latitude out of range", req: QuoteRequest{VendorID: uuid.New(), CustomerLatitude: ptr(91.0), CustomerLongitude: ptr(3.0)}, field: "customer_latitude"},
		{name: "longitude without latitude", req: QuoteRequest{VendorID: uuid.New(), CustomerLongitude: ptr(3.0)}, field: "customer_latitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ComputeDeliveryFee(context.Background(), tt.req)

			var appErr *common.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, http.StatusBadRequest, appErr.Code)

			var verr *validation.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Errors, tt.field)
		})
	}

	repo.AssertNotCalled(t, "GetVendorPolicy", mock.Anything, mock.Anything)
}

func TestComputeDeliveryFee_VendorNotFound(t *testing.T) {
	repo := new(mockVendorPolicyRepository)
	service := NewService(repo, nil)
	vendorID := uuid.New()

	repo.On("GetVendorPolicy", mock.Anything, vendorID).Return(nil, ErrVendorNotFound).Once()

	_, err := service.ComputeDeliveryFee(context.Background(), QuoteRequest{VendorID: vendorID})

	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestComputeDeliveryFee_StorageFailure(t *testing.T) {
	repo := new(mockVendorPolicyRepository)
	service := NewService(repo, nil)
	vendorID := uuid.New()
	dbErr := errors.New("connection reset")

	repo.On("GetVendorPolicy", mock.Anything, vendorID).Return(nil, dbErr).Once()

	_, err := service.ComputeDeliveryFee(context.Background(), QuoteRequest{VendorID: vendorID})

	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.ErrorIs(t, err, dbErr)
}

func TestComputeDeliveryFee_NoCoordinatesUsesRegionRules(t *testing.T) {
	repo := new(mockVendorPolicyRepository)
	service := NewService(repo, &failingResolver{})
	vendorID := uuid.New()

	repo.On("GetVendorPolicy", mock.Anything, vendorID).Return(&models.Vendor{
		ID:               vendorID,
		Location:         &models.Coordinates{Latitude: 6.5, Longitude: 3.3},
		Region:           ptr("Lagos"),
		InRegionFlatRate: ptr(800.0),
	}, nil).Once()

	quote, err := service.ComputeDeliveryFee(context.Background(), QuoteRequest{
		VendorID:       vendorID,
		CustomerRegion: ptr("Lagos"),
	})

	require.NoError(t, err)
	assert.Equal(t, 800.0, quote.DeliveryFee)
	assert.Nil(t, quote.DistanceKm)
	assert.False(t, quote.CrossRegion)
}
