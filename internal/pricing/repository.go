package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/richxcame/marketplace-intel/pkg/models"
)

// ErrVendorNotFound is returned when the vendor does not exist
var ErrVendorNotFound = errors.New("vendor not found")

// Repository handles database operations for vendor pricing policies
type Repository struct {
	db *pgxpool.Pool
}

// Ensure the concrete repository satisfies the service's requirements.
var _ VendorPolicyRepository = (*Repository)(nil)

// NewRepository creates a new pricing repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetVendorPolicy retrieves a vendor's location, region and delivery pricing fields
func (r *Repository) GetVendorPolicy(ctx context.Context, vendorID uuid.UUID) (*models.Vendor, error) {
	query := `
		SELECT id, name, latitude, longitude, region,
		       min_delivery_fee, per_km_rate, in_region_flat_rate,
		       cross_region_fee, max_delivery_radius_km, allow_cross_region
		FROM vendors
		WHERE id = $1
	`

	var vendor models.Vendor
	var lat, lng *float64
	err := r.db.QueryRow(ctx, query, vendorID).Scan(
		&vendor.ID,
		&vendor.Name,
		&lat,
		&lng,
		&vendor.Region,
		&vendor.MinDeliveryFee,
		&vendor.PerKmRate,
		&vendor.InRegionFlatRate,
		&vendor.CrossRegionFee,
		&vendor.MaxDeliveryRadiusKm,
		&vendor.AllowCrossRegion,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor policy: %w", err)
	}

	if lat != nil && lng != nil {
		vendor.Location = &models.Coordinates{Latitude: *lat, Longitude: *lng}
	}

	return &vendor, nil
}
