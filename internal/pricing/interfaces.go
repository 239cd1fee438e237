package pricing

import (
	"context"

	"github.com/google/uuid"
	"github.com/richxcame/marketplace-intel/pkg/models"
)

// VendorPolicyRepository reads vendor delivery pricing policies
type VendorPolicyRepository interface {
	GetVendorPolicy(ctx context.Context, vendorID uuid.UUID) (*models.Vendor, error)
}
