package pricing

import (
	"context"
	"errors"

	"github.com/richxcame/marketplace-intel/internal/geo"
	"github.com/richxcame/marketplace-intel/pkg/common"
	"github.com/richxcame/marketplace-intel/pkg/logger"
	"github.com/richxcame/marketplace-intel/pkg/tracing"
	"github.com/richxcame/marketplace-intel/pkg/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Service prices deliveries for checkout
type Service struct {
	repo       VendorPolicyRepository
	calculator *Calculator
}

// NewService creates a new pricing service
func NewService(repo VendorPolicyRepository, resolver geo.Resolver) *Service {
	return &Service{
		repo:       repo,
		calculator: NewCalculator(resolver),
	}
}

// ComputeDeliveryFee quotes the delivery fee from a vendor to a customer
func (s *Service) ComputeDeliveryFee(ctx context.Context, req QuoteRequest) (quote *Quote, err error) {
	ctx, span := tracing.StartSpan(ctx, "pricing.ComputeDeliveryFee",
		attribute.String("vendor_id", req.VendorID.String()),
	)
	defer func() { tracing.EndSpan(span, err) }()

	if err := validation.Struct(req); err != nil {
		return nil, common.NewBadRequestError("invalid delivery quote request", err)
	}

	vendor, err := s.repo.GetVendorPolicy(ctx, req.VendorID)
	if errors.Is(err, ErrVendorNotFound) {
		return nil, common.NewNotFoundError("vendor not found")
	}
	if err != nil {
		return nil, common.NewInternalError("failed to load vendor pricing policy", err)
	}

	quote, err = s.calculator.Quote(ctx, vendor, req.Coordinates(), req.CustomerRegion)
	if err != nil {
		return nil, common.NewInternalError("failed to resolve delivery distance", err)
	}

	deliveryQuotesTotal.WithLabelValues(string(quote.Rule)).Inc()
	logger.WithContext(ctx).Debug("delivery fee quoted",
		zap.String("vendor_id", vendor.ID.String()),
		zap.String("rule", string(quote.Rule)),
		zap.Float64("fee", quote.DeliveryFee),
	)

	return quote, nil
}
