package cohort

import (
	"context"

	"github.com/richxcame/marketplace-intel/internal/aggregation"
	"github.com/richxcame/marketplace-intel/pkg/common"
	"github.com/richxcame/marketplace-intel/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
)

// ActivityReader reads the distinct months in which customers ordered
type ActivityReader interface {
	CustomerOrderMonths(ctx context.Context) ([]aggregation.CustomerMonth, error)
}

// Service computes cohort retention
type Service struct {
	reader ActivityReader
}

// NewService creates a new cohort service
func NewService(reader ActivityReader) *Service {
	return &Service{reader: reader}
}

// GetCohortRetention returns next-month retention for every first-order cohort, oldest first
func (s *Service) GetCohortRetention(ctx context.Context) (cohorts []Retention, err error) {
	ctx, span := tracing.StartSpan(ctx, "cohort.GetCohortRetention")
	defer func() { tracing.EndSpan(span, err) }()

	activity, err := s.reader.CustomerOrderMonths(ctx)
	if err != nil {
		return nil, common.NewInternalError("failed to read customer activity", err)
	}

	cohorts = Analyze(activity)
	span.SetAttributes(attribute.Int("cohorts", len(cohorts)))
	return cohorts, nil
}
