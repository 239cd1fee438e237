package ranking

import (
	"context"
	"time"

	"github.com/richxcame/marketplace-intel/internal/aggregation"
	"github.com/richxcame/marketplace-intel/pkg/common"
	"github.com/richxcame/marketplace-intel/pkg/logger"
	"github.com/richxcame/marketplace-intel/pkg/tracing"
	"github.com/richxcame/marketplace-intel/pkg/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const periodLabelLayout = "2006-01"

// Service ranks vendors and maintains reliability snapshots
type Service struct {
	reader    OutcomeReader
	snapshots SnapshotRepository
	now       func() time.Time
}

// NewService creates a new ranking service
func NewService(reader OutcomeReader, snapshots SnapshotRepository) *Service {
	return &Service{
		reader:    reader,
		snapshots: snapshots,
		now:       time.Now,
	}
}

// GetRankedVendors returns the live leaderboard over the trailing lookback window
func (s *Service) GetRankedVendors(ctx context.Context, q RankingQuery) (ranked []RankedVendor, err error) {
	ctx, span := tracing.StartSpan(ctx, "ranking.GetRankedVendors",
		attribute.Int("lookback_months", q.LookbackMonths),
		attribute.Int("limit", q.Limit),
	)
	defer func() { tracing.EndSpan(span, err) }()

	if err := validation.Struct(q); err != nil {
		return nil, common.NewBadRequestError("invalid ranking parameters", err)
	}

	window := aggregation.Since(s.now().UTC().AddDate(0, -q.LookbackMonths, 0))
	outcomes, err := s.reader.VendorOutcomes(ctx, window)
	if err != nil {
		return nil, common.NewInternalError("failed to read vendor outcomes", err)
	}

	return Rank(outcomes, q.Limit), nil
}

// RefreshVendorReliability recomputes and upserts the snapshot of every vendor with orders in the month of periodDate
func (s *Service) RefreshVendorReliability(ctx context.Context, req RefreshRequest) (result *RefreshResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "ranking.RefreshVendorReliability",
		attribute.String("period_date", req.PeriodDate),
	)
	defer func() { tracing.EndSpan(span, err) }()

	if err := validation.Struct(req); err != nil {
		return nil, common.NewBadRequestError("invalid refresh request", err)
	}
	period, _ := validation.ParseMonth(req.PeriodDate)

	outcomes, err := s.reader.VendorOutcomes(ctx, aggregation.MonthWindow(period))
	if err != nil {
		return nil, common.NewInternalError("failed to read vendor outcomes", err)
	}

	refreshedAt := s.now().UTC()
	snapshots := BuildSnapshots(outcomes, period, refreshedAt)

	if err := s.snapshots.UpsertSnapshots(ctx, snapshots); err != nil {
		return nil, common.NewInternalError("failed to store reliability snapshots", err)
	}

	logger.WithContext(ctx).Info("vendor reliability refreshed",
		zap.String("period", period.Format(periodLabelLayout)),
		zap.Int("vendors", len(snapshots)),
	)

	return &RefreshResult{
		PeriodDate:       period.Format(periodLabelLayout),
		VendorsRefreshed: len(snapshots),
	}, nil
}

// GetReliabilitySnapshots reads the stored snapshots for the month of periodDate
func (s *Service) GetReliabilitySnapshots(ctx context.Context, periodDate string) (snapshots []ReliabilitySnapshot, err error) {
	ctx, span := tracing.StartSpan(ctx, "ranking.GetReliabilitySnapshots",
		attribute.String("period_date", periodDate),
	)
	defer func() { tracing.EndSpan(span, err) }()

	period, perr := validation.ParseMonth(periodDate)
	if perr != nil {
		verr := &validation.ValidationError{}
		verr.AddError("period_date", "period_date must be a month in YYYY-MM or YYYY-MM-DD form")
		return nil, common.NewBadRequestError("invalid period", verr)
	}

	snapshots, err = s.snapshots.ListSnapshots(ctx, period)
	if err != nil {
		return nil, common.NewInternalError("failed to read reliability snapshots", err)
	}
	return snapshots, nil
}

// BuildSnapshots scores each vendor with orders in the period
func BuildSnapshots(outcomes []aggregation.VendorOutcome, period, refreshedAt time.Time) []ReliabilitySnapshot {
	snapshots := make([]ReliabilitySnapshot, 0, len(outcomes))
	for _, o := range outcomes {
		if o.TotalOrders == 0 {
			continue
		}
		m := MetricsFromOutcome(o)
		snapshots = append(snapshots, ReliabilitySnapshot{
			VendorID:         o.VendorID,
			VendorName:       o.VendorName,
			PeriodDate:       period,
			FulfillmentRate:  m.FulfillmentRate,
			CancellationRate: m.CancellationRate,
			AvgDeliveryHours: o.AvgDeliveryHours,
			OrderCount:       o.TotalOrders,
			CompositeScore:   CompositeScore(m),
			RefreshedAt:      refreshedAt,
		})
	}
	return snapshots
}
