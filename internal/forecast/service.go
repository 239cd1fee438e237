package forecast

import (
	"context"
	"time"

	"github.com/richxcame/marketplace-intel/internal/aggregation"
	"github.com/richxcame/marketplace-intel/pkg/common"
	"github.com/richxcame/marketplace-intel/pkg/tracing"
)

const (
	monthLabelLayout = "2006-01"
	dateLabelLayout  = "2006-01-02"
)

// RevenueReader reads revenue grouped by period
type RevenueReader interface {
	RevenueByPeriod(ctx context.Context, g aggregation.Granularity, w aggregation.TimeWindow) ([]aggregation.PeriodTotal, error)
}

// Service projects revenue
type Service struct {
	reader RevenueReader
	now    func() time.Time
}

// NewService creates a new forecast service
func NewService(reader RevenueReader) *Service {
	return &Service{reader: reader, now: time.Now}
}

// GetRevenueTrend returns monthly GMV for the trailing twelve months and a three period projection
func (s *Service) GetRevenueTrend(ctx context.Context) (trend *RevenueTrend, err error) {
	ctx, span := tracing.StartSpan(ctx, "forecast.GetRevenueTrend")
	defer func() { tracing.EndSpan(span, err) }()

	from := aggregation.MonthStart(s.now()).AddDate(0, -(HistoryMonths - 1), 0)
	totals, err := s.reader.RevenueByPeriod(ctx, aggregation.GranularityMonth, aggregation.Since(from))
	if err != nil {
		return nil, common.NewInternalError("failed to read monthly revenue", err)
	}

	return BuildTrend(totals), nil
}

// BuildTrend fits the monthly totals and projects Horizon steps ahead
func BuildTrend(totals []aggregation.PeriodTotal) *RevenueTrend {
	trend := &RevenueTrend{
		Historical: make([]HistoricalRevenue, 0, len(totals)),
		Predicted:  make([]PredictedRevenue, 0, Horizon),
	}

	points := make([]Point, 0, len(totals))
	for _, t := range totals {
		trend.Historical = append(trend.Historical, HistoricalRevenue{
			Period: t.Period.Format(monthLabelLayout),
			Start:  t.Period,
			GMV:    common.Round2(t.GMV),
		})
		points = append(points, Point{Time: t.Period, Value: t.GMV})
	}

	line, ok := FitLine(points)
	if !ok {
		return trend
	}

	for _, p := range Project(line, points[len(points)-1].Time, ProjectionStep, Horizon) {
		trend.Predicted = append(trend.Predicted, PredictedRevenue{
			Period:       p.Time.Format(dateLabelLayout),
			At:           p.Time,
			PredictedGMV: common.Round2(p.Value),
		})
	}
	return trend
}
