package analytics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/richxcame/marketplace-intel/internal/aggregation"
	"github.com/richxcame/marketplace-intel/internal/cohort"
	"github.com/richxcame/marketplace-intel/pkg/common"
	"github.com/richxcame/marketplace-intel/pkg/config"
	"github.com/richxcame/marketplace-intel/pkg/logger"
	"github.com/richxcame/marketplace-intel/pkg/models"
	redisClient "github.com/richxcame/marketplace-intel/pkg/redis"
	"github.com/richxcame/marketplace-intel/pkg/tracing"
	"github.com/richxcame/marketplace-intel/pkg/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardCacheKey = "intel:dashboard:v1"
	trailingWindow    = 30 * 24 * time.Hour
)

// Service computes the executive dashboard and ingests marketing figures
type Service struct {
	reader    DashboardReader
	snapshots SnapshotRepository
	cache     *redisClient.Client
	cfg       config.AnalyticsConfig
	now       func() time.Time
}

// NewService creates a new analytics service. A nil cache disables dashboard caching.
func NewService(reader DashboardReader, snapshots SnapshotRepository, cache *redisClient.Client, cfg config.AnalyticsConfig) *Service {
	return &Service{
		reader:    reader,
		snapshots: snapshots,
		cache:     cache,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *Service) cacheTTL() time.Duration {
	if s.cache == nil || s.cfg.DashboardCacheSeconds <= 0 {
		return 0
	}
	return s.cfg.DashboardCacheTTL()
}

// GetDashboardMetrics returns all dashboard sections
func (s *Service) GetDashboardMetrics(ctx context.Context) (dashboard *Dashboard, err error) {
	ctx, span := tracing.StartSpan(ctx, "analytics.GetDashboardMetrics")
	defer func() { tracing.EndSpan(span, err) }()

	log := logger.WithContext(ctx)
	ttl := s.cacheTTL()

	if ttl > 0 {
		var cached Dashboard
		err := s.cache.GetJSON(ctx, dashboardCacheKey, &cached)
		switch {
		case err == nil:
			dashboardCacheTotal.WithLabelValues("hit").Inc()
			return &cached, nil
		case errors.Is(err, redisClient.ErrCacheMiss):
			dashboardCacheTotal.WithLabelValues("miss").Inc()
		default:
			dashboardCacheTotal.WithLabelValues("error").Inc()
			log.Warn("dashboard cache read failed", zap.Error(err))
		}
	}

	in, err := s.collect(ctx)
	if err != nil {
		return nil, common.NewInternalError("failed to compute dashboard metrics", err)
	}
	dashboard = BuildDashboard(in, s.cfg, s.now().UTC())

	if ttl > 0 {
		if err := s.cache.SetJSON(ctx, dashboardCacheKey, dashboard, ttl); err != nil {
			log.Warn("dashboard cache write failed", zap.Error(err))
		}
	}

	return dashboard, nil
}

// DashboardInputs are the raw aggregates a dashboard is built from
type DashboardInputs struct {
	AllTime       aggregation.RevenueSummary
	ThisMonth     aggregation.RevenueSummary
	LastMonth     aggregation.RevenueSummary
	Trailing      aggregation.RevenueSummary
	TopVendors    []aggregation.VendorRevenue
	Customers     aggregation.CustomerStats
	Vendors       aggregation.VendorActivity
	StatusCounts  map[models.OrderStatus]int
	Payments      aggregation.PaymentCounts
	DeliveryHours *float64
	Tickets       int
	Marketing     *MarketingSnapshot
	// Cohort is the newest cohort with a fully observed following month
	Cohort        *cohort.Retention
}

// collect runs the independent aggregate reads concurrently
func (s *Service) collect(ctx context.Context) (*DashboardInputs, error) {
	now := s.now().UTC()
	thisMonth := aggregation.MonthWindow(now)
	lastMonth := aggregation.MonthWindow(thisMonth.From.AddDate(0, -1, 0))
	trailingStart := now.Add(-trailingWindow)
	trailing := aggregation.Since(trailingStart)
	previous := aggregation.TimeWindow{From: trailingStart.Add(-trailingWindow), To: trailingStart}

	in := &DashboardInputs{}
	g, gctx := errgroup.WithContext(ctx)

	summary := func(dest *aggregation.RevenueSummary, w aggregation.TimeWindow) func() error {
		return func() error {
			rs, err := s.reader.RevenueSummary(gctx, w)
			if err != nil {
				return err
			}
			*dest = *rs
			return nil
		}
	}
	g.Go(summary(&in.AllTime, aggregation.AllTime))
	g.Go(summary(&in.ThisMonth, thisMonth))
	g.Go(summary(&in.LastMonth, lastMonth))
	g.Go(summary(&in.Trailing, trailing))

	g.Go(func() error {
		top, err := s.reader.RevenueByVendor(gctx, trailing, s.cfg.TopVendors)
		in.TopVendors = top
		return err
	})
	g.Go(func() error {
		stats, err := s.reader.CustomerStats(gctx, thisMonth.From, trailingStart)
		if err != nil {
			return err
		}
		in.Customers = *stats
		return nil
	})
	g.Go(func() error {
		activity, err := s.reader.VendorActivity(gctx, trailing, previous)
		if err != nil {
			return err
		}
		in.Vendors = *activity
		return nil
	})
	g.Go(func() error {
		counts, err := s.reader.OrderStatusCounts(gctx, trailing)
		in.StatusCounts = counts
		return err
	})
	g.Go(func() error {
		counts, err := s.reader.PaymentCounts(gctx, trailing)
		if err != nil {
			return err
		}
		in.Payments = *counts
		return nil
	})
	g.Go(func() error {
		hours, err := s.reader.AverageDeliveryHours(gctx, trailing)
		in.DeliveryHours = hours
		return err
	})
	g.Go(func() error {
		tickets, err := s.reader.CountSupportTickets(gctx, trailing)
		in.Tickets = tickets
		return err
	})
	g.Go(func() error {
		activity, err := s.reader.CustomerOrderMonths(gctx)
		if err != nil {
			return err
		}
		in.Cohort = cohort.LatestComplete(cohort.Analyze(activity), now)
		return nil
	})
	g.Go(func() error {
		snapshot, err := s.snapshots.GetSnapshot(gctx, thisMonth.From, PeriodMonthly)
		in.Marketing = snapshot
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}

// BuildDashboard derives every dashboard figure from the collected aggregates
func BuildDashboard(in *DashboardInputs, cfg config.AnalyticsConfig, now time.Time) *Dashboard {
	aov := safeDiv(in.AllTime.GMV, float64(in.AllTime.OrderCount))
	ordersPerCustomer := safeDiv(float64(in.Customers.TotalOrders), float64(in.Customers.CustomersWithOrders))
	ltv := common.Round2(LifetimeValue(aov, ordersPerCustomer, cfg.GrossMargin))

	var cac *float64
	if in.Marketing != nil {
		cac = common.Round2Ptr(in.Marketing.CustomerAcquisitionCost)
	}

	var retention float64
	var retentionCohort *string
	if in.Cohort != nil {
		retention = in.Cohort.RetentionPct
		label := in.Cohort.CohortMonth
		retentionCohort = &label
	}

	return &Dashboard{
		Revenue: RevenueSection{
			GMV:                  common.Round2(in.AllTime.GMV),
			NetRevenue:           common.Round2(in.AllTime.NetRevenue),
			GMVThisMonth:         common.Round2(in.ThisMonth.GMV),
			GMVLastMonth:         common.Round2(in.LastMonth.GMV),
			MonthlyRecurring:     common.Round2(in.ThisMonth.NetRevenue),
			AverageOrderValue:    common.Round2(aov),
			MonthOverMonthGrowth: MonthOverMonthGrowth(in.ThisMonth.GMV, in.LastMonth.GMV),
			OrderCount:           in.AllTime.OrderCount,
		},
		Customer: CustomerSection{
			TotalCustomers:           in.Customers.TotalCustomers,
			NewCustomersThisMonth:    in.Customers.NewCustomers,
			ActiveCustomers:          in.Customers.ActiveCustomers,
			RetentionRatePct:         retention,
			RetentionCohort:          retentionCohort,
			RepeatPurchaseRatePct:    common.Percentage(float64(in.Customers.RepeatCustomers), float64(in.Customers.CustomersWithOrders)),
			AverageOrdersPerCustomer: common.Round2(ordersPerCustomer),
			LifetimeValue:            ltv,
			CustomerAcquisitionCost:  cac,
			LTVToCAC:                 ratioOrNil(ltv, cac),
		},
		Vendor:      buildVendorSection(in),
		Operational: buildOperationalSection(in),
		Growth:      buildGrowthSection(in),
		GeneratedAt: now,
	}
}

func buildVendorSection(in *DashboardInputs) VendorSection {
	shares := make([]VendorShare, 0, len(in.TopVendors))
	for _, v := range in.TopVendors {
		shares = append(shares, VendorShare{
			VendorID:   v.VendorID,
			VendorName: v.VendorName,
			GMV:        common.Round2(v.GMV),
			OrderCount: v.OrderCount,
			SharePct:   common.Percentage(v.GMV, in.Trailing.GMV),
		})
	}

	return VendorSection{
		TotalVendors:        in.Vendors.TotalVendors,
		ActiveVendors:       in.Vendors.ActiveCurrent,
		RetentionRatePct:    common.Percentage(float64(in.Vendors.Retained), float64(in.Vendors.ActivePrevious)),
		RevenueDistribution: shares,
	}
}

func buildOperationalSection(in *DashboardInputs) OperationalSection {
	total := 0
	for _, n := range in.StatusCounts {
		total += n
	}

	return OperationalSection{
		TotalOrders:          total,
		CompletionRatePct:    common.Percentage(float64(in.StatusCounts[models.OrderStatusDelivered]), float64(total)),
		CancellationRatePct:  common.Percentage(float64(in.StatusCounts[models.OrderStatusCancelled]), float64(total)),
		FailedPaymentRatePct: common.Percentage(float64(in.Payments.Failed), float64(in.Payments.Total)),
		DeliverySLAHours:     common.Round2Ptr(in.DeliveryHours),
		SupportTickets:       in.Tickets,
	}
}

// buildGrowthSection leaves every figure null when no monthly snapshot was supplied
func buildGrowthSection(in *DashboardInputs) GrowthSection {
	m := in.Marketing
	if m == nil {
		return GrowthSection{}
	}

	period := m.PeriodDate.Format("2006-01")
	growth := GrowthSection{
		PeriodDate:         &period,
		OrganicTraffic:     m.OrganicTraffic,
		PaidTraffic:        m.PaidTraffic,
		CostPerClick:       common.Round2Ptr(m.CostPerClick),
		CostPerAcquisition: common.Round2Ptr(m.CostPerAcquisition),
		ReferralCount:      m.ReferralCount,
	}

	if m.OrganicTraffic != nil || m.PaidTraffic != nil {
		var traffic int64
		if m.OrganicTraffic != nil {
			traffic += *m.OrganicTraffic
		}
		if m.PaidTraffic != nil {
			traffic += *m.PaidTraffic
		}
		conversion := common.Percentage(float64(in.ThisMonth.OrderCount), float64(traffic))
		growth.TotalTraffic = &traffic
		growth.ConversionRatePct = &conversion
	}

	if m.ReferralCount != nil {
		rate := common.Percentage(float64(*m.ReferralCount), float64(in.Customers.NewCustomers))
		growth.ReferralRatePct = &rate
	}

	return growth
}

// UpsertMarketingSnapshot stores one marketing feed entry and invalidates the cached dashboard
func (s *Service) UpsertMarketingSnapshot(ctx context.Context, req MarketingSnapshotRequest) (snapshot *MarketingSnapshot, err error) {
	ctx, span := tracing.StartSpan(ctx, "analytics.UpsertMarketingSnapshot",
		attribute.String("period_type", req.PeriodType),
		attribute.String("period_date", req.PeriodDate),
	)
	defer func() { tracing.EndSpan(span, err) }()

	if err := validation.Struct(req); err != nil {
		return nil, common.NewBadRequestError("invalid marketing snapshot", err)
	}

	periodType := PeriodType(req.PeriodType)
	periodDate, err := ParsePeriodDate(periodType, req.PeriodDate)
	if err != nil {
		verr := &validation.ValidationError{}
		verr.AddError("period_date", err.Error())
		return nil, common.NewBadRequestError("invalid marketing snapshot", verr)
	}

	snapshot, err = s.snapshots.UpsertSnapshot(ctx, &MarketingSnapshot{
		PeriodDate:              periodDate,
		PeriodType:              periodType,
		OrganicTraffic:          req.OrganicTraffic,
		PaidTraffic:             req.PaidTraffic,
		CostPerClick:            req.CostPerClick,
		CostPerAcquisition:      req.CostPerAcquisition,
		ReferralCount:           req.ReferralCount,
		CustomerAcquisitionCost: req.CustomerAcquisitionCost,
	})
	if err != nil {
		return nil, common.NewInternalError("failed to store marketing snapshot", err)
	}

	log := logger.WithContext(ctx)
	if s.cache != nil {
		if err := s.cache.Delete(ctx, dashboardCacheKey); err != nil {
			log.Warn("failed to invalidate dashboard cache", zap.Error(err))
		}
	}

	log.Info("marketing snapshot stored",
		zap.String("period_type", string(periodType)),
		zap.Time("period_date", periodDate),
	)

	return snapshot, nil
}

// ParsePeriodDate normalises a feed date to the start of its period.
// Weekly periods start on Monday.
func ParsePeriodDate(periodType PeriodType, value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	if periodType == PeriodMonthly {
		return validation.ParseMonth(value)
	}

	day, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return time.Time{}, errors.New("period_date must be a date in YYYY-MM-DD format")
	}

	switch periodType {
	case PeriodDaily:
		return day, nil
	case PeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported period type %q", periodType)
	}
}
