package analytics

import (
	"context"
	"time"

	"github.com/richxcame/marketplace-intel/internal/aggregation"
	"github.com/richxcame/marketplace-intel/pkg/models"
)

// DashboardReader is the aggregate read access the dashboard needs
type DashboardReader interface {
	RevenueSummary(ctx context.Context, w aggregation.TimeWindow) (*aggregation.RevenueSummary, error)
	RevenueByVendor(ctx context.Context, w aggregation.TimeWindow, limit int) ([]aggregation.VendorRevenue, error)
	CustomerStats(ctx context.Context, newSince, activeSince time.Time) (*aggregation.CustomerStats, error)
	VendorActivity(ctx context.Context, current, previous aggregation.TimeWindow) (*aggregation.VendorActivity, error)
	OrderStatusCounts(ctx context.Context, w aggregation.TimeWindow) (map[models.OrderStatus]int, error)
	PaymentCounts(ctx context.Context, w aggregation.TimeWindow) (*aggregation.PaymentCounts, error)
	AverageDeliveryHours(ctx context.Context, w aggregation.TimeWindow) (*float64, error)
	CountSupportTickets(ctx context.Context, w aggregation.TimeWindow) (int, error)
	CustomerOrderMonths(ctx context.Context) ([]aggregation.CustomerMonth, error)
}

// SnapshotRepository stores marketing snapshots keyed by period date and type
type SnapshotRepository interface {
	GetSnapshot(ctx context.Context, periodDate time.Time, periodType PeriodType) (*MarketingSnapshot, error)
	UpsertSnapshot(ctx context.Context, snapshot *MarketingSnapshot) (*MarketingSnapshot, error)
}
