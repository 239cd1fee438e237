package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles platform metrics snapshot persistence
type Repository struct {
	db *pgxpool.Pool
}

// Ensure the concrete repository satisfies the service's requirements.
var _ SnapshotRepository = (*Repository)(nil)

// NewRepository creates a new analytics repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const snapshotColumns = `
	period_date, period_type, organic_traffic, paid_traffic, cost_per_click,
	cost_per_acquisition, referral_count, customer_acquisition_cost, updated_at
`

// GetSnapshot returns the snapshot for a period, or nil when none was supplied
func (r *Repository) GetSnapshot(ctx context.Context, periodDate time.Time, periodType PeriodType) (*MarketingSnapshot, error) {
	query := `SELECT ` + snapshotColumns + `
		FROM platform_metrics_snapshots
		WHERE period_date = $1 AND period_type = $2
	`

	snapshot, err := scanSnapshot(r.db.QueryRow(ctx, query, periodDate, string(periodType)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics snapshot: %w", err)
	}
	return snapshot, nil
}

// UpsertSnapshot inserts or merges a snapshot atomically on (period_date, period_type).
// Figures omitted from the update keep their stored value.
func (r *Repository) UpsertSnapshot(ctx context.Context, s *MarketingSnapshot) (*MarketingSnapshot, error) {
	query := `
		INSERT INTO platform_metrics_snapshots (
			period_date, period_type, organic_traffic, paid_traffic, cost_per_click,
			cost_per_acquisition, referral_count, customer_acquisition_cost, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (period_date, period_type) DO UPDATE SET
			organic_traffic = COALESCE(EXCLUDED.organic_traffic, platform_metrics_snapshots.organic_traffic),
			paid_traffic = COALESCE(EXCLUDED.paid_traffic, platform_metrics_snapshots.paid_traffic),
			cost_per_click = COALESCE(EXCLUDED.cost_per_click, platform_metrics_snapshots.cost_per_click),
			cost_per_acquisition = COALESCE(EXCLUDED.cost_per_acquisition, platform_metrics_snapshots.cost_per_acquisition),
			referral_count = COALESCE(EXCLUDED.referral_count, platform_metrics_snapshots.referral_count),
			customer_acquisition_cost = COALESCE(EXCLUDED.customer_acquisition_cost, platform_metrics_snapshots.customer_acquisition_cost),
			updated_at = NOW()
		RETURNING ` + snapshotColumns

	stored, err := scanSnapshot(r.db.QueryRow(ctx, query,
		s.PeriodDate,
		string(s.PeriodType),
		s.OrganicTraffic,
		s.PaidTraffic,
		s.CostPerClick,
		s.CostPerAcquisition,
		s.ReferralCount,
		s.CustomerAcquisitionCost,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert metrics snapshot: %w", err)
	}
	return stored, nil
}

func scanSnapshot(row pgx.Row) (*MarketingSnapshot, error) {
	var s MarketingSnapshot
	var periodType string
	err := row.Scan(
		&s.PeriodDate,
		&periodType,
		&s.OrganicTraffic,
		&s.PaidTraffic,
		&s.CostPerClick,
		&s.CostPerAcquisition,
		&s.ReferralCount,
		&s.CustomerAcquisitionCost,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.PeriodType = PeriodType(periodType)
	return &s, nil
}
