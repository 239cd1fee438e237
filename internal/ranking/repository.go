package ranking

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/richxcame/marketplace-intel/pkg/database"
)

// Repository persists vendor reliability snapshots
type Repository struct {
	db *pgxpool.Pool
}

// Ensure the concrete repository satisfies the service's requirements.
var _ SnapshotRepository = (*Repository)(nil)

// NewRepository creates a new ranking repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// UpsertSnapshots writes every snapshot in one transaction.
// Rows whose values are unchanged are left untouched, refreshed_at included.
func (r *Repository) UpsertSnapshots(ctx context.Context, snapshots []ReliabilitySnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	query := `
		INSERT INTO vendor_reliability_snapshots (
			vendor_id, period_date, fulfillment_rate, avg_delivery_hours,
			cancellation_rate, order_count, composite_score, refreshed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (vendor_id, period_date) DO UPDATE SET
			fulfillment_rate = EXCLUDED.fulfillment_rate,
			avg_delivery_hours = EXCLUDED.avg_delivery_hours,
			cancellation_rate = EXCLUDED.cancellation_rate,
			order_count = EXCLUDED.order_count,
			composite_score = EXCLUDED.composite_score,
			refreshed_at = EXCLUDED.refreshed_at
		WHERE (vendor_reliability_snapshots.fulfillment_rate,
		       vendor_reliability_snapshots.avg_delivery_hours,
		       vendor_reliability_snapshots.cancellation_rate,
		       vendor_reliability_snapshots.order_count,
		       vendor_reliability_snapshots.composite_score)
		      IS DISTINCT FROM
		      (EXCLUDED.fulfillment_rate, EXCLUDED.avg_delivery_hours,
		       EXCLUDED.cancellation_rate, EXCLUDED.order_count, EXCLUDED.composite_score)
	`

	return database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, s := range snapshots {
			batch.Queue(query,
				s.VendorID,
				s.PeriodDate,
				s.FulfillmentRate,
				s.AvgDeliveryHours,
				s.CancellationRate,
				s.OrderCount,
				s.CompositeScore,
				s.RefreshedAt,
			)
		}

		results := tx.SendBatch(ctx, batch)
		for i := range snapshots {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("failed to upsert snapshot for vendor %s: %w", snapshots[i].VendorID, err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("failed to upsert reliability snapshots: %w", err)
		}
		return nil
	})
}

// ListSnapshots returns the snapshots of a period, best score first
func (r *Repository) ListSnapshots(ctx context.Context, periodDate time.Time) ([]ReliabilitySnapshot, error) {
	query := `
		SELECT s.vendor_id, v.name, s.period_date, s.fulfillment_rate, s.avg_delivery_hours,
		       s.cancellation_rate, s.order_count, s.composite_score, s.refreshed_at
		FROM vendor_reliability_snapshots s
		JOIN vendors v ON v.id = s.vendor_id
		WHERE s.period_date = $1
		ORDER BY s.composite_score DESC, s.order_count DESC, s.vendor_id
	`

	rows, err := r.db.Query(ctx, query, periodDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list reliability snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := make([]ReliabilitySnapshot, 0)
	for rows.Next() {
		var s ReliabilitySnapshot
		if err := rows.Scan(
			&s.VendorID,
			&s.VendorName,
			&s.PeriodDate,
			&s.FulfillmentRate,
			&s.AvgDeliveryHours,
			&s.CancellationRate,
			&s.OrderCount,
			&s.CompositeScore,
			&s.RefreshedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reliability snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}

	return snapshots, rows.Err()
}
