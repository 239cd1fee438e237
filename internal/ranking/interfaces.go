package ranking

import (
	"context"
	"time"

	"github.com/richxcame/marketplace-intel/internal/aggregation"
)

// OutcomeReader reads per-vendor order outcomes
type OutcomeReader interface {
	VendorOutcomes(ctx context.Context, w aggregation.TimeWindow) ([]aggregation.VendorOutcome, error)
}

// SnapshotRepository stores reliability snapshots keyed by vendor and period
type SnapshotRepository interface {
	UpsertSnapshots(ctx context.Context, snapshots []ReliabilitySnapshot) error
	ListSnapshots(ctx context.Context, periodDate time.Time) ([]ReliabilitySnapshot, error)
}
