package main

import (
	"fmt"
	"time"

	"github.com/richxcame/marketplace-intel/internal/aggregation"
	"github.com/richxcame/marketplace-intel/internal/ranking"
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh-reliability",
	Short: "Recompute vendor reliability snapshots for a month",
	Long:  `Recomputes and upserts vendor reliability snapshots. Running it twice for the same period leaves the stored rows unchanged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		period, _ := cmd.Flags().GetString("period")
		if period == "" {
			period = previousPeriod(time.Now())
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		pool, err := openPool(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		service := ranking.NewService(aggregation.NewReader(pool), ranking.NewRepository(pool))
		result, err := service.RefreshVendorReliability(ctx, ranking.RefreshRequest{PeriodDate: period})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "period %s: %d vendors refreshed\n", result.PeriodDate, result.VendorsRefreshed)
		return nil
	},
}

func init() {
	refreshCmd.Flags().String("period", "", "Period to refresh as YYYY-MM or YYYY-MM-DD (default is the previous month)")
}

// previousPeriod is the calendar month before now, the usual target right after a month closes
func previousPeriod(now time.Time) string {
	return aggregation.MonthStart(now).AddDate(0, -1, 0).Format("2006-01")
}
