package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/richxcame/marketplace-intel/internal/aggregation"
	"github.com/richxcame/marketplace-intel/internal/analytics"
	"github.com/richxcame/marketplace-intel/pkg/logger"
	"github.com/richxcame/marketplace-intel/pkg/redis"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// marketingFile is the YAML document produced by the marketing feed export
type marketingFile struct {
	Snapshots []analytics.MarketingSnapshotRequest `yaml:"snapshots"`
}

var ingestCmd = &cobra.Command{
	Use:   "ingest-marketing",
	Short: "Load marketing snapshots from a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()

		snapshots, err := parseMarketingFile(f)
		if err != nil {
			return err
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

		// Redis is only needed to drop the cached dashboard
		cache, err := redis.NewRedisClient(&cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, cached dashboard not invalidated", zap.Error(err))
			cache = nil
		} else {
			defer cache.Close()
		}

		service := analytics.NewService(aggregation.NewReader(pool), analytics.NewRepository(pool), cache, cfg.Analytics)
		for i, req := range snapshots {
			if _, err := service.UpsertMarketingSnapshot(ctx, req); err != nil {
				return fmt.Errorf("snapshot %d (%s %s): %w", i+1, req.PeriodType, req.PeriodDate, err)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d marketing snapshots stored\n", len(snapshots))
		return nil
	},
}

func init() {
	ingestCmd.Flags().String("file", "", "YAML file with a top-level snapshots list")
	ingestCmd.MarkFlagRequired("file")
}

func parseMarketingFile(r io.Reader) ([]analytics.MarketingSnapshotRequest, error) {
	var doc marketingFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse marketing file: %w", err)
	}
	if len(doc.Snapshots) == 0 {
		return nil, errors.New("marketing file has no snapshots")
	}
	return doc.Snapshots, nil
}
