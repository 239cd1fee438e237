package main

import (
	"fmt"

	"github.com/richxcame/marketplace-intel/pkg/database"
	"github.com/richxcame/marketplace-intel/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the database schema",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{database.MigrateUp, database.MigrateDown},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dir := viper.GetString("migrations")
		if err := database.Migrate(dir, cfg.Database.URL(), args[0]); err != nil {
			return err
		}

		logger.Info("migrations applied", zap.String("direction", args[0]), zap.String("dir", dir))
		fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: ok\n", args[0])
		return nil
	},
}
