package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/richxcame/marketplace-intel/pkg/config"
	"github.com/richxcame/marketplace-intel/pkg/database"
	"github.com/richxcame/marketplace-intel/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "intelctl",
	Short: "Operational commands for the marketplace intelligence engine",
	Long:  `intelctl runs schema migrations, refreshes vendor reliability snapshots on a period boundary and loads externally supplied marketing figures.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(viper.GetString("environment"))
	},
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.intelctl.yaml)")
	rootCmd.PersistentFlags().String("environment", "development", "Runtime environment")
	rootCmd.PersistentFlags().String("migrations", "migrations", "Directory holding the SQL migrations")

	viper.BindPFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(migrateCmd, refreshCmd, ingestCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".intelctl")
	}

	viper.SetEnvPrefix("INTELCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig starts from the service environment and applies intelctl overrides on top
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load("intelctl")
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg, viper.GetViper())
	return cfg, nil
}

func applyOverrides(cfg *config.Config, v *viper.Viper) {
	fields := map[string]*string{
		"database.host":     &cfg.Database.Host,
		"database.port":     &cfg.Database.Port,
		"database.user":     &cfg.Database.User,
		"database.password": &cfg.Database.Password,
		"database.name":     &cfg.Database.DBName,
		"database.sslmode":  &cfg.Database.SSLMode,
		"redis.host":        &cfg.Redis.Host,
		"redis.port":        &cfg.Redis.Port,
		"redis.password":    &cfg.Redis.Password,
		"environment":       &cfg.Server.Environment,
	}
	for key, dest := range fields {
		if v.IsSet(key) {
			*dest = v.GetString(key)
		}
	}
	if v.IsSet("redis.db") {
		cfg.Redis.DB = v.GetInt("redis.db")
	}
}

func openPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := database.NewPostgresPool(ctx, &cfg.Database, "intelctl")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return pool, nil
}
