package database

import (
	"testing"
	"time"

	"github.com/richxcame/marketplace-intel/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDatabaseConfig() *config.DatabaseConfig {
	return &config.DatabaseConfig{
		Host:           "localhost",
		Port:           "5432",
		User:           "postgres",
		Password:       "postgres",
		DBName:         "marketplace",
		SSLMode:        "disable",
		MaxConns:       12,
		MinConns:       2,
		QueryTimeoutMs: 2500,
	}
}

func TestBuildPoolConfig_AppliesSizingAndTimeout(t *testing.T) {
	poolConfig, err := buildPoolConfig(testDatabaseConfig(), "intel-api")
	require.NoError(t, err)

	assert.Equal(t, int32(12), poolConfig.MaxConns)
	assert.Equal(t, int32(2), poolConfig.MinConns)
	assert.Equal(t, "2500", poolConfig.ConnConfig.RuntimeParams["statement_timeout"])
	assert.Equal(t, "intel-api", poolConfig.ConnConfig.RuntimeParams["application_name"])
}

func TestBuildPoolConfig_DefaultTimeout(t *testing.T) {
	cfg := testDatabaseConfig()
	cfg.QueryTimeoutMs = 0

	poolConfig, err := buildPoolConfig(cfg, "")
	require.NoError(t, err)

	assert.Equal(t, "5000", poolConfig.ConnConfig.RuntimeParams["statement_timeout"])
	assert.Equal(t, 5*time.Second, cfg.QueryTimeout())
	_, hasName := poolConfig.ConnConfig.RuntimeParams["application_name"]
	assert.False(t, hasName)
}

func TestMigrate_RejectsUnknownDirection(t *testing.T) {
	err := Migrate("migrations", testDatabaseConfig().URL(), "sideways")
	assert.EqualError(t, err, `unknown migration direction "sideways"`)
}
