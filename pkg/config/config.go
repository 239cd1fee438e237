package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Routing   RoutingConfig
	Analytics AnalyticsConfig
	Telemetry TelemetryConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	Environment  string
	ServiceName  string
	ReadTimeout  int
	WriteTimeout int
	CORSOrigins  string // Comma-separated list of allowed origins
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MaxConns       int
	MinConns       int
	QueryTimeoutMs int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// RoutingConfig configures the external distance-matrix service
type RoutingConfig struct {
	Enabled            bool
	BaseURL            string
	APIKey             string
	TimeoutMs          int
	BreakerFailures    int
	BreakerOpenSeconds int
	CacheTTLSeconds    int
}

// AnalyticsConfig holds tuning knobs for the dashboard
type AnalyticsConfig struct {
	GrossMargin           float64
	DashboardCacheSeconds int
	TopVendors            int
}

// TelemetryConfig holds tracing and error reporting endpoints
type TelemetryConfig struct {
	OTLPEndpoint string
	SentryDSN    string
}

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			ServiceName:  serviceName,
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
			CORSOrigins:  getEnv("CORS_ORIGINS", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			DBName:         getEnv("DB_NAME", "marketplace"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxConns:       getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:       getEnvAsInt("DB_MIN_CONNS", 5),
			QueryTimeoutMs: getEnvAsInt("DB_QUERY_TIMEOUT_MS", 5000),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		},
		Routing: RoutingConfig{
			Enabled:            getEnvAsBool("ROUTING_ENABLED", false),
			BaseURL:            getEnv("ROUTING_BASE_URL", "https://maps.googleapis.com/maps/api"),
			APIKey:             getEnv("ROUTING_API_KEY", ""),
			TimeoutMs:          getEnvAsInt("ROUTING_TIMEOUT_MS", 1500),
			BreakerFailures:    getEnvAsInt("ROUTING_BREAKER_FAILURES", 5),
			BreakerOpenSeconds: getEnvAsInt("ROUTING_BREAKER_OPEN_SECONDS", 30),
			CacheTTLSeconds:    getEnvAsInt("ROUTING_CACHE_TTL_SECONDS", 3600),
		},
		Analytics: AnalyticsConfig{
			GrossMargin:           getEnvAsFloat("ANALYTICS_GROSS_MARGIN", 0.20),
			DashboardCacheSeconds: getEnvAsInt("ANALYTICS_DASHBOARD_CACHE_SECONDS", 60),
			TopVendors:            getEnvAsInt("ANALYTICS_TOP_VENDORS", 10),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			SentryDSN:    getEnv("SENTRY_DSN", ""),
		},
	}

	if cfg.Analytics.GrossMargin < 0 || cfg.Analytics.GrossMargin > 1 {
		return nil, fmt.Errorf("ANALYTICS_GROSS_MARGIN must be within [0,1], got %v", cfg.Analytics.GrossMargin)
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// URL returns the database connection string in URL form, as golang-migrate expects it
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// QueryTimeout returns the per-query bound, defaulting to five seconds
func (c *DatabaseConfig) QueryTimeout() time.Duration {
	if c.QueryTimeoutMs <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.QueryTimeoutMs) * time.Millisecond
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Timeout returns the routing request timeout
func (c *RoutingConfig) Timeout() time.Duration {
	if c.TimeoutMs <= 0 {
		return 1500 * time.Millisecond
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// BreakerOpenFor returns how long the routing breaker stays open. Zero defers to the breaker default.
func (c *RoutingConfig) BreakerOpenFor() time.Duration {
	return time.Duration(c.BreakerOpenSeconds) * time.Second
}

// CacheTTL returns how long resolved distances are cached
func (c *RoutingConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// DashboardCacheTTL returns how long a dashboard payload is served from cache
func (c *AnalyticsConfig) DashboardCacheTTL() time.Duration {
	return time.Duration(c.DashboardCacheSeconds) * time.Second
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
