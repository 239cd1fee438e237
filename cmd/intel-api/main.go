package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/richxcame/marketplace-intel/internal/aggregation"
	"github.com/richxcame/marketplace-intel/internal/analytics"
	"github.com/richxcame/marketplace-intel/internal/cohort"
	"github.com/richxcame/marketplace-intel/internal/forecast"
	"github.com/richxcame/marketplace-intel/internal/fraud"
	"github.com/richxcame/marketplace-intel/internal/geo"
	"github.com/richxcame/marketplace-intel/internal/pricing"
	"github.com/richxcame/marketplace-intel/internal/ranking"
	"github.com/richxcame/marketplace-intel/pkg/common"
	"github.com/richxcame/marketplace-intel/pkg/config"
	"github.com/richxcame/marketplace-intel/pkg/database"
	"github.com/richxcame/marketplace-intel/pkg/health"
	"github.com/richxcame/marketplace-intel/pkg/logger"
	"github.com/richxcame/marketplace-intel/pkg/middleware"
	"github.com/richxcame/marketplace-intel/pkg/redis"
	"github.com/richxcame/marketplace-intel/pkg/tracing"
	"go.uber.org/zap"
)

const (
	serviceName = "intel-api"
	version     = "1.0.0"
	adminRole   = "admin"
)

func main() {
	// Load configuration
	cfg, err := config.Load(serviceName)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		panic("failed to initialise logger: " + err.Error())
	}
	defer logger.Sync()

	if cfg.Telemetry.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Telemetry.SentryDSN,
			Environment: cfg.Server.Environment,
			Release:     serviceName + "@" + version,
		}); err != nil {
			logger.Warn("sentry disabled", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()

	shutdownTracing, err := tracing.Init(ctx, serviceName, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		logger.Fatal("failed to initialise tracing", zap.Error(err))
	}

	// Connect to PostgreSQL
	db, err := database.NewPostgresPool(ctx, &cfg.Database, serviceName)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)
	logger.Info("connected to PostgreSQL")

	// Connect to Redis. The engine still serves requests without it, only uncached.
	var cache *redis.Client
	if client, err := redis.NewRedisClient(&cfg.Redis); err != nil {
		logger.Warn("redis unavailable, caching disabled", zap.Error(err))
	} else {
		cache = client
		defer cache.Close()
		logger.Info("connected to Redis")
	}

	reader := aggregation.NewReader(db)
	resolver := geo.NewResolver(&cfg.Routing, cache)

	pricingHandler := pricing.NewHandler(pricing.NewService(pricing.NewRepository(db), resolver))
	fraudHandler := fraud.NewHandler(fraud.NewService(reader, fraud.NewRepository(db)))
	rankingHandler := ranking.NewHandler(ranking.NewService(reader, ranking.NewRepository(db)))
	forecastHandler := forecast.NewHandler(forecast.NewService(reader))
	cohortHandler := cohort.NewHandler(cohort.NewService(reader))
	analyticsHandler := analytics.NewHandler(
		analytics.NewService(reader, analytics.NewRepository(db), cache, cfg.Analytics),
	)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.Recovery())
	if cfg.Telemetry.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger("/healthz", "/metrics"))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics(serviceName))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.CORSOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Correlation-ID"}
	router.Use(cors.New(corsConfig))

	// Health check and metrics (no auth required)
	checks := map[string]common.CheckFunc{
		"database": health.DatabaseChecker(db),
	}
	if cache != nil {
		checks["redis"] = health.RedisChecker(cache.Client)
	}
	router.GET("/healthz", common.HealthCheckWithDeps(serviceName, version, checks))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api/v1/intel", middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		// Called synchronously from checkout and order creation
		pricingHandler.RegisterRoutes(api)
		fraudHandler.RegisterRoutes(api)

		admin := api.Group("", middleware.RequireRole(adminRole))
		rankingHandler.RegisterRoutes(admin)
		forecastHandler.RegisterRoutes(admin)
		cohortHandler.RegisterRoutes(admin)
		analyticsHandler.RegisterRoutes(admin)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("intel api starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracer shutdown failed", zap.Error(err))
	}
}
