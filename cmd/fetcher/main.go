package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/adapter"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/config"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/logger"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/orchestrator"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/providers"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/ratelimit"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/registry"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	migrate    = flag.Bool("migrate", false, "Run schema auto-migration before fetching")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadFetcherConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Cancel the run on SIGINT/SIGTERM so partial provider writes finish
	// cleanly instead of being killed mid-statement
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "fetcher",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting token aggregation fetcher")

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	if *migrate {
		if err := store.AutoMigrate(db); err != nil {
			logger.Fatal("Failed to migrate schema", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Schema migrated")
	}

	dataStore := store.NewPGStore(db)

	// Provider fetches fail fast; only registry catalog fetches retry
	httpClient := adapter.NewHTTPClient(cfg.HTTP.Timeout)
	registryClient := adapter.NewRetryingHTTPClient(httpClient, cfg.Registry.MaxRetries)
	providerClient := ratelimit.NewClient(httpClient, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	adapters := providers.BuildAll(providerClient, cfg.Providers)
	enricher := registry.NewEnricher(registryClient, dataStore, cfg.Registry.PrimaryURL, cfg.Registry.FallbackURL)

	o := orchestrator.New(adapters, dataStore, enricher, adapter.NewClock())
	summary, err := o.Run(ctx)
	if err != nil {
		logger.Fatal("Ingestion run failed", zap.Error(err))
	}

	if summary.Failures > 0 {
		failed := make([]string, 0, len(summary.FailedProviders))
		for _, p := range summary.FailedProviders {
			failed = append(failed, string(p))
		}
		logger.WarnCtx(ctx, "Ingestion run finished with failures",
			zap.String("run_id", summary.RunID),
			zap.Strings("failed_providers", failed))
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}
}
