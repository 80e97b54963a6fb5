package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/adapter"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/api/rest"
	"github.com/0xrcinus/interop-token-aggregator-sub000/internal/api/server"
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
)

func main() {
	flag.Parse()

	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting token aggregation API")

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}

	dataStore := store.NewPGStore(db)

	// The trigger endpoint runs the same pipeline the fetcher binary does
	httpClient := adapter.NewHTTPClient(cfg.HTTP.Timeout)
	registryClient := adapter.NewRetryingHTTPClient(httpClient, cfg.Registry.MaxRetries)
	providerClient := ratelimit.NewClient(httpClient, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	adapters := providers.BuildAll(providerClient, cfg.Providers)
	enricher := registry.NewEnricher(registryClient, dataStore, cfg.Registry.PrimaryURL, cfg.Registry.FallbackURL)
	o := orchestrator.New(adapters, dataStore, enricher, adapter.NewClock())

	runner := rest.NewAsyncRunner(func(runCtx context.Context, runID string) error {
		_, err := o.RunWithID(runCtx, runID)
		return err
	})

	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		APIKeys:      cfg.Auth.APIKeys,
	}, dataStore, runner)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(err)
		}
	}
}
