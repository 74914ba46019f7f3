package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ivf-outcome-server/internal/api"
	"github.com/ivf-outcome-server/internal/cache"
	"github.com/ivf-outcome-server/internal/config"
	"github.com/ivf-outcome-server/internal/database"
	"github.com/ivf-outcome-server/internal/domain"
	"github.com/ivf-outcome-server/internal/logging"
	"github.com/ivf-outcome-server/internal/repository"
	"github.com/ivf-outcome-server/internal/service"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger := logging.NewLogger(&cfg.Logging)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Snapshot storage: local SQLite by default, Postgres when configured
	var store domain.SnapshotStore
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := database.NewConnection(ctx, &cfg.Storage, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect to database")
		}
		defer db.Close()

		if err := runMigrations(ctx, &cfg.Storage, logger); err != nil {
			logger.WithError(err).Fatal("Failed to run database migrations")
		}

		store = repository.NewPostgresStore(db.Pool, logger)
	case "sqlite":
		sqliteStore, err := repository.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err != nil {
			logger.WithError(err).Fatal("Failed to open snapshot database")
		}
		store = sqliteStore
	}
	if store != nil {
		defer store.Close()
	}

	// Prediction engine with the in-process result cache
	cacheSize := 0
	if cfg.Cache.Enabled {
		cacheSize = cfg.Cache.MaxMemorySize
	}
	predictor, err := service.NewPredictorService(logger, cacheSize)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create predictor service")
	}

	// Optional distributed result cache tier
	var resultCache *cache.ResultCache
	if cfg.Cache.Enabled && cfg.Cache.RedisURL != "" {
		resultCache, err = cache.NewResultCache(cfg.Cache.RedisURL, cfg.Cache.DefaultTTL, logger)
		if err != nil {
			logger.WithError(err).Warn("Distributed result cache unavailable, continuing with in-process cache only")
		} else {
			defer resultCache.Close()
		}
	}

	server := api.NewServer(configManager, logger, predictor, store, resultCache)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}

	logger.Info("Server stopped")
}

func runMigrations(ctx context.Context, cfg *domain.StorageConfig, logger *logrus.Logger) error {
	databaseURL := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)

	runner, err := database.NewMigrationRunner(databaseURL, "migrations", logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	return runner.Up(ctx)
}
