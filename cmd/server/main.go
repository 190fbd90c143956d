package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/labsense/risk-engine/internal/api"
	"github.com/labsense/risk-engine/internal/config"
	"github.com/labsense/risk-engine/internal/engine"
	"github.com/labsense/risk-engine/internal/knowledge"
	"github.com/labsense/risk-engine/internal/logging"
	"github.com/labsense/risk-engine/internal/storage"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger := logging.NewLogger(cfg.Logging)

	// Build the analysis store per the configured driver
	var store storage.Store
	switch cfg.Storage.Driver {
	case "postgres":
		store, err = storage.NewPostgresStoreFromURL(cfg.Storage.DatabaseURL, &cfg.Storage)
	default:
		store, err = storage.NewSQLiteStore(cfg.Storage.SQLitePath)
	}
	if err != nil {
		logger.Fatalf("Failed to open analysis store: %v", err)
	}
	defer store.Close()

	if cfg.Cache.Enabled {
		store, err = storage.NewCachedStore(store, cfg.Cache.MaxItems, logger)
		if err != nil {
			logger.Fatalf("Failed to create analysis cache: %v", err)
		}
	}

	kb := knowledge.New()
	eng := engine.New(kb, logger)

	logger.WithField("known_tests", kb.TestCount()).
		Infof("Starting risk engine server on %s:%d", cfg.Server.Host, cfg.Server.Port)

	server := api.NewServer(configManager, eng, store, logger)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.Fatalf("Server failed to start: %v", err)
	}

	logger.Info("Server stopped")
}
