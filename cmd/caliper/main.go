package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/aevon-lab/caliper-gateway/internal/analytics"
	"github.com/aevon-lab/caliper-gateway/internal/archive"
	"github.com/aevon-lab/caliper-gateway/internal/auth"
	corecfg "github.com/aevon-lab/caliper-gateway/internal/core/config"
	"github.com/aevon-lab/caliper-gateway/internal/core/storage/postgres"
	"github.com/aevon-lab/caliper-gateway/internal/ingestion"
	"github.com/aevon-lab/caliper-gateway/internal/migrations"
	"github.com/aevon-lab/caliper-gateway/internal/retention"
	"github.com/aevon-lab/caliper-gateway/internal/schema"
	schemaapi "github.com/aevon-lab/caliper-gateway/internal/schema/api"
	"github.com/aevon-lab/caliper-gateway/internal/server"
	"github.com/aevon-lab/caliper-gateway/internal/webhook"
)

const apiPrefix = "/caliper/v1p2"

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config",
		"environment", cfg.Server.Environment,
		"archive", cfg.Archive.Enabled,
		"webhooks", cfg.Webhook.Enabled,
		"test_keys", cfg.TestKeysEnabled())

	// 2. Initialize Storage (PostgreSQL), migrating before the adapter
	// prepares statements against the schema.
	db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	eventStore, err := postgres.NewAdapterFromDB(db)
	if err != nil {
		slog.Error("Failed to prepare event store", "error", err)
		os.Exit(1)
	}
	defer eventStore.Close()
	webhookStore := postgres.NewWebhooksAdapter(db)

	// 3. Initialize Catalog
	registry, err := schema.DefaultRegistry()
	if err != nil {
		slog.Error("Failed to compile Caliper catalog", "error", err)
		os.Exit(1)
	}
	validator := schema.NewValidator(registry)

	// 4. Initialize Auth: static sensors file first, then the sensors table.
	lookups := auth.ChainLookup{}
	if cfg.Auth.SensorsFile != "" {
		static, err := auth.LoadSensorsFile(cfg.Auth.SensorsFile)
		if err != nil {
			slog.Error("Failed to load sensors file", "path", cfg.Auth.SensorsFile, "error", err)
			os.Exit(1)
		}
		lookups = append(lookups, static)
	}
	lookups = append(lookups, postgres.NewSensorsAdapter(db))
	authn := auth.NewAuthenticator(lookups, auth.NewCache(cfg.Auth.CacheTTL), cfg.TestKeysEnabled())

	// 5. Initialize Archive
	var publisher archive.Publisher = archive.NopPublisher{}
	if cfg.Archive.Enabled {
		kp := archive.NewKafkaPublisher(cfg.Archive.BrokerList(), cfg.Archive.Topic, cfg.Archive.PublishTimeout)
		defer func() {
			if err := kp.Close(); err != nil {
				slog.Error("Failed to close archive publisher", "error", err)
			}
		}()
		publisher = kp
	}

	// 6. Initialize Webhooks
	var (
		dispatcher     ingestion.Dispatcher
		hookDispatcher *webhook.Dispatcher
	)
	if cfg.Webhook.Enabled {
		hookDispatcher = webhook.NewDispatcher(webhookStore, webhook.NewDeliverer(webhook.Config{
			Timeout:     cfg.Webhook.Timeout,
			MaxAttempts: cfg.Webhook.MaxAttempts,
			BaseBackoff: cfg.Webhook.BaseBackoff,
		}))
		dispatcher = hookDispatcher
	}

	// 7. Initialize Services
	ingestionSvc := ingestion.NewService(validator, eventStore, publisher, dispatcher, ingestion.Options{
		MaxBodySizeMB: cfg.Server.MaxBodySizeMB,
		BatchSize:     cfg.Storage.BatchSize,
		Retention:     cfg.Storage.Retention(),
	})
	analyticsSvc := analytics.NewService(eventStore, analytics.Limits{
		DefaultLimit: cfg.Analytics.DefaultLimit,
		MaxLimit:     cfg.Analytics.MaxLimit,
	})
	webhookSvc := webhook.NewService(webhookStore, registry.EventTypes())
	schemaSvc := schemaapi.NewService(registry)

	// 8. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), eventStore, cfg.Server.Mode)
	public := srv.Engine.Group(apiPrefix)
	protected := srv.Engine.Group(apiPrefix, authn.Middleware())

	ingestionSvc.RegisterRoutes(public, protected)
	analyticsSvc.RegisterRoutes(protected)
	webhookSvc.RegisterRoutes(protected)
	schemaSvc.RegisterRoutes(public)

	// 9. Start Background Workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var workers sync.WaitGroup

	sweeper := retention.NewSweeper(cfg.Storage.SweepInterval, eventStore)
	workers.Add(1)
	go func() {
		defer workers.Done()
		if err := sweeper.Start(ctx); err != nil {
			slog.Error("Retention sweeper stopped with error", "error", err)
		}
	}()

	if cfg.Archive.Enabled && cfg.Archive.ColdWriter {
		blobs, err := archive.NewDirStore(cfg.Archive.BlobDir)
		if err != nil {
			slog.Error("Failed to open archive blob store", "dir", cfg.Archive.BlobDir, "error", err)
			os.Exit(1)
		}
		reader := archive.NewKafkaReader(cfg.Archive.BrokerList(), cfg.Archive.Topic, cfg.Archive.GroupID)
		coldWriter := archive.NewColdWriter(reader, blobs, archive.ColdWriterConfig{
			FlushInterval: cfg.Archive.FlushInterval,
			FlushSize:     cfg.Archive.FlushSize,
		})
		workers.Add(1)
		go func() {
			defer workers.Done()
			if err := coldWriter.Run(ctx); err != nil {
				slog.Error("Cold storage writer stopped with error", "error", err)
			}
		}()
	}

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
		cancel()
	}

	// In-flight webhook deliveries get a bounded grace period.
	if hookDispatcher != nil {
		drainCtx, drainCancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := hookDispatcher.Drain(drainCtx); err != nil {
			slog.Warn("Webhook deliveries still in flight at shutdown", "error", err)
		}
		drainCancel()
	}

	workers.Wait()
	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
