package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/trading-journal-backend/internal/config"
	"github.com/trading-journal-backend/internal/data/mongo"
	"github.com/trading-journal-backend/internal/data/postgres"
	"github.com/trading-journal-backend/internal/journal_api"
	"github.com/trading-journal-backend/internal/journal_api/outbox_relay"
	"github.com/trading-journal-backend/internal/journal_api/service"
	"github.com/trading-journal-backend/internal/logger"
	"github.com/trading-journal-backend/internal/platform/messaging/producers"
	"github.com/trading-journal-backend/internal/platform/persistence"
	"github.com/trading-journal-backend/internal/platform/storage"
	"github.com/trading-journal-backend/internal/reporting"
)

func main() {
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	cfg, err := config.LoadConfig("journal_api")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)
	log.Info("Starting Journal API", "app_name", cfg.Application.Name, "env", cfg.Application.Env)

	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	eventProducer, err := producers.NewJournalEventProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize journal event producer", "error", err)
		os.Exit(1)
	}

	files, err := storage.NewFileStore(log, cfg.Uploads.Dir)
	if err != nil {
		log.Error("Failed to initialize upload storage", "dir", cfg.Uploads.Dir, "error", err)
		os.Exit(1)
	}

	// Repositories
	journalRepo := postgres.NewJournalRepository(log, postgresDB)
	templateRepo := postgres.NewTemplateRepository(log, postgresDB)
	strategyRepo := postgres.NewStrategyRepository(log, postgresDB)
	entryRepo := postgres.NewEntryRepository(log, postgresDB)
	attachmentRepo := postgres.NewAttachmentRepository(log, postgresDB)
	outboxRepo := postgres.NewOutboxRepository(log, postgresDB)
	snapshotRepo := mongo.NewSnapshotRepository(log, mongoDB.Database(), cfg.MongoDB.SnapshotCollection)

	// Services
	builder := reporting.NewBuilder(log, journalRepo, templateRepo, entryRepo)
	services := journal_api.Services{
		Journals:  service.NewJournalService(log, postgresDB, journalRepo, templateRepo, attachmentRepo, outboxRepo, files),
		Templates: service.NewTemplateService(log, postgresDB, journalRepo, templateRepo, outboxRepo),
		Entries: service.NewEntryService(log, postgresDB, service.EntryRepositories{
			Journals:    journalRepo,
			Templates:   templateRepo,
			Strategies:  strategyRepo,
			Entries:     entryRepo,
			Attachments: attachmentRepo,
			Outbox:      outboxRepo,
		}, files),
		Attachments: service.NewAttachmentService(log, entryRepo, attachmentRepo, files),
		Strategies:  service.NewStrategyService(log, strategyRepo),
		Statistics:  service.NewStatisticsService(log, builder, journalRepo, snapshotRepo),
	}

	server := journal_api.NewServer(log, cfg, services, map[string]journal_api.Pinger{
		"postgres": postgresDB,
		"mongodb":  mongoDB,
	})

	relay := outbox_relay.NewRelay(&cfg.Outbox, outboxRepo, eventProducer, log.With("component", "outbox_relay"))

	errChan := make(chan error, 1)
	var wg sync.WaitGroup

	go func() {
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		relay.Start(appCtx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	log.Info("Starting graceful shutdown...")

	// Stop accepting requests before the relay drains, so late writes still get published on restart
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	cancelAppCtx()
	wg.Wait()

	if err = eventProducer.Close(); err != nil {
		log.Error("Error closing journal event producer", "error", err)
	}

	postgresDB.Close()

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Journal API shutdown completed with errors")
	} else {
		log.Info("Journal API shutdown completed successfully")
	}
}
