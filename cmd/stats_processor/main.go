package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/trading-journal-backend/internal/config"
	"github.com/trading-journal-backend/internal/data/mongo"
	"github.com/trading-journal-backend/internal/data/postgres"
	"github.com/trading-journal-backend/internal/logger"
	"github.com/trading-journal-backend/internal/platform/messaging/consumers"
	"github.com/trading-journal-backend/internal/platform/messaging/producers"
	"github.com/trading-journal-backend/internal/platform/persistence"
	"github.com/trading-journal-backend/internal/stats_processor/components"
	"github.com/trading-journal-backend/internal/stats_processor/consumer"
	"github.com/trading-journal-backend/internal/stats_processor/service"
)

func main() {
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	cfg, err := config.LoadConfig("stats_processor")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)
	log.Info("Starting Stats Processor", "app_name", cfg.Application.Name, "env", cfg.Application.Env)

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

	snapshotRepo := mongo.NewSnapshotRepository(log, mongoDB.Database(), cfg.MongoDB.SnapshotCollection)
	if err := snapshotRepo.EnsureIndexes(appCtx); err != nil {
		log.Error("Failed to create snapshot indexes", "error", err)
		os.Exit(1)
	}

	snapshotService := components.CreateSnapshotService(components.Repositories{
		Journals:  postgres.NewJournalRepository(log, postgresDB),
		Templates: postgres.NewTemplateRepository(log, postgresDB),
		Entries:   postgres.NewEntryRepository(log, postgresDB),
		Snapshots: snapshotRepo,
	}, log, cfg)

	dlqProducer, err := producers.NewDLQProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize DLQ Kafka producer", "error", err)
		os.Exit(1)
	}
	// A nil *DLQProducer must not reach the handler as a non-nil interface
	var deadLetters producers.DeadLetterPublisher
	if dlqProducer != nil {
		deadLetters = dlqProducer
	}

	eventHandler := consumer.NewJournalEventHandler(log, snapshotService, deadLetters)

	kafkaConsumer := consumers.NewKafkaConsumer(log, &cfg.Kafka)
	if err := kafkaConsumer.Subscribe(appCtx, eventHandler.HandleMessage); err != nil {
		log.Error("Failed to subscribe to journal events", "error", err)
		os.Exit(1)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	<-quit
	log.Info("Shutdown signal received")

	cancelAppCtx()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	log.Info("Waiting for consumer to stop...")
	select {
	case <-kafkaConsumer.Done():
		log.Info("Consumer stopped")
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout reached, forcing exit")
	}

	if wpService, ok := snapshotService.(*service.WorkerPoolSnapshotService); ok {
		wpService.Shutdown()
	}

	if deadLetters != nil {
		if err = deadLetters.Close(); err != nil {
			log.Error("Error closing DLQ Kafka producer", "error", err)
		}
	}

	if err = kafkaConsumer.Close(); err != nil {
		log.Error("Error closing Kafka consumer", "error", err)
	}

	postgresDB.Close()

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	if err != nil {
		log.Error("Stats Processor shutdown completed with errors")
	} else {
		log.Info("Stats Processor shutdown completed successfully")
	}
}
