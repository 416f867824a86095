// Package outbox_relay forwards journal events recorded in the outbox to Kafka.
package outbox_relay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/trading-journal-backend/internal/config"
	"github.com/trading-journal-backend/internal/domain/outbox"
	"github.com/trading-journal-backend/internal/domain/shared"
	"github.com/trading-journal-backend/internal/platform/messaging/producers"
)

// Relay publishes pending outbox messages in batches
type Relay struct {
	outboxRepo       outbox.Repository
	publisher        producers.MessagePublisher
	logger           *slog.Logger
	pollInterval     time.Duration
	batchSize        int
	maxRetryAttempts int
}

func NewRelay(
	cfg *config.OutboxConfig,
	outboxRepo outbox.Repository,
	publisher producers.MessagePublisher,
	logger *slog.Logger,
) *Relay {
	return &Relay{
		outboxRepo:       outboxRepo,
		publisher:        publisher,
		logger:           logger,
		pollInterval:     cfg.PollingInterval,
		batchSize:        cfg.BatchSize,
		maxRetryAttempts: cfg.MaxRetryAttempts,
	}
}

// Start polls the outbox until ctx is canceled
func (r *Relay) Start(ctx context.Context) {
	r.logger.Info("Starting outbox relay",
		"poll_interval", r.pollInterval.String(),
		"batch_size", r.batchSize,
		"max_retry_attempts", r.maxRetryAttempts,
	)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Outbox relay stopping due to context cancellation")
			return
		case <-ticker.C:
			if err := r.publishPending(ctx); err != nil {
				r.logger.Error("Error during batch publishing of outbox messages", "error", err)
			}
		}
	}
}

func (r *Relay) publishPending(ctx context.Context) error {
	messages, err := r.outboxRepo.GetPending(ctx, r.batchSize)
	if err != nil {
		return fmt.Errorf("failed to get pending outbox messages: %w", err)
	}

	if len(messages) == 0 {
		r.logger.Debug("No pending outbox messages found")
		return nil
	}

	r.logger.Info("Fetched pending outbox messages", "count", len(messages))

	for _, msg := range messages {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.publish(ctx, msg)
	}
	return nil
}

// publish sends one message keyed by journal id so events of a journal stay ordered
func (r *Relay) publish(ctx context.Context, msg *outbox.Message) {
	logger := r.logger.With("outbox_id", msg.ID, "event_id", msg.EventID, "journal_id", msg.JournalID)
	if event, err := msg.Event(); err == nil && event.CorrelationID != "" {
		logger = logger.With("correlation_id", event.CorrelationID)
	}

	if err := r.publisher.Publish(ctx, msg.JournalID.String(), msg.Payload); err != nil {
		logger.Error("Failed to publish outbox message", "current_attempts", msg.Attempts, "error", err)

		if errInc := r.outboxRepo.IncrementAttempts(ctx, msg.ID); errInc != nil {
			logger.Error("Failed to increment attempts for outbox message", "error", errInc)
			return
		}

		if msg.Attempts+1 >= r.maxRetryAttempts {
			logger.Warn("Max retry attempts reached, marking outbox message as FAILED_TO_PUBLISH", "attempts_made", msg.Attempts+1)
			if errUpdate := r.outboxRepo.UpdateStatus(ctx, msg.ID, shared.OutboxStatusFailedToPublish); errUpdate != nil {
				logger.Error("Failed to mark outbox message as FAILED_TO_PUBLISH", "error", errUpdate)
			}
		}
		return
	}

	// A failure here republishes the event on the next tick; snapshots are keyed by event id.
	if err := r.outboxRepo.UpdateStatus(ctx, msg.ID, shared.OutboxStatusPublished); err != nil {
		logger.Error("Published outbox message but failed to mark it as PUBLISHED", "error", err)
		return
	}
	logger.Info("Published outbox message")
}
