package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/trading-journal-backend/internal/domain/outbox"
	"github.com/trading-journal-backend/internal/domain/shared"
)

// requestLogger tags the logger with the request's correlation id when there is one
func requestLogger(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if correlationID := shared.CorrelationIDFromContext(ctx); correlationID != "" {
		return logger.With("correlation_id", correlationID)
	}
	return logger
}

func newEvent(ctx context.Context, eventType shared.EventType, journalID uuid.UUID) *shared.JournalEvent {
	return shared.NewJournalEvent(eventType, journalID, shared.CorrelationIDFromContext(ctx))
}

// recordEvent writes the event to the outbox. outboxRepo must be bound to the
// transaction that carries the change the event announces.
func recordEvent(ctx context.Context, logger *slog.Logger, outboxRepo outbox.Repository, event *shared.JournalEvent) error {
	message, err := outbox.NewMessage(event)
	if err != nil {
		logger.Error("Failed to create outbox message (marshal payload)",
			"event_id", event.EventID.String(),
			"event_type", string(event.Type),
			"error", err,
		)
		return fmt.Errorf("failed to create outbox message payload for event %s: %w", event.EventID, err)
	}

	if err := outboxRepo.Create(ctx, message); err != nil {
		logger.Error("Failed to create outbox message",
			"event_id", event.EventID.String(),
			"journal_id", event.JournalID.String(),
			"error", err,
		)
		return fmt.Errorf("failed to create outbox message for event %s: %w", event.EventID, err)
	}

	logger.Debug("Journal event recorded",
		"event_id", event.EventID.String(),
		"event_type", string(event.Type),
		"outbox_id", message.ID,
	)
	return nil
}
