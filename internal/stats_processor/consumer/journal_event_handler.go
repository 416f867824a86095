package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/trading-journal-backend/internal/domain/shared"
	"github.com/trading-journal-backend/internal/platform/messaging/producers"
	"github.com/trading-journal-backend/internal/stats_processor/service"
)

// JournalEventHandler handles journal events read from Kafka
type JournalEventHandler struct {
	snapshotService service.SnapshotService
	dlq             producers.DeadLetterPublisher
	logger          *slog.Logger
}

// NewJournalEventHandler creates a new handler. dlq may be nil when no dead-letter topic is configured.
func NewJournalEventHandler(
	logger *slog.Logger,
	snapshotService service.SnapshotService,
	dlq producers.DeadLetterPublisher,
) *JournalEventHandler {
	return &JournalEventHandler{
		snapshotService: snapshotService,
		dlq:             dlq,
		logger:          logger,
	}
}

// HandleMessage processes one Kafka message. A nil return commits the offset.
func (h *JournalEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var event shared.JournalEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return h.deadLetter(ctx, key, value, "Failed to unmarshal journal event", err)
	}
	if err := event.Validate(); err != nil {
		return h.deadLetter(ctx, key, value, "Invalid journal event", err)
	}

	logger := h.logger
	if event.CorrelationID != "" {
		logger = h.logger.With("correlation_id", event.CorrelationID)
	}

	logger.Info("Received journal event",
		"event_id", event.EventID.String(),
		"journal_id", event.JournalID.String(),
		"type", string(event.Type),
	)

	if err := h.snapshotService.ProcessEvent(ctx, &event); err != nil {
		logger.Error("Failed to process journal event",
			"event_id", event.EventID.String(),
			"journal_id", event.JournalID.String(),
			"error", err,
		)
		return fmt.Errorf("processing journal event %s failed: %w", event.EventID.String(), err)
	}

	return nil
}

// deadLetter parks a message that can never be processed. The original error is
// returned only when the DLQ is unavailable, so the message is retried instead of lost.
func (h *JournalEventHandler) deadLetter(ctx context.Context, key, value []byte, reason string, cause error) error {
	h.logger.Error(reason, "error", cause, "message_key", string(key))

	if h.dlq != nil {
		dlqReason := fmt.Sprintf("%s: %s", reason, cause.Error())
		if dlqErr := h.dlq.PublishToDLQ(ctx, string(key), value, dlqReason); dlqErr != nil {
			h.logger.Error("Failed to publish message to DLQ",
				"dlq_error", dlqErr,
				"original_error", cause,
				"message_key", string(key),
			)
		} else {
			h.logger.Info("Published unprocessable message to DLQ", "message_key", string(key), "reason", dlqReason)
			return nil
		}
	}
	return fmt.Errorf("%s: %w", reason, cause)
}
