package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trading-journal-backend/internal/domain/journal"
	"github.com/trading-journal-backend/internal/domain/shared"
	"github.com/trading-journal-backend/internal/domain/snapshot"
)

// SnapshotServiceImpl recomputes a journal's report for every event and stores it in MongoDB
type SnapshotServiceImpl struct {
	builder      ReportBuilder
	snapshotRepo snapshot.Repository
	logger       *slog.Logger
}

func NewSnapshotService(logger *slog.Logger, builder ReportBuilder, snapshotRepo snapshot.Repository) *SnapshotServiceImpl {
	return &SnapshotServiceImpl{
		builder:      builder,
		snapshotRepo: snapshotRepo,
		logger:       logger,
	}
}

func (s *SnapshotServiceImpl) ProcessEvent(ctx context.Context, event *shared.JournalEvent) error {
	logger := s.logger.With(
		"event_id", event.EventID.String(),
		"journal_id", event.JournalID.String(),
		"type", string(event.Type),
	)
	if event.CorrelationID != "" {
		logger = logger.With("correlation_id", event.CorrelationID)
	}

	if event.Type == shared.EventJournalDeleted {
		deleted, err := s.snapshotRepo.DeleteByJournal(ctx, event.JournalID)
		if err != nil {
			return fmt.Errorf("failed to delete snapshots of journal %s: %w", event.JournalID, err)
		}
		logger.Info("Removed snapshots of deleted journal", "deleted", deleted)
		return nil
	}

	processed, err := s.alreadyProcessed(ctx, event)
	if err != nil {
		return err
	}
	if processed {
		logger.Info("Event already captured, skipping")
		return nil
	}

	report, err := s.builder.Build(ctx, event.JournalID)
	if err != nil {
		var notFound journal.ErrJournalNotFound
		if errors.As(err, &notFound) {
			// The journal was deleted after the event was recorded; its JOURNAL_DELETED event cleans up.
			logger.Warn("Journal no longer exists, skipping snapshot")
			return nil
		}
		return fmt.Errorf("failed to build report for journal %s: %w", event.JournalID, err)
	}

	snap := snapshot.NewSnapshot(event, report)
	if err := s.snapshotRepo.Create(ctx, snap); err != nil {
		var duplicate snapshot.ErrDuplicateSnapshot
		if errors.As(err, &duplicate) {
			logger.Info("Snapshot was stored concurrently, skipping")
			return nil
		}
		return fmt.Errorf("failed to store snapshot for event %s: %w", event.EventID, err)
	}

	if report == nil {
		logger.Info("Stored empty snapshot, journal has no entries", "snapshot_id", snap.ID.String())
	} else {
		logger.Info("Stored statistics snapshot", "snapshot_id", snap.ID.String(), "total_trades", report.TotalTrades)
	}
	return nil
}

func (s *SnapshotServiceImpl) alreadyProcessed(ctx context.Context, event *shared.JournalEvent) (bool, error) {
	existing, err := s.snapshotRepo.GetByEventID(ctx, event.EventID)
	if err != nil {
		var notFound snapshot.ErrSnapshotNotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check for existing snapshot: %w", err)
	}
	return existing != nil, nil
}
