package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/trading-journal-backend/internal/domain/shared"
	"github.com/trading-journal-backend/internal/domain/statistics"
)

// SnapshotService turns journal events into stored statistics snapshots
type SnapshotService interface {
	// ProcessEvent is safe to call more than once for the same event
	ProcessEvent(ctx context.Context, event *shared.JournalEvent) error
}

// ReportBuilder computes a journal's current report; nil means the journal has no entries
type ReportBuilder interface {
	Build(ctx context.Context, journalID uuid.UUID) (*statistics.Report, error)
}
