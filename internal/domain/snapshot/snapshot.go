// Package snapshot models statistics reports captured after journal changes.
package snapshot

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/trading-journal-backend/internal/domain/shared"
	"github.com/trading-journal-backend/internal/domain/statistics"
)

// Snapshot is a statistics report frozen at the time an event was processed
type Snapshot struct {
	ID            uuid.UUID          `json:"id" bson:"_id"`
	JournalID     uuid.UUID          `json:"journal_id" bson:"journal_id"`
	EventID       uuid.UUID          `json:"event_id" bson:"event_id"`
	Trigger       shared.EventType   `json:"trigger" bson:"trigger"`
	CorrelationID string             `json:"correlation_id,omitempty" bson:"correlation_id,omitempty"`
	Report        *statistics.Report `json:"report,omitempty" bson:"report,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}

// NewSnapshot captures report for the event. A nil report records that the journal had no entries.
func NewSnapshot(event *shared.JournalEvent, report *statistics.Report) *Snapshot {
	return &Snapshot{
		ID:            uuid.New(),
		JournalID:     event.JournalID,
		EventID:       event.EventID,
		Trigger:       event.Type,
		CorrelationID: event.CorrelationID,
		Report:        report,
		CreatedAt:     time.Now().UTC(),
	}
}

// Repository defines snapshot persistence operations
type Repository interface {
	Create(ctx context.Context, snapshot *Snapshot) error
	GetByEventID(ctx context.Context, eventID uuid.UUID) (*Snapshot, error)
	// ListByJournal returns snapshots newest first
	ListByJournal(ctx context.Context, journalID uuid.UUID, limit, offset int) ([]*Snapshot, error)
	CountByJournal(ctx context.Context, journalID uuid.UUID) (int64, error)
	DeleteByJournal(ctx context.Context, journalID uuid.UUID) (int64, error)
}

// ErrSnapshotNotFound indicates no snapshot matched the lookup
type ErrSnapshotNotFound struct {
	JournalID uuid.UUID
	EventID   uuid.UUID
}

func (e ErrSnapshotNotFound) Error() string {
	if e.EventID != uuid.Nil {
		return "snapshot not found for event: " + e.EventID.String()
	}
	return "snapshot not found for journal: " + e.JournalID.String()
}

// ErrDuplicateSnapshot indicates the event was already captured
type ErrDuplicateSnapshot struct {
	EventID uuid.UUID
}

func (e ErrDuplicateSnapshot) Error() string {
	return "snapshot already exists for event: " + e.EventID.String()
}
