package shared

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEventType = errors.New("invalid event type")
	ErrMissingJournalID = errors.New("journal id is required")
	ErrMissingEventID   = errors.New("event id is required")
)

// JournalEvent defines a Kafka message announcing that a journal's statistics inputs changed
type JournalEvent struct {
	EventID       uuid.UUID  `json:"event_id"`
	Type          EventType  `json:"type"`
	JournalID     uuid.UUID  `json:"journal_id"`
	EntryID       *uuid.UUID `json:"entry_id,omitempty"`
	CorrelationID string     `json:"correlation_id"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

// NewJournalEvent creates an event with a fresh id
func NewJournalEvent(eventType EventType, journalID uuid.UUID, correlationID string) *JournalEvent {
	return &JournalEvent{
		EventID:       uuid.New(),
		Type:          eventType,
		JournalID:     journalID,
		CorrelationID: correlationID,
		OccurredAt:    time.Now().UTC(),
	}
}

// ForEntry attaches the entry the event is about
func (e *JournalEvent) ForEntry(entryID uuid.UUID) *JournalEvent {
	e.EntryID = &entryID
	return e
}

// Validate checks the fields a consumer relies on
func (e *JournalEvent) Validate() error {
	if e.EventID == uuid.Nil {
		return ErrMissingEventID
	}
	if e.JournalID == uuid.Nil {
		return ErrMissingJournalID
	}
	if !e.Type.IsValid() {
		return ErrInvalidEventType
	}
	return nil
}
