package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/trading-journal-backend/internal/domain/shared"
)

// Message stores a journal event until the relay has published it
type Message struct {
	ID            int64               `json:"id"`
	EventID       uuid.UUID           `json:"event_id"`
	JournalID     uuid.UUID           `json:"journal_id"`
	Payload       json.RawMessage     `json:"payload"`
	Status        shared.OutboxStatus `json:"status"`
	Attempts      int                 `json:"attempts"`
	CreatedAt     time.Time           `json:"created_at"`
	LastAttemptAt *time.Time          `json:"last_attempt_at,omitempty"`
}

func NewMessage(event *shared.JournalEvent) (*Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	return &Message{
		EventID:   event.EventID,
		JournalID: event.JournalID,
		Payload:   payload,
		Status:    shared.OutboxStatusPending,
		CreatedAt: time.Now(),
	}, nil
}

func (m *Message) IncrementAttempts() {
	m.Attempts++
	now := time.Now()
	m.LastAttemptAt = &now
}

func (m *Message) MarkAsPublished() {
	m.Status = shared.OutboxStatusPublished
	now := time.Now()
	m.LastAttemptAt = &now
}

func (m *Message) MarkAsFailed() {
	m.Status = shared.OutboxStatusFailedToPublish
	now := time.Now()
	m.LastAttemptAt = &now
}

// Event decodes the journal event from the payload
func (m *Message) Event() (*shared.JournalEvent, error) {
	var event shared.JournalEvent
	if err := json.Unmarshal(m.Payload, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
