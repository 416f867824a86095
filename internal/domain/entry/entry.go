package entry

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidResult       = errors.New("result must be one of Win, Loss, BE, PartialBE")
	ErrInvalidPositionType = errors.New("position type must be Long or Short")
	ErrInvalidConfidence   = errors.New("confidence level must be between 1 and 100")
)

// Result is the outcome label of a trade. Stored data may carry labels outside the known set.
type Result string

const (
	ResultWin       Result = "Win"
	ResultLoss      Result = "Loss"
	ResultBE        Result = "BE"
	ResultPartialBE Result = "PartialBE"
)

// PositionType is the trade direction
type PositionType string

const (
	PositionLong  PositionType = "Long"
	PositionShort PositionType = "Short"
)

// Entry represents one logged trade in a journal
type Entry struct {
	ID               uuid.UUID    `json:"id"`
	JournalID        uuid.UUID    `json:"journal_id"`
	EntryDate        string       `json:"entry_date"` // ISO-8601 text as submitted
	EndDate          string       `json:"end_date,omitempty"`
	Symbol           string       `json:"symbol,omitempty"`
	PositionType     PositionType `json:"position_type,omitempty"`
	Strategy         string       `json:"strategy,omitempty"`
	InitialRR        Numeric      `json:"initial_rr"`
	RiskPercentage   Numeric      `json:"risk_percentage"`
	PnL              Numeric      `json:"pnl"`
	Result           Result       `json:"result,omitempty"`
	ConfidenceLevel  *int         `json:"confidence_level,omitempty"`
	TradeRating      Numeric      `json:"trade_rating"`
	Notes            string       `json:"notes,omitempty"`
	StopLoss         Numeric      `json:"stop_loss"`
	TakeProfit       Numeric      `json:"take_profit"`
	CustomFieldValue string       `json:"custom_field_value,omitempty"`
	Emotion          string       `json:"emotion,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// NewEntry prepares a new entry for the journal. A missing entry date defaults to now (UTC).
func NewEntry(journalID uuid.UUID, e Entry) (*Entry, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	e.ID = uuid.New()
	e.JournalID = journalID
	if strings.TrimSpace(e.EntryDate) == "" {
		e.EntryDate = now.Format(time.RFC3339Nano)
	}
	e.Strategy = strings.TrimSpace(e.Strategy)
	e.CreatedAt = now
	e.UpdatedAt = now
	return &e, nil
}

// Validate checks the enumerated fields of an entry submitted through the API
func (e *Entry) Validate() error {
	switch e.Result {
	case "", ResultWin, ResultLoss, ResultBE, ResultPartialBE:
	default:
		return ErrInvalidResult
	}

	switch e.PositionType {
	case "", PositionLong, PositionShort:
	default:
		return ErrInvalidPositionType
	}

	if e.ConfidenceLevel != nil && (*e.ConfidenceLevel < 1 || *e.ConfidenceLevel > 100) {
		return ErrInvalidConfidence
	}
	return nil
}

// Touch marks the entry as modified
func (e *Entry) Touch() {
	e.UpdatedAt = time.Now().UTC()
}
