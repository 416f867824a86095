package journal

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ChecklistTemplate is one pre-trade checklist item of a journal
type ChecklistTemplate struct {
	ID        uuid.UUID `json:"id"`
	JournalID uuid.UUID `json:"journal_id"`
	Text      string    `json:"text"`
	Order     int       `json:"order"`
}

// NewChecklistTemplate validates the text; the order is assigned on insert
func NewChecklistTemplate(journalID uuid.UUID, text string) (*ChecklistTemplate, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyTemplateText
	}
	return &ChecklistTemplate{
		ID:        uuid.New(),
		JournalID: journalID,
		Text:      text,
	}, nil
}

// SortByOrder returns a copy sorted by Order. Ties keep their input order.
func SortByOrder(templates []ChecklistTemplate) []ChecklistTemplate {
	sorted := make([]ChecklistTemplate, len(templates))
	copy(sorted, templates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}

// ErrTemplateNotFound indicates missing checklist template
type ErrTemplateNotFound struct {
	TemplateID uuid.UUID
}

func (e ErrTemplateNotFound) Error() string {
	return "checklist template not found: " + e.TemplateID.String()
}
