package entry

import "github.com/google/uuid"

// ChecklistStatus is the checked/unchecked answer to one template for one entry
type ChecklistStatus struct {
	EntryID    uuid.UUID `json:"entry_id"`
	TemplateID uuid.UUID `json:"template_id"`
	Checked    bool      `json:"checked"`
}

// ChecklistItem is a status joined with its template, as shown on an entry
type ChecklistItem struct {
	TemplateID uuid.UUID `json:"template_id"`
	Text       string    `json:"text"`
	Order      int       `json:"order"`
	Checked    bool      `json:"checked"`
}

// SeedStatuses creates one status per template for a new entry. Initial answers are
// looked up by template id string; templates without an answer start unchecked.
func SeedStatuses(entryID uuid.UUID, templateIDs []uuid.UUID, initial map[string]bool) []ChecklistStatus {
	statuses := make([]ChecklistStatus, 0, len(templateIDs))
	for _, templateID := range templateIDs {
		statuses = append(statuses, ChecklistStatus{
			EntryID:    entryID,
			TemplateID: templateID,
			Checked:    initial[templateID.String()],
		})
	}
	return statuses
}
