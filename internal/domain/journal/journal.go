// Package journal holds the journal aggregate: the journal itself, its checklist
// templates and the shared strategy registry.
package journal

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrEmptyName            = errors.New("journal name cannot be empty")
	ErrEmptyTemplateText    = errors.New("checklist item text cannot be empty")
	ErrEmptyStrategyName    = errors.New("strategy name cannot be empty")
	ErrDuplicateJournalName = errors.New("a journal with this name already exists")

	ErrCustomFieldNameRequired = errors.New("custom field name is required when has_custom_field is true")
)

// Settings are the optional field toggles of a journal
type Settings struct {
	HasSLTPFields      bool     `json:"has_sl_tp_fields"`
	HasCustomField     bool     `json:"has_custom_field"`
	CustomFieldName    string   `json:"custom_field_name,omitempty"`
	CustomFieldOptions []string `json:"custom_field_options"`
	HasEmotions        bool     `json:"has_emotions"`
}

// Journal represents a named collection of trade entries
type Journal struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Settings
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewJournal creates a new journal with validation
func NewJournal(name, description string, settings Settings) (*Journal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	settings = settings.normalized()
	if settings.HasCustomField && settings.CustomFieldName == "" {
		return nil, ErrCustomFieldNameRequired
	}

	now := time.Now().UTC()
	return &Journal{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Settings:    settings,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Rename changes the journal name
func (j *Journal) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	j.Name = name
	j.UpdatedAt = time.Now().UTC()
	return nil
}

// Update carries the fields of a partial journal update; nil fields are left unchanged
type Update struct {
	Name               *string   `json:"name"`
	Description        *string   `json:"description"`
	HasSLTPFields      *bool     `json:"has_sl_tp_fields"`
	HasCustomField     *bool     `json:"has_custom_field"`
	CustomFieldName    *string   `json:"custom_field_name"`
	CustomFieldOptions *[]string `json:"custom_field_options"`
	HasEmotions        *bool     `json:"has_emotions"`
}

// IsEmpty reports whether the update names no field
func (u Update) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.HasSLTPFields == nil && u.HasCustomField == nil &&
		u.CustomFieldName == nil && u.CustomFieldOptions == nil && u.HasEmotions == nil
}

// Apply merges the update into the journal. The journal is left untouched when validation fails.
func (j *Journal) Apply(u Update) error {
	updated := *j
	if u.Name != nil {
		if err := updated.Rename(*u.Name); err != nil {
			return err
		}
	}
	if u.Description != nil {
		updated.Description = strings.TrimSpace(*u.Description)
	}

	settings := updated.Settings
	if u.HasSLTPFields != nil {
		settings.HasSLTPFields = *u.HasSLTPFields
	}
	if u.HasCustomField != nil {
		settings.HasCustomField = *u.HasCustomField
	}
	if u.CustomFieldName != nil {
		settings.CustomFieldName = *u.CustomFieldName
	}
	if u.CustomFieldOptions != nil {
		settings.CustomFieldOptions = *u.CustomFieldOptions
	}
	if u.HasEmotions != nil {
		settings.HasEmotions = *u.HasEmotions
	}
	settings = settings.normalized()
	if settings.HasCustomField && settings.CustomFieldName == "" {
		return ErrCustomFieldNameRequired
	}

	updated.Settings = settings
	updated.UpdatedAt = time.Now().UTC()
	*j = updated
	return nil
}

func (s Settings) normalized() Settings {
	options := make([]string, 0, len(s.CustomFieldOptions))
	for _, option := range s.CustomFieldOptions {
		if option = strings.TrimSpace(option); option != "" {
			options = append(options, option)
		}
	}
	s.CustomFieldOptions = options
	s.CustomFieldName = strings.TrimSpace(s.CustomFieldName)
	return s
}

// ErrJournalNotFound indicates missing journal
type ErrJournalNotFound struct {
	JournalID uuid.UUID
}

func (e ErrJournalNotFound) Error() string {
	return "journal not found: " + e.JournalID.String()
}

// Is matches any ErrJournalNotFound when the target carries no id
func (e ErrJournalNotFound) Is(target error) bool {
	t, ok := target.(ErrJournalNotFound)
	if !ok {
		return false
	}
	return t.JournalID == uuid.Nil || t.JournalID == e.JournalID
}
