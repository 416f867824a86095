package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/trading-journal-backend/internal/domain/entry"
	"github.com/trading-journal-backend/internal/domain/journal"
	"github.com/trading-journal-backend/internal/domain/snapshot"
	"github.com/trading-journal-backend/internal/domain/statistics"
)

// ErrNoStatistics is returned when a journal has no entries to report on
var ErrNoStatistics = errors.New("no statistics available for this journal")

// JournalDetails is a journal together with its checklist templates in display order
type JournalDetails struct {
	*journal.Journal
	Templates []journal.ChecklistTemplate
}

// EntryDetails is an entry together with its checklist answers and attachments
type EntryDetails struct {
	*entry.Entry
	Checklist   []entry.ChecklistItem
	Attachments []*entry.Attachment
}

// JournalService defines the interface for journal operations
type JournalService interface {
	ListJournals(ctx context.Context) ([]*journal.Journal, error)

	// CreateJournal creates a journal and seeds its checklist templates in the given order
	// Returns ErrDuplicateJournalName if the name is taken
	CreateJournal(ctx context.Context, name, description string, settings journal.Settings, templateTexts []string) (*JournalDetails, error)

	// GetJournal returns ErrJournalNotFound if the journal doesn't exist
	GetJournal(ctx context.Context, id uuid.UUID) (*JournalDetails, error)

	UpdateJournal(ctx context.Context, id uuid.UUID, update journal.Update) (*JournalDetails, error)

	// DeleteJournal removes the journal with everything it owns, including uploaded files
	DeleteJournal(ctx context.Context, id uuid.UUID) error
}

// TemplateService defines the interface for checklist template operations
type TemplateService interface {
	ListTemplates(ctx context.Context, journalID uuid.UUID) ([]journal.ChecklistTemplate, error)
	AddTemplate(ctx context.Context, journalID uuid.UUID, text string) (*journal.ChecklistTemplate, error)
	UpdateTemplate(ctx context.Context, id uuid.UUID, text string) (*journal.ChecklistTemplate, error)
	// DeleteTemplate also removes every status recorded against the template
	DeleteTemplate(ctx context.Context, id uuid.UUID) error
}

// EntryService defines the interface for trade entry operations
type EntryService interface {
	// ListEntries returns the journal's entries, newest first
	ListEntries(ctx context.Context, journalID uuid.UUID) ([]entry.Entry, error)

	// CreateEntry stores the entry, seeds one checklist status per template of the journal
	// from checklist (keyed by template id) and registers the strategy name
	CreateEntry(ctx context.Context, journalID uuid.UUID, input entry.Entry, checklist map[string]bool) (*EntryDetails, error)

	GetEntry(ctx context.Context, id uuid.UUID) (*EntryDetails, error)

	// UpdateEntry applies a partial update keyed by JSON field name. A "checklist_statuses"
	// object updates the statuses the entry already has; unknown templates are skipped.
	UpdateEntry(ctx context.Context, id uuid.UUID, patch map[string]json.RawMessage) (*EntryDetails, error)

	DeleteEntry(ctx context.Context, id uuid.UUID) error

	// SetChecklistStatus returns ErrStatusNotFound if the entry has no status for the template
	SetChecklistStatus(ctx context.Context, entryID, templateID uuid.UUID, checked bool) error
}

// AttachmentService defines the interface for entry evidence operations
type AttachmentService interface {
	// UploadImage stores an image file for the entry. Returns ErrUnsupportedImageType for
	// anything but png, jpg, jpeg and gif.
	UploadImage(ctx context.Context, entryID uuid.UUID, filename string, content io.Reader, category entry.Category) (*entry.Attachment, error)
	AddLink(ctx context.Context, entryID uuid.UUID, link string, category entry.Category) (*entry.Attachment, error)
	DeleteAttachment(ctx context.Context, id uuid.UUID) error
}

// StrategyService defines the interface for the shared strategy list
type StrategyService interface {
	ListStrategies(ctx context.Context) ([]*journal.Strategy, error)
	// AddStrategy returns the existing strategy when the name matches case-insensitively
	AddStrategy(ctx context.Context, name string) (*journal.Strategy, error)
}

// StatisticsService defines the interface for journal statistics
type StatisticsService interface {
	// GetStatistics recomputes the report from current data.
	// Returns ErrNoStatistics if the journal has no entries.
	GetStatistics(ctx context.Context, journalID uuid.UUID) (*statistics.Report, error)

	// GetStatisticsHistory returns stored snapshots newest first, and the total count
	GetStatisticsHistory(ctx context.Context, journalID uuid.UUID, page, perPage int) ([]*snapshot.Snapshot, int64, error)
}

// FileStore keeps uploaded image files
type FileStore interface {
	Save(r io.Reader, originalName string) (string, error)
	Remove(name string) error
	RemoveAll(names []string)
}
