package entry

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines entry and checklist status persistence operations
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	// ListByJournal returns the journal's entries, newest entry date first
	ListByJournal(ctx context.Context, journalID uuid.UUID) ([]Entry, error)
	Update(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateStatuses(ctx context.Context, statuses []ChecklistStatus) error
	// SetStatus updates an existing status; it never creates one
	SetStatus(ctx context.Context, entryID, templateID uuid.UUID, checked bool) error
	ListChecklist(ctx context.Context, entryID uuid.UUID) ([]ChecklistItem, error)
	// ListStatusesByJournal returns only statuses whose entry belongs to the journal
	ListStatusesByJournal(ctx context.Context, journalID uuid.UUID) ([]ChecklistStatus, error)
	WithTx(tx pgx.Tx) Repository
}

// AttachmentRepository defines attachment metadata persistence operations
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *Attachment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Attachment, error)
	ListByEntry(ctx context.Context, entryID uuid.UUID) ([]*Attachment, error)
	// FilePathsByEntry and FilePathsByJournal list stored image files so callers can
	// remove them once the owning rows are deleted
	FilePathsByEntry(ctx context.Context, entryID uuid.UUID) ([]string, error)
	FilePathsByJournal(ctx context.Context, journalID uuid.UUID) ([]string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ErrEntryNotFound indicates missing entry
type ErrEntryNotFound struct {
	EntryID uuid.UUID
}

func (e ErrEntryNotFound) Error() string {
	return "entry not found: " + e.EntryID.String()
}

// Is matches any ErrEntryNotFound when the target carries no id
func (e ErrEntryNotFound) Is(target error) bool {
	t, ok := target.(ErrEntryNotFound)
	if !ok {
		return false
	}
	return t.EntryID == uuid.Nil || t.EntryID == e.EntryID
}

// ErrStatusNotFound indicates the entry has no status for the template
type ErrStatusNotFound struct {
	EntryID    uuid.UUID
	TemplateID uuid.UUID
}

func (e ErrStatusNotFound) Error() string {
	return "checklist status not found for entry " + e.EntryID.String() + " and template " + e.TemplateID.String()
}

// ErrAttachmentNotFound indicates missing attachment
type ErrAttachmentNotFound struct {
	AttachmentID uuid.UUID
}

func (e ErrAttachmentNotFound) Error() string {
	return "attachment not found: " + e.AttachmentID.String()
}
