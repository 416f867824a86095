package journal

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines journal persistence operations
type Repository interface {
	Create(ctx context.Context, journal *Journal) error
	GetByID(ctx context.Context, id uuid.UUID) (*Journal, error)
	List(ctx context.Context) ([]*Journal, error)
	Update(ctx context.Context, journal *Journal) error
	// Delete removes the journal; entries, templates, statuses and attachments cascade
	Delete(ctx context.Context, id uuid.UUID) error
	WithTx(tx pgx.Tx) Repository
}

// TemplateRepository defines checklist template persistence operations
type TemplateRepository interface {
	// Create appends the template after the journal's current last item and sets its Order
	Create(ctx context.Context, template *ChecklistTemplate) error
	GetByID(ctx context.Context, id uuid.UUID) (*ChecklistTemplate, error)
	ListByJournal(ctx context.Context, journalID uuid.UUID) ([]ChecklistTemplate, error)
	UpdateText(ctx context.Context, id uuid.UUID, text string) error
	Delete(ctx context.Context, id uuid.UUID) error
	WithTx(tx pgx.Tx) TemplateRepository
}

// StrategyRepository defines strategy registry operations
type StrategyRepository interface {
	List(ctx context.Context) ([]*Strategy, error)
	// Ensure returns the strategy matching name case-insensitively, creating it if absent
	Ensure(ctx context.Context, name string) (*Strategy, error)
	WithTx(tx pgx.Tx) StrategyRepository
}
