package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/trading-journal-backend/internal/domain/journal"
	"github.com/trading-journal-backend/internal/platform/persistence"
)

// TemplateRepository implements journal.TemplateRepository for PostgreSQL
type TemplateRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

func NewTemplateRepository(logger *slog.Logger, db *persistence.PostgresDB) journal.TemplateRepository {
	return &TemplateRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

func (r *TemplateRepository) WithTx(tx pgx.Tx) journal.TemplateRepository {
	return &TemplateRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create appends the template to the end of the journal's checklist
func (r *TemplateRepository) Create(ctx context.Context, t *journal.ChecklistTemplate) error {
	query := `
		INSERT INTO checklist_templates (id, journal_id, text, sort_order)
		SELECT $1, $2, $3, COALESCE(MAX(sort_order) + 1, 0)
		FROM checklist_templates
		WHERE journal_id = $2
		RETURNING sort_order
	`

	if err := r.querier.QueryRow(ctx, query, t.ID, t.JournalID, t.Text).Scan(&t.Order); err != nil {
		r.logger.Error("Failed to create checklist template", "journal_id", t.JournalID.String(), "error", err)
		return fmt.Errorf("failed to create checklist template: %w", err)
	}

	return nil
}

func (r *TemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*journal.ChecklistTemplate, error) {
	query := `SELECT id, journal_id, text, sort_order FROM checklist_templates WHERE id = $1`

	var t journal.ChecklistTemplate
	err := r.querier.QueryRow(ctx, query, id).Scan(&t.ID, &t.JournalID, &t.Text, &t.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, journal.ErrTemplateNotFound{TemplateID: id}
		}
		r.logger.Error("Failed to get checklist template", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get checklist template: %w", err)
	}

	return &t, nil
}

// ListByJournal returns the journal's templates in checklist order
func (r *TemplateRepository) ListByJournal(ctx context.Context, journalID uuid.UUID) ([]journal.ChecklistTemplate, error) {
	query := `
		SELECT id, journal_id, text, sort_order
		FROM checklist_templates
		WHERE journal_id = $1
		ORDER BY sort_order ASC
	`

	rows, err := r.querier.Query(ctx, query, journalID)
	if err != nil {
		r.logger.Error("Failed to list checklist templates", "journal_id", journalID.String(), "error", err)
		return nil, fmt.Errorf("failed to list checklist templates: %w", err)
	}
	defer rows.Close()

	templates := make([]journal.ChecklistTemplate, 0)
	for rows.Next() {
		var t journal.ChecklistTemplate
		if err := rows.Scan(&t.ID, &t.JournalID, &t.Text, &t.Order); err != nil {
			r.logger.Error("Failed to scan checklist template", "error", err)
			return nil, fmt.Errorf("failed to scan checklist template: %w", err)
		}
		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over checklist templates", "error", err)
		return nil, fmt.Errorf("error iterating over checklist templates: %w", err)
	}

	return journal.SortByOrder(templates), nil
}

func (r *TemplateRepository) UpdateText(ctx context.Context, id uuid.UUID, text string) error {
	result, err := r.querier.Exec(ctx, `UPDATE checklist_templates SET text = $1 WHERE id = $2`, text, id)
	if err != nil {
		r.logger.Error("Failed to update checklist template", "id", id.String(), "error", err)
		return fmt.Errorf("failed to update checklist template: %w", err)
	}

	if result.RowsAffected() == 0 {
		return journal.ErrTemplateNotFound{TemplateID: id}
	}

	return nil
}

// Delete removes the template; statuses referencing it cascade
func (r *TemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.querier.Exec(ctx, `DELETE FROM checklist_templates WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete checklist template", "id", id.String(), "error", err)
		return fmt.Errorf("failed to delete checklist template: %w", err)
	}

	if result.RowsAffected() == 0 {
		return journal.ErrTemplateNotFound{TemplateID: id}
	}

	return nil
}
