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

const journalColumns = `id, name, description, has_sl_tp_fields, has_custom_field, custom_field_name,
		custom_field_options, has_emotions, created_at, updated_at`

// JournalRepository implements the journal.Repository interface for PostgreSQL
type JournalRepository struct {
	querier persistence.Querier // *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

func NewJournalRepository(logger *slog.Logger, db *persistence.PostgresDB) journal.Repository {
	return &JournalRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

func (r *JournalRepository) WithTx(tx pgx.Tx) journal.Repository {
	return &JournalRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new journal. A name clash yields journal.ErrDuplicateJournalName.
func (r *JournalRepository) Create(ctx context.Context, j *journal.Journal) error {
	query := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.querier.Exec(ctx, query,
		j.ID,
		j.Name,
		j.Description,
		j.HasSLTPFields,
		j.HasCustomField,
		j.CustomFieldName,
		j.CustomFieldOptions,
		j.HasEmotions,
		j.CreatedAt,
		j.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return journal.ErrDuplicateJournalName
		}
		r.logger.Error("Failed to create journal", "name", j.Name, "error", err)
		return fmt.Errorf("failed to create journal: %w", err)
	}

	return nil
}

func (r *JournalRepository) GetByID(ctx context.Context, id uuid.UUID) (*journal.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE id = $1`

	j, err := scanJournal(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, journal.ErrJournalNotFound{JournalID: id}
		}
		r.logger.Error("Failed to get journal", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get journal: %w", err)
	}

	return j, nil
}

// List returns every journal ordered by name
func (r *JournalRepository) List(ctx context.Context) ([]*journal.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals ORDER BY name ASC`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list journals", "error", err)
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	defer rows.Close()

	journals := make([]*journal.Journal, 0)
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			r.logger.Error("Failed to scan journal", "error", err)
			return nil, fmt.Errorf("failed to scan journal: %w", err)
		}
		journals = append(journals, j)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over journals", "error", err)
		return nil, fmt.Errorf("error iterating over journals: %w", err)
	}

	return journals, nil
}

func (r *JournalRepository) Update(ctx context.Context, j *journal.Journal) error {
	query := `
		UPDATE journals
		SET name = $1, description = $2, has_sl_tp_fields = $3, has_custom_field = $4,
			custom_field_name = $5, custom_field_options = $6, has_emotions = $7, updated_at = $8
		WHERE id = $9
	`

	result, err := r.querier.Exec(ctx, query,
		j.Name,
		j.Description,
		j.HasSLTPFields,
		j.HasCustomField,
		j.CustomFieldName,
		j.CustomFieldOptions,
		j.HasEmotions,
		j.UpdatedAt,
		j.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return journal.ErrDuplicateJournalName
		}
		r.logger.Error("Failed to update journal", "id", j.ID.String(), "error", err)
		return fmt.Errorf("failed to update journal: %w", err)
	}

	if result.RowsAffected() == 0 {
		return journal.ErrJournalNotFound{JournalID: j.ID}
	}

	return nil
}

func (r *JournalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.querier.Exec(ctx, `DELETE FROM journals WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete journal", "id", id.String(), "error", err)
		return fmt.Errorf("failed to delete journal: %w", err)
	}

	if result.RowsAffected() == 0 {
		return journal.ErrJournalNotFound{JournalID: id}
	}

	return nil
}

func scanJournal(row pgx.Row) (*journal.Journal, error) {
	var j journal.Journal
	err := row.Scan(
		&j.ID,
		&j.Name,
		&j.Description,
		&j.HasSLTPFields,
		&j.HasCustomField,
		&j.CustomFieldName,
		&j.CustomFieldOptions,
		&j.HasEmotions,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if j.CustomFieldOptions == nil {
		j.CustomFieldOptions = []string{}
	}
	return &j, nil
}
