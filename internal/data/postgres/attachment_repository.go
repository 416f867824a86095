package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/trading-journal-backend/internal/domain/entry"
	"github.com/trading-journal-backend/internal/platform/persistence"
)

// AttachmentRepository implements entry.AttachmentRepository for PostgreSQL
type AttachmentRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

func NewAttachmentRepository(logger *slog.Logger, db *persistence.PostgresDB) entry.AttachmentRepository {
	return &AttachmentRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

func (r *AttachmentRepository) Create(ctx context.Context, a *entry.Attachment) error {
	query := `
		INSERT INTO entry_attachments (id, entry_id, kind, file_path, link_url, category, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.querier.Exec(ctx, query,
		a.ID,
		a.EntryID,
		string(a.Kind),
		a.FilePath,
		a.LinkURL,
		string(a.Category),
		a.UploadedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create attachment", "entry_id", a.EntryID.String(), "error", err)
		return fmt.Errorf("failed to create attachment: %w", err)
	}

	return nil
}

func (r *AttachmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entry.Attachment, error) {
	query := `
		SELECT id, entry_id, kind, file_path, link_url, category, uploaded_at
		FROM entry_attachments
		WHERE id = $1
	`

	a, err := scanAttachment(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entry.ErrAttachmentNotFound{AttachmentID: id}
		}
		r.logger.Error("Failed to get attachment", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}

	return a, nil
}

// ListByEntry returns attachments oldest first
func (r *AttachmentRepository) ListByEntry(ctx context.Context, entryID uuid.UUID) ([]*entry.Attachment, error) {
	query := `
		SELECT id, entry_id, kind, file_path, link_url, category, uploaded_at
		FROM entry_attachments
		WHERE entry_id = $1
		ORDER BY uploaded_at ASC
	`

	rows, err := r.querier.Query(ctx, query, entryID)
	if err != nil {
		r.logger.Error("Failed to list attachments", "entry_id", entryID.String(), "error", err)
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	defer rows.Close()

	attachments := make([]*entry.Attachment, 0)
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			r.logger.Error("Failed to scan attachment", "error", err)
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		attachments = append(attachments, a)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over attachments", "error", err)
		return nil, fmt.Errorf("error iterating over attachments: %w", err)
	}

	return attachments, nil
}

func (r *AttachmentRepository) FilePathsByEntry(ctx context.Context, entryID uuid.UUID) ([]string, error) {
	query := `
		SELECT file_path
		FROM entry_attachments
		WHERE entry_id = $1 AND kind = 'image' AND file_path <> ''
	`
	return r.filePaths(ctx, query, entryID)
}

func (r *AttachmentRepository) FilePathsByJournal(ctx context.Context, journalID uuid.UUID) ([]string, error) {
	query := `
		SELECT a.file_path
		FROM entry_attachments a
		JOIN entries e ON e.id = a.entry_id
		WHERE e.journal_id = $1 AND a.kind = 'image' AND a.file_path <> ''
	`
	return r.filePaths(ctx, query, journalID)
}

func (r *AttachmentRepository) filePaths(ctx context.Context, query string, id uuid.UUID) ([]string, error) {
	rows, err := r.querier.Query(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to list attachment files", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to list attachment files: %w", err)
	}
	defer rows.Close()

	paths := make([]string, 0)
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			r.logger.Error("Failed to scan attachment file", "error", err)
			return nil, fmt.Errorf("failed to scan attachment file: %w", err)
		}
		paths = append(paths, path)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over attachment files", "error", err)
		return nil, fmt.Errorf("error iterating over attachment files: %w", err)
	}

	return paths, nil
}

func (r *AttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.querier.Exec(ctx, `DELETE FROM entry_attachments WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete attachment", "id", id.String(), "error", err)
		return fmt.Errorf("failed to delete attachment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entry.ErrAttachmentNotFound{AttachmentID: id}
	}

	return nil
}

func scanAttachment(row pgx.Row) (*entry.Attachment, error) {
	var (
		a              entry.Attachment
		kind, category string
	)
	if err := row.Scan(&a.ID, &a.EntryID, &kind, &a.FilePath, &a.LinkURL, &category, &a.UploadedAt); err != nil {
		return nil, err
	}
	a.Kind = entry.AttachmentKind(kind)
	a.Category = entry.ParseCategory(category)
	return &a, nil
}
