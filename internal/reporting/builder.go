// Package reporting loads a journal's statistics inputs from storage and runs the
// statistics engine over them.
package reporting

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/trading-journal-backend/internal/domain/entry"
	"github.com/trading-journal-backend/internal/domain/journal"
	"github.com/trading-journal-backend/internal/domain/statistics"
)

// Builder assembles statistics reports from the repositories
type Builder struct {
	journalRepo  journal.Repository
	templateRepo journal.TemplateRepository
	entryRepo    entry.Repository
	logger       *slog.Logger
}

func NewBuilder(
	logger *slog.Logger,
	journalRepo journal.Repository,
	templateRepo journal.TemplateRepository,
	entryRepo entry.Repository,
) *Builder {
	return &Builder{
		journalRepo:  journalRepo,
		templateRepo: templateRepo,
		entryRepo:    entryRepo,
		logger:       logger,
	}
}

// Build returns the journal's current report. The report is nil, with a nil error,
// when the journal has no entries. A missing journal yields ErrJournalNotFound.
func (b *Builder) Build(ctx context.Context, journalID uuid.UUID) (*statistics.Report, error) {
	j, err := b.journalRepo.GetByID(ctx, journalID)
	if err != nil {
		return nil, err
	}

	entries, err := b.entryRepo.ListByJournal(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for journal %s: %w", journalID, err)
	}
	if len(entries) == 0 {
		b.logger.Debug("Journal has no entries", "journal_id", journalID.String())
		return nil, nil
	}

	templates, err := b.templateRepo.ListByJournal(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checklist templates for journal %s: %w", journalID, err)
	}

	statuses, err := b.entryRepo.ListStatusesByJournal(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checklist statuses for journal %s: %w", journalID, err)
	}

	report := statistics.Compose(*j, entries, templates, statuses)
	b.logger.Debug("Statistics composed",
		"journal_id", journalID.String(),
		"entries", len(entries),
		"templates", len(templates),
	)
	return report, nil
}
