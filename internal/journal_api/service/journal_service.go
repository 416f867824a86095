package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/trading-journal-backend/internal/domain/entry"
	"github.com/trading-journal-backend/internal/domain/journal"
	"github.com/trading-journal-backend/internal/domain/outbox"
	"github.com/trading-journal-backend/internal/domain/shared"
	"github.com/trading-journal-backend/internal/platform/persistence"
)

// ErrEmptyUpdate is returned when an update request names no field
var ErrEmptyUpdate = errors.New("no update data provided")

// JournalServiceImpl implements the JournalService interface
type JournalServiceImpl struct {
	db             persistence.TxRunner
	journalRepo    journal.Repository
	templateRepo   journal.TemplateRepository
	attachmentRepo entry.AttachmentRepository
	outboxRepo     outbox.Repository
	files          FileStore
	logger         *slog.Logger
}

// NewJournalService creates a new journal service
func NewJournalService(
	logger *slog.Logger,
	db persistence.TxRunner,
	journalRepo journal.Repository,
	templateRepo journal.TemplateRepository,
	attachmentRepo entry.AttachmentRepository,
	outboxRepo outbox.Repository,
	files FileStore,
) JournalService {
	return &JournalServiceImpl{
		db:             db,
		journalRepo:    journalRepo,
		templateRepo:   templateRepo,
		attachmentRepo: attachmentRepo,
		outboxRepo:     outboxRepo,
		files:          files,
		logger:         logger,
	}
}

func (s *JournalServiceImpl) ListJournals(ctx context.Context) ([]*journal.Journal, error) {
	return s.journalRepo.List(ctx)
}

// CreateJournal creates the journal and its initial checklist in one transaction.
// Blank checklist lines are skipped; the remaining ones keep their submitted order.
func (s *JournalServiceImpl) CreateJournal(ctx context.Context, name, description string, settings journal.Settings, templateTexts []string) (*JournalDetails, error) {
	logger := requestLogger(ctx, s.logger)

	j, err := journal.NewJournal(name, description, settings)
	if err != nil {
		return nil, err
	}

	templates := make([]journal.ChecklistTemplate, 0, len(templateTexts))
	for _, text := range templateTexts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		template, err := journal.NewChecklistTemplate(j.ID, text)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *template)
	}

	err = s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		if err := s.journalRepo.WithTx(tx).Create(ctx, j); err != nil {
			return err
		}

		templateRepo := s.templateRepo.WithTx(tx)
		for i := range templates {
			if err := templateRepo.Create(ctx, &templates[i]); err != nil {
				return err
			}
		}

		return recordEvent(ctx, logger, s.outboxRepo.WithTx(tx), newEvent(ctx, shared.EventJournalUpdated, j.ID))
	})
	if err != nil {
		if !errors.Is(err, journal.ErrDuplicateJournalName) {
			logger.Error("Failed to create journal", "name", j.Name, "error", err)
		}
		return nil, err
	}

	logger.Info("Journal created", "journal_id", j.ID.String(), "templates", len(templates))
	return &JournalDetails{Journal: j, Templates: templates}, nil
}

func (s *JournalServiceImpl) GetJournal(ctx context.Context, id uuid.UUID) (*JournalDetails, error) {
	j, err := s.journalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	templates, err := s.templateRepo.ListByJournal(ctx, id)
	if err != nil {
		return nil, err
	}
	return &JournalDetails{Journal: j, Templates: templates}, nil
}

func (s *JournalServiceImpl) UpdateJournal(ctx context.Context, id uuid.UUID, update journal.Update) (*JournalDetails, error) {
	if update.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	logger := requestLogger(ctx, s.logger)

	err := s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		journalRepo := s.journalRepo.WithTx(tx)
		j, err := journalRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := j.Apply(update); err != nil {
			return err
		}
		if err := journalRepo.Update(ctx, j); err != nil {
			return err
		}
		return recordEvent(ctx, logger, s.outboxRepo.WithTx(tx), newEvent(ctx, shared.EventJournalUpdated, id))
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Journal updated", "journal_id", id.String())
	return s.GetJournal(ctx, id)
}

// DeleteJournal deletes the journal row, letting the schema cascade to everything it
// owns, then removes the uploaded files that belonged to its entries.
func (s *JournalServiceImpl) DeleteJournal(ctx context.Context, id uuid.UUID) error {
	logger := requestLogger(ctx, s.logger)

	files, err := s.attachmentRepo.FilePathsByJournal(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		if err := s.journalRepo.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		return recordEvent(ctx, logger, s.outboxRepo.WithTx(tx), newEvent(ctx, shared.EventJournalDeleted, id))
	})
	if err != nil {
		return err
	}

	if len(files) > 0 {
		s.files.RemoveAll(files)
	}
	logger.Info("Journal deleted", "journal_id", id.String(), "files_removed", len(files))
	return nil
}
