package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/trading-journal-backend/internal/domain/journal"
	"github.com/trading-journal-backend/internal/domain/outbox"
	"github.com/trading-journal-backend/internal/domain/shared"
	"github.com/trading-journal-backend/internal/platform/persistence"
)

// TemplateServiceImpl implements the TemplateService interface
type TemplateServiceImpl struct {
	db           persistence.TxRunner
	journalRepo  journal.Repository
	templateRepo journal.TemplateRepository
	outboxRepo   outbox.Repository
	logger       *slog.Logger
}

// NewTemplateService creates a new checklist template service
func NewTemplateService(
	logger *slog.Logger,
	db persistence.TxRunner,
	journalRepo journal.Repository,
	templateRepo journal.TemplateRepository,
	outboxRepo outbox.Repository,
) TemplateService {
	return &TemplateServiceImpl{
		db:           db,
		journalRepo:  journalRepo,
		templateRepo: templateRepo,
		outboxRepo:   outboxRepo,
		logger:       logger,
	}
}

func (s *TemplateServiceImpl) ListTemplates(ctx context.Context, journalID uuid.UUID) ([]journal.ChecklistTemplate, error) {
	if _, err := s.journalRepo.GetByID(ctx, journalID); err != nil {
		return nil, err
	}
	return s.templateRepo.ListByJournal(ctx, journalID)
}

// AddTemplate appends the item after the journal's current last item
func (s *TemplateServiceImpl) AddTemplate(ctx context.Context, journalID uuid.UUID, text string) (*journal.ChecklistTemplate, error) {
	logger := requestLogger(ctx, s.logger)

	template, err := journal.NewChecklistTemplate(journalID, text)
	if err != nil {
		return nil, err
	}

	err = s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		if _, err := s.journalRepo.WithTx(tx).GetByID(ctx, journalID); err != nil {
			return err
		}
		if err := s.templateRepo.WithTx(tx).Create(ctx, template); err != nil {
			return err
		}
		return recordEvent(ctx, logger, s.outboxRepo.WithTx(tx), newEvent(ctx, shared.EventTemplatesChanged, journalID))
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Checklist template added", "journal_id", journalID.String(), "template_id", template.ID.String(), "order", template.Order)
	return template, nil
}

func (s *TemplateServiceImpl) UpdateTemplate(ctx context.Context, id uuid.UUID, text string) (*journal.ChecklistTemplate, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, journal.ErrEmptyTemplateText
	}
	logger := requestLogger(ctx, s.logger)

	var template *journal.ChecklistTemplate
	err := s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		templateRepo := s.templateRepo.WithTx(tx)
		var err error
		if template, err = templateRepo.GetByID(ctx, id); err != nil {
			return err
		}
		if err := templateRepo.UpdateText(ctx, id, text); err != nil {
			return err
		}
		return recordEvent(ctx, logger, s.outboxRepo.WithTx(tx), newEvent(ctx, shared.EventTemplatesChanged, template.JournalID))
	})
	if err != nil {
		return nil, err
	}

	template.Text = text
	logger.Info("Checklist template updated", "template_id", id.String())
	return template, nil
}

func (s *TemplateServiceImpl) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	logger := requestLogger(ctx, s.logger)

	err := s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		templateRepo := s.templateRepo.WithTx(tx)
		template, err := templateRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := templateRepo.Delete(ctx, id); err != nil {
			return err
		}
		return recordEvent(ctx, logger, s.outboxRepo.WithTx(tx), newEvent(ctx, shared.EventTemplatesChanged, template.JournalID))
	})
	if err != nil {
		return err
	}

	logger.Info("Checklist template deleted", "template_id", id.String())
	return nil
}
