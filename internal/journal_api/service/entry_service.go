package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/trading-journal-backend/internal/domain/entry"
	"github.com/trading-journal-backend/internal/domain/journal"
	"github.com/trading-journal-backend/internal/domain/outbox"
	"github.com/trading-journal-backend/internal/domain/shared"
	"github.com/trading-journal-backend/internal/platform/persistence"
)

const checklistStatusesKey = "checklist_statuses"

// EntryServiceImpl implements the EntryService interface
type EntryServiceImpl struct {
	db             persistence.TxRunner
	journalRepo    journal.Repository
	templateRepo   journal.TemplateRepository
	strategyRepo   journal.StrategyRepository
	entryRepo      entry.Repository
	attachmentRepo entry.AttachmentRepository
	outboxRepo     outbox.Repository
	files          FileStore
	logger         *slog.Logger
}

// EntryRepositories groups the stores the entry service writes to
type EntryRepositories struct {
	Journals    journal.Repository
	Templates   journal.TemplateRepository
	Strategies  journal.StrategyRepository
	Entries     entry.Repository
	Attachments entry.AttachmentRepository
	Outbox      outbox.Repository
}

// NewEntryService creates a new entry service
func NewEntryService(logger *slog.Logger, db persistence.TxRunner, repos EntryRepositories, files FileStore) EntryService {
	return &EntryServiceImpl{
		db:             db,
		journalRepo:    repos.Journals,
		templateRepo:   repos.Templates,
		strategyRepo:   repos.Strategies,
		entryRepo:      repos.Entries,
		attachmentRepo: repos.Attachments,
		outboxRepo:     repos.Outbox,
		files:          files,
		logger:         logger,
	}
}

func (s *EntryServiceImpl) ListEntries(ctx context.Context, journalID uuid.UUID) ([]entry.Entry, error) {
	if _, err := s.journalRepo.GetByID(ctx, journalID); err != nil {
		return nil, err
	}
	return s.entryRepo.ListByJournal(ctx, journalID)
}

func (s *EntryServiceImpl) CreateEntry(ctx context.Context, journalID uuid.UUID, input entry.Entry, checklist map[string]bool) (*EntryDetails, error) {
	logger := requestLogger(ctx, s.logger)

	if _, err := s.journalRepo.GetByID(ctx, journalID); err != nil {
		return nil, err
	}

	e, err := entry.NewEntry(journalID, input)
	if err != nil {
		return nil, err
	}

	templates, err := s.templateRepo.ListByJournal(ctx, journalID)
	if err != nil {
		return nil, err
	}
	templateIDs := make([]uuid.UUID, 0, len(templates))
	for _, template := range templates {
		templateIDs = append(templateIDs, template.ID)
	}
	statuses := entry.SeedStatuses(e.ID, templateIDs, checklist)

	err = s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		entryRepo := s.entryRepo.WithTx(tx)
		if err := entryRepo.Create(ctx, e); err != nil {
			return err
		}
		if err := entryRepo.CreateStatuses(ctx, statuses); err != nil {
			return err
		}
		if e.Strategy != "" {
			if _, err := s.strategyRepo.WithTx(tx).Ensure(ctx, e.Strategy); err != nil {
				return err
			}
		}
		event := newEvent(ctx, shared.EventEntryCreated, journalID).ForEntry(e.ID)
		return recordEvent(ctx, logger, s.outboxRepo.WithTx(tx), event)
	})
	if err != nil {
		logger.Error("Failed to create entry", "journal_id", journalID.String(), "error", err)
		return nil, err
	}

	checklistItems := make([]entry.ChecklistItem, 0, len(templates))
	for i, template := range templates {
		checklistItems = append(checklistItems, entry.ChecklistItem{
			TemplateID: template.ID,
			Text:       template.Text,
			Order:      template.Order,
			Checked:    statuses[i].Checked,
		})
	}

	logger.Info("Entry created", "journal_id", journalID.String(), "entry_id", e.ID.String())
	return &EntryDetails{Entry: e, Checklist: checklistItems, Attachments: []*entry.Attachment{}}, nil
}

func (s *EntryServiceImpl) GetEntry(ctx context.Context, id uuid.UUID) (*EntryDetails, error) {
	e, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	checklist, err := s.entryRepo.ListChecklist(ctx, id)
	if err != nil {
		return nil, err
	}

	attachments, err := s.attachmentRepo.ListByEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	return &EntryDetails{Entry: e, Checklist: checklist, Attachments: attachments}, nil
}

func (s *EntryServiceImpl) UpdateEntry(ctx context.Context, id uuid.UUID, patch map[string]json.RawMessage) (*EntryDetails, error) {
	if len(patch) == 0 {
		return nil, ErrEmptyUpdate
	}
	logger := requestLogger(ctx, s.logger)

	var checklist map[string]bool
	if raw, ok := patch[checklistStatusesKey]; ok {
		if err := json.Unmarshal(raw, &checklist); err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", entry.ErrInvalidPatch, checklistStatusesKey, err)
		}
	}

	err := s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		entryRepo := s.entryRepo.WithTx(tx)
		e, err := entryRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := e.ApplyPatch(patch); err != nil {
			return err
		}
		if err := entryRepo.Update(ctx, e); err != nil {
			return err
		}

		if _, changed := patch["strategy"]; changed && e.Strategy != "" {
			if _, err := s.strategyRepo.WithTx(tx).Ensure(ctx, e.Strategy); err != nil {
				return err
			}
		}

		if err := s.applyChecklist(ctx, logger, entryRepo, id, checklist); err != nil {
			return err
		}

		event := newEvent(ctx, shared.EventEntryUpdated, e.JournalID).ForEntry(id)
		return recordEvent(ctx, logger, s.outboxRepo.WithTx(tx), event)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Entry updated", "entry_id", id.String())
	return s.GetEntry(ctx, id)
}

// applyChecklist updates the statuses the entry already has. Keys that are not
// template ids, or name a template the entry has no status for, are skipped.
func (s *EntryServiceImpl) applyChecklist(ctx context.Context, logger *slog.Logger, entryRepo entry.Repository, entryID uuid.UUID, checklist map[string]bool) error {
	for key, checked := range checklist {
		templateID, err := uuid.Parse(key)
		if err != nil {
			logger.Warn("Skipping checklist status with invalid template id", "entry_id", entryID.String(), "template_id", key)
			continue
		}

		err = entryRepo.SetStatus(ctx, entryID, templateID, checked)
		var notFound entry.ErrStatusNotFound
		if errors.As(err, &notFound) {
			logger.Warn("Skipping checklist status the entry does not have", "entry_id", entryID.String(), "template_id", key)
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// DeleteEntry deletes the entry, letting its statuses and attachments cascade, then
// removes its uploaded files
func (s *EntryServiceImpl) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	logger := requestLogger(ctx, s.logger)

	files, err := s.attachmentRepo.FilePathsByEntry(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		entryRepo := s.entryRepo.WithTx(tx)
		e, err := entryRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := entryRepo.Delete(ctx, id); err != nil {
			return err
		}
		event := newEvent(ctx, shared.EventEntryDeleted, e.JournalID).ForEntry(id)
		return recordEvent(ctx, logger, s.outboxRepo.WithTx(tx), event)
	})
	if err != nil {
		return err
	}

	if len(files) > 0 {
		s.files.RemoveAll(files)
	}
	logger.Info("Entry deleted", "entry_id", id.String(), "files_removed", len(files))
	return nil
}

func (s *EntryServiceImpl) SetChecklistStatus(ctx context.Context, entryID, templateID uuid.UUID, checked bool) error {
	logger := requestLogger(ctx, s.logger)

	err := s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		entryRepo := s.entryRepo.WithTx(tx)
		e, err := entryRepo.GetByID(ctx, entryID)
		if err != nil {
			return err
		}
		if err := entryRepo.SetStatus(ctx, entryID, templateID, checked); err != nil {
			return err
		}
		event := newEvent(ctx, shared.EventChecklistUpdated, e.JournalID).ForEntry(entryID)
		return recordEvent(ctx, logger, s.outboxRepo.WithTx(tx), event)
	})
	if err != nil {
		return err
	}

	logger.Info("Checklist status updated",
		"entry_id", entryID.String(),
		"template_id", templateID.String(),
		"checked", checked,
	)
	return nil
}
