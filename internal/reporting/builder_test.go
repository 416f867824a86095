package reporting

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trading-journal-backend/internal/domain/entry"
	"github.com/trading-journal-backend/internal/domain/journal"
	"github.com/trading-journal-backend/internal/mocks"
)

func newTestBuilder() (*Builder, *mocks.JournalRepository, *mocks.TemplateRepository, *mocks.EntryRepository) {
	journalRepo := new(mocks.JournalRepository)
	templateRepo := new(mocks.TemplateRepository)
	entryRepo := new(mocks.EntryRepository)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewBuilder(logger, journalRepo, templateRepo, entryRepo), journalRepo, templateRepo, entryRepo
}

func TestBuilder_Build(t *testing.T) {
	ctx := context.Background()
	journalID := uuid.New()
	j := &journal.Journal{ID: journalID, Name: "Futures"}

	t.Run("ComposesReport", func(t *testing.T) {
		builder, journalRepo, templateRepo, entryRepo := newTestBuilder()
		templateID := uuid.New()
		entries := []entry.Entry{
			{ID: uuid.New(), JournalID: journalID, Result: entry.ResultWin, PnL: entry.NumericFromText("100")},
			{ID: uuid.New(), JournalID: journalID, Result: entry.ResultLoss, PnL: entry.NumericFromText("-50")},
		}
		templates := []journal.ChecklistTemplate{{ID: templateID, JournalID: journalID, Text: "Plan", Order: 0}}
		statuses := []entry.ChecklistStatus{
			{EntryID: entries[0].ID, TemplateID: templateID, Checked: true},
			{EntryID: entries[1].ID, TemplateID: templateID, Checked: false},
		}

		journalRepo.On("GetByID", ctx, journalID).Return(j, nil).Once()
		entryRepo.On("ListByJournal", ctx, journalID).Return(entries, nil).Once()
		templateRepo.On("ListByJournal", ctx, journalID).Return(templates, nil).Once()
		entryRepo.On("ListStatusesByJournal", ctx, journalID).Return(statuses, nil).Once()

		report, err := builder.Build(ctx, journalID)

		require.NoError(t, err)
		require.NotNil(t, report)
		assert.Equal(t, "Futures", report.JournalName)
		assert.Equal(t, 2, report.TotalTrades)
		require.Len(t, report.ChecklistUsage, 1)
		assert.Equal(t, 1, report.ChecklistUsage[0].CheckedCount)

		journalRepo.AssertExpectations(t)
		templateRepo.AssertExpectations(t)
		entryRepo.AssertExpectations(t)
	})

	t.Run("NoEntries", func(t *testing.T) {
		builder, journalRepo, templateRepo, entryRepo := newTestBuilder()
		journalRepo.On("GetByID", ctx, journalID).Return(j, nil).Once()
		entryRepo.On("ListByJournal", ctx, journalID).Return([]entry.Entry{}, nil).Once()

		report, err := builder.Build(ctx, journalID)

		assert.NoError(t, err)
		assert.Nil(t, report)
		templateRepo.AssertNotCalled(t, "ListByJournal", mock.Anything, mock.Anything)
	})

	t.Run("JournalNotFound", func(t *testing.T) {
		builder, journalRepo, _, entryRepo := newTestBuilder()
		journalRepo.On("GetByID", ctx, journalID).Return(nil, journal.ErrJournalNotFound{JournalID: journalID}).Once()

		report, err := builder.Build(ctx, journalID)

		assert.Nil(t, report)
		assert.ErrorIs(t, err, journal.ErrJournalNotFound{})
		entryRepo.AssertNotCalled(t, "ListByJournal", mock.Anything, mock.Anything)
	})

	t.Run("StatusLoadFailure", func(t *testing.T) {
		builder, journalRepo, templateRepo, entryRepo := newTestBuilder()
		dbErr := errors.New("connection reset")
		journalRepo.On("GetByID", ctx, journalID).Return(j, nil).Once()
		entryRepo.On("ListByJournal", ctx, journalID).Return([]entry.Entry{{ID: uuid.New()}}, nil).Once()
		templateRepo.On("ListByJournal", ctx, journalID).Return([]journal.ChecklistTemplate{}, nil).Once()
		entryRepo.On("ListStatusesByJournal", ctx, journalID).Return(nil, dbErr).Once()

		report, err := builder.Build(ctx, journalID)

		assert.Nil(t, report)
		assert.ErrorIs(t, err, dbErr)
	})
}
