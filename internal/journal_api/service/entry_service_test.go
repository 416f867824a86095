package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trading-journal-backend/internal/domain/entry"
	"github.com/trading-journal-backend/internal/domain/journal"
	"github.com/trading-journal-backend/internal/domain/shared"
	"github.com/trading-journal-backend/internal/mocks"
)

type entryServiceFixture struct {
	journals    *mocks.JournalRepository
	templates   *mocks.TemplateRepository
	strategies  *mocks.StrategyRepository
	entries     *mocks.EntryRepository
	attachments *mocks.AttachmentRepository
	outbox      *mocks.OutboxRepository
	files       *mocks.FileStore
	service     EntryService
}

func newEntryServiceFixture() *entryServiceFixture {
	f := &entryServiceFixture{
		journals:    new(mocks.JournalRepository),
		templates:   new(mocks.TemplateRepository),
		strategies:  new(mocks.StrategyRepository),
		entries:     new(mocks.EntryRepository),
		attachments: new(mocks.AttachmentRepository),
		outbox:      new(mocks.OutboxRepository),
		files:       new(mocks.FileStore),
	}
	f.service = NewEntryService(newTestLogger(), &mocks.TxRunner{}, EntryRepositories{
		Journals:    f.journals,
		Templates:   f.templates,
		Strategies:  f.strategies,
		Entries:     f.entries,
		Attachments: f.attachments,
		Outbox:      f.outbox,
	}, f.files)
	return f
}

func TestEntryServiceImpl_CreateEntry(t *testing.T) {
	ctx := context.Background()
	journalID := uuid.New()
	planID, stopID := uuid.New(), uuid.New()
	templates := []journal.ChecklistTemplate{
		{ID: planID, JournalID: journalID, Text: "Plan", Order: 0},
		{ID: stopID, JournalID: journalID, Text: "Stop set", Order: 1},
	}

	t.Run("SeedsStatusesAndRegistersStrategy", func(t *testing.T) {
		f := newEntryServiceFixture()
		f.journals.On("GetByID", ctx, journalID).Return(&journal.Journal{ID: journalID}, nil).Once()
		f.templates.On("ListByJournal", ctx, journalID).Return(templates, nil).Once()
		f.entries.On("Create", ctx, mock.AnythingOfType("*entry.Entry")).Return(nil).Once()
		f.entries.On("CreateStatuses", ctx, mock.MatchedBy(func(statuses []entry.ChecklistStatus) bool {
			return len(statuses) == 2 && statuses[0].TemplateID == planID && statuses[0].Checked &&
				statuses[1].TemplateID == stopID && !statuses[1].Checked
		})).Return(nil).Once()
		f.strategies.On("Ensure", ctx, "Breakout").Return(&journal.Strategy{ID: uuid.New(), Name: "Breakout"}, nil).Once()
		f.outbox.On("Create", ctx, eventFor(shared.EventEntryCreated, journalID)).Return(nil).Once()

		details, err := f.service.CreateEntry(ctx, journalID, entry.Entry{
			Symbol:   "EURUSD",
			Strategy: " Breakout ",
			Result:   entry.ResultWin,
		}, map[string]bool{planID.String(): true})

		require.NoError(t, err)
		assert.Equal(t, journalID, details.JournalID)
		require.Len(t, details.Checklist, 2)
		assert.Equal(t, "Plan", details.Checklist[0].Text)
		assert.True(t, details.Checklist[0].Checked)
		assert.False(t, details.Checklist[1].Checked)
		assert.NotNil(t, details.Attachments)
		f.entries.AssertExpectations(t)
		f.strategies.AssertExpectations(t)
		f.outbox.AssertExpectations(t)
	})

	t.Run("NoStrategySkipsRegistry", func(t *testing.T) {
		f := newEntryServiceFixture()
		f.journals.On("GetByID", ctx, journalID).Return(&journal.Journal{ID: journalID}, nil).Once()
		f.templates.On("ListByJournal", ctx, journalID).Return([]journal.ChecklistTemplate{}, nil).Once()
		f.entries.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.entries.On("CreateStatuses", ctx, []entry.ChecklistStatus{}).Return(nil).Once()
		f.outbox.On("Create", ctx, mock.Anything).Return(nil).Once()

		_, err := f.service.CreateEntry(ctx, journalID, entry.Entry{}, nil)

		require.NoError(t, err)
		f.strategies.AssertNotCalled(t, "Ensure", mock.Anything, mock.Anything)
	})

	t.Run("JournalNotFound", func(t *testing.T) {
		f := newEntryServiceFixture()
		f.journals.On("GetByID", ctx, journalID).Return(nil, journal.ErrJournalNotFound{JournalID: journalID}).Once()

		_, err := f.service.CreateEntry(ctx, journalID, entry.Entry{}, nil)

		assert.ErrorIs(t, err, journal.ErrJournalNotFound{})
	})

	t.Run("InvalidEntry", func(t *testing.T) {
		f := newEntryServiceFixture()
		f.journals.On("GetByID", ctx, journalID).Return(&journal.Journal{ID: journalID}, nil).Once()

		_, err := f.service.CreateEntry(ctx, journalID, entry.Entry{PositionType: "Flat"}, nil)

		assert.ErrorIs(t, err, entry.ErrInvalidPositionType)
		f.entries.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestEntryServiceImpl_UpdateEntry(t *testing.T) {
	ctx := context.Background()
	journalID, entryID := uuid.New(), uuid.New()
	knownTemplate, unknownTemplate := uuid.New(), uuid.New()

	patch := func(t *testing.T, body string) map[string]json.RawMessage {
		var p map[string]json.RawMessage
		require.NoError(t, json.Unmarshal([]byte(body), &p))
		return p
	}

	t.Run("UpdatesFieldsAndExistingStatuses", func(t *testing.T) {
		f := newEntryServiceFixture()
		stored := &entry.Entry{ID: entryID, JournalID: journalID, Symbol: "EURUSD", Result: entry.ResultLoss}
		body := `{"result":"Win","strategy":"Scalp","checklist_statuses":{"` + knownTemplate.String() + `":true,"` +
			unknownTemplate.String() + `":true,"not-a-uuid":false}}`

		f.entries.On("GetByID", ctx, entryID).Return(stored, nil).Twice()
		f.entries.On("Update", ctx, mock.MatchedBy(func(e *entry.Entry) bool {
			return e.Result == entry.ResultWin && e.Strategy == "Scalp" && e.Symbol == "EURUSD"
		})).Return(nil).Once()
		f.strategies.On("Ensure", ctx, "Scalp").Return(&journal.Strategy{Name: "Scalp"}, nil).Once()
		f.entries.On("SetStatus", ctx, entryID, knownTemplate, true).Return(nil).Once()
		f.entries.On("SetStatus", ctx, entryID, unknownTemplate, true).
			Return(entry.ErrStatusNotFound{EntryID: entryID, TemplateID: unknownTemplate}).Once()
		f.outbox.On("Create", ctx, eventFor(shared.EventEntryUpdated, journalID)).Return(nil).Once()
		f.entries.On("ListChecklist", ctx, entryID).Return([]entry.ChecklistItem{}, nil).Once()
		f.attachments.On("ListByEntry", ctx, entryID).Return([]*entry.Attachment{}, nil).Once()

		details, err := f.service.UpdateEntry(ctx, entryID, patch(t, body))

		require.NoError(t, err)
		assert.Equal(t, entry.ResultWin, details.Result)
		f.entries.AssertExpectations(t)
		f.strategies.AssertExpectations(t)
		f.outbox.AssertExpectations(t)
	})

	t.Run("EmptyPatch", func(t *testing.T) {
		f := newEntryServiceFixture()

		_, err := f.service.UpdateEntry(ctx, entryID, map[string]json.RawMessage{})

		assert.ErrorIs(t, err, ErrEmptyUpdate)
	})

	t.Run("MalformedChecklist", func(t *testing.T) {
		f := newEntryServiceFixture()

		_, err := f.service.UpdateEntry(ctx, entryID, patch(t, `{"checklist_statuses":[true]}`))

		assert.ErrorIs(t, err, entry.ErrInvalidPatch)
		f.entries.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("InvalidValue", func(t *testing.T) {
		f := newEntryServiceFixture()
		f.entries.On("GetByID", ctx, entryID).Return(&entry.Entry{ID: entryID, JournalID: journalID}, nil).Once()

		_, err := f.service.UpdateEntry(ctx, entryID, patch(t, `{"result":"Draw"}`))

		assert.ErrorIs(t, err, entry.ErrInvalidResult)
		f.entries.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestEntryServiceImpl_GetEntry(t *testing.T) {
	ctx := context.Background()
	entryID := uuid.New()

	f := newEntryServiceFixture()
	stored := &entry.Entry{ID: entryID}
	checklist := []entry.ChecklistItem{{TemplateID: uuid.New(), Text: "Plan", Checked: true}}
	attachments := []*entry.Attachment{{ID: uuid.New(), EntryID: entryID, Kind: entry.AttachmentKindLink}}
	f.entries.On("GetByID", ctx, entryID).Return(stored, nil).Once()
	f.entries.On("ListChecklist", ctx, entryID).Return(checklist, nil).Once()
	f.attachments.On("ListByEntry", ctx, entryID).Return(attachments, nil).Once()

	details, err := f.service.GetEntry(ctx, entryID)

	require.NoError(t, err)
	assert.Equal(t, stored, details.Entry)
	assert.Equal(t, checklist, details.Checklist)
	assert.Equal(t, attachments, details.Attachments)
}

func TestEntryServiceImpl_DeleteEntry(t *testing.T) {
	ctx := context.Background()
	journalID, entryID := uuid.New(), uuid.New()

	t.Run("Success", func(t *testing.T) {
		f := newEntryServiceFixture()
		files := []string{"1234abcd_before.png"}
		f.attachments.On("FilePathsByEntry", ctx, entryID).Return(files, nil).Once()
		f.entries.On("GetByID", ctx, entryID).Return(&entry.Entry{ID: entryID, JournalID: journalID}, nil).Once()
		f.entries.On("Delete", ctx, entryID).Return(nil).Once()
		f.outbox.On("Create", ctx, eventFor(shared.EventEntryDeleted, journalID)).Return(nil).Once()
		f.files.On("RemoveAll", files).Once()

		require.NoError(t, f.service.DeleteEntry(ctx, entryID))
		f.files.AssertExpectations(t)
		f.outbox.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newEntryServiceFixture()
		f.attachments.On("FilePathsByEntry", ctx, entryID).Return([]string{}, nil).Once()
		f.entries.On("GetByID", ctx, entryID).Return(nil, entry.ErrEntryNotFound{EntryID: entryID}).Once()

		err := f.service.DeleteEntry(ctx, entryID)

		assert.ErrorIs(t, err, entry.ErrEntryNotFound{})
		f.files.AssertNotCalled(t, "RemoveAll", mock.Anything)
	})
}

func TestEntryServiceImpl_SetChecklistStatus(t *testing.T) {
	ctx := context.Background()
	journalID, entryID, templateID := uuid.New(), uuid.New(), uuid.New()

	t.Run("Success", func(t *testing.T) {
		f := newEntryServiceFixture()
		f.entries.On("GetByID", ctx, entryID).Return(&entry.Entry{ID: entryID, JournalID: journalID}, nil).Once()
		f.entries.On("SetStatus", ctx, entryID, templateID, true).Return(nil).Once()
		f.outbox.On("Create", ctx, eventFor(shared.EventChecklistUpdated, journalID)).Return(nil).Once()

		require.NoError(t, f.service.SetChecklistStatus(ctx, entryID, templateID, true))
		f.outbox.AssertExpectations(t)
	})

	t.Run("StatusNotFound", func(t *testing.T) {
		f := newEntryServiceFixture()
		f.entries.On("GetByID", ctx, entryID).Return(&entry.Entry{ID: entryID, JournalID: journalID}, nil).Once()
		f.entries.On("SetStatus", ctx, entryID, templateID, false).
			Return(entry.ErrStatusNotFound{EntryID: entryID, TemplateID: templateID}).Once()

		err := f.service.SetChecklistStatus(ctx, entryID, templateID, false)

		var notFound entry.ErrStatusNotFound
		assert.ErrorAs(t, err, &notFound)
		f.outbox.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestEntryServiceImpl_ListEntries(t *testing.T) {
	ctx := context.Background()
	journalID := uuid.New()
	f := newEntryServiceFixture()
	entries := []entry.Entry{{ID: uuid.New(), JournalID: journalID}}
	f.journals.On("GetByID", ctx, journalID).Return(&journal.Journal{ID: journalID}, nil).Once()
	f.entries.On("ListByJournal", ctx, journalID).Return(entries, nil).Once()

	result, err := f.service.ListEntries(ctx, journalID)

	require.NoError(t, err)
	assert.Equal(t, entries, result)
}
