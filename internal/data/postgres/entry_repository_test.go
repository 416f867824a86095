package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trading-journal-backend/internal/domain/entry"
)

var entryColumnNames = []string{"id", "journal_id", "entry_date", "end_date", "symbol", "position_type",
	"strategy", "initial_rr", "risk_percentage", "pnl", "result", "confidence_level", "trade_rating", "notes",
	"stop_loss", "take_profit", "custom_field_value", "emotion", "created_at", "updated_at"}

func strPtr(s string) *string { return &s }

func sampleEntry() *entry.Entry {
	confidence := 70
	now := time.Now().UTC()
	return &entry.Entry{
		ID:              uuid.New(),
		JournalID:       uuid.New(),
		EntryDate:       "2024-03-04T09:30:00Z",
		Symbol:          "EURUSD",
		PositionType:    entry.PositionLong,
		Strategy:        "Breakout",
		InitialRR:       entry.NumericFromText("2.5"),
		PnL:             entry.NumericFromText("120.50"),
		Result:          entry.ResultWin,
		ConfidenceLevel: &confidence,
		StopLoss:        entry.NumericFromText("n/a"),
		Emotion:         "Calm",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestEntryRepository_Create(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &EntryRepository{querier: mock, logger: newTestLogger()}
	e := sampleEntry()
	query := regexp.QuoteMeta("INSERT INTO entries")
	args := []interface{}{e.ID, e.JournalID, e.EntryDate, "", "EURUSD", "Long", "Breakout",
		strPtr("2.5"), (*string)(nil), strPtr("120.50"), "Win", e.ConfidenceLevel, (*string)(nil), "",
		strPtr("n/a"), (*string)(nil), "", "Calm", e.CreatedAt, e.UpdatedAt}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(args...).WillReturnResult(pgxmock.NewResult("INSERT", 1))

		assert.NoError(t, repo.Create(ctx, e))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		expectedErr := errors.New("db error")
		mock.ExpectExec(query).WithArgs(args...).WillReturnError(expectedErr)

		err := repo.Create(ctx, e)
		assert.ErrorIs(t, err, expectedErr)
		assert.Contains(t, err.Error(), "failed to create entry")
	})
}

func TestEntryRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &EntryRepository{querier: mock, logger: newTestLogger()}
	e := sampleEntry()
	query := regexp.QuoteMeta("SELECT id, journal_id, entry_date")

	t.Run("success keeps raw numeric text", func(t *testing.T) {
		rows := pgxmock.NewRows(entryColumnNames).AddRow(
			e.ID, e.JournalID, e.EntryDate, "", "EURUSD", "Long", "Breakout",
			strPtr("2.5"), nil, strPtr("120.50"), "Win", e.ConfidenceLevel, nil, "",
			strPtr("n/a"), nil, "", "Calm", e.CreatedAt, e.UpdatedAt,
		)
		mock.ExpectQuery(query).WithArgs(e.ID).WillReturnRows(rows)

		got, err := repo.GetByID(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, e, got)

		raw, ok := got.StopLoss.Raw()
		assert.True(t, ok)
		assert.Equal(t, "n/a", raw)
		assert.False(t, got.TakeProfit.IsSet())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(e.ID).WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetByID(ctx, e.ID)
		assert.ErrorIs(t, err, entry.ErrEntryNotFound{EntryID: e.ID})
	})
}

func TestEntryRepository_ListByJournal(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &EntryRepository{querier: mock, logger: newTestLogger()}
	journalID := uuid.New()
	now := time.Now().UTC()
	query := regexp.QuoteMeta("SELECT id, journal_id, entry_date")

	t.Run("success", func(t *testing.T) {
		rows := pgxmock.NewRows(entryColumnNames).
			AddRow(uuid.New(), journalID, "2024-03-05", "", "BTC", "Short", "", nil, nil, strPtr("-40"),
				"Loss", nil, nil, "", nil, nil, "", "", now, now).
			AddRow(uuid.New(), journalID, "2024-03-04", "", "ETH", "", "", nil, nil, nil,
				"", nil, nil, "", nil, nil, "", "", now, now)
		mock.ExpectQuery(query).WithArgs(journalID).WillReturnRows(rows)

		entries, err := repo.ListByJournal(ctx, journalID)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, entry.ResultLoss, entries[0].Result)
		assert.Equal(t, entry.PositionShort, entries[0].PositionType)
		assert.Nil(t, entries[0].ConfidenceLevel)
		assert.Equal(t, entry.Result(""), entries[1].Result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(journalID).WillReturnError(errors.New("db error"))

		_, err := repo.ListByJournal(ctx, journalID)
		assert.ErrorContains(t, err, "failed to list entries")
	})
}

func TestEntryRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &EntryRepository{querier: mock, logger: newTestLogger()}
	e := sampleEntry()
	args := []interface{}{e.EntryDate, "", "EURUSD", "Long", "Breakout", strPtr("2.5"), (*string)(nil),
		strPtr("120.50"), "Win", e.ConfidenceLevel, (*string)(nil), "", strPtr("n/a"), (*string)(nil), "",
		"Calm", e.UpdatedAt, e.ID}

	t.Run("update", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE entries")).WithArgs(args...).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		assert.NoError(t, repo.Update(ctx, e))
	})

	t.Run("update missing", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE entries")).WithArgs(args...).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		assert.ErrorIs(t, repo.Update(ctx, e), entry.ErrEntryNotFound{})
	})

	t.Run("delete", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM entries")).WithArgs(e.ID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		assert.NoError(t, repo.Delete(ctx, e.ID))
	})

	t.Run("delete missing", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM entries")).WithArgs(e.ID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		assert.ErrorIs(t, repo.Delete(ctx, e.ID), entry.ErrEntryNotFound{EntryID: e.ID})
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepository_Statuses(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &EntryRepository{querier: mock, logger: newTestLogger()}
	entryID, first, second := uuid.New(), uuid.New(), uuid.New()

	t.Run("create in one statement", func(t *testing.T) {
		statuses := entry.SeedStatuses(entryID, []uuid.UUID{first, second}, map[string]bool{first.String(): true})
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO checklist_statuses")).
			WithArgs(
				[]string{entryID.String(), entryID.String()},
				[]string{first.String(), second.String()},
				[]bool{true, false},
			).
			WillReturnResult(pgxmock.NewResult("INSERT", 2))

		assert.NoError(t, repo.CreateStatuses(ctx, statuses))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create nothing", func(t *testing.T) {
		assert.NoError(t, repo.CreateStatuses(ctx, nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("set status", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE checklist_statuses")).
			WithArgs(true, entryID, first).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		assert.NoError(t, repo.SetStatus(ctx, entryID, first, true))
	})

	t.Run("set status never creates", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE checklist_statuses")).
			WithArgs(false, entryID, second).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.SetStatus(ctx, entryID, second, false)
		assert.Equal(t, entry.ErrStatusNotFound{EntryID: entryID, TemplateID: second}, err)
	})

	t.Run("list checklist", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT t.id, t.text, t.sort_order, s.checked")).
			WithArgs(entryID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "text", "sort_order", "checked"}).
				AddRow(first, "Plan written", 0, true).
				AddRow(second, "Risk under 1%", 1, false))

		items, err := repo.ListChecklist(ctx, entryID)
		require.NoError(t, err)
		assert.Equal(t, []entry.ChecklistItem{
			{TemplateID: first, Text: "Plan written", Order: 0, Checked: true},
			{TemplateID: second, Text: "Risk under 1%", Order: 1, Checked: false},
		}, items)
	})

	t.Run("list by journal", func(t *testing.T) {
		journalID := uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT s.entry_id, s.template_id, s.checked")).
			WithArgs(journalID).
			WillReturnRows(pgxmock.NewRows([]string{"entry_id", "template_id", "checked"}).
				AddRow(entryID, first, true))

		statuses, err := repo.ListStatusesByJournal(ctx, journalID)
		require.NoError(t, err)
		assert.Equal(t, []entry.ChecklistStatus{{EntryID: entryID, TemplateID: first, Checked: true}}, statuses)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
