// Package mocks provides testify mocks of the repository and messaging interfaces
// shared by the service tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/trading-journal-backend/internal/domain/entry"
	"github.com/trading-journal-backend/internal/domain/journal"
	"github.com/trading-journal-backend/internal/domain/outbox"
	"github.com/trading-journal-backend/internal/domain/shared"
	"github.com/trading-journal-backend/internal/domain/snapshot"
)

// TxRunner runs the callback without a database; repositories mocked below ignore the tx
type TxRunner struct {
	Err error
}

func (r *TxRunner) ExecuteTx(_ context.Context, fn func(tx pgx.Tx) error) error {
	if r.Err != nil {
		return r.Err
	}
	return fn(nil)
}

type JournalRepository struct {
	mock.Mock
}

func (m *JournalRepository) Create(ctx context.Context, j *journal.Journal) error {
	return m.Called(ctx, j).Error(0)
}

func (m *JournalRepository) GetByID(ctx context.Context, id uuid.UUID) (*journal.Journal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.Journal), args.Error(1)
}

func (m *JournalRepository) List(ctx context.Context) ([]*journal.Journal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*journal.Journal), args.Error(1)
}

func (m *JournalRepository) Update(ctx context.Context, j *journal.Journal) error {
	return m.Called(ctx, j).Error(0)
}

func (m *JournalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *JournalRepository) WithTx(_ pgx.Tx) journal.Repository {
	return m
}

type TemplateRepository struct {
	mock.Mock
}

func (m *TemplateRepository) Create(ctx context.Context, t *journal.ChecklistTemplate) error {
	return m.Called(ctx, t).Error(0)
}

func (m *TemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*journal.ChecklistTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.ChecklistTemplate), args.Error(1)
}

func (m *TemplateRepository) ListByJournal(ctx context.Context, journalID uuid.UUID) ([]journal.ChecklistTemplate, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]journal.ChecklistTemplate), args.Error(1)
}

func (m *TemplateRepository) UpdateText(ctx context.Context, id uuid.UUID, text string) error {
	return m.Called(ctx, id, text).Error(0)
}

func (m *TemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *TemplateRepository) WithTx(_ pgx.Tx) journal.TemplateRepository {
	return m
}

type StrategyRepository struct {
	mock.Mock
}

func (m *StrategyRepository) List(ctx context.Context) ([]*journal.Strategy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*journal.Strategy), args.Error(1)
}

func (m *StrategyRepository) Ensure(ctx context.Context, name string) (*journal.Strategy, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.Strategy), args.Error(1)
}

func (m *StrategyRepository) WithTx(_ pgx.Tx) journal.StrategyRepository {
	return m
}

type EntryRepository struct {
	mock.Mock
}

func (m *EntryRepository) Create(ctx context.Context, e *entry.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *EntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entry.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entry.Entry), args.Error(1)
}

func (m *EntryRepository) ListByJournal(ctx context.Context, journalID uuid.UUID) ([]entry.Entry, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entry.Entry), args.Error(1)
}

func (m *EntryRepository) Update(ctx context.Context, e *entry.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *EntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *EntryRepository) CreateStatuses(ctx context.Context, statuses []entry.ChecklistStatus) error {
	return m.Called(ctx, statuses).Error(0)
}

func (m *EntryRepository) SetStatus(ctx context.Context, entryID, templateID uuid.UUID, checked bool) error {
	return m.Called(ctx, entryID, templateID, checked).Error(0)
}

func (m *EntryRepository) ListChecklist(ctx context.Context, entryID uuid.UUID) ([]entry.ChecklistItem, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entry.ChecklistItem), args.Error(1)
}

func (m *EntryRepository) ListStatusesByJournal(ctx context.Context, journalID uuid.UUID) ([]entry.ChecklistStatus, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entry.ChecklistStatus), args.Error(1)
}

func (m *EntryRepository) WithTx(_ pgx.Tx) entry.Repository {
	return m
}

type AttachmentRepository struct {
	mock.Mock
}

func (m *AttachmentRepository) Create(ctx context.Context, a *entry.Attachment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *AttachmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entry.Attachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entry.Attachment), args.Error(1)
}

func (m *AttachmentRepository) ListByEntry(ctx context.Context, entryID uuid.UUID) ([]*entry.Attachment, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entry.Attachment), args.Error(1)
}

func (m *AttachmentRepository) FilePathsByEntry(ctx context.Context, entryID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *AttachmentRepository) FilePathsByJournal(ctx context.Context, journalID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *AttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type OutboxRepository struct {
	mock.Mock
}

func (m *OutboxRepository) Create(ctx context.Context, message *outbox.Message) error {
	return m.Called(ctx, message).Error(0)
}

func (m *OutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *OutboxRepository) UpdateStatus(ctx context.Context, id int64, status shared.OutboxStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *OutboxRepository) IncrementAttempts(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *OutboxRepository) WithTx(_ pgx.Tx) outbox.Repository {
	return m
}

type SnapshotRepository struct {
	mock.Mock
}

func (m *SnapshotRepository) Create(ctx context.Context, s *snapshot.Snapshot) error {
	return m.Called(ctx, s).Error(0)
}

func (m *SnapshotRepository) GetByEventID(ctx context.Context, eventID uuid.UUID) (*snapshot.Snapshot, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*snapshot.Snapshot), args.Error(1)
}

func (m *SnapshotRepository) ListByJournal(ctx context.Context, journalID uuid.UUID, limit, offset int) ([]*snapshot.Snapshot, error) {
	args := m.Called(ctx, journalID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*snapshot.Snapshot), args.Error(1)
}

func (m *SnapshotRepository) CountByJournal(ctx context.Context, journalID uuid.UUID) (int64, error) {
	args := m.Called(ctx, journalID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *SnapshotRepository) DeleteByJournal(ctx context.Context, journalID uuid.UUID) (int64, error) {
	args := m.Called(ctx, journalID)
	return args.Get(0).(int64), args.Error(1)
}

var (
	_ journal.Repository         = (*JournalRepository)(nil)
	_ journal.TemplateRepository = (*TemplateRepository)(nil)
	_ journal.StrategyRepository = (*StrategyRepository)(nil)
	_ entry.Repository           = (*EntryRepository)(nil)
	_ entry.AttachmentRepository = (*AttachmentRepository)(nil)
	_ outbox.Repository          = (*OutboxRepository)(nil)
	_ snapshot.Repository        = (*SnapshotRepository)(nil)
)
