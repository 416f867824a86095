package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trading-journal-backend/internal/domain/entry"
	"github.com/trading-journal-backend/internal/domain/journal"
	"github.com/trading-journal-backend/internal/domain/snapshot"
	"github.com/trading-journal-backend/internal/domain/statistics"
	"github.com/trading-journal-backend/internal/journal_api/service"
)

type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) ListJournals(ctx context.Context) ([]*journal.Journal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*journal.Journal), args.Error(1)
}

func (m *MockJournalService) CreateJournal(ctx context.Context, name, description string, settings journal.Settings, templateTexts []string) (*service.JournalDetails, error) {
	args := m.Called(ctx, name, description, settings, templateTexts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.JournalDetails), args.Error(1)
}

func (m *MockJournalService) GetJournal(ctx context.Context, id uuid.UUID) (*service.JournalDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.JournalDetails), args.Error(1)
}

func (m *MockJournalService) UpdateJournal(ctx context.Context, id uuid.UUID, update journal.Update) (*service.JournalDetails, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.JournalDetails), args.Error(1)
}

func (m *MockJournalService) DeleteJournal(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockTemplateService struct {
	mock.Mock
}

func (m *MockTemplateService) ListTemplates(ctx context.Context, journalID uuid.UUID) ([]journal.ChecklistTemplate, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]journal.ChecklistTemplate), args.Error(1)
}

func (m *MockTemplateService) AddTemplate(ctx context.Context, journalID uuid.UUID, text string) (*journal.ChecklistTemplate, error) {
	args := m.Called(ctx, journalID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.ChecklistTemplate), args.Error(1)
}

func (m *MockTemplateService) UpdateTemplate(ctx context.Context, id uuid.UUID, text string) (*journal.ChecklistTemplate, error) {
	args := m.Called(ctx, id, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.ChecklistTemplate), args.Error(1)
}

func (m *MockTemplateService) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) ListEntries(ctx context.Context, journalID uuid.UUID) ([]entry.Entry, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entry.Entry), args.Error(1)
}

func (m *MockEntryService) CreateEntry(ctx context.Context, journalID uuid.UUID, input entry.Entry, checklist map[string]bool) (*service.EntryDetails, error) {
	args := m.Called(ctx, journalID, input, checklist)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EntryDetails), args.Error(1)
}

func (m *MockEntryService) GetEntry(ctx context.Context, id uuid.UUID) (*service.EntryDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EntryDetails), args.Error(1)
}

func (m *MockEntryService) UpdateEntry(ctx context.Context, id uuid.UUID, patch map[string]json.RawMessage) (*service.EntryDetails, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EntryDetails), args.Error(1)
}

func (m *MockEntryService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockEntryService) SetChecklistStatus(ctx context.Context, entryID, templateID uuid.UUID, checked bool) error {
	return m.Called(ctx, entryID, templateID, checked).Error(0)
}

type MockAttachmentService struct {
	mock.Mock
}

func (m *MockAttachmentService) UploadImage(ctx context.Context, entryID uuid.UUID, filename string, content io.Reader, category entry.Category) (*entry.Attachment, error) {
	args := m.Called(ctx, entryID, filename, content, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entry.Attachment), args.Error(1)
}

func (m *MockAttachmentService) AddLink(ctx context.Context, entryID uuid.UUID, link string, category entry.Category) (*entry.Attachment, error) {
	args := m.Called(ctx, entryID, link, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entry.Attachment), args.Error(1)
}

func (m *MockAttachmentService) DeleteAttachment(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockStrategyService struct {
	mock.Mock
}

func (m *MockStrategyService) ListStrategies(ctx context.Context) ([]*journal.Strategy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*journal.Strategy), args.Error(1)
}

func (m *MockStrategyService) AddStrategy(ctx context.Context, name string) (*journal.Strategy, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*journal.Strategy), args.Error(1)
}

type MockStatisticsService struct {
	mock.Mock
}

func (m *MockStatisticsService) GetStatistics(ctx context.Context, journalID uuid.UUID) (*statistics.Report, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*statistics.Report), args.Error(1)
}

func (m *MockStatisticsService) GetStatisticsHistory(ctx context.Context, journalID uuid.UUID, page, perPage int) ([]*snapshot.Snapshot, int64, error) {
	args := m.Called(ctx, journalID, page, perPage)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*snapshot.Snapshot), args.Get(1).(int64), args.Error(2)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// decodeResponse unmarshals the envelope and, when target is non-nil, its data field
func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder, target interface{}) Response {
	t.Helper()
	var envelope struct {
		Data          json.RawMessage `json:"data"`
		Error         *ErrorInfo      `json:"error"`
		CorrelationID string          `json:"correlation_id"`
		Meta          *MetaInfo       `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	if target != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, target))
	}
	return Response{Error: envelope.Error, CorrelationID: envelope.CorrelationID, Meta: envelope.Meta}
}
