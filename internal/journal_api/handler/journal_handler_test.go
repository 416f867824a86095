package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trading-journal-backend/internal/domain/journal"
	"github.com/trading-journal-backend/internal/journal_api/service"
)

func newJournalFixture() *journal.Journal {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &journal.Journal{
		ID:          uuid.New(),
		Name:        "Forex",
		Description: "Majors only",
		Settings:    journal.Settings{HasEmotions: true},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func newJournalHandlerForTest() (*JournalHandler, *MockJournalService, *MockTemplateService) {
	journalService := new(MockJournalService)
	templateService := new(MockTemplateService)
	return NewJournalHandler(testLogger(), journalService, templateService), journalService, templateService
}

func TestJournalHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		h, journalService, _ := newJournalHandlerForTest()
		j := newJournalFixture()
		templates := []journal.ChecklistTemplate{
			{ID: uuid.New(), JournalID: j.ID, Text: "Trend aligned", Order: 0},
			{ID: uuid.New(), JournalID: j.ID, Text: "News checked", Order: 1},
		}
		journalService.On("CreateJournal", mock.Anything, "Forex", "Majors only",
			journal.Settings{HasEmotions: true}, []string{"Trend aligned", "News checked"}).
			Return(&service.JournalDetails{Journal: j, Templates: templates}, nil)

		router := setupTestRouter()
		router.POST("/journals", h.Create)

		body := `{"name":"Forex","description":"Majors only","has_emotions":true,"checklist_templates":["Trend aligned","News checked"]}`
		req, _ := http.NewRequest(http.MethodPost, "/journals", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var response JournalResponse
		decodeResponse(t, rr, &response)
		assert.Equal(t, j.ID.String(), response.ID)
		assert.True(t, response.HasEmotions)
		assert.Equal(t, []string{}, response.CustomFieldOptions)
		require.Len(t, response.ChecklistTemplates, 2)
		assert.Equal(t, "Trend aligned", response.ChecklistTemplates[0].Text)
		journalService.AssertExpectations(t)
	})

	t.Run("MissingName", func(t *testing.T) {
		h, journalService, _ := newJournalHandlerForTest()
		router := setupTestRouter()
		router.POST("/journals", h.Create)

		req, _ := http.NewRequest(http.MethodPost, "/journals", bytes.NewBufferString(`{"description":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		journalService.AssertNotCalled(t, "CreateJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("DuplicateName", func(t *testing.T) {
		h, journalService, _ := newJournalHandlerForTest()
		journalService.On("CreateJournal", mock.Anything, "Forex", "", journal.Settings{}, []string(nil)).
			Return(nil, journal.ErrDuplicateJournalName)

		router := setupTestRouter()
		router.POST("/journals", h.Create)

		req, _ := http.NewRequest(http.MethodPost, "/journals", bytes.NewBufferString(`{"name":"Forex"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		envelope := decodeResponse(t, rr, nil)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, CodeConflict, envelope.Error.Code)
	})

	t.Run("ValidationError", func(t *testing.T) {
		h, journalService, _ := newJournalHandlerForTest()
		journalService.On("CreateJournal", mock.Anything, "Forex", "", journal.Settings{HasCustomField: true}, []string(nil)).
			Return(nil, journal.ErrCustomFieldNameRequired)

		router := setupTestRouter()
		router.POST("/journals", h.Create)

		req, _ := http.NewRequest(http.MethodPost, "/journals", bytes.NewBufferString(`{"name":"Forex","has_custom_field":true}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		envelope := decodeResponse(t, rr, nil)
		assert.Equal(t, journal.ErrCustomFieldNameRequired.Error(), envelope.Error.Message)
	})
}

func TestJournalHandler_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		h, journalService, _ := newJournalHandlerForTest()
		journalService.On("ListJournals", mock.Anything).Return([]*journal.Journal{newJournalFixture(), newJournalFixture()}, nil)

		router := setupTestRouter()
		router.GET("/journals", h.List)

		req, _ := http.NewRequest(http.MethodGet, "/journals", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var response []JournalResponse
		decodeResponse(t, rr, &response)
		assert.Len(t, response, 2)
		assert.Nil(t, response[0].ChecklistTemplates)
	})

	t.Run("ServiceError", func(t *testing.T) {
		h, journalService, _ := newJournalHandlerForTest()
		journalService.On("ListJournals", mock.Anything).Return(nil, errors.New("database unavailable"))

		router := setupTestRouter()
		router.GET("/journals", h.List)

		req, _ := http.NewRequest(http.MethodGet, "/journals", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		envelope := decodeResponse(t, rr, nil)
		assert.Equal(t, CodeInternalError, envelope.Error.Code)
	})
}

func TestJournalHandler_GetByID(t *testing.T) {
	t.Run("SortsTemplates", func(t *testing.T) {
		h, journalService, _ := newJournalHandlerForTest()
		j := newJournalFixture()
		templates := []journal.ChecklistTemplate{
			{ID: uuid.New(), JournalID: j.ID, Text: "second", Order: 1},
			{ID: uuid.New(), JournalID: j.ID, Text: "first", Order: 0},
		}
		journalService.On("GetJournal", mock.Anything, j.ID).Return(&service.JournalDetails{Journal: j, Templates: templates}, nil)

		router := setupTestRouter()
		router.GET("/journals/:id", h.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/journals/"+j.ID.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var response JournalResponse
		decodeResponse(t, rr, &response)
		require.Len(t, response.ChecklistTemplates, 2)
		assert.Equal(t, "first", response.ChecklistTemplates[0].Text)
		assert.Equal(t, "second", response.ChecklistTemplates[1].Text)
	})

	t.Run("InvalidID", func(t *testing.T) {
		h, journalService, _ := newJournalHandlerForTest()
		router := setupTestRouter()
		router.GET("/journals/:id", h.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/journals/not-a-uuid", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		journalService.AssertNotCalled(t, "GetJournal", mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		h, journalService, _ := newJournalHandlerForTest()
		id := uuid.New()
		journalService.On("GetJournal", mock.Anything, id).Return(nil, journal.ErrJournalNotFound{JournalID: id})

		router := setupTestRouter()
		router.GET("/journals/:id", h.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/journals/"+id.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		envelope := decodeResponse(t, rr, nil)
		assert.Equal(t, CodeNotFound, envelope.Error.Code)
	})
}

func TestJournalHandler_Update(t *testing.T) {
	t.Run("PassesOnlyProvidedFields", func(t *testing.T) {
		h, journalService, _ := newJournalHandlerForTest()
		j := newJournalFixture()
		journalService.On("UpdateJournal", mock.Anything, j.ID, mock.MatchedBy(func(u journal.Update) bool {
			return u.Name != nil && *u.Name == "Renamed" && u.Description == nil && u.HasEmotions != nil && !*u.HasEmotions
		})).Return(&service.JournalDetails{Journal: j}, nil)

		router := setupTestRouter()
		router.PUT("/journals/:id", h.Update)

		req, _ := http.NewRequest(http.MethodPut, "/journals/"+j.ID.String(), bytes.NewBufferString(`{"name":"Renamed","has_emotions":false}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		journalService.AssertExpectations(t)
	})

	t.Run("EmptyUpdate", func(t *testing.T) {
		h, journalService, _ := newJournalHandlerForTest()
		id := uuid.New()
		journalService.On("UpdateJournal", mock.Anything, id, journal.Update{}).Return(nil, service.ErrEmptyUpdate)

		router := setupTestRouter()
		router.PUT("/journals/:id", h.Update)

		req, _ := http.NewRequest(http.MethodPut, "/journals/"+id.String(), bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestJournalHandler_Delete(t *testing.T) {
	h, journalService, _ := newJournalHandlerForTest()
	id := uuid.New()
	journalService.On("DeleteJournal", mock.Anything, id).Return(nil)

	router := setupTestRouter()
	router.DELETE("/journals/:id", h.Delete)

	req, _ := http.NewRequest(http.MethodDelete, "/journals/"+id.String(), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
	journalService.AssertExpectations(t)
}

func TestJournalHandler_Templates(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		h, _, templateService := newJournalHandlerForTest()
		journalID := uuid.New()
		templateService.On("ListTemplates", mock.Anything, journalID).Return([]journal.ChecklistTemplate{
			{ID: uuid.New(), JournalID: journalID, Text: "b", Order: 2},
			{ID: uuid.New(), JournalID: journalID, Text: "a", Order: 1},
		}, nil)

		router := setupTestRouter()
		router.GET("/journals/:id/checklist_templates", h.ListTemplates)

		req, _ := http.NewRequest(http.MethodGet, "/journals/"+journalID.String()+"/checklist_templates", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var response []TemplateResponse
		decodeResponse(t, rr, &response)
		require.Len(t, response, 2)
		assert.Equal(t, "a", response[0].Text)
	})

	t.Run("AddRequiresText", func(t *testing.T) {
		h, _, templateService := newJournalHandlerForTest()
		router := setupTestRouter()
		router.POST("/journals/:id/checklist_templates", h.AddTemplate)

		req, _ := http.NewRequest(http.MethodPost, "/journals/"+uuid.NewString()+"/checklist_templates", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		templateService.AssertNotCalled(t, "AddTemplate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Add", func(t *testing.T) {
		h, _, templateService := newJournalHandlerForTest()
		journalID := uuid.New()
		created := &journal.ChecklistTemplate{ID: uuid.New(), JournalID: journalID, Text: "Stop placed", Order: 3}
		templateService.On("AddTemplate", mock.Anything, journalID, "Stop placed").Return(created, nil)

		router := setupTestRouter()
		router.POST("/journals/:id/checklist_templates", h.AddTemplate)

		req, _ := http.NewRequest(http.MethodPost, "/journals/"+journalID.String()+"/checklist_templates", bytes.NewBufferString(`{"text":"Stop placed"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var response TemplateResponse
		decodeResponse(t, rr, &response)
		assert.Equal(t, 3, response.Order)
	})

	t.Run("UpdateNotFound", func(t *testing.T) {
		h, _, templateService := newJournalHandlerForTest()
		id := uuid.New()
		templateService.On("UpdateTemplate", mock.Anything, id, "x").Return(nil, journal.ErrTemplateNotFound{TemplateID: id})

		router := setupTestRouter()
		router.PUT("/checklist_templates/:id", h.UpdateTemplate)

		req, _ := http.NewRequest(http.MethodPut, "/checklist_templates/"+id.String(), bytes.NewBufferString(`{"text":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		h, _, templateService := newJournalHandlerForTest()
		id := uuid.New()
		templateService.On("DeleteTemplate", mock.Anything, id).Return(nil)

		router := setupTestRouter()
		router.DELETE("/checklist_templates/:id", h.DeleteTemplate)

		req, _ := http.NewRequest(http.MethodDelete, "/checklist_templates/"+id.String(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}
