package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/trading-journal-backend/internal/domain/journal"
	"github.com/trading-journal-backend/internal/journal_api/service"
)

// JournalHandler handles HTTP requests for journals and their checklist templates
type JournalHandler struct {
	journalService  service.JournalService
	templateService service.TemplateService
	logger          *slog.Logger
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(logger *slog.Logger, journalService service.JournalService, templateService service.TemplateService) *JournalHandler {
	return &JournalHandler{
		journalService:  journalService,
		templateService: templateService,
		logger:          logger,
	}
}

// List returns every journal without templates
func (h *JournalHandler) List(c *gin.Context) {
	journals, err := h.journalService.ListJournals(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to list journals")
		return
	}

	response := make([]JournalResponse, 0, len(journals))
	for _, j := range journals {
		response = append(response, mapJournalToResponse(j, nil))
	}
	RespondOK(c, response)
}

// Create handles creation of a journal, seeding checklist templates in the order given
func (h *JournalHandler) Create(c *gin.Context) {
	var req CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	details, err := h.journalService.CreateJournal(c.Request.Context(), req.Name, req.Description, req.settings(), req.ChecklistTemplates)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to create journal")
		return
	}

	RespondCreated(c, mapJournalDetailsToResponse(details))
}

// GetByID returns a journal with its templates sorted by order
func (h *JournalHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, h.logger, "id", "Invalid journal ID")
	if !ok {
		return
	}

	details, err := h.journalService.GetJournal(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to get journal")
		return
	}

	RespondOK(c, mapJournalDetailsToResponse(details))
}

// Update merges the provided fields into the journal
func (h *JournalHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, h.logger, "id", "Invalid journal ID")
	if !ok {
		return
	}

	var req journal.Update
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	details, err := h.journalService.UpdateJournal(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to update journal")
		return
	}

	RespondOK(c, mapJournalDetailsToResponse(details))
}

// Delete removes a journal with everything it owns
func (h *JournalHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, h.logger, "id", "Invalid journal ID")
	if !ok {
		return
	}

	if err := h.journalService.DeleteJournal(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.logger, err, "Failed to delete journal")
		return
	}

	RespondNoContent(c)
}

// ListTemplates returns a journal's checklist templates sorted by order
func (h *JournalHandler) ListTemplates(c *gin.Context) {
	journalID, ok := parseUUIDParam(c, h.logger, "id", "Invalid journal ID")
	if !ok {
		return
	}

	templates, err := h.templateService.ListTemplates(c.Request.Context(), journalID)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to list checklist templates")
		return
	}

	RespondOK(c, mapTemplatesToResponse(templates))
}

// AddTemplate appends a checklist template to a journal
func (h *JournalHandler) AddTemplate(c *gin.Context) {
	journalID, ok := parseUUIDParam(c, h.logger, "id", "Invalid journal ID")
	if !ok {
		return
	}

	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	template, err := h.templateService.AddTemplate(c.Request.Context(), journalID, req.Text)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to add checklist template")
		return
	}

	RespondCreated(c, mapTemplateToResponse(*template))
}

// UpdateTemplate replaces a template's text
func (h *JournalHandler) UpdateTemplate(c *gin.Context) {
	id, ok := parseUUIDParam(c, h.logger, "id", "Invalid checklist template ID")
	if !ok {
		return
	}

	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	template, err := h.templateService.UpdateTemplate(c.Request.Context(), id, req.Text)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to update checklist template")
		return
	}

	RespondOK(c, mapTemplateToResponse(*template))
}

// DeleteTemplate removes a template and every status recorded against it
func (h *JournalHandler) DeleteTemplate(c *gin.Context) {
	id, ok := parseUUIDParam(c, h.logger, "id", "Invalid checklist template ID")
	if !ok {
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.logger, err, "Failed to delete checklist template")
		return
	}

	RespondNoContent(c)
}
