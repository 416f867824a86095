package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/trading-journal-backend/internal/domain/entry"
	"github.com/trading-journal-backend/internal/journal_api/service"
)

// EntryHandler handles HTTP requests for trade entries and their checklist answers
type EntryHandler struct {
	entryService service.EntryService
	logger       *slog.Logger
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(logger *slog.Logger, entryService service.EntryService) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
		logger:       logger,
	}
}

// ListByJournal returns a journal's entries, newest first
func (h *EntryHandler) ListByJournal(c *gin.Context) {
	journalID, ok := parseUUIDParam(c, h.logger, "id", "Invalid journal ID")
	if !ok {
		return
	}

	entries, err := h.entryService.ListEntries(c.Request.Context(), journalID)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to list entries")
		return
	}
	if entries == nil {
		entries = []entry.Entry{}
	}

	RespondOK(c, entries)
}

// Create logs a new trade in the journal
func (h *EntryHandler) Create(c *gin.Context) {
	journalID, ok := parseUUIDParam(c, h.logger, "id", "Invalid journal ID")
	if !ok {
		return
	}

	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	details, err := h.entryService.CreateEntry(c.Request.Context(), journalID, req.Entry, req.ChecklistStatuses)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to create entry")
		return
	}

	RespondCreated(c, mapEntryDetailsToResponse(details))
}

// GetByID returns an entry with its checklist and attachments
func (h *EntryHandler) GetByID(c *gin.Context) {
	id, ok := parseUUIDParam(c, h.logger, "id", "Invalid entry ID")
	if !ok {
		return
	}

	details, err := h.entryService.GetEntry(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to get entry")
		return
	}

	RespondOK(c, mapEntryDetailsToResponse(details))
}

// Update applies a partial update. Fields sent as null are cleared.
func (h *EntryHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, h.logger, "id", "Invalid entry ID")
	if !ok {
		return
	}

	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	details, err := h.entryService.UpdateEntry(c.Request.Context(), id, patch)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to update entry")
		return
	}

	RespondOK(c, mapEntryDetailsToResponse(details))
}

// Delete removes an entry and its uploaded files
func (h *EntryHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, h.logger, "id", "Invalid entry ID")
	if !ok {
		return
	}

	if err := h.entryService.DeleteEntry(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.logger, err, "Failed to delete entry")
		return
	}

	RespondNoContent(c)
}

// SetChecklistStatus records one checklist answer for the entry
func (h *EntryHandler) SetChecklistStatus(c *gin.Context) {
	entryID, ok := parseUUIDParam(c, h.logger, "id", "Invalid entry ID")
	if !ok {
		return
	}
	templateID, ok := parseUUIDParam(c, h.logger, "template_id", "Invalid checklist template ID")
	if !ok {
		return
	}

	var req ChecklistStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.entryService.SetChecklistStatus(c.Request.Context(), entryID, templateID, *req.Checked); err != nil {
		respondServiceError(c, h.logger, err, "Failed to set checklist status")
		return
	}

	RespondOK(c, ChecklistStatusResponse{TemplateID: templateID.String(), Checked: *req.Checked})
}
