package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trading-journal-backend/internal/domain/entry"
	"github.com/trading-journal-backend/internal/journal_api/service"
)

// AttachmentHandler handles image uploads and links attached to entries
type AttachmentHandler struct {
	attachmentService service.AttachmentService
	maxFileSize       int64
	logger            *slog.Logger
}

// NewAttachmentHandler creates a new attachment handler. Uploads larger than maxFileSize bytes are rejected.
func NewAttachmentHandler(logger *slog.Logger, attachmentService service.AttachmentService, maxFileSize int64) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: attachmentService,
		maxFileSize:       maxFileSize,
		logger:            logger,
	}
}

// UploadImage stores a multipart "file" (or "image") field as evidence for the entry
func (h *AttachmentHandler) UploadImage(c *gin.Context) {
	entryID, ok := parseUUIDParam(c, h.logger, "id", "Invalid entry ID")
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		header, err = c.FormFile("image")
	}
	if err != nil {
		h.logger.Warn("Missing upload", "entry_id", entryID, "error", err)
		RespondBadRequest(c, "A file must be uploaded in the 'file' field")
		return
	}

	if header.Size > h.maxFileSize {
		RespondWithError(c, http.StatusRequestEntityTooLarge, CodeFileTooLarge,
			fmt.Sprintf("File exceeds the maximum size of %d bytes", h.maxFileSize))
		return
	}

	file, err := header.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", "entry_id", entryID, "error", err)
		RespondInternalError(c)
		return
	}
	defer file.Close()

	category := entry.ParseCategory(c.PostForm("category"))
	attachment, err := h.attachmentService.UploadImage(c.Request.Context(), entryID, header.Filename, file, category)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to upload image")
		return
	}

	RespondCreated(c, mapAttachmentToResponse(attachment))
}

// AddLink attaches an external URL to the entry
func (h *AttachmentHandler) AddLink(c *gin.Context) {
	entryID, ok := parseUUIDParam(c, h.logger, "id", "Invalid entry ID")
	if !ok {
		return
	}

	var req LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	attachment, err := h.attachmentService.AddLink(c.Request.Context(), entryID, req.URL, entry.ParseCategory(req.Category))
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to add link")
		return
	}

	RespondCreated(c, mapAttachmentToResponse(attachment))
}

// Delete removes an attachment and its stored file
func (h *AttachmentHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, h.logger, "id", "Invalid attachment ID")
	if !ok {
		return
	}

	if err := h.attachmentService.DeleteAttachment(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.logger, err, "Failed to delete attachment")
		return
	}

	RespondNoContent(c)
}
