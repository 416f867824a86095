package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/trading-journal-backend/internal/domain/entry"
	"github.com/trading-journal-backend/internal/domain/journal"
	"github.com/trading-journal-backend/internal/journal_api/middleware"
	"github.com/trading-journal-backend/internal/journal_api/service"
	"github.com/trading-journal-backend/internal/platform/storage"
)

// validationErrors are reported to the client as 400 with the error text
var validationErrors = []error{
	journal.ErrEmptyName,
	journal.ErrEmptyTemplateText,
	journal.ErrEmptyStrategyName,
	journal.ErrCustomFieldNameRequired,
	entry.ErrInvalidResult,
	entry.ErrInvalidPositionType,
	entry.ErrInvalidConfidence,
	entry.ErrInvalidNumeric,
	entry.ErrInvalidPatch,
	entry.ErrUnsupportedImageType,
	entry.ErrInvalidLinkURL,
	service.ErrEmptyUpdate,
	storage.ErrInvalidFileName,
}

// respondServiceError maps a service error onto the response envelope. Errors it
// does not recognise are logged and reported as 500.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, failure string) {
	var (
		journalNotFound    journal.ErrJournalNotFound
		templateNotFound   journal.ErrTemplateNotFound
		entryNotFound      entry.ErrEntryNotFound
		statusNotFound     entry.ErrStatusNotFound
		attachmentNotFound entry.ErrAttachmentNotFound
	)

	switch {
	case errors.As(err, &journalNotFound):
		RespondNotFound(c, "Journal not found")
	case errors.As(err, &templateNotFound):
		RespondNotFound(c, "Checklist template not found")
	case errors.As(err, &entryNotFound):
		RespondNotFound(c, "Entry not found")
	case errors.As(err, &statusNotFound):
		RespondNotFound(c, "Checklist status not found")
	case errors.As(err, &attachmentNotFound):
		RespondNotFound(c, "Attachment not found")
	case errors.Is(err, service.ErrNoStatistics):
		RespondNoStatistics(c)
	case errors.Is(err, journal.ErrDuplicateJournalName):
		RespondConflict(c, "Journal with this name already exists")
	default:
		for _, validationErr := range validationErrors {
			if errors.Is(err, validationErr) {
				RespondBadRequest(c, err.Error())
				return
			}
		}
		logger.Error(failure, "error", err, "correlation_id", middleware.GetCorrelationID(c))
		RespondInternalError(c)
	}
}

// parseUUIDParam reads a path parameter as a UUID, responding 400 when it is malformed
func parseUUIDParam(c *gin.Context, logger *slog.Logger, param, message string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.Warn(message, param, raw, "error", err)
		RespondBadRequest(c, message)
		return uuid.Nil, false
	}
	return id, true
}
