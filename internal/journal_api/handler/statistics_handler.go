package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trading-journal-backend/internal/journal_api/service"
)

// StatisticsHandler serves live and historical journal statistics
type StatisticsHandler struct {
	statisticsService service.StatisticsService
	logger            *slog.Logger
}

// NewStatisticsHandler creates a new statistics handler
func NewStatisticsHandler(logger *slog.Logger, statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{
		statisticsService: statisticsService,
		logger:            logger,
	}
}

// Get computes the report from the journal's current data
func (h *StatisticsHandler) Get(c *gin.Context) {
	journalID, ok := parseUUIDParam(c, h.logger, "id", "Invalid journal ID")
	if !ok {
		return
	}

	report, err := h.statisticsService.GetStatistics(c.Request.Context(), journalID)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to compute statistics")
		return
	}

	RespondOK(c, report)
}

// History lists stored snapshots for the journal, newest first
func (h *StatisticsHandler) History(c *gin.Context) {
	journalID, ok := parseUUIDParam(c, h.logger, "id", "Invalid journal ID")
	if !ok {
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		h.logger.Error("Invalid pagination parameters", "error", err)
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	snapshots, total, err := h.statisticsService.GetStatisticsHistory(c.Request.Context(), journalID, pagination.Page, pagination.PerPage)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to list statistics history")
		return
	}

	response := make([]SnapshotResponse, 0, len(snapshots))
	for _, s := range snapshots {
		response = append(response, mapSnapshotToResponse(s))
	}
	RespondWithPaginatedData(c, http.StatusOK, response, pagination.Page, pagination.PerPage, int(total))
}
