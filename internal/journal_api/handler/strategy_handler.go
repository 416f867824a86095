package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/trading-journal-backend/internal/journal_api/service"
)

// StrategyHandler handles the shared strategy list
type StrategyHandler struct {
	strategyService service.StrategyService
	logger          *slog.Logger
}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler(logger *slog.Logger, strategyService service.StrategyService) *StrategyHandler {
	return &StrategyHandler{
		strategyService: strategyService,
		logger:          logger,
	}
}

func (h *StrategyHandler) List(c *gin.Context) {
	strategies, err := h.strategyService.ListStrategies(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to list strategies")
		return
	}

	response := make([]StrategyResponse, 0, len(strategies))
	for _, s := range strategies {
		response = append(response, mapStrategyToResponse(s))
	}
	RespondOK(c, response)
}

// Create registers a strategy, or returns the existing one with the same name
func (h *StrategyHandler) Create(c *gin.Context) {
	var req StrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	strategy, err := h.strategyService.AddStrategy(c.Request.Context(), req.Name)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to add strategy")
		return
	}

	RespondCreated(c, mapStrategyToResponse(strategy))
}
