package journal_api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trading-journal-backend/internal/journal_api/handler"
	"github.com/trading-journal-backend/internal/journal_api/middleware"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is a backing store the health check can ping
type Pinger interface {
	Ping(ctx context.Context) error
}

type handlers struct {
	journal    *handler.JournalHandler
	entry      *handler.EntryHandler
	attachment *handler.AttachmentHandler
	strategy   *handler.StrategyHandler
	statistics *handler.StatisticsHandler
}

// setupRouter configures API routes and middleware for the application
func setupRouter(logger *slog.Logger, r *gin.Engine, h handlers, dependencies map[string]Pinger) {
	// Correlation id first so the request log and recovery can report it
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))

	v1 := r.Group("/api/v1")
	{
		journals := v1.Group("/journals")
		{
			journals.GET("", h.journal.List)
			journals.POST("", h.journal.Create)
			journals.GET("/:id", h.journal.GetByID)
			journals.PUT("/:id", h.journal.Update)
			journals.DELETE("/:id", h.journal.Delete)

			journals.GET("/:id/checklist_templates", h.journal.ListTemplates)
			journals.POST("/:id/checklist_templates", h.journal.AddTemplate)

			journals.GET("/:id/entries", h.entry.ListByJournal)
			journals.POST("/:id/entries", h.entry.Create)

			journals.GET("/:id/statistics", h.statistics.Get)
			journals.GET("/:id/statistics/history", h.statistics.History)
		}

		templates := v1.Group("/checklist_templates")
		{
			templates.PUT("/:id", h.journal.UpdateTemplate)
			templates.DELETE("/:id", h.journal.DeleteTemplate)
		}

		entries := v1.Group("/entries")
		{
			entries.GET("/:id", h.entry.GetByID)
			entries.PUT("/:id", h.entry.Update)
			entries.DELETE("/:id", h.entry.Delete)
			entries.PUT("/:id/checklist/:template_id", h.entry.SetChecklistStatus)
			entries.POST("/:id/images", h.attachment.UploadImage)
			entries.POST("/:id/links", h.attachment.AddLink)
		}

		v1.DELETE("/images/:id", h.attachment.Delete)

		strategies := v1.Group("/strategies")
		{
			strategies.GET("", h.strategy.List)
			strategies.POST("", h.strategy.Create)
		}
	}

	r.GET("/health", healthCheck(logger, dependencies))
}

// healthCheck reports 503 when any dependency fails to answer a ping
func healthCheck(logger *slog.Logger, dependencies map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		checks := make(map[string]string, len(dependencies))
		healthy := true
		for name, dependency := range dependencies {
			if err := dependency.Ping(ctx); err != nil {
				logger.Warn("Health check failed", "dependency", name, "error", err)
				checks[name] = "unavailable"
				healthy = false
				continue
			}
			checks[name] = "ok"
		}

		if !healthy {
			c.JSON(http.StatusServiceUnavailable, handler.Response{
				Data:          gin.H{"status": "degraded", "checks": checks},
				Error:         &handler.ErrorInfo{Code: handler.CodeServiceFailure, Message: "A dependency is unavailable"},
				CorrelationID: middleware.GetCorrelationID(c),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": checks, "timestamp": time.Now().UTC()})
	}
}
