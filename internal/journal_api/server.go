package journal_api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trading-journal-backend/internal/config"
	"github.com/trading-journal-backend/internal/journal_api/handler"
	"github.com/trading-journal-backend/internal/journal_api/service"
)

// Services groups the application services the HTTP layer depends on
type Services struct {
	Journals    service.JournalService
	Templates   service.TemplateService
	Entries     service.EntryService
	Attachments service.AttachmentService
	Strategies  service.StrategyService
	Statistics  service.StatisticsService
}

// Server handles HTTP requests and manages the application's lifecycle
type Server struct {
	logger     *slog.Logger
	httpServer *http.Server
	httpRouter *gin.Engine
}

// NewServer creates and configures a new HTTP server. dependencies are pinged by /health.
func NewServer(log *slog.Logger, cfg *config.Config, services Services, dependencies map[string]Pinger) *Server {
	if cfg.Application.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	httpRouter := gin.New()
	httpRouter.MaxMultipartMemory = cfg.Uploads.MaxFileSize

	setupRouter(log, httpRouter, handlers{
		journal:    handler.NewJournalHandler(log, services.Journals, services.Templates),
		entry:      handler.NewEntryHandler(log, services.Entries),
		attachment: handler.NewAttachmentHandler(log, services.Attachments, cfg.Uploads.MaxFileSize),
		strategy:   handler.NewStrategyHandler(log, services.Strategies),
		statistics: handler.NewStatisticsHandler(log, services.Statistics),
	}, dependencies)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      httpRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{
		logger:     log,
		httpServer: httpServer,
		httpRouter: httpRouter,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpRouter
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server. In-flight requests get until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to stop HTTP server: %w", err)
	}
	return nil
}
