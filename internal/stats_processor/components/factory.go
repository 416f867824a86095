// Package components wires the stats processor's services from storage handles.
package components

import (
	"log/slog"

	"github.com/trading-journal-backend/internal/config"
	"github.com/trading-journal-backend/internal/domain/entry"
	"github.com/trading-journal-backend/internal/domain/journal"
	"github.com/trading-journal-backend/internal/domain/snapshot"
	"github.com/trading-journal-backend/internal/reporting"
	"github.com/trading-journal-backend/internal/stats_processor/service"
)

// Repositories are the stores the stats processor reads from and writes to
type Repositories struct {
	Journals  journal.Repository
	Templates journal.TemplateRepository
	Entries   entry.Repository
	Snapshots snapshot.Repository
}

// CreateSnapshotService builds the snapshot service behind an ants worker pool. When the
// pool cannot be created the unpooled service is returned.
func CreateSnapshotService(repos Repositories, logger *slog.Logger, cfg *config.Config) service.SnapshotService {
	builder := reporting.NewBuilder(logger.With("component", "report_builder"), repos.Journals, repos.Templates, repos.Entries)
	baseService := service.NewSnapshotService(logger, builder, repos.Snapshots)

	workerPoolService, err := service.NewWorkerPoolSnapshotService(
		baseService,
		service.WorkerPoolConfig{
			Size: cfg.WorkerPool.Size,
		},
		logger.With("component", "worker_pool"),
	)
	if err != nil {
		logger.Error("Failed to create worker pool service, falling back to base service", "error", err)
		return baseService
	}

	logger.Info("Created worker pool snapshot service", "pool_size", cfg.WorkerPool.Size)
	return workerPoolService
}
