package service

import (
	"context"
	"log/slog"

	"github.com/panjf2000/ants/v2"
	"github.com/trading-journal-backend/internal/domain/shared"
)

// WorkerPoolSnapshotService bounds how many reports are computed at once
type WorkerPoolSnapshotService struct {
	baseService SnapshotService
	pool        *ants.Pool
	logger      *slog.Logger
}

type WorkerPoolConfig struct {
	Size int
}

func NewWorkerPoolSnapshotService(
	baseService SnapshotService,
	config WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolSnapshotService, error) {
	// Submit blocks while every worker is busy
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolSnapshotService{
		baseService: baseService,
		pool:        pool,
		logger:      logger,
	}, nil
}

// ProcessEvent runs the base service on a pool worker and waits for its result
func (s *WorkerPoolSnapshotService) ProcessEvent(ctx context.Context, event *shared.JournalEvent) error {
	logger := s.logger
	if event.CorrelationID != "" {
		logger = s.logger.With("correlation_id", event.CorrelationID)
	}

	logger.Debug("Submitting journal event to worker pool",
		"event_id", event.EventID.String(),
		"journal_id", event.JournalID.String(),
	)

	resultChan := make(chan error, 1)
	eventCopy := *event

	err := s.pool.Submit(func() {
		resultChan <- s.baseService.ProcessEvent(ctx, &eventCopy)
	})
	if err != nil {
		logger.Error("Failed to submit journal event to worker pool",
			"event_id", event.EventID.String(),
			"error", err,
		)
		return err
	}

	select {
	case err := <-resultChan:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown releases the pool; running tasks finish on their own.
func (s *WorkerPoolSnapshotService) Shutdown() {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

func (s *WorkerPoolSnapshotService) Running() int {
	return s.pool.Running()
}

func (s *WorkerPoolSnapshotService) Capacity() int {
	return s.pool.Cap()
}
