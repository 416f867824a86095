package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/trading-journal-backend/internal/domain/journal"
	"github.com/trading-journal-backend/internal/domain/snapshot"
	"github.com/trading-journal-backend/internal/domain/statistics"
)

// ReportBuilder recomputes a journal's statistics from stored data
type ReportBuilder interface {
	Build(ctx context.Context, journalID uuid.UUID) (*statistics.Report, error)
}

// StatisticsServiceImpl implements the StatisticsService interface
type StatisticsServiceImpl struct {
	builder      ReportBuilder
	journalRepo  journal.Repository
	snapshotRepo snapshot.Repository
	logger       *slog.Logger
}

// NewStatisticsService creates a new statistics service
func NewStatisticsService(
	logger *slog.Logger,
	builder ReportBuilder,
	journalRepo journal.Repository,
	snapshotRepo snapshot.Repository,
) StatisticsService {
	return &StatisticsServiceImpl{
		builder:      builder,
		journalRepo:  journalRepo,
		snapshotRepo: snapshotRepo,
		logger:       logger,
	}
}

func (s *StatisticsServiceImpl) GetStatistics(ctx context.Context, journalID uuid.UUID) (*statistics.Report, error) {
	report, err := s.builder.Build(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrNoStatistics
	}
	return report, nil
}

// GetStatisticsHistory returns snapshots newest first, and the total count
func (s *StatisticsServiceImpl) GetStatisticsHistory(ctx context.Context, journalID uuid.UUID, page, perPage int) ([]*snapshot.Snapshot, int64, error) {
	if _, err := s.journalRepo.GetByID(ctx, journalID); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage

	snapshots, err := s.snapshotRepo.ListByJournal(ctx, journalID, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.snapshotRepo.CountByJournal(ctx, journalID)
	if err != nil {
		return nil, 0, err
	}

	return snapshots, total, nil
}
