package service

import (
	"context"
	"log/slog"

	"github.com/trading-journal-backend/internal/domain/journal"
)

// StrategyServiceImpl implements the StrategyService interface
type StrategyServiceImpl struct {
	strategyRepo journal.StrategyRepository
	logger       *slog.Logger
}

// NewStrategyService creates a new strategy service
func NewStrategyService(logger *slog.Logger, strategyRepo journal.StrategyRepository) StrategyService {
	return &StrategyServiceImpl{
		strategyRepo: strategyRepo,
		logger:       logger,
	}
}

func (s *StrategyServiceImpl) ListStrategies(ctx context.Context) ([]*journal.Strategy, error) {
	return s.strategyRepo.List(ctx)
}

func (s *StrategyServiceImpl) AddStrategy(ctx context.Context, name string) (*journal.Strategy, error) {
	strategy, err := s.strategyRepo.Ensure(ctx, name)
	if err != nil {
		return nil, err
	}
	requestLogger(ctx, s.logger).Info("Strategy registered", "strategy_id", strategy.ID.String(), "name", strategy.Name)
	return strategy, nil
}
