package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/trading-journal-backend/internal/domain/journal"
	"github.com/trading-journal-backend/internal/platform/persistence"
)

// StrategyRepository implements journal.StrategyRepository for PostgreSQL
type StrategyRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

func NewStrategyRepository(logger *slog.Logger, db *persistence.PostgresDB) journal.StrategyRepository {
	return &StrategyRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

func (r *StrategyRepository) WithTx(tx pgx.Tx) journal.StrategyRepository {
	return &StrategyRepository{
		querier: tx,
		logger:  r.logger,
	}
}

func (r *StrategyRepository) List(ctx context.Context) ([]*journal.Strategy, error) {
	rows, err := r.querier.Query(ctx, `SELECT id, name FROM strategies ORDER BY lower(name) ASC`)
	if err != nil {
		r.logger.Error("Failed to list strategies", "error", err)
		return nil, fmt.Errorf("failed to list strategies: %w", err)
	}
	defer rows.Close()

	strategies := make([]*journal.Strategy, 0)
	for rows.Next() {
		var s journal.Strategy
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			r.logger.Error("Failed to scan strategy", "error", err)
			return nil, fmt.Errorf("failed to scan strategy: %w", err)
		}
		strategies = append(strategies, &s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over strategies", "error", err)
		return nil, fmt.Errorf("error iterating over strategies: %w", err)
	}

	return strategies, nil
}

// Ensure registers name unless a strategy with the same case-insensitive name
// exists, and returns the stored strategy either way
func (r *StrategyRepository) Ensure(ctx context.Context, name string) (*journal.Strategy, error) {
	candidate, err := journal.NewStrategy(name)
	if err != nil {
		return nil, err
	}

	insert := `
		INSERT INTO strategies (id, name)
		VALUES ($1, $2)
		ON CONFLICT ((lower(name))) DO NOTHING
	`
	if _, err := r.querier.Exec(ctx, insert, candidate.ID, candidate.Name); err != nil {
		r.logger.Error("Failed to register strategy", "name", candidate.Name, "error", err)
		return nil, fmt.Errorf("failed to register strategy: %w", err)
	}

	var s journal.Strategy
	err = r.querier.QueryRow(ctx, `SELECT id, name FROM strategies WHERE lower(name) = lower($1)`, candidate.Name).
		Scan(&s.ID, &s.Name)
	if err != nil {
		r.logger.Error("Failed to load strategy", "name", candidate.Name, "error", err)
		return nil, fmt.Errorf("failed to load strategy: %w", err)
	}

	return &s, nil
}
