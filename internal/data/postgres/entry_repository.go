package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/trading-journal-backend/internal/domain/entry"
	"github.com/trading-journal-backend/internal/platform/persistence"
)

const entryColumns = `id, journal_id, entry_date, end_date, symbol, position_type, strategy, initial_rr,
		risk_percentage, pnl, result, confidence_level, trade_rating, notes, stop_loss, take_profit,
		custom_field_value, emotion, created_at, updated_at`

// EntryRepository implements entry.Repository for PostgreSQL, including the
// checklist statuses owned by each entry
type EntryRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

func NewEntryRepository(logger *slog.Logger, db *persistence.PostgresDB) entry.Repository {
	return &EntryRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

func (r *EntryRepository) WithTx(tx pgx.Tx) entry.Repository {
	return &EntryRepository{
		querier: tx,
		logger:  r.logger,
	}
}

func (r *EntryRepository) Create(ctx context.Context, e *entry.Entry) error {
	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := r.querier.Exec(ctx, query,
		e.ID,
		e.JournalID,
		e.EntryDate,
		e.EndDate,
		e.Symbol,
		string(e.PositionType),
		e.Strategy,
		e.InitialRR.Ptr(),
		e.RiskPercentage.Ptr(),
		e.PnL.Ptr(),
		string(e.Result),
		e.ConfidenceLevel,
		e.TradeRating.Ptr(),
		e.Notes,
		e.StopLoss.Ptr(),
		e.TakeProfit.Ptr(),
		e.CustomFieldValue,
		e.Emotion,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create entry", "journal_id", e.JournalID.String(), "error", err)
		return fmt.Errorf("failed to create entry: %w", err)
	}

	return nil
}

func (r *EntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entry.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1`

	e, err := scanEntry(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entry.ErrEntryNotFound{EntryID: id}
		}
		r.logger.Error("Failed to get entry", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	return e, nil
}

func (r *EntryRepository) ListByJournal(ctx context.Context, journalID uuid.UUID) ([]entry.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE journal_id = $1
		ORDER BY entry_date DESC, created_at DESC
	`

	rows, err := r.querier.Query(ctx, query, journalID)
	if err != nil {
		r.logger.Error("Failed to list entries", "journal_id", journalID.String(), "error", err)
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	entries := make([]entry.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			r.logger.Error("Failed to scan entry", "error", err)
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *e)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over entries", "error", err)
		return nil, fmt.Errorf("error iterating over entries: %w", err)
	}

	return entries, nil
}

func (r *EntryRepository) Update(ctx context.Context, e *entry.Entry) error {
	query := `
		UPDATE entries
		SET entry_date = $1, end_date = $2, symbol = $3, position_type = $4, strategy = $5,
			initial_rr = $6, risk_percentage = $7, pnl = $8, result = $9, confidence_level = $10,
			trade_rating = $11, notes = $12, stop_loss = $13, take_profit = $14,
			custom_field_value = $15, emotion = $16, updated_at = $17
		WHERE id = $18
	`

	result, err := r.querier.Exec(ctx, query,
		e.EntryDate,
		e.EndDate,
		e.Symbol,
		string(e.PositionType),
		e.Strategy,
		e.InitialRR.Ptr(),
		e.RiskPercentage.Ptr(),
		e.PnL.Ptr(),
		string(e.Result),
		e.ConfidenceLevel,
		e.TradeRating.Ptr(),
		e.Notes,
		e.StopLoss.Ptr(),
		e.TakeProfit.Ptr(),
		e.CustomFieldValue,
		e.Emotion,
		e.UpdatedAt,
		e.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update entry", "id", e.ID.String(), "error", err)
		return fmt.Errorf("failed to update entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entry.ErrEntryNotFound{EntryID: e.ID}
	}

	return nil
}

// Delete removes the entry; its statuses and attachment rows cascade
func (r *EntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.querier.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete entry", "id", id.String(), "error", err)
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entry.ErrEntryNotFound{EntryID: id}
	}

	return nil
}

// CreateStatuses inserts all statuses in a single statement
func (r *EntryRepository) CreateStatuses(ctx context.Context, statuses []entry.ChecklistStatus) error {
	if len(statuses) == 0 {
		return nil
	}

	entryIDs := make([]string, len(statuses))
	templateIDs := make([]string, len(statuses))
	checked := make([]bool, len(statuses))
	for i, s := range statuses {
		entryIDs[i] = s.EntryID.String()
		templateIDs[i] = s.TemplateID.String()
		checked[i] = s.Checked
	}

	query := `
		INSERT INTO checklist_statuses (entry_id, template_id, checked)
		SELECT * FROM unnest($1::uuid[], $2::uuid[], $3::boolean[])
	`
	if _, err := r.querier.Exec(ctx, query, entryIDs, templateIDs, checked); err != nil {
		r.logger.Error("Failed to create checklist statuses", "count", len(statuses), "error", err)
		return fmt.Errorf("failed to create checklist statuses: %w", err)
	}

	return nil
}

func (r *EntryRepository) SetStatus(ctx context.Context, entryID, templateID uuid.UUID, checked bool) error {
	query := `
		UPDATE checklist_statuses
		SET checked = $1
		WHERE entry_id = $2 AND template_id = $3
	`

	result, err := r.querier.Exec(ctx, query, checked, entryID, templateID)
	if err != nil {
		r.logger.Error("Failed to update checklist status",
			"entry_id", entryID.String(),
			"template_id", templateID.String(),
			"error", err,
		)
		return fmt.Errorf("failed to update checklist status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entry.ErrStatusNotFound{EntryID: entryID, TemplateID: templateID}
	}

	return nil
}

// ListChecklist returns the entry's statuses joined with template text, in checklist order
func (r *EntryRepository) ListChecklist(ctx context.Context, entryID uuid.UUID) ([]entry.ChecklistItem, error) {
	query := `
		SELECT t.id, t.text, t.sort_order, s.checked
		FROM checklist_statuses s
		JOIN checklist_templates t ON t.id = s.template_id
		WHERE s.entry_id = $1
		ORDER BY t.sort_order ASC
	`

	rows, err := r.querier.Query(ctx, query, entryID)
	if err != nil {
		r.logger.Error("Failed to list entry checklist", "entry_id", entryID.String(), "error", err)
		return nil, fmt.Errorf("failed to list entry checklist: %w", err)
	}
	defer rows.Close()

	items := make([]entry.ChecklistItem, 0)
	for rows.Next() {
		var item entry.ChecklistItem
		if err := rows.Scan(&item.TemplateID, &item.Text, &item.Order, &item.Checked); err != nil {
			r.logger.Error("Failed to scan checklist item", "error", err)
			return nil, fmt.Errorf("failed to scan checklist item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over checklist items", "error", err)
		return nil, fmt.Errorf("error iterating over checklist items: %w", err)
	}

	return items, nil
}

func (r *EntryRepository) ListStatusesByJournal(ctx context.Context, journalID uuid.UUID) ([]entry.ChecklistStatus, error) {
	query := `
		SELECT s.entry_id, s.template_id, s.checked
		FROM checklist_statuses s
		JOIN entries e ON e.id = s.entry_id
		WHERE e.journal_id = $1
	`

	rows, err := r.querier.Query(ctx, query, journalID)
	if err != nil {
		r.logger.Error("Failed to list checklist statuses", "journal_id", journalID.String(), "error", err)
		return nil, fmt.Errorf("failed to list checklist statuses: %w", err)
	}
	defer rows.Close()

	statuses := make([]entry.ChecklistStatus, 0)
	for rows.Next() {
		var s entry.ChecklistStatus
		if err := rows.Scan(&s.EntryID, &s.TemplateID, &s.Checked); err != nil {
			r.logger.Error("Failed to scan checklist status", "error", err)
			return nil, fmt.Errorf("failed to scan checklist status: %w", err)
		}
		statuses = append(statuses, s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over checklist statuses", "error", err)
		return nil, fmt.Errorf("error iterating over checklist statuses: %w", err)
	}

	return statuses, nil
}

func scanEntry(row pgx.Row) (*entry.Entry, error) {
	var (
		e                                                          entry.Entry
		positionType, result                                       string
		initialRR, riskPct, pnl, tradeRating, stopLoss, takeProfit *string
	)

	err := row.Scan(
		&e.ID,
		&e.JournalID,
		&e.EntryDate,
		&e.EndDate,
		&e.Symbol,
		&positionType,
		&e.Strategy,
		&initialRR,
		&riskPct,
		&pnl,
		&result,
		&e.ConfidenceLevel,
		&tradeRating,
		&e.Notes,
		&stopLoss,
		&takeProfit,
		&e.CustomFieldValue,
		&e.Emotion,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.PositionType = entry.PositionType(positionType)
	e.Result = entry.Result(result)
	e.InitialRR = entry.NumericFromPtr(initialRR)
	e.RiskPercentage = entry.NumericFromPtr(riskPct)
	e.PnL = entry.NumericFromPtr(pnl)
	e.TradeRating = entry.NumericFromPtr(tradeRating)
	e.StopLoss = entry.NumericFromPtr(stopLoss)
	e.TakeProfit = entry.NumericFromPtr(takeProfit)
	return &e, nil
}
