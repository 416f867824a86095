// Package mongo stores statistics snapshots in MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trading-journal-backend/internal/domain/snapshot"
)

// DefaultSnapshotCollection is used when no collection name is configured
const DefaultSnapshotCollection = "statistics_snapshots"

var _ snapshot.Repository = (*SnapshotRepository)(nil)

// SnapshotRepository implements the snapshot.Repository interface for MongoDB
type SnapshotRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

func NewSnapshotRepository(logger *slog.Logger, db *mongo.Database, collection string) *SnapshotRepository {
	if collection == "" {
		collection = DefaultSnapshotCollection
	}
	return &SnapshotRepository{
		collection: db.Collection(collection),
		logger:     logger,
	}
}

// EnsureIndexes creates the unique event index and the per-journal history index
func (r *SnapshotRepository) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_event_id"),
		},
		{
			Keys:    bson.D{{Key: "journal_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("journal_history"),
		},
	}

	if _, err := r.collection.Indexes().CreateMany(ctx, models); err != nil {
		r.logger.Error("Failed to create snapshot indexes", "error", err)
		return fmt.Errorf("failed to create snapshot indexes: %w", err)
	}
	return nil
}

// Create inserts the snapshot unless one already exists for its event.
// Returns ErrDuplicateSnapshot for a redelivered event.
func (r *SnapshotRepository) Create(ctx context.Context, s *snapshot.Snapshot) error {
	var notFound snapshot.ErrSnapshotNotFound
	existing, err := r.GetByEventID(ctx, s.EventID)
	if err != nil && !errors.As(err, &notFound) {
		r.logger.Error("Failed to check for existing snapshot", "event_id", s.EventID.String(), "error", err)
		return fmt.Errorf("failed to check for existing snapshot: %w", err)
	}
	if existing != nil {
		return snapshot.ErrDuplicateSnapshot{EventID: s.EventID}
	}

	if _, err := r.collection.InsertOne(ctx, s); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return snapshot.ErrDuplicateSnapshot{EventID: s.EventID}
		}
		r.logger.Error("Failed to create snapshot",
			"journal_id", s.JournalID.String(),
			"event_id", s.EventID.String(),
			"error", err)
		return fmt.Errorf("failed to create snapshot: %w", err)
	}

	return nil
}

func (r *SnapshotRepository) GetByEventID(ctx context.Context, eventID uuid.UUID) (*snapshot.Snapshot, error) {
	var s snapshot.Snapshot
	err := r.collection.FindOne(ctx, bson.M{"event_id": eventID}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, snapshot.ErrSnapshotNotFound{EventID: eventID}
		}
		r.logger.Error("Failed to get snapshot", "event_id", eventID.String(), "error", err)
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	return &s, nil
}

// ListByJournal returns a page of the journal's snapshots, newest first
func (r *SnapshotRepository) ListByJournal(ctx context.Context, journalID uuid.UUID, limit, offset int) ([]*snapshot.Snapshot, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"journal_id": journalID}, opts)
	if err != nil {
		r.logger.Error("Failed to list snapshots", "journal_id", journalID.String(), "error", err)
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	snapshots := make([]*snapshot.Snapshot, 0)
	if err := cursor.All(ctx, &snapshots); err != nil {
		r.logger.Error("Failed to decode snapshots", "journal_id", journalID.String(), "error", err)
		return nil, fmt.Errorf("failed to decode snapshots: %w", err)
	}

	return snapshots, nil
}

func (r *SnapshotRepository) CountByJournal(ctx context.Context, journalID uuid.UUID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"journal_id": journalID})
	if err != nil {
		r.logger.Error("Failed to count snapshots", "journal_id", journalID.String(), "error", err)
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}

	return count, nil
}

// DeleteByJournal removes every snapshot of a deleted journal
func (r *SnapshotRepository) DeleteByJournal(ctx context.Context, journalID uuid.UUID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"journal_id": journalID})
	if err != nil {
		r.logger.Error("Failed to delete snapshots", "journal_id", journalID.String(), "error", err)
		return 0, fmt.Errorf("failed to delete snapshots: %w", err)
	}

	return result.DeletedCount, nil
}
