package store

import (
	"context"
	"fmt"
	"time"

	"github.com/demandcast/demandcast/internal/logging"
	"github.com/demandcast/demandcast/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PredictionRepository owns the persisted prediction lifecycle. Inserts are
// append-style; prior predictions for the same scope are never updated, only
// archived once their validity window passes.
type PredictionRepository struct {
	logger *logging.Logger
	coll   *mongo.Collection
	now    func() time.Time
}

// NewPredictionRepository creates a PredictionRepository over the given database.
func NewPredictionRepository(logger *logging.Logger, db *mongo.Database) *PredictionRepository {
	return &PredictionRepository{
		logger: logger,
		coll:   db.Collection(predictionsCollection),
		now:    time.Now,
	}
}

// Insert persists a new prediction, generating its id and timestamps. Status
// defaults to ACTIVE, and a prediction whose validity window already passed is
// stored ARCHIVED straight away.
func (r *PredictionRepository) Insert(ctx context.Context, p *models.Prediction) error {
	now := r.now()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = models.PredictionStatusActive
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	p.ApplyLazyArchival(now)

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to insert prediction: %w", err)
	}

	return nil
}

// FindByID returns a prediction copy. An expired ACTIVE prediction is
// reported ARCHIVED immediately and the correction is written back; the
// write-back shares the outcome with the batch sweep, so a failure there is
// logged and not surfaced.
func (r *PredictionRepository) FindByID(ctx context.Context, id string) (*models.Prediction, error) {
	var p models.Prediction
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPredictionNotFound
		}
		return nil, fmt.Errorf("failed to find prediction: %w", err)
	}

	if p.ApplyLazyArchival(r.now()) {
		r.persistArchival(ctx, p.ID)
	}

	return &p, nil
}

// FindArchivedSince returns archived predictions whose validity window ended
// at or after the given time. Feeds the accuracy report.
func (r *PredictionRepository) FindArchivedSince(ctx context.Context, since time.Time) ([]models.Prediction, error) {
	filter := bson.M{
		"status":     models.PredictionStatusArchived,
		"validUntil": bson.M{"$gte": since},
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "predictionDate", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query archived predictions: %w", err)
	}
	defer cursor.Close(ctx)

	predictions := make([]models.Prediction, 0)
	if err := cursor.All(ctx, &predictions); err != nil {
		return nil, fmt.Errorf("failed to decode predictions: %w", err)
	}

	return predictions, nil
}

// ListByCategory returns predictions for a category, newest first, lazily
// archiving any whose validity window has passed.
func (r *PredictionRepository) ListByCategory(ctx context.Context, categoryID string, limit int) ([]models.Prediction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "predictionDate", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, bson.M{"categoryId": categoryID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer cursor.Close(ctx)

	predictions := make([]models.Prediction, 0)
	if err := cursor.All(ctx, &predictions); err != nil {
		return nil, fmt.Errorf("failed to decode predictions: %w", err)
	}

	now := r.now()
	for i := range predictions {
		if predictions[i].ApplyLazyArchival(now) {
			r.persistArchival(ctx, predictions[i].ID)
		}
	}

	return predictions, nil
}

// ArchiveExpired transitions every ACTIVE prediction whose validUntil is
// before the cutoff to ARCHIVED and returns the count. Idempotent and
// order-independent with the lazy read-path archival.
func (r *PredictionRepository) ArchiveExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.coll.UpdateMany(ctx,
		bson.M{
			"status":     models.PredictionStatusActive,
			"validUntil": bson.M{"$lt": cutoff},
		},
		bson.M{"$set": bson.M{
			"status":    models.PredictionStatusArchived,
			"updatedAt": r.now(),
		}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to archive expired predictions: %w", err)
	}

	return result.ModifiedCount, nil
}

// persistArchival writes a lazy read-path archival back to the store.
func (r *PredictionRepository) persistArchival(ctx context.Context, id string) {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.PredictionStatusActive},
		bson.M{"$set": bson.M{
			"status":    models.PredictionStatusArchived,
			"updatedAt": r.now(),
		}},
	)
	if err != nil {
		r.logger.Warn("Failed to persist lazy archival; sweep will retry",
			"prediction_id", id, "error", err)
	}
}
