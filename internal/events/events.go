// Package events publishes prediction lifecycle events to a configurable
// queue backend. Only the publish boundary lives here; downstream consumers
// (merchant notifications, dashboards) subscribe from their own processes.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/demandcast/demandcast/internal/models"
)

// Subjects for prediction lifecycle events.
const (
	SubjectPredictionCreated  = "predictions.created"
	SubjectPredictionArchived = "predictions.archived"
)

// Publisher publishes messages to a queue backend
type Publisher interface {
	// Publish publishes a message to a subject/topic
	Publish(ctx context.Context, subject string, data []byte) error

	// Close closes the connection
	Close() error
}

// PredictionCreated is emitted after a prediction is persisted.
type PredictionCreated struct {
	PredictionID    string                `json:"prediction_id"`
	Type            models.PredictionType `json:"type"`
	CategoryID      string                `json:"category_id,omitempty"`
	ProductID       string                `json:"product_id,omitempty"`
	ConfidenceScore float64               `json:"confidence_score"`
	ValidUntil      time.Time             `json:"valid_until"`
	CreatedAt       time.Time             `json:"created_at"`
}

// PredictionsArchived is emitted after an archival sweep retires expired
// predictions.
type PredictionsArchived struct {
	Count      int64     `json:"count"`
	ArchivedAt time.Time `json:"archived_at"`
}

// PublishPredictionCreated marshals and publishes a created event.
func PublishPredictionCreated(ctx context.Context, pub Publisher, event PredictionCreated) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return pub.Publish(ctx, SubjectPredictionCreated, data)
}

// PublishPredictionsArchived marshals and publishes an archival sweep event.
func PublishPredictionsArchived(ctx context.Context, pub Publisher, event PredictionsArchived) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return pub.Publish(ctx, SubjectPredictionArchived, data)
}
