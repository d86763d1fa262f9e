package services

import (
	"context"
	"time"

	"github.com/demandcast/demandcast/internal/models"
)

// SalesRepository is the read-only historical sales accessor the forecasting
// pipeline consumes. Implemented by store.SalesRepository.
type SalesRepository interface {
	// FindByScope returns records within the trailing lookback window for a
	// scope, ordered by date ascending; empty slice when nothing matches.
	FindByScope(ctx context.Context, scope models.Scope, lookbackMonths int) ([]models.SalesRecord, error)

	// TrendingByCategory ranks products in a category by sales volume since
	// the given time, descending, truncated to limit.
	TrendingByCategory(ctx context.Context, categoryID string, since time.Time, limit int) ([]models.TrendingItem, error)
}

// PredictionRepository is the persisted prediction store the lifecycle
// services consume. Implemented by store.PredictionRepository.
type PredictionRepository interface {
	Insert(ctx context.Context, p *models.Prediction) error
	FindByID(ctx context.Context, id string) (*models.Prediction, error)
	FindArchivedSince(ctx context.Context, since time.Time) ([]models.Prediction, error)
	ListByCategory(ctx context.Context, categoryID string, limit int) ([]models.Prediction, error)
	ArchiveExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
