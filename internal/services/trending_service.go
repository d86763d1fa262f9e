package services

import (
	"context"
	"time"

	"github.com/demandcast/demandcast/internal/logging"
	"github.com/demandcast/demandcast/internal/models"
)

// DefaultTrendingLimit caps the ranking when the caller does not ask for a
// specific size.
const DefaultTrendingLimit = 10

// TrendingService ranks products inside a category by recent sales volume.
type TrendingService struct {
	logger *logging.Logger
	sales  SalesRepository
	now    func() time.Time
}

// NewTrendingService creates a new TrendingService
func NewTrendingService(logger *logging.Logger, sales SalesRepository) *TrendingService {
	return &TrendingService{
		logger: logger,
		sales:  sales,
		now:    time.Now,
	}
}

// GetTrendingProducts returns the top products of a category over the trailing
// calendar month, ordered by total quantity descending. Ties carry no defined
// order. A non-positive limit falls back to DefaultTrendingLimit.
func (s *TrendingService) GetTrendingProducts(ctx context.Context, categoryID string, limit int) ([]models.TrendingItem, error) {
	if categoryID == "" {
		return nil, NewServiceError(CodeInvalidRequest, "categoryId is required")
	}

	if limit <= 0 {
		limit = DefaultTrendingLimit
	}

	since := s.now().AddDate(0, -1, 0)

	items, err := s.sales.TrendingByCategory(ctx, categoryID, since, limit)
	if err != nil {
		return nil, NewServiceErrorWithDetails(CodeStoreFailure,
			"Failed to rank trending products",
			map[string]interface{}{"category_id": categoryID, "error": err.Error()})
	}

	s.logger.Debug("Trending products ranked",
		"category_id", categoryID,
		"limit", limit,
		"results", len(items))

	return items, nil
}
