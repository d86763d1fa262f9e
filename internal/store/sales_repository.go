package store

import (
	"context"
	"fmt"
	"time"

	"github.com/demandcast/demandcast/internal/logging"
	"github.com/demandcast/demandcast/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SalesRepository reads historical sales records. It never writes; sales data
// is owned by the order-fulfillment path.
type SalesRepository struct {
	logger *logging.Logger
	coll   *mongo.Collection
	now    func() time.Time
}

// NewSalesRepository creates a SalesRepository over the given database.
func NewSalesRepository(logger *logging.Logger, db *mongo.Database) *SalesRepository {
	return &SalesRepository{
		logger: logger,
		coll:   db.Collection(salesCollection),
		now:    time.Now,
	}
}

// FindByScope returns sales records matching the scope with date inside the
// trailing lookback window, ordered by date ascending. An empty result is an
// empty slice, not an error.
func (r *SalesRepository) FindByScope(ctx context.Context, scope models.Scope, lookbackMonths int) ([]models.SalesRecord, error) {
	startDate := r.now().AddDate(0, -lookbackMonths, 0)
	filter := scopeFilter(scope, startDate)

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query sales data: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]models.SalesRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode sales data: %w", err)
	}

	return records, nil
}

// TrendingByCategory aggregates sales per product within a category since the
// given time, sorted descending by total quantity and truncated to limit.
// Ordering among equal quantities is database-default and unspecified.
func (r *SalesRepository) TrendingByCategory(ctx context.Context, categoryID string, since time.Time, limit int) ([]models.TrendingItem, error) {
	pipeline := trendingPipeline(categoryID, since, limit)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate trending products: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]models.TrendingItem, 0, limit)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode trending products: %w", err)
	}

	return items, nil
}

// scopeFilter builds the sales query filter for a scope and window start.
func scopeFilter(scope models.Scope, startDate time.Time) bson.M {
	filter := bson.M{
		"date": bson.M{"$gte": startDate},
	}
	if scope.ProductID != "" {
		filter["productId"] = scope.ProductID
	}
	if scope.CategoryID != "" {
		filter["categoryId"] = scope.CategoryID
	}
	return filter
}

// trendingPipeline builds the match/group/sort/limit aggregation for the
// trending-products ranking.
func trendingPipeline(categoryID string, since time.Time, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"categoryId": categoryID,
			"date":       bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$productId",
			"totalQuantity": bson.M{"$sum": "$quantity"},
			"totalRevenue":  bson.M{"$sum": "$revenue"},
			"avgOrderValue": bson.M{"$avg": "$averageOrderValue"},
			"orderCount":    bson.M{"$sum": "$orderCount"},
		}}},
		{{Key: "$sort", Value: bson.M{"totalQuantity": -1}}},
		{{Key: "$limit", Value: limit}},
	}
}
