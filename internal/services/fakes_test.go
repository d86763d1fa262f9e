package services

import (
	"context"
	"io"
	"time"

	"github.com/demandcast/demandcast/internal/config"
	"github.com/demandcast/demandcast/internal/logging"
	"github.com/demandcast/demandcast/internal/models"
	"github.com/demandcast/demandcast/internal/store"
	"github.com/rs/zerolog"
)

func testLogger() *logging.Logger {
	return logging.NewWithWriter(io.Discard, zerolog.Disabled)
}

func testForecastConfig() config.ForecastConfig {
	return config.ForecastConfig{
		MinDataPoints:  30,
		LookbackMonths: 6,
		ForecastDays:   30,
		Alpha:          0.3,
		ValidityDays:   30,
	}
}

func testSchedulerConfig() config.SchedulerConfig {
	return config.SchedulerConfig{
		Categories:   []string{"ELECTRONICS", "BOOKS"},
		ForecastCron: "0 2 * * *",
		ArchiveCron:  "0 3 * * *",
		ScopeTimeout: time.Minute,
	}
}

// fakeSalesRepo serves canned records and captures query arguments.
type fakeSalesRepo struct {
	records  []models.SalesRecord
	trending []models.TrendingItem
	err      error

	lastScope    models.Scope
	lastCategory string
	lastSince    time.Time
	lastLimit    int
}

func (f *fakeSalesRepo) FindByScope(_ context.Context, scope models.Scope, _ int) ([]models.SalesRecord, error) {
	f.lastScope = scope
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeSalesRepo) TrendingByCategory(_ context.Context, categoryID string, since time.Time, limit int) ([]models.TrendingItem, error) {
	f.lastCategory = categoryID
	f.lastSince = since
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.trending, nil
}

// fakePredictionRepo stores predictions in memory.
type fakePredictionRepo struct {
	inserted  []*models.Prediction
	archived  []models.Prediction
	byID      map[string]*models.Prediction
	swept     int64
	insertErr error
	queryErr  error
}

func newFakePredictionRepo() *fakePredictionRepo {
	return &fakePredictionRepo{byID: make(map[string]*models.Prediction)}
}

func (f *fakePredictionRepo) Insert(_ context.Context, p *models.Prediction) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if p.ID == "" {
		p.ID = "pred-" + time.Now().Format("150405.000000000")
	}
	if p.Status == "" {
		p.Status = models.PredictionStatusActive
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	p.ApplyLazyArchival(p.CreatedAt)
	f.inserted = append(f.inserted, p)
	f.byID[p.ID] = p
	return nil
}

func (f *fakePredictionRepo) FindByID(_ context.Context, id string) (*models.Prediction, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, store.ErrPredictionNotFound
	}
	p.ApplyLazyArchival(time.Now())
	return p, nil
}

func (f *fakePredictionRepo) FindArchivedSince(_ context.Context, _ time.Time) ([]models.Prediction, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.archived, nil
}

func (f *fakePredictionRepo) ListByCategory(_ context.Context, categoryID string, limit int) ([]models.Prediction, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	matches := make([]models.Prediction, 0)
	for _, p := range f.inserted {
		if p.CategoryID == categoryID {
			matches = append(matches, *p)
		}
		if limit > 0 && len(matches) == limit {
			break
		}
	}
	return matches, nil
}

func (f *fakePredictionRepo) ArchiveExpired(_ context.Context, _ time.Time) (int64, error) {
	if f.queryErr != nil {
		return 0, f.queryErr
	}
	return f.swept, nil
}

// generateDailySales produces one record per day for n days starting at base,
// with quantity supplied per day index.
func generateDailySales(base time.Time, n int, quantity func(i int) float64) []models.SalesRecord {
	records := make([]models.SalesRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, models.SalesRecord{
			ProductID:         "prod-1",
			ShopID:            "shop-1",
			CategoryID:        "ELECTRONICS",
			Date:              base.AddDate(0, 0, i),
			Quantity:          quantity(i),
			Revenue:           quantity(i) * 10,
			OrderCount:        1,
			AverageOrderValue: 10,
		})
	}
	return records
}
