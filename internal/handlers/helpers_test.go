package handlers

import (
	"context"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/demandcast/demandcast/internal/config"
	"github.com/demandcast/demandcast/internal/events"
	"github.com/demandcast/demandcast/internal/logging"
	"github.com/demandcast/demandcast/internal/models"
	"github.com/demandcast/demandcast/internal/services"
	"github.com/demandcast/demandcast/internal/store"
)

type fakeSalesRepo struct {
	records  []models.SalesRecord
	trending []models.TrendingItem
	err      error
}

func (f *fakeSalesRepo) FindByScope(_ context.Context, _ models.Scope, _ int) ([]models.SalesRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeSalesRepo) TrendingByCategory(_ context.Context, _ string, _ time.Time, _ int) ([]models.TrendingItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.trending, nil
}

type fakePredictionRepo struct {
	byID     map[string]*models.Prediction
	inserted []*models.Prediction
	archived []models.Prediction
	swept    int64
}

func newFakePredictionRepo() *fakePredictionRepo {
	return &fakePredictionRepo{byID: make(map[string]*models.Prediction)}
}

func (f *fakePredictionRepo) Insert(_ context.Context, p *models.Prediction) error {
	if p.ID == "" {
		p.ID = "pred-1"
	}
	f.inserted = append(f.inserted, p)
	f.byID[p.ID] = p
	return nil
}

func (f *fakePredictionRepo) FindByID(_ context.Context, id string) (*models.Prediction, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, store.ErrPredictionNotFound
	}
	return p, nil
}

func (f *fakePredictionRepo) FindArchivedSince(_ context.Context, _ time.Time) ([]models.Prediction, error) {
	return f.archived, nil
}

func (f *fakePredictionRepo) ListByCategory(_ context.Context, categoryID string, _ int) ([]models.Prediction, error) {
	matches := make([]models.Prediction, 0)
	for _, p := range f.inserted {
		if p.CategoryID == categoryID {
			matches = append(matches, *p)
		}
	}
	return matches, nil
}

func (f *fakePredictionRepo) ArchiveExpired(_ context.Context, _ time.Time) (int64, error) {
	return f.swept, nil
}

// salesHistory produces n consecutive daily records with the given quantity.
func salesHistory(n int, quantity func(i int) float64) []models.SalesRecord {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	records := make([]models.SalesRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, models.SalesRecord{
			ProductID:  "prod-1",
			CategoryID: "ELECTRONICS",
			Date:       base.AddDate(0, 0, i),
			Quantity:   quantity(i),
		})
	}
	return records
}

// newTestApp wires a fiber app around handlers backed by fake repositories.
func newTestApp(sales *fakeSalesRepo, predictions *fakePredictionRepo) *fiber.App {
	logger := logging.NewWithWriter(io.Discard, zerolog.Disabled)

	forecastCfg := config.ForecastConfig{
		MinDataPoints:  30,
		LookbackMonths: 6,
		ForecastDays:   30,
		Alpha:          0.3,
		ValidityDays:   30,
	}
	schedulerCfg := config.SchedulerConfig{
		ForecastCron: "0 2 * * *",
		ArchiveCron:  "0 3 * * *",
		ScopeTimeout: time.Minute,
	}

	forecastSvc := services.NewForecastService(logger, sales, forecastCfg)
	trendingSvc := services.NewTrendingService(logger, sales)
	predictionSvc := services.NewPredictionService(logger, predictions, forecastSvc,
		events.NewMemoryPublisher(), forecastCfg, schedulerCfg)

	h := New(logger, forecastSvc, trendingSvc, predictionSvc)

	app := fiber.New()
	app.Get("/health", h.Health)
	app.Get("/v1/forecast/inventory", h.InventoryForecast)
	app.Get("/v1/forecast/demand", h.DemandForecast)
	app.Get("/v1/forecast/categories/:categoryId/trends", h.CategoryTrends)
	app.Get("/v1/trending", h.TrendingProducts)
	app.Post("/v1/predictions/generate", h.GeneratePredictions)
	app.Get("/v1/predictions/accuracy", h.PredictionAccuracy)
	app.Get("/v1/predictions/:id", h.GetPrediction)
	app.Get("/v1/predictions", h.ListPredictions)
	app.Use(h.NotFound)

	return app
}
