package services

import (
	"context"
	"errors"
	"time"

	"github.com/demandcast/demandcast/internal/config"
	"github.com/demandcast/demandcast/internal/events"
	"github.com/demandcast/demandcast/internal/logging"
	"github.com/demandcast/demandcast/internal/models"
	"github.com/demandcast/demandcast/internal/store"
)

// BatchResult is the per-category outcome of a batch generation run. Failures
// and skips are recorded here instead of aborting the run.
type BatchResult struct {
	CategoryID   string  `json:"category_id"`
	PredictionID string  `json:"prediction_id,omitempty"`
	Generated    bool    `json:"generated"`
	Skipped      bool    `json:"skipped,omitempty"`
	Error        string  `json:"error,omitempty"`
	Confidence   float64 `json:"confidence,omitempty"`
}

// CategoryAccuracy aggregates archived predictions for one category.
type CategoryAccuracy struct {
	Count             int     `json:"count"`
	AverageConfidence float64 `json:"average_confidence"`
}

// AccuracyReport summarizes recently archived predictions.
type AccuracyReport struct {
	TotalPredictions  int                         `json:"total_predictions"`
	AverageConfidence float64                     `json:"average_confidence"`
	ByCategory        map[string]CategoryAccuracy `json:"by_category"`
}

// PredictionService orchestrates the persisted prediction lifecycle: saving
// forecast outcomes, batch generation over categories, the archival sweep and
// the accuracy report.
type PredictionService struct {
	logger       *logging.Logger
	predictions  PredictionRepository
	forecasts    *ForecastService
	publisher    events.Publisher
	validityDays int
	scopeTimeout time.Duration
	now          func() time.Time
}

// NewPredictionService creates a new PredictionService
func NewPredictionService(
	logger *logging.Logger,
	predictions PredictionRepository,
	forecasts *ForecastService,
	publisher events.Publisher,
	forecastCfg config.ForecastConfig,
	schedulerCfg config.SchedulerConfig,
) *PredictionService {
	return &PredictionService{
		logger:       logger,
		predictions:  predictions,
		forecasts:    forecasts,
		publisher:    publisher,
		validityDays: forecastCfg.ValidityDays,
		scopeTimeout: schedulerCfg.ScopeTimeout,
		now:          time.Now,
	}
}

// Save persists a prediction and publishes the created event. A publish
// failure is logged, not surfaced; the stored prediction is the source of
// truth and consumers tolerate gaps.
func (s *PredictionService) Save(ctx context.Context, p *models.Prediction) error {
	if err := s.predictions.Insert(ctx, p); err != nil {
		return NewServiceErrorWithDetails(CodeStoreFailure,
			"Failed to persist prediction",
			map[string]interface{}{"error": err.Error()})
	}

	event := events.PredictionCreated{
		PredictionID:    p.ID,
		Type:            p.Type,
		CategoryID:      p.CategoryID,
		ProductID:       p.ProductID,
		ConfidenceScore: p.ConfidenceScore,
		ValidUntil:      p.ValidUntil,
		CreatedAt:       p.CreatedAt,
	}
	if err := events.PublishPredictionCreated(ctx, s.publisher, event); err != nil {
		s.logger.Warn("Failed to publish prediction created event",
			"prediction_id", p.ID, "error", err)
	}

	return nil
}

// GetPrediction returns a stored prediction by id.
func (s *PredictionService) GetPrediction(ctx context.Context, id string) (*models.Prediction, error) {
	p, err := s.predictions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrPredictionNotFound) {
			return nil, NewServiceError(CodeNotFound, "Prediction not found")
		}
		return nil, NewServiceErrorWithDetails(CodeStoreFailure,
			"Failed to load prediction",
			map[string]interface{}{"error": err.Error()})
	}
	return p, nil
}

// GenerateBatch runs a forecast for every category and persists the outcome
// as a prediction of the given type. Each category gets its own timeout-bound
// context; a failing category is recorded and the run continues.
func (s *PredictionService) GenerateBatch(ctx context.Context, categoryIDs []string, predType models.PredictionType) []BatchResult {
	results := make([]BatchResult, 0, len(categoryIDs))

	for _, categoryID := range categoryIDs {
		result := s.generateForCategory(ctx, categoryID, predType)
		results = append(results, result)

		if result.Error != "" {
			s.logger.Error("Batch prediction failed for category",
				"category_id", categoryID, "error", result.Error)
		}
	}

	return results
}

// generateForCategory runs one category under its own deadline.
func (s *PredictionService) generateForCategory(ctx context.Context, categoryID string, predType models.PredictionType) BatchResult {
	scopeCtx, cancel := context.WithTimeout(ctx, s.scopeTimeout)
	defer cancel()

	result := BatchResult{CategoryID: categoryID}

	forecast, err := s.forecasts.GenerateForecast(scopeCtx, models.Scope{CategoryID: categoryID}, 0)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	if !forecast.Success {
		result.Skipped = true
		return result
	}

	p := s.predictionFromForecast(categoryID, predType, forecast)
	if err := s.Save(scopeCtx, p); err != nil {
		result.Error = err.Error()
		return result
	}

	result.Generated = true
	result.PredictionID = p.ID
	result.Confidence = p.ConfidenceScore
	return result
}

// predictionFromForecast folds a forecast outcome into a persistable
// prediction. The forecasted value is the mean of the projected horizon.
func (s *PredictionService) predictionFromForecast(categoryID string, predType models.PredictionType, forecast *ForecastResult) *models.Prediction {
	now := s.now()

	var total float64
	for _, point := range forecast.Predictions {
		total += float64(point.ForecastedQuantity)
	}
	forecastedValue := 0.0
	if len(forecast.Predictions) > 0 {
		forecastedValue = total / float64(len(forecast.Predictions))
	}

	return &models.Prediction{
		Type:            predType,
		CategoryID:      categoryID,
		PredictionDate:  now,
		ForecastedValue: forecastedValue,
		ConfidenceScore: forecast.ConfidenceScore,
		HistoricalData: models.HistoricalData{
			DataPoints:   forecast.DataPoints,
			AverageValue: forecast.HistoricalAverage,
			Trend:        forecast.Trend,
		},
		ModelMetrics:    forecast.ModelMetrics,
		Recommendations: forecast.Recommendations,
		Status:          models.PredictionStatusActive,
		ValidUntil:      now.AddDate(0, 0, s.validityDays),
	}
}

// ListPredictions returns stored predictions for a category, newest first.
func (s *PredictionService) ListPredictions(ctx context.Context, categoryID string, limit int) ([]models.Prediction, error) {
	if categoryID == "" {
		return nil, NewServiceError(CodeInvalidRequest, "categoryId is required")
	}

	predictions, err := s.predictions.ListByCategory(ctx, categoryID, limit)
	if err != nil {
		return nil, NewServiceErrorWithDetails(CodeStoreFailure,
			"Failed to list predictions",
			map[string]interface{}{"category_id": categoryID, "error": err.Error()})
	}

	return predictions, nil
}

// ArchiveExpired sweeps every expired ACTIVE prediction to ARCHIVED and
// publishes a summary event when anything moved. The cutoff is the current
// time; re-running immediately is a no-op.
func (s *PredictionService) ArchiveExpired(ctx context.Context) (int64, error) {
	now := s.now()

	count, err := s.predictions.ArchiveExpired(ctx, now)
	if err != nil {
		return 0, NewServiceErrorWithDetails(CodeStoreFailure,
			"Failed to archive expired predictions",
			map[string]interface{}{"error": err.Error()})
	}

	if count > 0 {
		event := events.PredictionsArchived{Count: count, ArchivedAt: now}
		if err := events.PublishPredictionsArchived(ctx, s.publisher, event); err != nil {
			s.logger.Warn("Failed to publish archival event", "error", err)
		}
	}

	s.logger.Info("Archival sweep completed", "archived", count)
	return count, nil
}

// GetAccuracyReport aggregates predictions archived over the trailing window.
// With nothing archived it returns a zeroed report, not an error.
func (s *PredictionService) GetAccuracyReport(ctx context.Context, window time.Duration) (*AccuracyReport, error) {
	since := s.now().Add(-window)

	archived, err := s.predictions.FindArchivedSince(ctx, since)
	if err != nil {
		return nil, NewServiceErrorWithDetails(CodeStoreFailure,
			"Failed to load archived predictions",
			map[string]interface{}{"error": err.Error()})
	}

	report := &AccuracyReport{ByCategory: make(map[string]CategoryAccuracy)}
	report.TotalPredictions = len(archived)
	if len(archived) == 0 {
		return report, nil
	}

	var totalConfidence float64
	categoryTotals := make(map[string]float64)
	for _, p := range archived {
		totalConfidence += p.ConfidenceScore

		acc := report.ByCategory[p.CategoryID]
		acc.Count++
		report.ByCategory[p.CategoryID] = acc
		categoryTotals[p.CategoryID] += p.ConfidenceScore
	}

	report.AverageConfidence = totalConfidence / float64(len(archived))
	for categoryID, acc := range report.ByCategory {
		acc.AverageConfidence = categoryTotals[categoryID] / float64(acc.Count)
		report.ByCategory[categoryID] = acc
	}

	return report, nil
}
