package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/demandcast/demandcast/internal/analytics"
	"github.com/demandcast/demandcast/internal/config"
	"github.com/demandcast/demandcast/internal/logging"
	"github.com/demandcast/demandcast/internal/models"
)

// AlgorithmLinearRegression is the algorithm label reported in model metrics.
const AlgorithmLinearRegression = "LINEAR_REGRESSION"

// MaxConfidenceScore is the ceiling on claimed model certainty. The score is
// clamped here regardless of raw fit quality.
const MaxConfidenceScore = 0.95

// fallbackConfidence applies when rSquared is undefined (zero-variance series).
const fallbackConfidence = 0.5

// dateLayout formats forecast point dates.
const dateLayout = "2006-01-02"

// ForecastPoint is one projected day of demand.
type ForecastPoint struct {
	Date               string `json:"date"`
	ForecastedQuantity int    `json:"forecasted_quantity"`
	DayOfWeek          string `json:"day_of_week"`
}

// ForecastResult is the complete outcome of a forecast request. Insufficient
// history is a normal outcome reported with Success=false, never an error.
type ForecastResult struct {
	Success           bool                `json:"success"`
	Message           string              `json:"message,omitempty"`
	DataPoints        int                 `json:"data_points"`
	Required          int                 `json:"required,omitempty"`
	Trend             models.Trend        `json:"trend,omitempty"`
	ConfidenceScore   float64             `json:"confidence_score,omitempty"`
	HistoricalAverage float64             `json:"historical_average,omitempty"`
	HistoricalMedian  float64             `json:"historical_median,omitempty"`
	StandardDeviation float64             `json:"standard_deviation,omitempty"`
	Predictions       []ForecastPoint     `json:"predictions,omitempty"`
	Recommendations   []string            `json:"recommendations,omitempty"`
	ModelMetrics      models.ModelMetrics `json:"model_metrics,omitempty"`
}

// ForecastService turns historical sales into demand forecasts. Stateless per
// call; all tunables are injected at construction and safe for concurrent use
// across scopes.
type ForecastService struct {
	logger *logging.Logger
	sales  SalesRepository
	cfg    config.ForecastConfig
	now    func() time.Time
}

// NewForecastService creates a new ForecastService
func NewForecastService(logger *logging.Logger, sales SalesRepository, cfg config.ForecastConfig) *ForecastService {
	return &ForecastService{
		logger: logger,
		sales:  sales,
		cfg:    cfg,
		now:    time.Now,
	}
}

// GenerateForecast projects demand horizonDays forward for a scope. A
// non-positive horizon falls back to the configured default.
//
// Pipeline: fetch history, aggregate per day, classify the trend on the raw
// aggregated series, smooth, detect weekly seasonality on the raw records,
// then project with a second regression fitted on the smoothed series.
func (s *ForecastService) GenerateForecast(ctx context.Context, scope models.Scope, horizonDays int) (*ForecastResult, error) {
	startExec := time.Now()

	if horizonDays <= 0 {
		horizonDays = s.cfg.ForecastDays
	}

	records, err := s.sales.FindByScope(ctx, scope, s.cfg.LookbackMonths)
	if err != nil {
		return nil, NewServiceErrorWithDetails(CodeStoreFailure,
			"Failed to fetch historical sales data",
			map[string]interface{}{"error": err.Error()})
	}

	if len(records) < s.cfg.MinDataPoints {
		s.logger.Warn("Insufficient data for forecast",
			"product_id", scope.ProductID,
			"category_id", scope.CategoryID,
			"data_points", len(records),
			"required", s.cfg.MinDataPoints)
		return &ForecastResult{
			Success:    false,
			Message:    "Insufficient historical data",
			DataPoints: len(records),
			Required:   s.cfg.MinDataPoints,
		}, nil
	}

	series := analytics.AggregateDaily(records)
	xs, ys := analytics.SplitXY(series)

	// Trend classification fits the raw aggregated values; the projection
	// below refits on the smoothed ones.
	trend := analytics.EstimateTrend(xs, ys)
	smoothed := analytics.ExponentialSmoothing(ys, s.cfg.Alpha)
	seasonality := analytics.DetectSeasonality(records)

	projection, err := analytics.FitLinear(xs, smoothed)
	if err != nil {
		// Degenerate series (a single aggregated day): project flat.
		projection = analytics.Regression{Slope: 0, Intercept: smoothed[len(smoothed)-1]}
	}

	overallMean := analytics.Mean(ys)
	lastIndex := xs[len(xs)-1]
	// Seasonality keys are UTC weekdays; project in UTC so the lookup never
	// straddles a local midnight.
	now := s.now().UTC()

	predictions := make([]ForecastPoint, 0, horizonDays)
	for i := 1; i <= horizonDays; i++ {
		value := projection.PredictAt(lastIndex + float64(i))

		forecastDate := now.AddDate(0, 0, i)
		if factor, ok := seasonality[forecastDate.Weekday()]; ok && overallMean != 0 {
			value *= factor / overallMean
		}

		if value < 0 {
			value = 0
		}

		predictions = append(predictions, ForecastPoint{
			Date:               forecastDate.Format(dateLayout),
			ForecastedQuantity: int(math.Round(value)),
			DayOfWeek:          forecastDate.Weekday().String(),
		})
	}

	confidence := trend.RSquared
	if math.IsNaN(confidence) {
		confidence = fallbackConfidence
	}
	if confidence > MaxConfidenceScore {
		confidence = MaxConfidenceScore
	}
	if confidence < 0 {
		confidence = 0
	}

	// encoding/json cannot represent NaN; an undefined fit is reported as an
	// absent metric.
	metricsRSquared := trend.RSquared
	if math.IsNaN(metricsRSquared) {
		metricsRSquared = 0
	}

	result := &ForecastResult{
		Success:           true,
		DataPoints:        len(records),
		Trend:             trend.Trend,
		ConfidenceScore:   confidence,
		HistoricalAverage: overallMean,
		HistoricalMedian:  analytics.Median(ys),
		StandardDeviation: analytics.StdDev(ys),
		Predictions:       predictions,
		Recommendations:   buildRecommendations(predictions, trend.Trend, overallMean),
		ModelMetrics: models.ModelMetrics{
			Algorithm:  AlgorithmLinearRegression,
			RSquared:   metricsRSquared,
			DataPoints: len(records),
		},
	}

	s.logger.Info("Forecast generated",
		"product_id", scope.ProductID,
		"category_id", scope.CategoryID,
		"horizon_days", horizonDays,
		"trend", trend.Trend,
		"confidence", confidence,
		"data_points", len(records),
		"latency_ms", time.Since(startExec).Milliseconds())

	return result, nil
}

// buildRecommendations derives the fixed-rule action list: one trend-driven
// block plus exactly one peak-day entry (first maximum wins on ties).
func buildRecommendations(predictions []ForecastPoint, trend models.Trend, historicalAverage float64) []string {
	recommendations := make([]string, 0, 3)

	forecastQuantities := make([]float64, len(predictions))
	for i, p := range predictions {
		forecastQuantities[i] = float64(p.ForecastedQuantity)
	}
	avgForecast := analytics.Mean(forecastQuantities)

	switch trend {
	case models.TrendIncreasing:
		recommendations = append(recommendations, "Demand is trending upward. Consider increasing stock levels.")
		if avgForecast > historicalAverage*1.5 {
			recommendations = append(recommendations, "Significant demand spike expected. Prepare additional inventory.")
		}
	case models.TrendDecreasing:
		recommendations = append(recommendations,
			"Demand is trending downward. Optimize inventory to avoid overstocking.",
			"Consider promotional offers to boost sales.")
	default:
		recommendations = append(recommendations, "Demand is stable. Maintain current inventory levels.")
	}

	if len(predictions) > 0 {
		peak := predictions[0]
		for _, p := range predictions[1:] {
			if p.ForecastedQuantity > peak.ForecastedQuantity {
				peak = p
			}
		}
		recommendations = append(recommendations,
			fmt.Sprintf("Peak demand expected on %s (%s)", peak.DayOfWeek, peak.Date))
	}

	return recommendations
}
