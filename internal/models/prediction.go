package models

import "time"

// PredictionType classifies what a persisted prediction describes.
type PredictionType string

const (
	PredictionTypeInventory PredictionType = "INVENTORY"
	PredictionTypeTrending  PredictionType = "TRENDING"
	PredictionTypeDemand    PredictionType = "DEMAND"
)

// PredictionStatus is the lifecycle state of a persisted prediction.
// ACTIVE transitions to ARCHIVED once validUntil passes; never back.
type PredictionStatus string

const (
	PredictionStatusPending  PredictionStatus = "PENDING"
	PredictionStatusActive   PredictionStatus = "ACTIVE"
	PredictionStatusArchived PredictionStatus = "ARCHIVED"
)

// Trend is the coarse classification of a regression slope.
type Trend string

const (
	TrendIncreasing Trend = "INCREASING"
	TrendDecreasing Trend = "DECREASING"
	TrendStable     Trend = "STABLE"
)

// HistoricalData summarizes the input window a prediction was computed from.
type HistoricalData struct {
	DataPoints   int       `bson:"dataPoints" json:"data_points"`
	StartDate    time.Time `bson:"startDate,omitempty" json:"start_date,omitempty"`
	EndDate      time.Time `bson:"endDate,omitempty" json:"end_date,omitempty"`
	AverageValue float64   `bson:"averageValue" json:"average_value"`
	Trend        Trend     `bson:"trend,omitempty" json:"trend,omitempty"`
}

// ModelMetrics describes the model behind a forecast.
type ModelMetrics struct {
	Algorithm  string  `bson:"algorithm" json:"algorithm"`
	Accuracy   float64 `bson:"accuracy,omitempty" json:"accuracy,omitempty"`
	RSquared   float64 `bson:"rSquared,omitempty" json:"r_squared,omitempty"`
	DataPoints int     `bson:"dataPoints,omitempty" json:"data_points,omitempty"`
}

// Prediction is a persisted forecast with a validity window. Owned by the
// prediction store; callers only ever see copies.
type Prediction struct {
	ID              string           `bson:"_id,omitempty" json:"id"`
	Type            PredictionType   `bson:"type" json:"type"`
	CategoryID      string           `bson:"categoryId,omitempty" json:"category_id,omitempty"`
	ProductID       string           `bson:"productId,omitempty" json:"product_id,omitempty"`
	PredictionDate  time.Time        `bson:"predictionDate" json:"prediction_date"`
	ForecastedValue float64          `bson:"forecastedValue" json:"forecasted_value"`
	ConfidenceScore float64          `bson:"confidenceScore" json:"confidence_score"`
	HistoricalData  HistoricalData   `bson:"historicalData" json:"historical_data"`
	ModelMetrics    ModelMetrics     `bson:"modelMetrics" json:"model_metrics"`
	Recommendations []string         `bson:"recommendations,omitempty" json:"recommendations,omitempty"`
	Status          PredictionStatus `bson:"status" json:"status"`
	ValidUntil      time.Time        `bson:"validUntil" json:"valid_until"`
	CreatedAt       time.Time        `bson:"createdAt" json:"created_at"`
	UpdatedAt       time.Time        `bson:"updatedAt" json:"updated_at"`
}

// Expired reports whether the validity window has passed.
func (p *Prediction) Expired(now time.Time) bool {
	return now.After(p.ValidUntil)
}

// ApplyLazyArchival flips an expired ACTIVE prediction to ARCHIVED and reports
// whether a transition happened. Idempotent; safe to race with the batch sweep.
func (p *Prediction) ApplyLazyArchival(now time.Time) bool {
	if p.Status == PredictionStatusActive && p.Expired(now) {
		p.Status = PredictionStatusArchived
		return true
	}
	return false
}
