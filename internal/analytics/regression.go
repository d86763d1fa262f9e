package analytics

import (
	"fmt"
	"math"

	"github.com/demandcast/demandcast/internal/models"
)

// Slope thresholds for trend classification. Fixed by contract with the
// consumers of trend labels; not configurable.
const (
	increasingSlopeThreshold = 0.1
	decreasingSlopeThreshold = -0.1
)

// TrendAnalysis is the outcome of fitting a linear trend to a daily series.
// RSquared is NaN when the coefficient of determination is undefined
// (zero variance in y).
type TrendAnalysis struct {
	Trend     models.Trend `json:"trend"`
	Slope     float64      `json:"slope"`
	Intercept float64      `json:"intercept"`
	RSquared  float64      `json:"r_squared"`
}

// Regression is a fitted simple linear model y = Slope*x + Intercept.
type Regression struct {
	Slope     float64
	Intercept float64
}

// FitLinear fits ordinary least squares over (xs, ys). It fails when fewer
// than 2 points are given or all x values coincide.
func FitLinear(xs, ys []float64) (Regression, error) {
	if len(xs) < 2 || len(xs) != len(ys) {
		return Regression{}, fmt.Errorf("need at least 2 points to fit, have %d", len(xs))
	}

	n := float64(len(xs))
	sumX, sumY, sumXY, sumX2 := 0.0, 0.0, 0.0, 0.0
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumX2 += xs[i] * xs[i]
	}

	denominator := n*sumX2 - sumX*sumX
	if denominator == 0 {
		return Regression{}, fmt.Errorf("cannot fit regression: all x values are the same")
	}

	slope := (n*sumXY - sumX*sumY) / denominator
	return Regression{
		Slope:     slope,
		Intercept: (sumY - slope*sumX) / n,
	}, nil
}

// PredictAt evaluates the fitted line at x.
func (r Regression) PredictAt(x float64) float64 {
	return r.Intercept + r.Slope*x
}

// RSquared returns the coefficient of determination of the fit over the
// given points. NaN when the total sum of squares is zero (constant series).
func (r Regression) RSquared(xs, ys []float64) float64 {
	if len(ys) == 0 {
		return math.NaN()
	}

	meanY := 0.0
	for _, y := range ys {
		meanY += y
	}
	meanY /= float64(len(ys))

	ssTot, ssRes := 0.0, 0.0
	for i := range ys {
		residual := ys[i] - r.PredictAt(xs[i])
		ssRes += residual * residual
		diff := ys[i] - meanY
		ssTot += diff * diff
	}

	if ssTot == 0 {
		return math.NaN()
	}
	return 1 - ssRes/ssTot
}

// EstimateTrend fits a linear trend over the aggregated series and classifies
// its direction. With fewer than 2 points the series carries no direction
// information and a STABLE zero-slope analysis is returned, not an error.
func EstimateTrend(xs, ys []float64) TrendAnalysis {
	reg, err := FitLinear(xs, ys)
	if err != nil {
		return TrendAnalysis{Trend: models.TrendStable, Slope: 0, RSquared: math.NaN()}
	}

	trend := models.TrendStable
	switch {
	case reg.Slope > increasingSlopeThreshold:
		trend = models.TrendIncreasing
	case reg.Slope < decreasingSlopeThreshold:
		trend = models.TrendDecreasing
	}

	return TrendAnalysis{
		Trend:     trend,
		Slope:     reg.Slope,
		Intercept: reg.Intercept,
		RSquared:  reg.RSquared(xs, ys),
	}
}
