package analytics

import (
	"math"
	"testing"

	"github.com/demandcast/demandcast/internal/models"
)

func TestEstimateTrend_FewerThanTwoPoints(t *testing.T) {
	cases := [][]float64{nil, {5}}
	for _, ys := range cases {
		xs := make([]float64, len(ys))
		for i := range xs {
			xs[i] = float64(i)
		}

		analysis := EstimateTrend(xs, ys)
		if analysis.Trend != models.TrendStable {
			t.Errorf("len=%d: expected STABLE, got %s", len(ys), analysis.Trend)
		}
		if analysis.Slope != 0 {
			t.Errorf("len=%d: expected slope 0, got %v", len(ys), analysis.Slope)
		}
	}
}

func TestEstimateTrend_Increasing(t *testing.T) {
	// 40 days strictly increasing by 1 unit/day starting at 10.
	series := AggregateDaily(generateIncreasingSales(40, 10, 1))
	xs, ys := SplitXY(series)

	analysis := EstimateTrend(xs, ys)
	if analysis.Trend != models.TrendIncreasing {
		t.Errorf("Expected INCREASING, got %s", analysis.Trend)
	}
	if !almostEqual(analysis.Slope, 1.0, 1e-9) {
		t.Errorf("Expected slope ~1.0, got %v", analysis.Slope)
	}
	if !almostEqual(analysis.RSquared, 1.0, 1e-9) {
		t.Errorf("Expected rSquared ~1.0, got %v", analysis.RSquared)
	}
}

func TestEstimateTrend_Decreasing(t *testing.T) {
	series := AggregateDaily(generateIncreasingSales(30, 100, -2))
	xs, ys := SplitXY(series)

	analysis := EstimateTrend(xs, ys)
	if analysis.Trend != models.TrendDecreasing {
		t.Errorf("Expected DECREASING, got %s", analysis.Trend)
	}
	if analysis.Slope >= 0 {
		t.Errorf("Expected negative slope, got %v", analysis.Slope)
	}
}

func TestEstimateTrend_FlatWithinThreshold(t *testing.T) {
	// Slope 0.05 sits inside the +-0.1 dead band.
	series := AggregateDaily(generateIncreasingSales(30, 10, 0.05))
	xs, ys := SplitXY(series)

	analysis := EstimateTrend(xs, ys)
	if analysis.Trend != models.TrendStable {
		t.Errorf("Expected STABLE for slope %v, got %s", analysis.Slope, analysis.Trend)
	}
}

func TestEstimateTrend_ConstantSeriesRSquaredUndefined(t *testing.T) {
	series := AggregateDaily(generateDailySales([]float64{5, 5, 5, 5, 5}))
	xs, ys := SplitXY(series)

	analysis := EstimateTrend(xs, ys)
	if analysis.Trend != models.TrendStable {
		t.Errorf("Expected STABLE, got %s", analysis.Trend)
	}
	if !almostEqual(analysis.Slope, 0, 1e-9) {
		t.Errorf("Expected slope ~0, got %v", analysis.Slope)
	}
	if !math.IsNaN(analysis.RSquared) {
		t.Errorf("Expected NaN rSquared for zero-variance series, got %v", analysis.RSquared)
	}
}

func TestFitLinear_PredictAt(t *testing.T) {
	// Exact line y = 3x + 2.
	xs := []float64{0, 1, 2, 3}
	ys := []float64{2, 5, 8, 11}

	reg, err := FitLinear(xs, ys)
	if err != nil {
		t.Fatalf("FitLinear failed: %v", err)
	}
	if !almostEqual(reg.PredictAt(10), 32, 1e-9) {
		t.Errorf("Expected prediction 32 at x=10, got %v", reg.PredictAt(10))
	}
}

func TestFitLinear_DegenerateX(t *testing.T) {
	if _, err := FitLinear([]float64{1, 1, 1}, []float64{2, 3, 4}); err == nil {
		t.Error("Expected error when all x values are the same")
	}
}
