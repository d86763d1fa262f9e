// Package analytics contains the pure computation behind demand forecasting:
// daily aggregation, linear trend estimation, exponential smoothing,
// weekly seasonality detection and the descriptive statistics helpers.
// Nothing here touches storage; every function is deterministic.
package analytics

import (
	"sort"
	"time"

	"github.com/demandcast/demandcast/internal/models"
)

// TimeSeriesPoint is one aggregated daily observation. Index is a dense
// 0..k-1 enumeration over the distinct calendar dates present in the window.
type TimeSeriesPoint struct {
	Index    int
	Date     time.Time
	Quantity float64
}

// AggregateDaily collapses raw sales records into one point per calendar day
// (UTC date truncation), summing quantity per day, sorted ascending by date.
//
// Calendar gaps between sale dates are NOT zero-filled: a day with no sales is
// simply absent and the next sale day takes the next index. The regression
// downstream therefore treats non-consecutive sale dates as adjacent steps.
// This compresses the time axis whenever sales skip days and is kept on
// purpose for compatibility with the historical behavior of the platform.
func AggregateDaily(records []models.SalesRecord) []TimeSeriesPoint {
	if len(records) == 0 {
		return nil
	}

	totals := make(map[time.Time]float64)
	for _, r := range records {
		day := truncateToDay(r.Date)
		totals[day] += r.Quantity
	}

	days := make([]time.Time, 0, len(totals))
	for day := range totals {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	series := make([]TimeSeriesPoint, len(days))
	for i, day := range days {
		series[i] = TimeSeriesPoint{Index: i, Date: day, Quantity: totals[day]}
	}
	return series
}

// SplitXY returns the regression inputs for a series: x is the dense index,
// y the aggregated quantity.
func SplitXY(series []TimeSeriesPoint) (xs, ys []float64) {
	xs = make([]float64, len(series))
	ys = make([]float64, len(series))
	for i, p := range series {
		xs[i] = float64(p.Index)
		ys[i] = p.Quantity
	}
	return xs, ys
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
