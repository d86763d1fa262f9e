package analytics

import (
	"time"

	"github.com/demandcast/demandcast/internal/models"
)

// DetectSeasonality computes per-day-of-week average sales quantity over raw
// (pre-aggregation) records to capture weekly demand cycles. Days of week
// with no observations are absent from the map; consumers must check
// membership before applying a multiplier.
func DetectSeasonality(records []models.SalesRecord) map[time.Weekday]float64 {
	sums := make(map[time.Weekday]float64)
	counts := make(map[time.Weekday]int)

	for _, r := range records {
		day := r.Date.UTC().Weekday()
		sums[day] += r.Quantity
		counts[day]++
	}

	factors := make(map[time.Weekday]float64, len(sums))
	for day, sum := range sums {
		factors[day] = sum / float64(counts[day])
	}
	return factors
}
