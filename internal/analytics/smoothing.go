package analytics

// DefaultSmoothingAlpha is the smoothing factor used when callers pass an
// out-of-range alpha.
const DefaultSmoothingAlpha = 0.3

// ExponentialSmoothing dampens noise in a series before projection:
// smoothed[0] = values[0], smoothed[i] = alpha*values[i] + (1-alpha)*smoothed[i-1].
// Returns an empty slice on empty input. A constant series is a fixed point.
func ExponentialSmoothing(values []float64, alpha float64) []float64 {
	if len(values) == 0 {
		return []float64{}
	}
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultSmoothingAlpha
	}

	smoothed := make([]float64, len(values))
	smoothed[0] = values[0]
	for i := 1; i < len(values); i++ {
		smoothed[i] = alpha*values[i] + (1-alpha)*smoothed[i-1]
	}
	return smoothed
}
