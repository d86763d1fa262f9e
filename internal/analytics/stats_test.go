package analytics

import "testing"

func TestMean(t *testing.T) {
	if Mean(nil) != 0 {
		t.Error("Expected 0 mean for empty input")
	}
	if got := Mean([]float64{2, 4, 6}); got != 4 {
		t.Errorf("Expected mean 4, got %v", got)
	}
}

func TestMedian(t *testing.T) {
	if Median(nil) != 0 {
		t.Error("Expected 0 median for empty input")
	}
	if got := Median([]float64{9, 1, 5}); got != 5 {
		t.Errorf("Expected median 5, got %v", got)
	}
	if got := Median([]float64{4, 1, 3, 2}); got != 2.5 {
		t.Errorf("Expected median 2.5, got %v", got)
	}
}

func TestMedian_DoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Median(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("Median mutated its input: %v", values)
	}
}

func TestStdDev(t *testing.T) {
	if StdDev(nil) != 0 {
		t.Error("Expected 0 stddev for empty input")
	}
	if got := StdDev([]float64{5, 5, 5}); got != 0 {
		t.Errorf("Expected 0 stddev for constant series, got %v", got)
	}
	// Population stddev of {2, 4}: mean 3, variance 1.
	if got := StdDev([]float64{2, 4}); !almostEqual(got, 1, 1e-12) {
		t.Errorf("Expected stddev 1, got %v", got)
	}
}
