package store

import "errors"

// ErrPredictionNotFound is returned when a prediction id does not exist.
var ErrPredictionNotFound = errors.New("prediction not found")
