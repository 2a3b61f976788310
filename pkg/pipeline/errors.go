package pipeline

import "errors"

var (
	// ErrResourceMissing means a font or background could not be loaded.
	ErrResourceMissing = errors.New("resource missing")

	// ErrNoFitFound means no font size in range fits the target rectangle.
	ErrNoFitFound = errors.New("no font size fits the target")

	// ErrMeasurementFailure means the shaping backend could not measure or
	// draw a string.
	ErrMeasurementFailure = errors.New("text measurement failed")

	// ErrInvalidInput means the text is empty after normalization.
	ErrInvalidInput = errors.New("invalid input")
)
