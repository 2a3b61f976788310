package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveFitJSON saves the chosen fit candidate as JSON.
	SaveFitJSON(data []byte) error

	// SaveTextBlock saves the transparent text block before composition.
	SaveTextBlock(img image.Image) error

	// SaveLayout saves the composed image annotated with the target and block rectangles.
	SaveLayout(img image.Image) error

	// SaveComposed saves the final composed image.
	SaveComposed(img image.Image) error
}
