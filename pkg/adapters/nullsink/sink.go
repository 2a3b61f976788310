// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/textplate/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveFitJSON does nothing.
func (s *Sink) SaveFitJSON(data []byte) error {
	return nil
}

// SaveTextBlock does nothing.
func (s *Sink) SaveTextBlock(img image.Image) error {
	return nil
}

// SaveLayout does nothing.
func (s *Sink) SaveLayout(img image.Image) error {
	return nil
}

// SaveComposed does nothing.
func (s *Sink) SaveComposed(img image.Image) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
