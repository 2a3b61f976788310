package mocks

import (
	"image"
	"sync"

	"github.com/user/textplate/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	FitJSON   []byte
	TextBlock image.Image
	Layout    image.Image
	Composed  image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{enabled: enabled}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveFitJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FitJSON = data
	return nil
}

func (m *DebugSink) SaveTextBlock(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TextBlock = img
	return nil
}

func (m *DebugSink) SaveLayout(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Layout = img
	return nil
}

func (m *DebugSink) SaveComposed(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Composed = img
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
