package fit

import (
	"image"
	"unicode/utf8"

	"github.com/user/textplate/pkg/ports"
)

// Measurer measures lines in a fixed shaping mode. When the advanced shaper
// fails on a string it retries the string unshaped, and when that fails too
// it estimates the box from the rune count.
//
// A Measurer counts its fallbacks and is not safe for concurrent use.
type Measurer struct {
	mode      ports.ShapingMode
	logger    ports.Logger
	fallbacks int
}

// NewMeasurer creates a Measurer for the given mode.
func NewMeasurer(mode ports.ShapingMode, logger ports.Logger) *Measurer {
	return &Measurer{mode: mode, logger: logger}
}

// Mode returns the configured shaping mode.
func (m *Measurer) Mode() ports.ShapingMode {
	return m.mode
}

// Fallbacks returns how many measurements did not use the configured mode.
func (m *Measurer) Fallbacks() int {
	return m.fallbacks
}

// Measure returns the ink box of text and the mode that produced it.
func (m *Measurer) Measure(face ports.TextFace, text string) (image.Rectangle, ports.ShapingMode) {
	box, err := face.Measure(text, m.mode)
	if err == nil {
		return box, m.mode
	}
	m.fallbacks++

	basic := ports.BasicShaping()
	if m.mode.IsAdvanced() {
		m.logger.Debug("Shaping failed at size %d, measuring unshaped: %v", face.Size(), err)
		box, err = face.Measure(text, basic)
		if err == nil {
			return box, basic
		}
	}

	m.logger.Debug("Measurement failed at size %d, using estimate: %v", face.Size(), err)
	return estimate(face.Size(), text), basic
}

// Width returns the measured width of text.
func (m *Measurer) Width(face ports.TextFace, text string) int {
	box, _ := m.Measure(face, text)
	return box.Dx()
}

// estimate approximates a line box as half an em per rune and one em tall.
func estimate(size int, text string) image.Rectangle {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, n*size/2, size)
}

// Block measures lines as one stacked block: the widest line, and the sum
// of line heights plus spacing between lines plus vertical padding.
func Block(m *Measurer, face ports.TextFace, lines []string, spacing int, opts Options) (width, height int) {
	for i, line := range lines {
		box, _ := m.Measure(face, line)
		if box.Dx() > width {
			width = box.Dx()
		}
		height += box.Dy()
		if i < len(lines)-1 {
			height += spacing
		}
	}
	height += opts.VerticalPadding(face.Size())
	return width, height
}
