// Package mocks provides mock implementations for testing.
package mocks

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
	"unicode/utf8"

	"github.com/user/textplate/pkg/ports"
)

// TextFace is a mock implementation of ports.TextFace.
//
// Without overrides it uses fixed metrics: each rune is half the size wide
// and every non-empty line is exactly size tall. Draw fills the measured box.
type TextFace struct {
	SizePx      int
	MeasureFunc func(text string, mode ports.ShapingMode) (image.Rectangle, error)
	DrawFunc    func(dst *image.RGBA, text string, origin image.Point, c color.Color, mode ports.ShapingMode) error

	mu        sync.Mutex
	DrawCalls []DrawCall
}

// DrawCall records a call to TextFace.Draw.
type DrawCall struct {
	Text   string
	Origin image.Point
	Mode   ports.ShapingMode
}

// NewTextFace creates a mock face with the default metrics.
func NewTextFace(size int) *TextFace {
	return &TextFace{SizePx: size}
}

// MonospaceBox returns the default mock metrics for text at size.
func MonospaceBox(text string, size int) image.Rectangle {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, n*size/2, size)
}

func (m *TextFace) Size() int {
	return m.SizePx
}

func (m *TextFace) Measure(text string, mode ports.ShapingMode) (image.Rectangle, error) {
	if m.MeasureFunc != nil {
		return m.MeasureFunc(text, mode)
	}
	return MonospaceBox(text, m.SizePx), nil
}

func (m *TextFace) Draw(dst *image.RGBA, text string, origin image.Point, c color.Color, mode ports.ShapingMode) error {
	m.mu.Lock()
	m.DrawCalls = append(m.DrawCalls, DrawCall{Text: text, Origin: origin, Mode: mode})
	m.mu.Unlock()
	if m.DrawFunc != nil {
		return m.DrawFunc(dst, text, origin, c, mode)
	}
	box, err := m.Measure(text, mode)
	if err != nil {
		return err
	}
	draw.Draw(dst, box.Add(origin), image.NewUniform(c), image.Point{}, draw.Over)
	return nil
}

var _ ports.TextFace = (*TextFace)(nil)

// FontLoader is a mock implementation of ports.FontLoader.
type FontLoader struct {
	LoadFaceFunc func(size int) (ports.TextFace, error)

	mu    sync.Mutex
	faces map[int]*TextFace
	Sizes []int
}

// NewFontLoader creates a loader that hands out default mock faces.
func NewFontLoader() *FontLoader {
	return &FontLoader{faces: make(map[int]*TextFace)}
}

func (m *FontLoader) LoadFace(size int) (ports.TextFace, error) {
	m.mu.Lock()
	m.Sizes = append(m.Sizes, size)
	m.mu.Unlock()
	if m.LoadFaceFunc != nil {
		return m.LoadFaceFunc(size)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.faces == nil {
		m.faces = make(map[int]*TextFace)
	}
	f, ok := m.faces[size]
	if !ok {
		f = NewTextFace(size)
		m.faces[size] = f
	}
	return f, nil
}

// Face returns the default face handed out for size, if any.
func (m *FontLoader) Face(size int) (*TextFace, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.faces[size]
	return f, ok
}

var _ ports.FontLoader = (*FontLoader)(nil)
