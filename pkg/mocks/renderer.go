package mocks

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/user/textplate/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	DecodeImageFunc  func(data []byte, opts ports.DecodeOptions) (image.Image, error)
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)

	mu          sync.Mutex
	DecodeCalls []ports.DecodeOptions
	EncodeCalls []ports.ImageFormat
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	return NewCanvas(width, height, bg)
}

func (m *Renderer) DecodeImage(data []byte, opts ports.DecodeOptions) (image.Image, error) {
	m.mu.Lock()
	m.DecodeCalls = append(m.DecodeCalls, opts)
	m.mu.Unlock()
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data, opts)
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	m.mu.Lock()
	m.EncodeCalls = append(m.EncodeCalls, format)
	m.mu.Unlock()
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

var _ ports.Renderer = (*Renderer)(nil)

// ImageCall records a call to Canvas.DrawImage.
type ImageCall struct {
	Bounds image.Rectangle
	X, Y   int
}

// RectCall records a call to Canvas.DrawRectStroke.
type RectCall struct {
	X, Y, W, H int
	Color      color.Color
}

// Canvas is a mock implementation of ports.Canvas. It draws images with
// draw.Over so composition results can be checked pixel by pixel.
type Canvas struct {
	img *image.RGBA

	ImageCalls []ImageCall
	RectCalls  []RectCall
}

// NewCanvas creates a canvas filled with bg.
func NewCanvas(width, height int, bg color.Color) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if bg != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}
	return &Canvas{img: img}
}

func (m *Canvas) DrawImage(img image.Image, x, y int) {
	m.ImageCalls = append(m.ImageCalls, ImageCall{Bounds: img.Bounds(), X: x, Y: y})
	b := img.Bounds()
	r := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	draw.Draw(m.img, r, img, b.Min, draw.Over)
}

func (m *Canvas) DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64) {
	m.RectCalls = append(m.RectCalls, RectCall{X: x, Y: y, W: w, H: h, Color: c})
}

func (m *Canvas) ToImage() image.Image {
	return m.img
}

var _ ports.Canvas = (*Canvas)(nil)
