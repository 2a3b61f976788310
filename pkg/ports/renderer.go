package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts image decoding, encoding and canvas creation.
type Renderer interface {
	// CreateCanvas creates a new drawing canvas with the specified dimensions and background color.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// DecodeImage decodes image data into an image.Image.
	DecodeImage(data []byte, opts DecodeOptions) (image.Image, error)

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)
}

// DecodeOptions controls how background images are decoded.
type DecodeOptions struct {
	// AutoOrient applies the EXIF orientation tag so the returned pixels are
	// the visually correct ones.
	AutoOrient bool
}

// Canvas provides drawing operations for compositing images.
type Canvas interface {
	// DrawImage draws an image at the specified position, blending with its alpha channel.
	DrawImage(img image.Image, x, y int)

	// DrawRectStroke draws a rectangle outline.
	DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
)
