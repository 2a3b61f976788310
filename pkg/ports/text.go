package ports

import (
	"image"
	"image/color"
)

// Direction is the writing direction handed to an advanced shaper.
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	if d == RightToLeft {
		return "rtl"
	}
	return "ltr"
}

// ShapingKind selects how a face turns code points into glyphs.
type ShapingKind int

const (
	// ShapingBasic maps runes to glyphs one by one, left to right.
	// Arabic letters are drawn in their isolated forms.
	ShapingBasic ShapingKind = iota
	// ShapingAdvanced runs a full OpenType shaper that joins letters and
	// orders glyphs in the given direction.
	ShapingAdvanced
)

// ShapingMode is decided once at startup and threaded through every
// measurement and draw call.
type ShapingMode struct {
	Kind      ShapingKind
	Direction Direction // only meaningful for ShapingAdvanced
}

// BasicShaping returns the degraded, unshaped mode.
func BasicShaping() ShapingMode {
	return ShapingMode{Kind: ShapingBasic}
}

// AdvancedShaping returns the shaped mode for the given direction.
func AdvancedShaping(dir Direction) ShapingMode {
	return ShapingMode{Kind: ShapingAdvanced, Direction: dir}
}

// IsAdvanced reports whether the mode asks for a shaper.
func (m ShapingMode) IsAdvanced() bool {
	return m.Kind == ShapingAdvanced
}

// String returns a short label used in logs and summaries.
func (m ShapingMode) String() string {
	if m.IsAdvanced() {
		return "advanced/" + m.Direction.String()
	}
	return "basic"
}

// TextFace is a font loaded at one pixel size. It measures and draws single
// lines of text.
type TextFace interface {
	// Size returns the pixel size of the face.
	Size() int

	// Measure returns the ink bounding box of text relative to a draw origin
	// placed at the top-left of the line box (the ascender line).
	// Width and height of the box are the measured line dimensions.
	Measure(text string, mode ShapingMode) (image.Rectangle, error)

	// Draw renders text with its line box top-left at origin.
	Draw(dst *image.RGBA, text string, origin image.Point, c color.Color, mode ShapingMode) error
}

// FontLoader produces faces of a single font resource at arbitrary sizes.
type FontLoader interface {
	// LoadFace returns the face for the given pixel size.
	LoadFace(size int) (TextFace, error)
}
