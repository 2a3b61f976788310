package pipeline

import (
	"image"
	"image/color"

	"github.com/user/textplate/pkg/ports"
)

// =============================================================================
// Common Types
// =============================================================================

// TargetRect is the area the final text block must fit inside.
type TargetRect struct {
	MaxWidth  int
	MaxHeight int
}

// Margins are safe-area margins expressed as fractions of the background size.
type Margins struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// =============================================================================
// Fit Stage Types
// =============================================================================

// WrapResult holds wrapped lines in reading order, top to bottom.
type WrapResult struct {
	Lines []string
}

// Len returns the number of lines.
func (w WrapResult) Len() int {
	return len(w.Lines)
}

// FitInput contains the normalized text and the box it must fit.
type FitInput struct {
	Text   string
	Target TargetRect
}

// FitCandidate is a font size together with the layout it produces.
type FitCandidate struct {
	Face        ports.TextFace `json:"-"`
	Size        int
	LineSpacing int
	Lines       WrapResult
	Width       int // widest measured line
	Height      int // block height including vertical padding

	// BestEffort is set when no size in range fits and the minimum size was
	// used anyway. The rendered block may be clipped.
	BestEffort bool

	// Fallbacks counts measurements during the search that could not use
	// the configured shaping mode.
	Fallbacks int
}

// =============================================================================
// Render Stage Types
// =============================================================================

// RenderInput contains the chosen candidate and the canvas constraints.
type RenderInput struct {
	Candidate   FitCandidate
	CanvasWidth int
	MaxHeight   int
}

// RenderedBlock is the transparent canvas holding the composed text.
type RenderedBlock struct {
	Image         *image.RGBA
	ContentHeight int  // height before clamping
	Clamped       bool // content was taller than MaxHeight
}

// Bounds returns the block bounds, or an empty rectangle when nothing was rendered.
func (b RenderedBlock) Bounds() image.Rectangle {
	if b.Image == nil {
		return image.Rectangle{}
	}
	return b.Image.Bounds()
}

// =============================================================================
// Compose Stage Types
// =============================================================================

// Placement selects how the target rectangle is derived from the background.
// It is either PlacementFixed or PlacementSafeArea.
type Placement interface {
	// AutoOrient reports whether the background must be re-oriented from
	// its EXIF metadata before its dimensions are read.
	AutoOrient() bool
}

// PlacementFixed positions the block inside a fixed rectangle at an absolute origin.
type PlacementFixed struct {
	Origin image.Point
	Rect   TargetRect
}

// AutoOrient implements Placement.
func (PlacementFixed) AutoOrient() bool { return false }

// PlacementSafeArea centers the block inside margins relative to the
// background dimensions.
type PlacementSafeArea struct {
	Margins Margins
	MinSize int // lower bound for either side of the safe rectangle
}

// AutoOrient implements Placement.
func (PlacementSafeArea) AutoOrient() bool { return true }

// ComposeInput contains the background, the block and the placement policy.
type ComposeInput struct {
	Background image.Image
	Block      RenderedBlock
	Placement  Placement
}

// ComposeResult contains the composed image and where the block was pasted.
type ComposeResult struct {
	Image  image.Image
	Offset image.Point
	Area   image.Rectangle // target area the block was centered in
}

// =============================================================================
// Theme
// =============================================================================

// TextTheme defines the text colors.
type TextTheme struct {
	TextColor color.Color
}

// DefaultTextTheme returns opaque black text.
func DefaultTextTheme() TextTheme {
	return TextTheme{
		TextColor: color.RGBA{A: 255},
	}
}
