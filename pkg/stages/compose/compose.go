// Package compose implements pasting the text block onto the background.
package compose

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/user/textplate/pkg/pipeline"
	"github.com/user/textplate/pkg/ports"
	"github.com/user/textplate/pkg/stages/render"
)

// DefaultMinSafeSize is the smallest safe-area side in pixels.
const DefaultMinSafeSize = 50

// SafeRect converts margin fractions into a pixel rectangle inside bounds.
// Each side is at least minSize pixels long.
func SafeRect(bounds image.Rectangle, margins pipeline.Margins, minSize int) image.Rectangle {
	if minSize <= 0 {
		minSize = DefaultMinSafeSize
	}
	w, h := bounds.Dx(), bounds.Dy()

	x0 := int(float64(w) * margins.Left)
	x1 := int(float64(w) * (1.0 - margins.Right))
	y0 := int(float64(h) * margins.Top)
	y1 := int(float64(h) * (1.0 - margins.Bottom))

	maxW := max(minSize, x1-x0)
	maxH := max(minSize, y1-y0)

	return image.Rect(x0, y0, x0+maxW, y0+maxH).Add(bounds.Min)
}

// Area returns the rectangle, in background coordinates, that the block is
// fitted to and centered in.
func Area(p pipeline.Placement, bg image.Rectangle) (image.Rectangle, error) {
	switch p := p.(type) {
	case pipeline.PlacementFixed:
		return image.Rect(0, 0, p.Rect.MaxWidth, p.Rect.MaxHeight).Add(p.Origin), nil
	case *pipeline.PlacementFixed:
		return image.Rect(0, 0, p.Rect.MaxWidth, p.Rect.MaxHeight).Add(p.Origin), nil
	case pipeline.PlacementSafeArea:
		return SafeRect(bg, p.Margins, p.MinSize), nil
	case *pipeline.PlacementSafeArea:
		return SafeRect(bg, p.Margins, p.MinSize), nil
	default:
		return image.Rectangle{}, fmt.Errorf("unsupported placement %T", p)
	}
}

// Target returns the fit target for a placement on a background of the given bounds.
func Target(p pipeline.Placement, bg image.Rectangle) (pipeline.TargetRect, error) {
	area, err := Area(p, bg)
	if err != nil {
		return pipeline.TargetRect{}, err
	}
	return pipeline.TargetRect{MaxWidth: area.Dx(), MaxHeight: area.Dy()}, nil
}

// Offset centers a block of the given size inside area.
func Offset(area image.Rectangle, block image.Point) image.Point {
	return image.Pt(
		area.Min.X+render.CenterOffset(area.Dx(), block.X),
		area.Min.Y+render.CenterOffset(area.Dy(), block.Y),
	)
}

// Stage pastes the rendered block onto the background.
type Stage struct {
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new compose stage.
func NewStage(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("compose"),
	}
}

// Execute composes a new image; neither the background nor the block is modified.
func (s *Stage) Execute(ctx context.Context, input pipeline.ComposeInput) (pipeline.ComposeResult, error) {
	if input.Background == nil {
		return pipeline.ComposeResult{}, fmt.Errorf("compose: no background")
	}
	if input.Block.Image == nil {
		return pipeline.ComposeResult{}, fmt.Errorf("compose: no text block")
	}

	bg := input.Background.Bounds()
	area, err := Area(input.Placement, bg)
	if err != nil {
		return pipeline.ComposeResult{}, fmt.Errorf("compose: %w", err)
	}

	size := input.Block.Image.Bounds().Size()
	offset := Offset(area, size)
	s.logger.Debug("Pasting %dx%d block at (%d,%d) inside %v", size.X, size.Y, offset.X, offset.Y, area)

	canvas := s.renderer.CreateCanvas(bg.Dx(), bg.Dy(), color.Transparent)
	canvas.DrawImage(input.Background, 0, 0)
	// Canvas coordinates start at zero, background coordinates at bg.Min.
	canvas.DrawImage(input.Block.Image, offset.X-bg.Min.X, offset.Y-bg.Min.Y)
	out := canvas.ToImage()

	if s.sink.Enabled() {
		s.sink.SaveComposed(out)
		s.saveLayout(out, area, image.Rectangle{Min: offset, Max: offset.Add(size)}, bg.Min)
	}

	return pipeline.ComposeResult{
		Image:  out,
		Offset: offset,
		Area:   area,
	}, nil
}

// saveLayout writes the composed image with the target area and the block outlined.
func (s *Stage) saveLayout(img image.Image, area, block image.Rectangle, origin image.Point) {
	b := img.Bounds()
	canvas := s.renderer.CreateCanvas(b.Dx(), b.Dy(), color.Transparent)
	canvas.DrawImage(img, 0, 0)
	area = area.Sub(origin)
	block = block.Sub(origin)
	canvas.DrawRectStroke(area.Min.X, area.Min.Y, area.Dx(), area.Dy(), color.RGBA{R: 255, A: 255}, 2)
	canvas.DrawRectStroke(block.Min.X, block.Min.Y, block.Dx(), block.Dy(), color.RGBA{B: 255, A: 255}, 1)
	s.sink.SaveLayout(canvas.ToImage())
}
