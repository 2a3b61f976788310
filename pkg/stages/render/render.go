// Package render implements the text block rendering stage.
package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"
	"unicode"

	"github.com/user/textplate/pkg/pipeline"
	"github.com/user/textplate/pkg/ports"
	"github.com/user/textplate/pkg/stages/fit"
)

// CenterOffset returns floor((outer - inner) / 2).
func CenterOffset(outer, inner int) int {
	d := outer - inner
	if d < 0 && d%2 != 0 {
		return d/2 - 1
	}
	return d / 2
}

// Renderer draws wrapped lines centered on a transparent canvas.
type Renderer struct {
	opts   fit.Options
	mode   ports.ShapingMode
	color  color.Color
	logger ports.Logger
}

// NewRenderer creates a Renderer. opts must be the options the candidate was fitted with.
func NewRenderer(opts fit.Options, mode ports.ShapingMode, textColor color.Color, logger ports.Logger) *Renderer {
	if textColor == nil {
		textColor = pipeline.DefaultTextTheme().TextColor
	}
	return &Renderer{
		opts:   opts.Normalized(),
		mode:   mode,
		color:  textColor,
		logger: logger,
	}
}

// Render draws the candidate's lines into a block canvasWidth wide. The
// block height is the content height clamped to maxHeight; content below
// the clamp is cut off, not rewrapped.
func (r *Renderer) Render(cand pipeline.FitCandidate, canvasWidth, maxHeight int) (pipeline.RenderedBlock, error) {
	if cand.Face == nil {
		return pipeline.RenderedBlock{}, fmt.Errorf("render: candidate has no face")
	}
	if canvasWidth <= 0 || maxHeight <= 0 {
		return pipeline.RenderedBlock{}, fmt.Errorf("render: invalid canvas %dx%d", canvasWidth, maxHeight)
	}

	m := fit.NewMeasurer(r.mode, r.logger)
	face := cand.Face
	lines := cand.Lines.Lines

	_, contentHeight := fit.Block(m, face, lines, cand.LineSpacing, r.opts)
	height := contentHeight
	clamped := false
	if height > maxHeight {
		height = maxHeight
		clamped = true
	}
	if height <= 0 {
		height = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, canvasWidth, height))

	y := r.opts.TopPadding(face.Size())
	for _, line := range lines {
		box, mode := m.Measure(face, line)
		if err := r.drawLine(img, m, face, line, box, mode, y); err != nil {
			return pipeline.RenderedBlock{}, err
		}
		y += box.Dy() + cand.LineSpacing
	}

	if clamped {
		r.logger.Warn("Text block clamped from %d to %d px", contentHeight, maxHeight)
	}

	return pipeline.RenderedBlock{
		Image:         img,
		ContentHeight: contentHeight,
		Clamped:       clamped,
	}, nil
}

// drawLine draws one line centered in the block with its line box top at y.
// A shaped line that fails to draw is drawn unshaped. A line that still
// fails is drawn without its control characters, which have no glyphs.
func (r *Renderer) drawLine(dst *image.RGBA, m *fit.Measurer, face ports.TextFace, line string, box image.Rectangle, mode ports.ShapingMode, y int) error {
	at := image.Pt(CenterOffset(dst.Bounds().Dx(), box.Dx()), y)
	err := face.Draw(dst, line, at, r.color, mode)
	if err == nil {
		return nil
	}
	if mode.IsAdvanced() {
		r.logger.Warn("Shaped drawing failed, drawing unshaped: %v", err)
		if err = face.Draw(dst, line, at, r.color, ports.BasicShaping()); err == nil {
			return nil
		}
	}

	visible := dropControls(line)
	if visible == line {
		return fmt.Errorf("draw line: %w", err)
	}
	r.logger.Warn("Drawing failed, dropping control characters: %v", err)

	box, mode = m.Measure(face, visible)
	at.X = CenterOffset(dst.Bounds().Dx(), box.Dx())
	if err := face.Draw(dst, visible, at, r.color, mode); err != nil {
		return fmt.Errorf("draw line: %w", err)
	}
	return nil
}

func dropControls(s string) string {
	return strings.Map(func(c rune) rune {
		if unicode.IsControl(c) {
			return -1
		}
		return c
	}, s)
}

// Stage runs the renderer as a pipeline stage.
type Stage struct {
	renderer *Renderer
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new render stage.
func NewStage(opts fit.Options, mode ports.ShapingMode, theme pipeline.TextTheme, sink ports.DebugSink, logger ports.Logger) *Stage {
	l := logger.WithComponent("render")
	return &Stage{
		renderer: NewRenderer(opts, mode, theme.TextColor, l),
		sink:     sink,
		logger:   l,
	}
}

// Execute renders the candidate into a transparent block.
func (s *Stage) Execute(ctx context.Context, input pipeline.RenderInput) (pipeline.RenderedBlock, error) {
	s.logger.Debug("Rendering %d lines at size %d", input.Candidate.Lines.Len(), input.Candidate.Size)

	block, err := s.renderer.Render(input.Candidate, input.CanvasWidth, input.MaxHeight)
	if err != nil {
		return block, err
	}

	s.logger.Debug("Text block rendered: %dx%d", block.Image.Bounds().Dx(), block.Image.Bounds().Dy())

	if s.sink.Enabled() {
		s.sink.SaveTextBlock(block.Image)
	}
	return block, nil
}
