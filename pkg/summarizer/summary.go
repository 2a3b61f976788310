// Package summarizer provides summary generation for render results.
package summarizer

import (
	"image"
	"time"

	"github.com/user/textplate/pkg/orchestrator"
)

// Summary contains all data collected during a render.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Input
	Input InputInfo

	// Fit results
	Fit FitInfo

	// Block placement
	Layout LayoutInfo

	// Output image details
	Output OutputInfo
}

// InputInfo describes what was rendered.
type InputInfo struct {
	Text     string
	Format   string
	Template string
	Font     string
	Shaping  string
}

// FitInfo contains the chosen font size and wrapped lines.
type FitInfo struct {
	FontSize    int
	LineSpacing int
	Lines       []string
	BestEffort  bool
}

// LayoutInfo contains the geometry of the composed image.
type LayoutInfo struct {
	Background   image.Point // width, height
	TargetWidth  int
	TargetHeight int
	BlockWidth   int
	BlockHeight  int
	Offset       image.Point
	Clamped      bool
}

// OutputInfo contains information about the output image.
type OutputInfo struct {
	Path     string
	FileSize int64
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithInput sets input information.
func (b *Builder) WithInput(input InputInfo) *Builder {
	b.summary.Input = input
	return b
}

// WithFit sets fit results.
func (b *Builder) WithFit(fit FitInfo) *Builder {
	b.summary.Fit = fit
	return b
}

// WithLayout sets layout information.
func (b *Builder) WithLayout(layout LayoutInfo) *Builder {
	b.summary.Layout = layout
	return b
}

// WithOutput sets output information.
func (b *Builder) WithOutput(path string, fileSize int64) *Builder {
	b.summary.Output = OutputInfo{
		Path:     path,
		FileSize: fileSize,
	}
	return b
}

// WithResult fills fit, layout and output information from a run result.
func (b *Builder) WithResult(r orchestrator.RunResult) *Builder {
	b.summary.Input.Text = r.Text
	return b.
		WithFit(FitInfo{
			FontSize:    r.FontSize,
			LineSpacing: r.LineSpacing,
			Lines:       r.Lines,
			BestEffort:  r.BestEffort,
		}).
		WithLayout(LayoutInfo{
			Background:   r.Background,
			TargetWidth:  r.Target.MaxWidth,
			TargetHeight: r.Target.MaxHeight,
			BlockWidth:   r.BlockWidth,
			BlockHeight:  r.BlockHeight,
			Offset:       r.Offset,
			Clamped:      r.Clamped,
		}).
		WithOutput(r.OutputPath, int64(r.OutputBytes))
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
