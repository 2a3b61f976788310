// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"image"

	"github.com/user/textplate/pkg/pipeline"
	"github.com/user/textplate/pkg/ports"
	"github.com/user/textplate/pkg/stages/compose"
)

// Config contains the per-run inputs of the orchestrator. Fonts, fit
// options, shaping mode and text color are fixed when the stages are built.
type Config struct {
	// Input
	Text           string
	BackgroundPath string

	// Layout
	Placement pipeline.Placement

	// Output
	OutputPath   string
	OutputFormat ports.ImageFormat
	Quality      int // JPEG quality, ignored for PNG

	// RejectBestEffort turns a best-effort fit into ErrNoFitFound.
	RejectBestEffort bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		OutputFormat: ports.FormatPNG,
		Quality:      90,
	}
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	normalizeStage pipeline.Stage[string, string]
	fitStage       pipeline.Stage[pipeline.FitInput, pipeline.FitCandidate]
	renderStage    pipeline.Stage[pipeline.RenderInput, pipeline.RenderedBlock]
	composeStage   pipeline.Stage[pipeline.ComposeInput, pipeline.ComposeResult]
	renderer       ports.Renderer
	fs             ports.FileSystem
	sink           ports.DebugSink
	logger         ports.Logger
}

// New creates a new Orchestrator.
func New(
	normalizeStage pipeline.Stage[string, string],
	fitStage pipeline.Stage[pipeline.FitInput, pipeline.FitCandidate],
	renderStage pipeline.Stage[pipeline.RenderInput, pipeline.RenderedBlock],
	composeStage pipeline.Stage[pipeline.ComposeInput, pipeline.ComposeResult],
	renderer ports.Renderer,
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		normalizeStage: normalizeStage,
		fitStage:       fitStage,
		renderStage:    renderStage,
		composeStage:   composeStage,
		renderer:       renderer,
		fs:             fs,
		sink:           sink,
		logger:         logger,
	}
}

// Run executes the complete pipeline.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}
	if config.Placement == nil {
		return RunResult{}, fmt.Errorf("%w: no placement", pipeline.ErrInvalidInput)
	}
	o.logger.Info("Starting pipeline")

	// 1. Read background
	bgData, err := o.fs.ReadFile(config.BackgroundPath)
	if err != nil {
		o.logger.Error("Failed to read background: %s", err)
		return RunResult{}, fmt.Errorf("%w: background %s: %v", pipeline.ErrResourceMissing, config.BackgroundPath, err)
	}

	// 2. Normalize text
	text, err := o.normalizeStage.Execute(ctx, config.Text)
	if err != nil {
		o.logger.Error("Failed to normalize text: %s", err)
		return RunResult{}, fmt.Errorf("normalize stage: %w", err)
	}

	// 3. Decode background and derive the target
	bg, err := o.renderer.DecodeImage(bgData, ports.DecodeOptions{AutoOrient: config.Placement.AutoOrient()})
	if err != nil {
		o.logger.Error("Failed to decode background: %s", err)
		return RunResult{}, fmt.Errorf("%w: background %s: %v", pipeline.ErrResourceMissing, config.BackgroundPath, err)
	}
	target, err := compose.Target(config.Placement, bg.Bounds())
	if err != nil {
		return RunResult{}, fmt.Errorf("placement: %w", err)
	}
	o.logger.Info("Fitting text into %dx%d on a %dx%d background",
		target.MaxWidth, target.MaxHeight, bg.Bounds().Dx(), bg.Bounds().Dy())

	// 4. Fit
	cand, err := o.fitStage.Execute(ctx, pipeline.FitInput{Text: text, Target: target})
	if err != nil {
		o.logger.Error("Failed to fit text: %s", err)
		return RunResult{}, fmt.Errorf("fit stage: %w", err)
	}
	o.logger.Info("Chose font size %d with %d lines", cand.Size, cand.Lines.Len())

	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(cand, "", "  "); err == nil {
			o.sink.SaveFitJSON(data)
		}
	}

	if cand.BestEffort && config.RejectBestEffort {
		return RunResult{}, fmt.Errorf("fit stage: %w for %dx%d", pipeline.ErrNoFitFound, target.MaxWidth, target.MaxHeight)
	}

	// 5. Render
	block, err := o.renderStage.Execute(ctx, pipeline.RenderInput{
		Candidate:   cand,
		CanvasWidth: target.MaxWidth,
		MaxHeight:   target.MaxHeight,
	})
	if err != nil {
		o.logger.Error("Failed to render text: %s", err)
		return RunResult{}, fmt.Errorf("render stage: %w", err)
	}

	// 6. Compose
	composed, err := o.composeStage.Execute(ctx, pipeline.ComposeInput{
		Background: bg,
		Block:      block,
		Placement:  config.Placement,
	})
	if err != nil {
		o.logger.Error("Failed to compose image: %s", err)
		return RunResult{}, fmt.Errorf("compose stage: %w", err)
	}

	// 7. Encode and write
	data, err := o.renderer.EncodeImage(composed.Image, config.OutputFormat, config.Quality)
	if err != nil {
		o.logger.Error("Failed to encode image: %s", err)
		return RunResult{}, fmt.Errorf("encode: %w", err)
	}
	if err := o.fs.WriteFile(config.OutputPath, data); err != nil {
		o.logger.Error("Failed to write output: %s", err)
		return RunResult{}, fmt.Errorf("write output: %w", err)
	}

	o.logger.Info("Output saved to %s", config.OutputPath)
	o.logger.Info("Pipeline completed successfully")

	b := block.Bounds()
	return RunResult{
		OutputPath:    config.OutputPath,
		OutputBytes:   len(data),
		Text:          text,
		FontSize:      cand.Size,
		LineSpacing:   cand.LineSpacing,
		Lines:         append([]string(nil), cand.Lines.Lines...),
		BestEffort:    cand.BestEffort,
		Clamped:       block.Clamped,
		BlockWidth:    b.Dx(),
		BlockHeight:   b.Dy(),
		ContentHeight: block.ContentHeight,
		Offset:        composed.Offset,
		Area:          composed.Area,
		Target:        target,
		Background:    bg.Bounds().Size(),
	}, nil
}

// RunResult contains the results of a pipeline run for summary generation.
type RunResult struct {
	// Output
	OutputPath  string
	OutputBytes int

	// Fit
	Text        string // normalized
	FontSize    int
	LineSpacing int
	Lines       []string
	BestEffort  bool // no size fit the target; minimum size used

	// Block
	Clamped       bool // block height cut to the target height
	BlockWidth    int
	BlockHeight   int
	ContentHeight int

	// Placement
	Offset     image.Point
	Area       image.Rectangle
	Target     pipeline.TargetRect
	Background image.Point // background size after orientation
}
