package textplate

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/textplate/pkg/adapters/fontcache"
	"github.com/user/textplate/pkg/orchestrator"
	"github.com/user/textplate/pkg/pipeline"
	"github.com/user/textplate/pkg/ports"
	"github.com/user/textplate/pkg/stages/compose"
	"github.com/user/textplate/pkg/stages/fit"
	"github.com/user/textplate/pkg/stages/normalize"
	"github.com/user/textplate/pkg/stages/render"
)

// Dependencies are the adapters an Engine runs on.
type Dependencies struct {
	FileSystem ports.FileSystem
	Renderer   ports.Renderer
	Sink       ports.DebugSink
	Logger     ports.Logger

	// Fonts is optional. A new cache reading through FileSystem is used
	// when nil.
	Fonts *fontcache.Cache
}

// Engine renders text onto backgrounds with one font and one configuration.
// The shaping mode is decided when the engine is built.
type Engine struct {
	config Config
	mode   ports.ShapingMode
	orch   *orchestrator.Orchestrator
}

// NewEngine loads the font, resolves the shaping mode and wires the stages.
func NewEngine(cfg Config, deps Dependencies) (*Engine, error) {
	if deps.FileSystem == nil || deps.Renderer == nil || deps.Sink == nil || deps.Logger == nil {
		return nil, errors.New("textplate: incomplete dependencies")
	}
	if cfg.FontPath == "" {
		return nil, fmt.Errorf("%w: no font configured", pipeline.ErrResourceMissing)
	}

	fonts := deps.Fonts
	if fonts == nil {
		fonts = fontcache.New(deps.FileSystem)
	}
	font, err := fonts.Loader(cfg.FontPath)
	if err != nil {
		return nil, err
	}
	loader, err := fonts.FontLoader(cfg.FontPath)
	if err != nil {
		return nil, err
	}

	log := deps.Logger
	mode := ResolveShaping(cfg.Shaping, font, log.WithComponent("shaping"))
	log.Debug("Using %s shaping with %s", mode, font.Name())

	orch := orchestrator.New(
		normalize.NewStage(log),
		fit.NewStage(loader, cfg.Fit, mode, log),
		render.NewStage(cfg.Fit, mode, cfg.Theme(), deps.Sink, log),
		compose.NewStage(deps.Renderer, deps.Sink, log),
		deps.Renderer,
		deps.FileSystem,
		deps.Sink,
		log,
	)

	return &Engine{config: cfg, mode: mode, orch: orch}, nil
}

// Mode returns the shaping mode chosen for the font.
func (e *Engine) Mode() ports.ShapingMode {
	return e.mode
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.config
}

// Render places text on the background and writes the result to outputPath.
func (e *Engine) Render(ctx context.Context, text, backgroundPath, outputPath string) (orchestrator.RunResult, error) {
	return e.orch.Run(ctx, e.config.ToOrchestratorConfig(text, backgroundPath, outputPath))
}
