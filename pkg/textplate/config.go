// Package textplate provides a high-level API for placing text on social
// media templates.
package textplate

import (
	"fmt"
	"image"
	"image/color"
	"sort"
	"strings"

	"github.com/user/textplate/pkg/orchestrator"
	"github.com/user/textplate/pkg/pipeline"
	"github.com/user/textplate/pkg/ports"
	"github.com/user/textplate/pkg/stages/compose"
	"github.com/user/textplate/pkg/stages/fit"
)

// Format represents a layout preset name.
type Format string

const (
	FormatPost  Format = "post"
	FormatStory Format = "story"
)

// Formats returns the known layout presets in sorted order.
func Formats() []string {
	names := make([]string, 0, len(templates))
	for f := range templates {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// ParseFormat parses a layout preset name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := templates[f]; !ok {
		return "", fmt.Errorf("%w: unknown format %q (allowed: %s)",
			pipeline.ErrInvalidInput, s, strings.Join(Formats(), ", "))
	}
	return f, nil
}

// Shaping is the configured shaping policy. Auto probes the font.
type Shaping string

const (
	ShapingAuto     Shaping = "auto"
	ShapingAdvanced Shaping = "advanced"
	ShapingBasic    Shaping = "basic"
)

// ParseShaping parses a shaping policy name. Empty means auto.
func ParseShaping(s string) (Shaping, error) {
	switch Shaping(strings.ToLower(strings.TrimSpace(s))) {
	case "", ShapingAuto:
		return ShapingAuto, nil
	case ShapingAdvanced:
		return ShapingAdvanced, nil
	case ShapingBasic:
		return ShapingBasic, nil
	}
	return "", fmt.Errorf("%w: unknown shaping %q (allowed: auto, advanced, basic)", pipeline.ErrInvalidInput, s)
}

// Config represents the configuration for rendering text onto a template.
type Config struct {
	// Layout
	Format    Format
	Placement pipeline.Placement

	// Font
	FontPath string
	Fit      fit.Options
	Shaping  Shaping

	// Style
	TextColor color.Color

	// Output
	OutputFormat ports.ImageFormat
	Quality      int // JPEG quality (1-100)

	// RejectBestEffort fails the render when no size fits instead of
	// using the minimum size.
	RejectBestEffort bool
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder with the preset for format.
// Unknown formats fall back to the post preset.
func NewConfigBuilder(format Format) *ConfigBuilder {
	if format == FormatStory {
		return NewStoryConfigBuilder()
	}
	return NewPostConfigBuilder()
}

// NewPostConfigBuilder creates a new ConfigBuilder with post preset defaults.
func NewPostConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: postDefaults(),
	}
}

// NewStoryConfigBuilder creates a new ConfigBuilder with story preset defaults.
func NewStoryConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: storyDefaults(),
	}
}

// PostPlacement is the fixed text rectangle of the square post template.
func PostPlacement() pipeline.PlacementFixed {
	return pipeline.PlacementFixed{
		Origin: image.Pt(100, 340),
		Rect:   pipeline.TargetRect{MaxWidth: 830, MaxHeight: 750},
	}
}

// StoryPlacement is the safe area of the vertical story template.
func StoryPlacement() pipeline.PlacementSafeArea {
	return pipeline.PlacementSafeArea{
		Margins: pipeline.Margins{Left: 0.10, Right: 0.10, Top: 0.16, Bottom: 0.20},
		MinSize: compose.DefaultMinSafeSize,
	}
}

// postDefaults returns the post preset configuration.
func postDefaults() Config {
	return Config{
		// Layout
		Format:    FormatPost,
		Placement: PostPlacement(),

		// Font
		Fit:     fit.DefaultOptions(),
		Shaping: ShapingAuto,

		// Style
		TextColor: color.RGBA{A: 255},

		// Output
		OutputFormat: ports.FormatPNG,
		Quality:      90,
	}
}

// storyDefaults returns the story preset configuration.
func storyDefaults() Config {
	cfg := postDefaults()
	cfg.Format = FormatStory
	cfg.Placement = StoryPlacement()
	return cfg
}

// Build returns the final Config, applying validation and constraints.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config

	cfg.Fit = cfg.Fit.Normalized()

	if cfg.Shaping == "" {
		cfg.Shaping = ShapingAuto
	}
	if cfg.TextColor == nil {
		cfg.TextColor = color.RGBA{A: 255}
	}
	if cfg.Placement == nil {
		cfg.Placement = PostPlacement()
	}

	// Enforce JPEG quality range
	if cfg.Quality < 1 {
		cfg.Quality = 1
	}
	if cfg.Quality > 100 {
		cfg.Quality = 100
	}

	return cfg
}

// WithFontPath sets the TrueType/OpenType font file.
func (b *ConfigBuilder) WithFontPath(path string) *ConfigBuilder {
	b.config.FontPath = path
	return b
}

// WithFitOptions replaces all fit options.
func (b *ConfigBuilder) WithFitOptions(opts fit.Options) *ConfigBuilder {
	b.config.Fit = opts
	return b
}

// WithMinSize sets the smallest font size tried.
func (b *ConfigBuilder) WithMinSize(size int) *ConfigBuilder {
	b.config.Fit.MinSize = size
	return b
}

// WithMaxSize sets the largest font size tried.
// Values below the minimum size are raised to it.
func (b *ConfigBuilder) WithMaxSize(size int) *ConfigBuilder {
	b.config.Fit.MaxSize = size
	return b
}

// WithWrapPadding sets the horizontal padding subtracted from the wrap width.
func (b *ConfigBuilder) WithWrapPadding(padding int) *ConfigBuilder {
	b.config.Fit.WrapPadding = padding
	return b
}

// WithSpacingRatio sets the line spacing as a fraction of the font size.
func (b *ConfigBuilder) WithSpacingRatio(ratio float64) *ConfigBuilder {
	b.config.Fit.SpacingRatio = ratio
	return b
}

// WithShaping sets the shaping policy.
func (b *ConfigBuilder) WithShaping(s Shaping) *ConfigBuilder {
	b.config.Shaping = s
	return b
}

// WithTextColor sets the text color.
func (b *ConfigBuilder) WithTextColor(c color.Color) *ConfigBuilder {
	b.config.TextColor = c
	return b
}

// WithPlacement sets the placement policy directly.
func (b *ConfigBuilder) WithPlacement(p pipeline.Placement) *ConfigBuilder {
	b.config.Placement = p
	return b
}

// WithFixedRect places the text in a fixed rectangle at an absolute origin.
func (b *ConfigBuilder) WithFixedRect(x, y, width, height int) *ConfigBuilder {
	b.config.Placement = pipeline.PlacementFixed{
		Origin: image.Pt(x, y),
		Rect:   pipeline.TargetRect{MaxWidth: width, MaxHeight: height},
	}
	return b
}

// WithSafeArea centers the text inside margins relative to the background.
func (b *ConfigBuilder) WithSafeArea(margins pipeline.Margins, minSize int) *ConfigBuilder {
	b.config.Placement = pipeline.PlacementSafeArea{Margins: margins, MinSize: minSize}
	return b
}

// WithOutputFormat sets the encoded image format and JPEG quality.
func (b *ConfigBuilder) WithOutputFormat(format ports.ImageFormat, quality int) *ConfigBuilder {
	b.config.OutputFormat = format
	b.config.Quality = quality
	return b
}

// WithRejectBestEffort makes renders fail when no font size fits.
func (b *ConfigBuilder) WithRejectBestEffort(reject bool) *ConfigBuilder {
	b.config.RejectBestEffort = reject
	return b
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig(text, backgroundPath, outputPath string) orchestrator.Config {
	return orchestrator.Config{
		Text:           text,
		BackgroundPath: backgroundPath,

		Placement: c.Placement,

		OutputPath:   outputPath,
		OutputFormat: c.OutputFormat,
		Quality:      c.Quality,

		RejectBestEffort: c.RejectBestEffort,
	}
}

// Theme returns the text theme for the render stage.
func (c Config) Theme() pipeline.TextTheme {
	return pipeline.TextTheme{TextColor: c.TextColor}
}
