// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/user/textplate/pkg/pipeline"
	"github.com/user/textplate/pkg/stages/fit"
	"github.com/user/textplate/pkg/textplate"
)

// Config represents the full configuration file for textplate.
type Config struct {
	// Input/Output
	Format    string            `yaml:"format"`
	Font      string            `yaml:"font"`
	Resources string            `yaml:"resources"`
	Templates map[string]string `yaml:"templates"` // per-format background overrides
	OutputDir string            `yaml:"output_dir"`

	// Fit
	Fit FitConfig `yaml:"fit"`

	// Layout
	Post  RectConfig   `yaml:"post"`
	Story MarginConfig `yaml:"story"`

	// Text
	Shaping   string `yaml:"shaping"`
	TextColor string `yaml:"text_color"`

	RejectBestEffort bool `yaml:"reject_best_effort"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
	LogLevel string `yaml:"log_level"`
}

// FitConfig represents font size search settings.
type FitConfig struct {
	MinSize          int     `yaml:"min_size"`
	MaxSize          int     `yaml:"max_size"`
	WrapPadding      int     `yaml:"wrap_padding"`
	SpacingRatio     float64 `yaml:"spacing_ratio"`
	SpacingMin       int     `yaml:"spacing_min"`
	VerticalPadRatio float64 `yaml:"vertical_pad_ratio"`
}

// Options converts FitConfig to fit.Options.
func (f FitConfig) Options() fit.Options {
	return fit.Options{
		MinSize:          f.MinSize,
		MaxSize:          f.MaxSize,
		WrapPadding:      f.WrapPadding,
		SpacingRatio:     f.SpacingRatio,
		SpacingMin:       f.SpacingMin,
		VerticalPadRatio: f.VerticalPadRatio,
	}
}

// RectConfig represents a fixed text rectangle.
type RectConfig struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// MarginConfig represents safe-area margins as fractions of the background.
type MarginConfig struct {
	Left    float64 `yaml:"left"`
	Right   float64 `yaml:"right"`
	Top     float64 `yaml:"top"`
	Bottom  float64 `yaml:"bottom"`
	MinSize int     `yaml:"min_size"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	post := textplate.NewPostConfigBuilder().Build()
	story := textplate.StoryPlacement()
	rect := textplate.PostPlacement()

	return Config{
		// Input/Output
		Format:    string(textplate.FormatPost),
		Resources: "./resources",
		OutputDir: "./output",

		// Fit
		Fit: FitConfig{
			MinSize:          post.Fit.MinSize,
			MaxSize:          post.Fit.MaxSize,
			WrapPadding:      post.Fit.WrapPadding,
			SpacingRatio:     post.Fit.SpacingRatio,
			SpacingMin:       post.Fit.SpacingMin,
			VerticalPadRatio: post.Fit.VerticalPadRatio,
		},

		// Layout
		Post: RectConfig{
			X:      rect.Origin.X,
			Y:      rect.Origin.Y,
			Width:  rect.Rect.MaxWidth,
			Height: rect.Rect.MaxHeight,
		},
		Story: MarginConfig{
			Left:    story.Margins.Left,
			Right:   story.Margins.Right,
			Top:     story.Margins.Top,
			Bottom:  story.Margins.Bottom,
			MinSize: story.MinSize,
		},

		// Text
		Shaping:   string(textplate.ShapingAuto),
		TextColor: "#000000",

		// Debug
		DebugDir: "./debug",
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file.
// Fields missing from the file keep their defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// ParseColor parses a #rrggbb or #rrggbbaa hex color string.
func ParseColor(hex string) (color.Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("%w: color %q", pipeline.ErrInvalidInput, hex)
	}

	var v [4]uint8
	v[3] = 255
	for i := 0; i < len(s)/2; i++ {
		hi, ok1 := hexValue(s[2*i])
		lo, ok2 := hexValue(s[2*i+1])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: color %q", pipeline.ErrInvalidInput, hex)
		}
		v[i] = hi<<4 | lo
	}

	return color.NRGBA{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}

func hexValue(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// Builder converts Config to a textplate.ConfigBuilder for the configured
// format. Callers apply flag overrides on the returned builder.
func (c Config) Builder() (*textplate.ConfigBuilder, error) {
	format, err := textplate.ParseFormat(c.Format)
	if err != nil {
		return nil, err
	}
	shaping, err := textplate.ParseShaping(c.Shaping)
	if err != nil {
		return nil, err
	}
	textColor, err := ParseColor(c.TextColor)
	if err != nil {
		return nil, err
	}

	b := textplate.NewConfigBuilder(format).
		WithFontPath(c.Font).
		WithFitOptions(c.Fit.Options()).
		WithShaping(shaping).
		WithTextColor(textColor).
		WithRejectBestEffort(c.RejectBestEffort)

	switch format {
	case textplate.FormatStory:
		b.WithSafeArea(pipeline.Margins{
			Left:   c.Story.Left,
			Right:  c.Story.Right,
			Top:    c.Story.Top,
			Bottom: c.Story.Bottom,
		}, c.Story.MinSize)
	default:
		b.WithFixedRect(c.Post.X, c.Post.Y, c.Post.Width, c.Post.Height)
	}

	return b, nil
}

// Template returns the background path for the configured format: the
// per-format override when set, the preset template in Resources otherwise.
func (c Config) Template() (string, error) {
	format, err := textplate.ParseFormat(c.Format)
	if err != nil {
		return "", err
	}
	if path, ok := c.Templates[string(format)]; ok && path != "" {
		return path, nil
	}
	return textplate.ResolveTemplate(format, c.Resources)
}
