package config

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/textplate/pkg/pipeline"
	"github.com/user/textplate/pkg/textplate"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Format != "post" || cfg.Shaping != "auto" {
		t.Errorf("unexpected format %q shaping %q", cfg.Format, cfg.Shaping)
	}
	if cfg.Post != (RectConfig{X: 100, Y: 340, Width: 830, Height: 750}) {
		t.Errorf("unexpected post rect %+v", cfg.Post)
	}
	if cfg.Story != (MarginConfig{Left: 0.10, Right: 0.10, Top: 0.16, Bottom: 0.20, MinSize: 50}) {
		t.Errorf("unexpected story margins %+v", cfg.Story)
	}
	if cfg.Fit.MinSize != 6 || cfg.Fit.MaxSize != 160 || cfg.Fit.WrapPadding != 20 {
		t.Errorf("unexpected fit %+v", cfg.Fit)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "textplate.yaml")
	content := `
format: story
font: fonts/Amiri-Regular.ttf
text_color: "#ffffff"
fit:
  max_size: 96
story:
  top: 0.2
templates:
  story: custom/story.jpg
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Format != "story" || cfg.Font != "fonts/Amiri-Regular.ttf" || cfg.LogLevel != "debug" {
		t.Errorf("unexpected values %+v", cfg)
	}
	if cfg.Fit.MaxSize != 96 {
		t.Errorf("expected max size 96, got %d", cfg.Fit.MaxSize)
	}
	// Unset fields keep defaults.
	if cfg.Fit.MinSize != 6 || cfg.Story.Left != 0.10 || cfg.Story.Top != 0.2 {
		t.Errorf("expected defaults to survive, got fit %+v story %+v", cfg.Fit, cfg.Story)
	}

	tmpl, err := cfg.Template()
	if err != nil || tmpl != "custom/story.jpg" {
		t.Errorf("expected template override, got %q (%v)", tmpl, err)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("fit: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#000000", color.NRGBA{A: 255}, false},
		{"ffffff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"#1A2b3C", color.NRGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 255}, false},
		{"#ff000080", color.NRGBA{R: 255, A: 0x80}, false},
		{"#fff", color.NRGBA{}, true},
		{"#gggggg", color.NRGBA{}, true},
		{"", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			if !errors.Is(err, pipeline.ErrInvalidInput) {
				t.Errorf("ParseColor(%q): expected ErrInvalidInput, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestConfig_Builder(t *testing.T) {
	t.Run("post", func(t *testing.T) {
		cfg := Defaults()
		cfg.Font = "fonts/a.ttf"
		cfg.Post = RectConfig{X: 1, Y: 2, Width: 300, Height: 200}
		cfg.Fit.SpacingMin = 7

		b, err := cfg.Builder()
		if err != nil {
			t.Fatalf("Builder failed: %v", err)
		}
		tc := b.Build()

		if tc.FontPath != "fonts/a.ttf" || tc.Fit.SpacingMin != 7 {
			t.Errorf("unexpected config %+v", tc)
		}
		p, ok := tc.Placement.(pipeline.PlacementFixed)
		if !ok || p.Origin != image.Pt(1, 2) || p.Rect != (pipeline.TargetRect{MaxWidth: 300, MaxHeight: 200}) {
			t.Errorf("unexpected placement %+v", tc.Placement)
		}
	})

	t.Run("story", func(t *testing.T) {
		cfg := Defaults()
		cfg.Format = "story"
		cfg.Shaping = "basic"

		b, err := cfg.Builder()
		if err != nil {
			t.Fatalf("Builder failed: %v", err)
		}
		tc := b.Build()

		if tc.Format != textplate.FormatStory || tc.Shaping != textplate.ShapingBasic {
			t.Errorf("unexpected config %+v", tc)
		}
		if tc.Placement != textplate.StoryPlacement() {
			t.Errorf("expected story placement, got %+v", tc.Placement)
		}
	})

	t.Run("errors", func(t *testing.T) {
		for name, mutate := range map[string]func(c *Config){
			"format":  func(c *Config) { c.Format = "reel" },
			"shaping": func(c *Config) { c.Shaping = "fancy" },
			"color":   func(c *Config) { c.TextColor = "red" },
		} {
			cfg := Defaults()
			mutate(&cfg)
			if _, err := cfg.Builder(); err == nil {
				t.Errorf("%s: expected error", name)
			}
		}
	})
}

func TestConfig_Template(t *testing.T) {
	cfg := Defaults()
	cfg.Resources = "res"

	path, err := cfg.Template()
	if err != nil {
		t.Fatalf("Template failed: %v", err)
	}
	if path != filepath.Join("res", "IG-post-template.jpg") {
		t.Errorf("unexpected template %q", path)
	}
}
