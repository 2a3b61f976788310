package main

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/user/textplate/pkg/adapters/ggrenderer"
	"github.com/user/textplate/pkg/pipeline"
	"github.com/user/textplate/pkg/ports"
)

// setup writes a font and a 1080x1080 post background into a temp dir.
func setup(t *testing.T) (dir, font, background string) {
	t.Helper()
	dir = t.TempDir()

	font = filepath.Join(dir, "regular.ttf")
	if err := os.WriteFile(font, goregular.TTF, 0644); err != nil {
		t.Fatal(err)
	}

	r := ggrenderer.New()
	data, err := r.EncodeImage(r.CreateCanvas(1080, 1080, color.White).ToImage(), ports.FormatPNG, 0)
	if err != nil {
		t.Fatal(err)
	}
	background = filepath.Join(dir, "IG-post-template.jpg")
	if err := os.WriteFile(background, data, 0644); err != nil {
		t.Fatal(err)
	}
	return dir, font, background
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out, errOut bytes.Buffer
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"textplate"}, args...))
	return out.String(), err
}

func TestRender(t *testing.T) {
	dir, font, _ := setup(t)
	output := filepath.Join(dir, "out", "result.png")
	summary := filepath.Join(dir, "summary.md")

	stdout, err := run(t, "",
		"render", "--font", font, "--resources", dir, "--output", output,
		"--summary", summary, "-Q", "hello world foo")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if strings.TrimSpace(stdout) != output {
		t.Errorf("expected output path on stdout, got %q", stdout)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("expected output file: %v", err)
	}
	md, err := os.ReadFile(summary)
	if err != nil {
		t.Fatalf("expected summary file: %v", err)
	}
	if !strings.Contains(string(md), "| Shaping | basic |") {
		t.Errorf("expected basic shaping in summary, got:\n%s", md)
	}
}

func TestRender_Stdin(t *testing.T) {
	dir, font, background := setup(t)

	stdout, err := run(t, "hello from stdin\n",
		"render", "--font", font, "--template", background, "--out-dir", dir, "-Q", "-")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	output := strings.TrimSpace(stdout)
	if filepath.Dir(output) != dir || filepath.Ext(output) != ".png" {
		t.Errorf("expected a generated name in %s, got %q", dir, output)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("expected output file: %v", err)
	}
}

func TestRender_ConfigFile(t *testing.T) {
	dir, font, background := setup(t)
	cfgPath := filepath.Join(dir, "textplate.yaml")
	content := fmt.Sprintf("font: %q\ntemplates:\n  post: %q\nshaping: basic\ntext_color: \"#ffffff\"\n", font, background)
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "config.png")

	if _, err := run(t, "", "render", "-c", cfgPath, "-o", output, "-Q", "configured"); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("expected output file: %v", err)
	}
}

func TestRender_Errors(t *testing.T) {
	dir, font, background := setup(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no text", []string{"render", "--font", font, "-Q"}, pipeline.ErrInvalidInput},
		{"empty text", []string{"render", "--font", font, "--template", background, "-Q", "‏ "}, pipeline.ErrInvalidInput},
		{"no font", []string{"render", "-Q", "text"}, pipeline.ErrResourceMissing},
		{"missing template", []string{"render", "--font", font, "--template", filepath.Join(dir, "none.jpg"), "-Q", "text"}, pipeline.ErrResourceMissing},
		{"unknown format", []string{"render", "--font", font, "-f", "reel", "-Q", "text"}, pipeline.ErrInvalidInput},
		{"strict", []string{"render", "--font", font, "--template", background, "--max-size", "6",
			"--strict", "-o", filepath.Join(dir, "x.png"), "-Q", strings.Repeat("word ", 10000)}, pipeline.ErrNoFitFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestProbe(t *testing.T) {
	_, font, _ := setup(t)

	stdout, err := run(t, "", "probe", "--font", font)
	if err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if !strings.Contains(stdout, "basic") {
		t.Errorf("expected basic shaping for a Latin font, got %q", stdout)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", pipeline.ErrInvalidInput), 2},
		{fmt.Errorf("x: %w", pipeline.ErrResourceMissing), 3},
		{fmt.Errorf("x: %w", pipeline.ErrNoFitFound), 4},
		{errors.New("other"), 1},
	}

	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("exitCode(%v): expected %d, got %d", tt.err, tt.want, got)
		}
	}
}
