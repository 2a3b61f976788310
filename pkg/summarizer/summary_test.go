package summarizer

import (
	"image"
	"reflect"
	"testing"
	"time"

	"github.com/user/textplate/pkg/mocks"
	"github.com/user/textplate/pkg/orchestrator"
	"github.com/user/textplate/pkg/pipeline"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt should be between %v and %v, got %v",
			before, after, summary.GeneratedAt)
	}
}

func TestBuilder_WithInput(t *testing.T) {
	input := InputInfo{
		Text:     "نص",
		Format:   "story",
		Template: "resources/IG-story-template.jpg",
		Font:     "fonts/NotoNaskhArabic.ttf",
		Shaping:  "advanced/rtl",
	}
	summary := NewBuilder().WithInput(input).Build()

	if summary.Input != input {
		t.Errorf("expected %+v, got %+v", input, summary.Input)
	}
}

func TestBuilder_WithOutput(t *testing.T) {
	summary := NewBuilder().WithOutput("out/a.png", 2048).Build()

	if summary.Output.Path != "out/a.png" {
		t.Errorf("expected path 'out/a.png', got '%s'", summary.Output.Path)
	}
	if summary.Output.FileSize != 2048 {
		t.Errorf("expected FileSize 2048, got %d", summary.Output.FileSize)
	}
}

func TestBuilder_WithResult(t *testing.T) {
	result := orchestrator.RunResult{
		OutputPath:  "out/b.png",
		OutputBytes: 4096,
		Text:        "hello world",
		FontSize:    40,
		LineSpacing: 10,
		Lines:       []string{"hello", "world"},
		BestEffort:  true,
		Clamped:     true,
		BlockWidth:  830,
		BlockHeight: 104,
		Offset:      image.Pt(100, 663),
		Target:      pipeline.TargetRect{MaxWidth: 830, MaxHeight: 750},
		Background:  image.Pt(1080, 1080),
	}

	summary := NewBuilder().
		WithInput(InputInfo{Format: "post"}).
		WithResult(result).
		Build()

	if summary.Input.Format != "post" || summary.Input.Text != "hello world" {
		t.Errorf("unexpected input %+v", summary.Input)
	}
	wantFit := FitInfo{FontSize: 40, LineSpacing: 10, Lines: []string{"hello", "world"}, BestEffort: true}
	if !reflect.DeepEqual(summary.Fit, wantFit) {
		t.Errorf("expected fit %+v, got %+v", wantFit, summary.Fit)
	}
	wantLayout := LayoutInfo{
		Background:   image.Pt(1080, 1080),
		TargetWidth:  830,
		TargetHeight: 750,
		BlockWidth:   830,
		BlockHeight:  104,
		Offset:       image.Pt(100, 663),
		Clamped:      true,
	}
	if summary.Layout != wantLayout {
		t.Errorf("expected layout %+v, got %+v", wantLayout, summary.Layout)
	}
	if summary.Output.Path != "out/b.png" || summary.Output.FileSize != 4096 {
		t.Errorf("unexpected output %+v", summary.Output)
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	formatter := FormatFunc(func(s *Summary) string { return "summary of " + s.Output.Path })
	writer := NewWriter(formatter, fs)

	summary := NewBuilder().WithOutput("out/c.png", 1).Build()
	if err := writer.Write("reports/c.md", summary); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, ok := fs.GetFile("reports/c.md")
	if !ok {
		t.Fatal("expected summary file")
	}
	if string(data) != "summary of out/c.png" {
		t.Errorf("unexpected content %q", data)
	}
}
