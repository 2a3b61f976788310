package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"

	"github.com/user/textplate/pkg/adapters/logger"
	"github.com/user/textplate/pkg/mocks"
	"github.com/user/textplate/pkg/pipeline"
	"github.com/user/textplate/pkg/ports"
	"github.com/user/textplate/pkg/stages/fit"
)

func TestCenterOffset(t *testing.T) {
	tests := []struct {
		outer, inner, want int
	}{
		{10, 4, 3},
		{10, 3, 3},
		{10, 10, 0},
		{0, 0, 0},
		{4, 10, -3},
		{3, 10, -4},
		{-1, 0, -1},
	}

	for _, tt := range tests {
		if got := CenterOffset(tt.outer, tt.inner); got != tt.want {
			t.Errorf("CenterOffset(%d, %d): expected %d, got %d", tt.outer, tt.inner, tt.want, got)
		}
	}
}

func candidate(t *testing.T, text string, maxW, maxH int) (pipeline.FitCandidate, *mocks.FontLoader) {
	t.Helper()
	loader := mocks.NewFontLoader()
	f := fit.NewFitter(loader, fit.DefaultOptions(), ports.BasicShaping(), logger.NewNoop())
	cand, err := f.Fit(text, maxW, maxH)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	return cand, loader
}

func newTestRenderer(log ports.Logger) *Renderer {
	return NewRenderer(fit.DefaultOptions(), ports.BasicShaping(), color.Black, log)
}

func TestRender_LayoutAndOrigins(t *testing.T) {
	// Size 20 mock face, spacing 5: "aaaa bbbbbbbb" wraps into two lines in 100 px.
	face := mocks.NewTextFace(20)
	cand := pipeline.FitCandidate{
		Face:        face,
		Size:        20,
		LineSpacing: 5,
		Lines:       pipeline.WrapResult{Lines: []string{"aaaa", "bbbbbbbb"}},
	}

	block, err := newTestRenderer(logger.NewNoop()).Render(cand, 100, 500)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// 20 + 5 + 20 + int(20*0.35)
	if block.ContentHeight != 52 {
		t.Errorf("expected content height 52, got %d", block.ContentHeight)
	}
	if b := block.Bounds(); b.Dx() != 100 || b.Dy() != 52 {
		t.Errorf("expected 100x52 block, got %v", b)
	}
	if block.Clamped {
		t.Error("expected no clamping")
	}

	want := []image.Point{
		{X: 30, Y: 3},  // (100-40)/2, TopPadding(20)
		{X: 10, Y: 28}, // (100-80)/2, 3+20+5
	}
	if len(face.DrawCalls) != len(want) {
		t.Fatalf("expected %d draw calls, got %d", len(want), len(face.DrawCalls))
	}
	for i, call := range face.DrawCalls {
		if call.Origin != want[i] {
			t.Errorf("line %d: expected origin %v, got %v", i, want[i], call.Origin)
		}
	}
}

func TestRender_TransparentOutsideGlyphs(t *testing.T) {
	cand, _ := candidate(t, "hello world", 400, 200)

	block, err := newTestRenderer(logger.NewNoop()).Render(cand, 400, 200)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if a := block.Image.RGBAAt(0, 0).A; a != 0 {
		t.Errorf("expected transparent corner, got alpha %d", a)
	}
	center := block.Image.RGBAAt(200, cand.Face.Size()/2+fit.DefaultOptions().TopPadding(cand.Size))
	if center.A != 255 {
		t.Errorf("expected opaque text pixel at center, got %v", center)
	}
}

func TestRender_ClampsHeight(t *testing.T) {
	cand, _ := candidate(t, "some text", 10, 10)
	if !cand.BestEffort {
		t.Fatal("expected a best effort candidate")
	}

	log := mocks.NewLogger()
	block, err := newTestRenderer(log).Render(cand, 10, 10)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// 6 + 4 + 6 + int(6*0.35)
	if block.ContentHeight != 18 {
		t.Errorf("expected content height 18, got %d", block.ContentHeight)
	}
	if b := block.Bounds(); b.Dx() != 10 || b.Dy() != 10 {
		t.Errorf("expected 10x10 block, got %v", b)
	}
	if !block.Clamped {
		t.Error("expected the block to be clamped")
	}
	if !log.Contains(ports.LevelWarn, "clamped") {
		t.Error("expected a clamp warning")
	}
}

func TestRender_Deterministic(t *testing.T) {
	cand, _ := candidate(t, "نص عربي قصير مع كلمات", 300, 300)
	r := newTestRenderer(logger.NewNoop())

	first, err := r.Render(cand, 300, 300)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	second, err := r.Render(cand, 300, 300)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.Equal(first.Image.Pix, second.Image.Pix) {
		t.Error("expected identical pixels across renders")
	}
}

func TestRender_AdvancedDrawFallsBack(t *testing.T) {
	face := mocks.NewTextFace(20)
	face.DrawFunc = func(dst *image.RGBA, text string, origin image.Point, c color.Color, mode ports.ShapingMode) error {
		if mode.IsAdvanced() {
			return errors.New("no outlines")
		}
		return nil
	}
	cand := pipeline.FitCandidate{
		Face:        face,
		Size:        20,
		LineSpacing: 5,
		Lines:       pipeline.WrapResult{Lines: []string{"abc"}},
	}

	r := NewRenderer(fit.DefaultOptions(), ports.AdvancedShaping(ports.RightToLeft), color.Black, logger.NewNoop())
	if _, err := r.Render(cand, 100, 100); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if len(face.DrawCalls) != 2 {
		t.Fatalf("expected 2 draw calls, got %d", len(face.DrawCalls))
	}
	if !face.DrawCalls[0].Mode.IsAdvanced() || face.DrawCalls[1].Mode.IsAdvanced() {
		t.Errorf("expected advanced then basic, got %v then %v", face.DrawCalls[0].Mode, face.DrawCalls[1].Mode)
	}
}

// controlFace behaves like a real face on control characters: neither
// measuring nor drawing accepts them.
func controlFace(size int) *mocks.TextFace {
	face := mocks.NewTextFace(size)
	face.MeasureFunc = func(text string, mode ports.ShapingMode) (image.Rectangle, error) {
		if strings.ContainsRune(text, '\x01') {
			return image.Rectangle{}, pipeline.ErrMeasurementFailure
		}
		return mocks.MonospaceBox(text, size), nil
	}
	face.DrawFunc = func(dst *image.RGBA, text string, origin image.Point, c color.Color, mode ports.ShapingMode) error {
		if strings.ContainsRune(text, '\x01') {
			return pipeline.ErrMeasurementFailure
		}
		box := mocks.MonospaceBox(text, size).Add(origin)
		draw.Draw(dst, box, image.NewUniform(c), image.Point{}, draw.Over)
		return nil
	}
	return face
}

func TestRender_DropsControlCharacters(t *testing.T) {
	for _, mode := range []ports.ShapingMode{ports.BasicShaping(), ports.AdvancedShaping(ports.RightToLeft)} {
		t.Run(mode.String(), func(t *testing.T) {
			face := controlFace(20)
			cand := pipeline.FitCandidate{
				Face:        face,
				Size:        20,
				LineSpacing: 5,
				Lines:       pipeline.WrapResult{Lines: []string{"hello\x01world", "foo"}},
			}
			log := mocks.NewLogger()
			r := NewRenderer(fit.DefaultOptions(), mode, color.Black, log)

			block, err := r.Render(cand, 200, 100)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}

			last := face.DrawCalls[len(face.DrawCalls)-2]
			if last.Text != "helloworld" {
				t.Errorf("expected the line drawn without controls, got %q", last.Text)
			}
			// "helloworld" is 100 px wide at size 20.
			if last.Origin.X != CenterOffset(200, 100) {
				t.Errorf("expected the visible line centered, got x=%d", last.Origin.X)
			}
			if block.Image.RGBAAt(last.Origin.X, last.Origin.Y).A == 0 {
				t.Error("expected the visible line to be drawn")
			}
			if !log.Contains(ports.LevelWarn, "control characters") {
				t.Error("expected a warning for the dropped characters")
			}
		})
	}
}

func TestRender_DrawErrorWithoutControls(t *testing.T) {
	face := mocks.NewTextFace(20)
	face.DrawFunc = func(dst *image.RGBA, text string, origin image.Point, c color.Color, mode ports.ShapingMode) error {
		return errors.New("broken font")
	}
	cand := pipeline.FitCandidate{
		Face:  face,
		Size:  20,
		Lines: pipeline.WrapResult{Lines: []string{"abc"}},
	}

	if _, err := newTestRenderer(logger.NewNoop()).Render(cand, 100, 100); err == nil {
		t.Error("expected error")
	}
}

func TestRender_Errors(t *testing.T) {
	r := newTestRenderer(logger.NewNoop())
	face := mocks.NewTextFace(10)

	tests := []struct {
		name   string
		cand   pipeline.FitCandidate
		width  int
		height int
	}{
		{"no face", pipeline.FitCandidate{}, 10, 10},
		{"zero width", pipeline.FitCandidate{Face: face}, 0, 10},
		{"zero height", pipeline.FitCandidate{Face: face}, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Render(tt.cand, tt.width, tt.height); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestStage_Execute(t *testing.T) {
	cand, _ := candidate(t, "hello world", 400, 200)
	sink := mocks.NewDebugSink(true)
	stage := NewStage(fit.DefaultOptions(), ports.BasicShaping(), pipeline.DefaultTextTheme(), sink, logger.NewNoop())

	block, err := stage.Execute(context.Background(), pipeline.RenderInput{
		Candidate:   cand,
		CanvasWidth: 400,
		MaxHeight:   200,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if sink.TextBlock != block.Image {
		t.Error("expected the text block to be saved to the debug sink")
	}
}
