package fontface

import (
	"fmt"
	"image"
	"image/color"
	"unicode"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	xfont "golang.org/x/image/font"

	"github.com/user/textplate/pkg/pipeline"
	"github.com/user/textplate/pkg/ports"
)

// Face is a Loader's font at one pixel size.
type Face struct {
	loader *Loader
	size   int
	basic  xfont.Face
	ascent int
}

func newFace(l *Loader, size int) *Face {
	basic := truetype.NewFace(l.tt, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: xfont.HintingNone,
	})
	return &Face{
		loader: l,
		size:   size,
		basic:  basic,
		ascent: basic.Metrics().Ascent.Ceil(),
	}
}

// Size returns the pixel size of the face.
func (f *Face) Size() int {
	return f.size
}

// Measure returns the ink box of text with the line box top-left at (0,0).
func (f *Face) Measure(text string, mode ports.ShapingMode) (image.Rectangle, error) {
	if err := checkRunes(text); err != nil {
		return image.Rectangle{}, err
	}
	if mode.IsAdvanced() {
		run, err := f.shape(text, mode.Direction)
		if err != nil {
			return image.Rectangle{}, err
		}
		return run.bounds(), nil
	}

	f.loader.mu.Lock()
	defer f.loader.mu.Unlock()
	b, _ := xfont.BoundString(f.basic, text)
	if b.Empty() {
		return image.Rectangle{}, nil
	}
	return image.Rect(b.Min.X.Floor(), b.Min.Y.Floor()+f.ascent, b.Max.X.Ceil(), b.Max.Y.Ceil()+f.ascent), nil
}

// Draw renders text with the line box top-left at origin. The ink lands
// inside Measure(text, mode) translated by origin.
func (f *Face) Draw(dst *image.RGBA, text string, origin image.Point, c color.Color, mode ports.ShapingMode) error {
	if err := checkRunes(text); err != nil {
		return err
	}
	if mode.IsAdvanced() {
		run, err := f.shape(text, mode.Direction)
		if err != nil {
			return err
		}
		return f.drawRun(dst, run, origin, c)
	}

	f.loader.mu.Lock()
	defer f.loader.mu.Unlock()
	dc := gg.NewContextForRGBA(dst)
	dc.SetFontFace(f.basic)
	dc.SetColor(c)
	dc.DrawString(text, float64(origin.X), float64(origin.Y+f.ascent))
	return nil
}

// checkRunes rejects control characters, which have no glyphs in either mode.
func checkRunes(text string) error {
	for _, r := range text {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character %U", pipeline.ErrMeasurementFailure, r)
		}
	}
	return nil
}

var _ ports.TextFace = (*Face)(nil)
