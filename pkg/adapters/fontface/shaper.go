package fontface

import (
	"fmt"
	"image"
	"image/color"
	"slices"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/user/textplate/pkg/pipeline"
	"github.com/user/textplate/pkg/ports"
)

var (
	arabic  = language.NewLanguage("ar")
	english = language.NewLanguage("en")
)

// shapedRun is one line after shaping, in visual order.
type shapedRun struct {
	glyphs []shaping.Glyph
	ascent fixed.Int26_6
}

// singleFace resolves every rune to the loader's only face.
type singleFace struct {
	face *font.Face
}

func (s singleFace) ResolveFace(rune) *font.Face {
	return s.face
}

// shape splits the line into runs of one direction and script, shapes each
// run, and concatenates the glyphs in visual order. dir is the paragraph
// direction: it places neutral characters and orders the runs.
func (f *Face) shape(text string, dir ports.Direction) (run shapedRun, err error) {
	if f.loader.gtext == nil {
		return shapedRun{}, fmt.Errorf("%w: font %s cannot be shaped", pipeline.ErrMeasurementFailure, f.loader.name)
	}

	f.loader.mu.Lock()
	defer f.loader.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: shaper panic: %v", pipeline.ErrMeasurementFailure, r)
		}
	}()

	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      f.loader.gtext,
		Size:      fixed.I(f.size),
		Script:    language.Latin,
		Language:  english,
	}
	if dir == ports.RightToLeft {
		input.Direction = di.DirectionRTL
		input.Script = language.Arabic
		input.Language = arabic
	}

	items := f.loader.segmenter.Split(input, singleFace{f.loader.gtext})

	var shaper shaping.HarfbuzzShaper
	outs := make([]shaping.Output, len(items))
	for i, item := range items {
		outs[i] = shaper.Shape(item)
	}

	for _, i := range visualOrder(items, dir) {
		for _, g := range outs[i].Glyphs {
			if g.GlyphID != 0 {
				continue
			}
			if g.ClusterIndex >= 0 && g.ClusterIndex < len(runes) && unicode.IsSpace(runes[g.ClusterIndex]) {
				continue
			}
			return shapedRun{}, fmt.Errorf("%w: font %s has no glyph for %q", pipeline.ErrMeasurementFailure, f.loader.name, text)
		}
		run.glyphs = append(run.glyphs, outs[i].Glyphs...)
		if a := outs[i].LineBounds.Ascent; a > run.ascent {
			run.ascent = a
		}
	}
	return run, nil
}

// visualOrder returns the indexes of items, which are in logical order, in
// left-to-right display order.
//
// Segmenter items carry a direction but not an embedding level. Without
// explicit embeddings the levels follow from the direction: in a
// right-to-left paragraph RTL runs are at level 1 and LTR runs at level 2;
// in a left-to-right paragraph RTL runs are at level 1, a letterless LTR
// run right after an RTL run (a number) at level 2, other LTR runs at 0.
func visualOrder(items []shaping.Input, dir ports.Direction) []int {
	levels := make([]int, len(items))
	maxLevel := 0
	for i, item := range items {
		rtl := item.Direction.Progression() == di.TowardTopLeft
		switch {
		case rtl:
			levels[i] = 1
		case dir == ports.RightToLeft:
			levels[i] = 2
		case i > 0 && levels[i-1] == 1 && !hasLetter(item):
			levels[i] = 2
		}
		if levels[i] > maxLevel {
			maxLevel = levels[i]
		}
	}

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	// From the highest level down to 1, reverse every maximal sequence at
	// that level or above.
	for level := maxLevel; level >= 1; level-- {
		for i := 0; i < len(order); {
			if levels[order[i]] < level {
				i++
				continue
			}
			j := i
			for j < len(order) && levels[order[j]] >= level {
				j++
			}
			slices.Reverse(order[i:j])
			i = j
		}
	}
	return order
}

func hasLetter(item shaping.Input) bool {
	for _, r := range item.Text[item.RunStart:item.RunEnd] {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// bounds returns the union of the glyph ink boxes with the line box
// top-left at (0,0).
func (r shapedRun) bounds() image.Rectangle {
	var box image.Rectangle
	var pen fixed.Int26_6
	for _, g := range r.glyphs {
		x0 := pen + g.XOffset + g.XBearing
		x1 := x0 + g.Width
		top := r.ascent - (g.YOffset + g.YBearing)
		bottom := top - g.Height
		pen += g.XAdvance

		gb := image.Rect(x0.Floor(), top.Floor(), x1.Ceil(), bottom.Ceil())
		box = box.Union(gb)
	}
	return box
}

// drawRun rasterizes the run's glyph outlines onto dst.
func (f *Face) drawRun(dst *image.RGBA, run shapedRun, origin image.Point, c color.Color) error {
	f.loader.mu.Lock()
	defer f.loader.mu.Unlock()

	b := dst.Bounds()
	rz := vector.NewRasterizer(b.Dx(), b.Dy())
	var buf sfnt.Buffer
	ppem := fixed.I(f.size)

	pen := fixed.I(origin.X - b.Min.X)
	baseline := fixed.I(origin.Y-b.Min.Y) + run.ascent
	for _, g := range run.glyphs {
		segs, err := f.loader.sfnt.LoadGlyph(&buf, sfnt.GlyphIndex(g.GlyphID), ppem, nil)
		if err != nil {
			return fmt.Errorf("%w: load glyph %d: %v", pipeline.ErrMeasurementFailure, g.GlyphID, err)
		}
		gx := pen + g.XOffset
		gy := baseline - g.YOffset
		addSegments(rz, segs, gx, gy)
		pen += g.XAdvance
	}

	rz.Draw(dst, b, image.NewUniform(c), image.Point{})
	return nil
}

// addSegments appends a glyph outline translated to (dx, dy). sfnt
// segments are y-down, like the raster.
func addSegments(rz *vector.Rasterizer, segs sfnt.Segments, dx, dy fixed.Int26_6) {
	pt := func(p fixed.Point26_6) (float32, float32) {
		return fix2f(p.X + dx), fix2f(p.Y + dy)
	}
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				rz.ClosePath()
			}
			x, y := pt(s.Args[0])
			rz.MoveTo(x, y)
			open = true
		case sfnt.SegmentOpLineTo:
			x, y := pt(s.Args[0])
			rz.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			rz.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			ex, ey := pt(s.Args[2])
			rz.CubeTo(bx, by, cx, cy, ex, ey)
		}
	}
	if open {
		rz.ClosePath()
	}
}

func fix2f(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// Probe reports whether advanced right-to-left shaping works with the
// loader's font, by shaping a short Arabic word.
func Probe(l *Loader) bool {
	if l == nil || !l.Shapeable() {
		return false
	}
	f := newFace(l, 32)
	run, err := f.shape("سلام", ports.RightToLeft)
	if err != nil || len(run.glyphs) == 0 {
		return false
	}
	return !run.bounds().Empty()
}
