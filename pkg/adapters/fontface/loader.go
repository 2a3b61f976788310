// Package fontface loads TrueType fonts and exposes them as ports.TextFace.
//
// Unshaped text is measured and drawn with golang/freetype faces through gg.
// Shaped text goes through the go-text HarfBuzz port for glyph selection and
// positioning, and glyph outlines are rasterized from x/image/font/sfnt.
package fontface

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/sfnt"

	"github.com/user/textplate/pkg/pipeline"
	"github.com/user/textplate/pkg/ports"
)

// Loader holds one parsed font and creates faces of it at any pixel size.
type Loader struct {
	name  string
	tt    *truetype.Font
	sfnt  *sfnt.Font
	gtext *font.Face // nil when the font cannot be shaped

	// mu serializes shaping and outline loading across all faces of the font.
	mu        sync.Mutex
	segmenter shaping.Segmenter
}

// NewLoader parses font data. name is only used in error messages.
// A font that parses for unshaped drawing but not for shaping still loads;
// its faces report measurement failures in advanced mode.
func NewLoader(name string, data []byte) (*Loader, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: font %s is empty", pipeline.ErrResourceMissing, name)
	}
	tt, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse font %s: %v", pipeline.ErrResourceMissing, name, err)
	}
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse font %s: %v", pipeline.ErrResourceMissing, name, err)
	}

	l := &Loader{name: name, tt: tt, sfnt: sf}
	if gf, err := font.ParseTTF(bytes.NewReader(data)); err == nil {
		l.gtext = gf
	}
	return l, nil
}

// Name returns the name the loader was created with.
func (l *Loader) Name() string {
	return l.name
}

// LoadFace returns a face of the font at the given pixel size.
func (l *Loader) LoadFace(size int) (ports.TextFace, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: font size %d", pipeline.ErrInvalidInput, size)
	}
	return newFace(l, size), nil
}

// Shapeable reports whether the font can be handed to the shaper at all.
func (l *Loader) Shapeable() bool {
	return l.gtext != nil
}

var _ ports.FontLoader = (*Loader)(nil)
