// Package fit implements line wrapping and the font size search.
package fit

// Options are the construction-time knobs of the fitter.
type Options struct {
	MinSize          int     // smallest searchable pixel size (inclusive)
	MaxSize          int     // largest searchable pixel size (inclusive)
	WrapPadding      int     // horizontal padding subtracted from the wrap width
	SpacingRatio     float64 // line spacing as a fraction of the size
	SpacingMin       int     // lower bound for line spacing
	VerticalPadRatio float64 // top plus bottom padding as a fraction of the size
}

// DefaultOptions returns the defaults: sizes 6..160, 20 px wrap padding,
// spacing max(4, 27% of size) and 35% vertical padding.
func DefaultOptions() Options {
	return Options{
		MinSize:          6,
		MaxSize:          160,
		WrapPadding:      20,
		SpacingRatio:     0.27,
		SpacingMin:       4,
		VerticalPadRatio: 0.35,
	}
}

// Normalized returns a copy with invalid fields replaced by defaults.
func (o Options) Normalized() Options {
	d := DefaultOptions()
	if o.MinSize <= 0 {
		o.MinSize = d.MinSize
	}
	if o.MaxSize <= 0 {
		o.MaxSize = d.MaxSize
	}
	if o.MaxSize < o.MinSize {
		o.MaxSize = o.MinSize
	}
	if o.WrapPadding < 0 {
		o.WrapPadding = 0
	}
	if o.SpacingRatio < 0 {
		o.SpacingRatio = d.SpacingRatio
	}
	if o.SpacingMin < 0 {
		o.SpacingMin = 0
	}
	if o.VerticalPadRatio < 0 {
		o.VerticalPadRatio = d.VerticalPadRatio
	}
	return o
}

// Spacing returns the line spacing for a font size.
func (o Options) Spacing(size int) int {
	s := int(float64(size) * o.SpacingRatio)
	if s < o.SpacingMin {
		return o.SpacingMin
	}
	return s
}

// VerticalPadding returns the combined top and bottom padding for a size.
func (o Options) VerticalPadding(size int) int {
	return int(float64(size) * o.VerticalPadRatio)
}

// TopPadding returns the offset of the first line from the top of the block.
// It is half of the vertical padding ratio, truncated independently.
func (o Options) TopPadding(size int) int {
	return int(float64(size) * o.VerticalPadRatio / 2)
}
