package fit

import (
	"context"
	"fmt"

	"github.com/user/textplate/pkg/pipeline"
	"github.com/user/textplate/pkg/ports"
)

// Fitter searches font sizes for the largest one whose wrapped layout fits a box.
type Fitter struct {
	loader ports.FontLoader
	opts   Options
	mode   ports.ShapingMode
	logger ports.Logger
}

// NewFitter creates a Fitter. Options are normalized.
func NewFitter(loader ports.FontLoader, opts Options, mode ports.ShapingMode, logger ports.Logger) *Fitter {
	return &Fitter{
		loader: loader,
		opts:   opts.Normalized(),
		mode:   mode,
		logger: logger,
	}
}

// Options returns the normalized options.
func (f *Fitter) Options() Options {
	return f.opts
}

// Fit returns the largest size in [MinSize, MaxSize] at which the wrapped
// text is at most maxWidth wide and maxHeight tall.
//
// The search is a binary search and assumes that a larger size never
// measures smaller. Rewrapping can break that assumption, so the result
// is a valid fit that is near-maximal, not a proven maximum.
//
// When not even MinSize fits, the MinSize layout with minimum spacing is
// returned with BestEffort set. The only errors are font loading failures.
//
// A Fitter holds no per-call state and may be shared between goroutines.
func (f *Fitter) Fit(text string, maxWidth, maxHeight int) (pipeline.FitCandidate, error) {
	m := NewMeasurer(f.mode, f.logger)

	var best *pipeline.FitCandidate
	lo, hi := f.opts.MinSize, f.opts.MaxSize
	for lo <= hi {
		mid := (lo + hi) / 2
		cand, err := f.try(m, text, mid, f.opts.Spacing(mid), maxWidth)
		if err != nil {
			return pipeline.FitCandidate{}, err
		}

		if cand.Width <= maxWidth && cand.Height <= maxHeight {
			f.logger.Debug("Size %d fits: %dx%d, %d lines", mid, cand.Width, cand.Height, cand.Lines.Len())
			best = &cand
			lo = mid + 1
		} else {
			f.logger.Debug("Size %d overflows: %dx%d, %d lines", mid, cand.Width, cand.Height, cand.Lines.Len())
			hi = mid - 1
		}
	}

	if best != nil {
		best.Fallbacks = m.Fallbacks()
		return *best, nil
	}

	cand, err := f.try(m, text, f.opts.MinSize, f.opts.SpacingMin, maxWidth)
	if err != nil {
		return pipeline.FitCandidate{}, err
	}
	cand.BestEffort = true
	cand.Fallbacks = m.Fallbacks()
	return cand, nil
}

func (f *Fitter) try(m *Measurer, text string, size, spacing, maxWidth int) (pipeline.FitCandidate, error) {
	face, err := f.loader.LoadFace(size)
	if err != nil {
		return pipeline.FitCandidate{}, fmt.Errorf("load face at size %d: %w", size, err)
	}
	lines := Wrap(text, face, maxWidth, f.opts.WrapPadding, m)
	w, h := Block(m, face, lines.Lines, spacing, f.opts)
	return pipeline.FitCandidate{
		Face:        face,
		Size:        size,
		LineSpacing: spacing,
		Lines:       lines,
		Width:       w,
		Height:      h,
	}, nil
}

// Stage runs the fitter as a pipeline stage.
type Stage struct {
	fitter *Fitter
	logger ports.Logger
}

// NewStage creates a new fit stage.
func NewStage(loader ports.FontLoader, opts Options, mode ports.ShapingMode, logger ports.Logger) *Stage {
	l := logger.WithComponent("fit")
	return &Stage{
		fitter: NewFitter(loader, opts, mode, l),
		logger: l,
	}
}

// Execute finds the best candidate for the input box.
func (s *Stage) Execute(ctx context.Context, input pipeline.FitInput) (pipeline.FitCandidate, error) {
	s.logger.Debug("Fitting text into %dx%d", input.Target.MaxWidth, input.Target.MaxHeight)

	cand, err := s.fitter.Fit(input.Text, input.Target.MaxWidth, input.Target.MaxHeight)
	if err != nil {
		return cand, err
	}

	if n := cand.Fallbacks; n > 0 {
		s.logger.Warn("Shaping fell back to unshaped measurement %d times", n)
	}
	if cand.BestEffort {
		s.logger.Warn("No size between %d and %d fits %dx%d, using size %d",
			s.fitter.opts.MinSize, s.fitter.opts.MaxSize, input.Target.MaxWidth, input.Target.MaxHeight, cand.Size)
	} else {
		s.logger.Debug("Chose size %d with %d lines", cand.Size, cand.Lines.Len())
	}
	return cand, nil
}
