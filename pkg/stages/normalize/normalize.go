// Package normalize implements the text sanitization stage.
package normalize

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/user/textplate/pkg/pipeline"
	"github.com/user/textplate/pkg/ports"
)

// substitutions maps space-like code points to a plain space and Latin
// punctuation to the Arabic equivalents.
var substitutions = map[rune]rune{
	'\u00A0': ' ', // no-break space
	'\u202F': ' ', // narrow no-break space
	'\u2007': ' ', // figure space
	',':      '\u060C',
	';':      '\u061B',
	'?':      '\u061F',
}

func substitute(r rune) rune {
	if s, ok := substitutions[r]; ok {
		return s
	}
	return r
}

// invisible reports format-control code points that are dropped.
func invisible(r rune) bool {
	switch r {
	case '\t', '\n', '\r':
		return false
	}
	return unicode.Is(unicode.Cf, r)
}

// Normalize sanitizes raw input text. It is pure and total over UTF-8 input.
//
// The substitution table is applied first, then NFC, then format controls
// are stripped. A final substitution and NFC pass makes the result a fixed
// point: NFC can produce ';' from U+037E, and removing a control between a
// base letter and a combining mark leaves a composable pair.
func Normalize(text string) string {
	t := transform.Chain(
		runes.Map(substitute),
		norm.NFC,
		runes.Remove(runes.Predicate(invisible)),
		runes.Map(substitute),
		norm.NFC,
	)
	out, _, err := transform.String(t, text)
	if err != nil {
		// The chain only fails on internal buffer errors; fall back to the
		// per-rune path which cannot fail.
		return normalizeSlow(text)
	}
	return out
}

func normalizeSlow(text string) string {
	var b strings.Builder
	for _, r := range norm.NFC.String(strings.Map(substitute, text)) {
		if invisible(r) {
			continue
		}
		b.WriteRune(substitute(r))
	}
	return norm.NFC.String(b.String())
}

// Stage normalizes text and rejects input that is empty afterwards.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new normalize stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{
		logger: logger.WithComponent("normalize"),
	}
}

// Execute normalizes the text.
func (s *Stage) Execute(ctx context.Context, text string) (string, error) {
	out := Normalize(text)
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("%w: text is empty after normalization", pipeline.ErrInvalidInput)
	}
	s.logger.Debug("Normalized %d runes to %d runes", len([]rune(text)), len([]rune(out)))
	return out, nil
}
