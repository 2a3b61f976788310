package fit

import (
	"strings"

	"github.com/user/textplate/pkg/pipeline"
	"github.com/user/textplate/pkg/ports"
)

// Wrap greedily packs whitespace-separated words into lines no wider than
// maxWidth-padding. Words keep their logical order; a single word wider
// than the limit is emitted on its own line rather than split.
func Wrap(text string, face ports.TextFace, maxWidth, padding int, m *Measurer) pipeline.WrapResult {
	limit := maxWidth - padding
	words := strings.Fields(text)
	lines := make([]string, 0, 4)

	line := ""
	for _, word := range words {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if m.Width(face, candidate) <= limit {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}
		line = word
	}
	if line != "" {
		lines = append(lines, line)
	}

	return pipeline.WrapResult{Lines: lines}
}
