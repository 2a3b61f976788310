package summarizer

import (
	"fmt"
	"strings"
)

// NewMarkdownFormatter returns a Formatter producing a Markdown report.
func NewMarkdownFormatter() Formatter {
	return FormatFunc(formatMarkdown)
}

func formatMarkdown(s *Summary) string {
	var b strings.Builder

	b.WriteString("# Render Summary\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", s.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	b.WriteString("## Input\n\n")
	table(&b, [][2]string{
		{"Format", orDash(s.Input.Format)},
		{"Template", orDash(s.Input.Template)},
		{"Font", orDash(s.Input.Font)},
		{"Shaping", orDash(s.Input.Shaping)},
	})

	b.WriteString("## Fit\n\n")
	table(&b, [][2]string{
		{"Font size", fmt.Sprintf("%d px", s.Fit.FontSize)},
		{"Line spacing", fmt.Sprintf("%d px", s.Fit.LineSpacing)},
		{"Lines", fmt.Sprintf("%d", len(s.Fit.Lines))},
		{"Best effort", yesNo(s.Fit.BestEffort)},
	})
	if len(s.Fit.Lines) > 0 {
		b.WriteString("### Lines\n\n")
		for i, line := range s.Fit.Lines {
			fmt.Fprintf(&b, "%d. %s\n", i+1, line)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Layout\n\n")
	table(&b, [][2]string{
		{"Background", fmt.Sprintf("%dx%d", s.Layout.Background.X, s.Layout.Background.Y)},
		{"Target", fmt.Sprintf("%dx%d", s.Layout.TargetWidth, s.Layout.TargetHeight)},
		{"Block", fmt.Sprintf("%dx%d", s.Layout.BlockWidth, s.Layout.BlockHeight)},
		{"Offset", fmt.Sprintf("(%d, %d)", s.Layout.Offset.X, s.Layout.Offset.Y)},
		{"Clamped", yesNo(s.Layout.Clamped)},
	})

	b.WriteString("## Output\n\n")
	table(&b, [][2]string{
		{"File", orDash(s.Output.Path)},
		{"Size", formatBytes(s.Output.FileSize)},
	})

	return b.String()
}

func table(b *strings.Builder, rows [][2]string) {
	b.WriteString("| Item | Value |\n")
	b.WriteString("|------|-------|\n")
	for _, r := range rows {
		fmt.Fprintf(b, "| %s | %s |\n", r[0], r[1])
	}
	b.WriteString("\n")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// formatBytes formats a byte count with binary units.
func formatBytes(n int64) string {
	const unit = 1024
	switch {
	case n >= unit*unit:
		return fmt.Sprintf("%.2f MB", float64(n)/(unit*unit))
	case n >= unit:
		return fmt.Sprintf("%.2f KB", float64(n)/unit)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
