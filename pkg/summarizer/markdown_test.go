package summarizer

import (
	"image"
	"strings"
	"testing"
	"time"
)

func TestMarkdownFormatter_Format(t *testing.T) {
	formatter := NewMarkdownFormatter()

	summary := &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Input: InputInfo{
			Format:   "post",
			Template: "resources/IG-post-template.jpg",
			Font:     "fonts/Amiri.ttf",
			Shaping:  "advanced/rtl",
		},
		Fit: FitInfo{
			FontSize:    64,
			LineSpacing: 17,
			Lines:       []string{"السطر الأول", "السطر الثاني"},
		},
		Layout: LayoutInfo{
			Background:   image.Pt(1080, 1080),
			TargetWidth:  830,
			TargetHeight: 750,
			BlockWidth:   830,
			BlockHeight:  167,
			Offset:       image.Pt(100, 631),
		},
		Output: OutputInfo{
			Path:     "out/result.png",
			FileSize: 1024 * 1024,
		},
	}

	result := formatter.Format(summary)

	checks := []string{
		"# Render Summary",
		"2024-01-15 10:30:00 UTC",
		"| Format | post |",
		"| Shaping | advanced/rtl |",
		"| Font size | 64 px |",
		"| Line spacing | 17 px |",
		"| Lines | 2 |",
		"| Best effort | No |",
		"1. السطر الأول",
		"2. السطر الثاني",
		"| Background | 1080x1080 |",
		"| Target | 830x750 |",
		"| Offset | (100, 631) |",
		"| Size | 1.00 MB |",
	}

	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestMarkdownFormatter_Format_Empty(t *testing.T) {
	result := NewMarkdownFormatter().Format(NewSummary())

	if strings.Contains(result, "### Lines") {
		t.Error("expected no line list without lines")
	}
	if !strings.Contains(result, "| Template | - |") {
		t.Error("expected a dash for missing values")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d): expected %q, got %q", tt.n, tt.want, got)
		}
	}
}
