package textplate

import (
	"github.com/user/textplate/pkg/adapters/fontface"
	"github.com/user/textplate/pkg/ports"
)

// ResolveShaping decides the shaping mode once for a font.
//
// Auto probes the font with the advanced shaper and degrades to basic when
// the probe fails. Advanced is used as requested; per-call failures still
// fall back to basic metrics in the fit and render stages.
func ResolveShaping(s Shaping, loader *fontface.Loader, logger ports.Logger) ports.ShapingMode {
	switch s {
	case ShapingBasic:
		return ports.BasicShaping()
	case ShapingAdvanced:
		return ports.AdvancedShaping(ports.RightToLeft)
	}

	available := fontface.Probe(loader)
	logger.Info("Advanced shaping available: %t", available)
	if !available {
		logger.Warn("Arabic letters will be drawn unjoined")
		return ports.BasicShaping()
	}
	return ports.AdvancedShaping(ports.RightToLeft)
}
