// Command fitpreview renders a sample supplication at several box widths
// so fitting and wrapping can be checked by eye.
package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/user/textplate/pkg/adapters/fontcache"
	"github.com/user/textplate/pkg/adapters/ggrenderer"
	"github.com/user/textplate/pkg/adapters/logger"
	"github.com/user/textplate/pkg/adapters/osfilesystem"
	"github.com/user/textplate/pkg/ports"
	"github.com/user/textplate/pkg/stages/fit"
	"github.com/user/textplate/pkg/stages/normalize"
	"github.com/user/textplate/pkg/stages/render"
	"github.com/user/textplate/pkg/textplate"
)

const sample = "اللهم إني أعوذ بك من العجز والكسل، والجبن والبخل، والهرم وعذاب القبر."

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: fitpreview FONT [TEXT]")
		os.Exit(2)
	}
	text := sample
	if len(os.Args) > 2 {
		text = os.Args[2]
	}
	text = normalize.Normalize(text)

	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	log := logger.NewConsole(ports.LevelWarn)
	cache := fontcache.New(fs)

	font, err := cache.Loader(os.Args[1])
	if err != nil {
		fmt.Printf("Error loading font: %v\n", err)
		os.Exit(1)
	}
	loader, _ := cache.FontLoader(os.Args[1])
	mode := textplate.ResolveShaping(textplate.ShapingAuto, font, log)
	fmt.Printf("Shaping: %s\n", mode)

	opts := fit.DefaultOptions()
	fitter := fit.NewFitter(loader, opts, mode, log)
	rend := render.NewRenderer(opts, mode, color.Black, log)

	widths := []int{300, 500, 830}
	const height = 750

	for _, width := range widths {
		cand, err := fitter.Fit(text, width, height)
		if err != nil {
			fmt.Printf("Error fitting %d: %v\n", width, err)
			continue
		}

		block, err := rend.Render(cand, width, height)
		if err != nil {
			fmt.Printf("Error rendering %d: %v\n", width, err)
			continue
		}

		canvas := renderer.CreateCanvas(width, height, color.White)
		canvas.DrawImage(block.Image, 0, render.CenterOffset(height, block.Bounds().Dy()))
		canvas.DrawRectStroke(0, 0, width, height, color.RGBA{R: 255, A: 255}, 1)

		data, err := renderer.EncodeImage(canvas.ToImage(), ports.FormatPNG, 0)
		if err != nil {
			fmt.Printf("Error encoding PNG: %v\n", err)
			continue
		}

		filename := fmt.Sprintf("tmp/fit_%d.png", width)
		if err := fs.WriteFile(filename, data); err != nil {
			fmt.Printf("Error writing file: %v\n", err)
			continue
		}

		fmt.Printf("Generated %s (size %d, %d lines, best effort %t)\n",
			filename, cand.Size, cand.Lines.Len(), cand.BestEffort)
	}
}
