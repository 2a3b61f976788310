// Package main provides the CLI entry point for textplate.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/textplate/pkg/adapters/filesink"
	"github.com/user/textplate/pkg/adapters/fontcache"
	"github.com/user/textplate/pkg/adapters/fontface"
	"github.com/user/textplate/pkg/adapters/ggrenderer"
	"github.com/user/textplate/pkg/adapters/logger"
	"github.com/user/textplate/pkg/adapters/nullsink"
	"github.com/user/textplate/pkg/adapters/osfilesystem"
	"github.com/user/textplate/pkg/config"
	"github.com/user/textplate/pkg/pipeline"
	"github.com/user/textplate/pkg/ports"
	"github.com/user/textplate/pkg/summarizer"
	"github.com/user/textplate/pkg/textplate"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %s", err))
		os.Exit(exitCode(err))
	}
}

// exitCode maps pipeline errors to process exit codes.
func exitCode(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrInvalidInput):
		return 2
	case errors.Is(err, pipeline.ErrResourceMissing):
		return 3
	case errors.Is(err, pipeline.ErrNoFitFound):
		return 4
	default:
		return 1
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "textplate",
		Usage:   l10n.T("Place Arabic text on social media templates"),
		Version: version,
		Description: l10n.T("textplate fits text into a template area at the largest font size, " +
			"wraps it into centered lines and composes it onto the background image."),
		Commands: []*cli.Command{
			renderCommand(),
			probeCommand(),
		},
	}
}

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "config",
			Aliases:  []string{"c"},
			Usage:    l10n.T("YAML configuration file"),
			Category: l10n.T("Input"),
		},
		&cli.StringFlag{
			Name:     "font",
			Usage:    l10n.T("TrueType or OpenType font file"),
			Category: l10n.T("Input"),
		},
	}
}

func renderCommand() *cli.Command {
	flags := append(configFlags(),
		// Input
		&cli.StringFlag{
			Name:     "format",
			Aliases:  []string{"f"},
			Usage:    l10n.T("Layout preset (post, story)"),
			Category: l10n.T("Input"),
		},
		&cli.StringFlag{
			Name:     "template",
			Usage:    l10n.T("Background image (overrides the preset template)"),
			Category: l10n.T("Input"),
		},
		&cli.StringFlag{
			Name:     "resources",
			Usage:    l10n.T("Directory holding the preset templates"),
			Category: l10n.T("Input"),
		},

		// Output
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Usage:    l10n.T("Output PNG file path (default: random name in the output directory)"),
			Category: l10n.T("Output"),
		},
		&cli.StringFlag{
			Name:     "out-dir",
			Usage:    l10n.T("Output directory for generated names"),
			Category: l10n.T("Output"),
		},
		&cli.StringFlag{
			Name:     "summary",
			Usage:    l10n.T("Write a Markdown summary to this path"),
			Category: l10n.T("Output"),
		},

		// Text
		&cli.StringFlag{
			Name:     "shaping",
			Usage:    l10n.T("Shaping mode (auto, advanced, basic)"),
			Category: l10n.T("Text"),
		},
		&cli.IntFlag{
			Name:     "min-size",
			Usage:    l10n.T("Smallest font size in pixels"),
			Category: l10n.T("Text"),
		},
		&cli.IntFlag{
			Name:     "max-size",
			Usage:    l10n.T("Largest font size in pixels"),
			Category: l10n.T("Text"),
		},
		&cli.StringFlag{
			Name:     "color",
			Usage:    l10n.T("Text color (hex, e.g., #ffffff)"),
			Category: l10n.T("Text"),
		},
		&cli.BoolFlag{
			Name:     "strict",
			Usage:    l10n.T("Fail when no font size fits instead of using the minimum size"),
			Category: l10n.T("Text"),
		},

		// Debug
		&cli.BoolFlag{
			Name:     "debug",
			Aliases:  []string{"d"},
			Usage:    l10n.T("Enable debug output"),
			Category: l10n.T("Debug"),
		},
		&cli.StringFlag{
			Name:     "debug-dir",
			Usage:    l10n.T("Directory for debug output"),
			Category: l10n.T("Debug"),
		},

		// Logging
		&cli.StringFlag{
			Name:     "log-level",
			Aliases:  []string{"l"},
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			Category: l10n.T("Logging"),
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"Q"},
			Usage:    l10n.T("Suppress all log output"),
			Category: l10n.T("Logging"),
		},
	)

	return &cli.Command{
		Name:      "render",
		Usage:     l10n.T("Render text onto a template image"),
		ArgsUsage: l10n.T("TEXT (use - to read standard input)"),
		Flags:     flags,
		Action:    runRender,
	}
}

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:   "probe",
		Usage:  l10n.T("Report whether the font supports advanced Arabic shaping"),
		Flags:  configFlags(),
		Action: runProbe,
	}
}

// loadConfig reads the configuration file when given and applies flag
// overrides that do not go through the textplate builder.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	setString := func(name string, dst *string) {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}
	setString("font", &cfg.Font)
	if c.Command.Name == "render" {
		setString("format", &cfg.Format)
		setString("resources", &cfg.Resources)
		setString("out-dir", &cfg.OutputDir)
		setString("shaping", &cfg.Shaping)
		setString("color", &cfg.TextColor)
		setString("debug-dir", &cfg.DebugDir)
		setString("log-level", &cfg.LogLevel)
		if c.IsSet("min-size") {
			cfg.Fit.MinSize = c.Int("min-size")
		}
		if c.IsSet("max-size") {
			cfg.Fit.MaxSize = c.Int("max-size")
		}
		if c.Bool("debug") {
			cfg.Debug = true
		}
		if c.Bool("strict") {
			cfg.RejectBestEffort = true
		}
	}

	if cfg.Font == "" {
		return cfg, fmt.Errorf("%w: no font given (use --font or the config file)", pipeline.ErrResourceMissing)
	}
	return cfg, nil
}

// readText returns the text argument, reading standard input for "-".
func readText(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("%w: expected exactly one TEXT argument", pipeline.ErrInvalidInput)
	}
	text := c.Args().First()
	if text != "-" {
		return text, nil
	}
	data, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return "", fmt.Errorf("read standard input: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func newLogger(c *cli.Context, level string) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	return logger.NewConsoleWriter(ports.ParseLogLevel(level), c.App.ErrWriter, c.App.ErrWriter)
}

func runRender(c *cli.Context) error {
	text, err := readText(c)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	builder, err := cfg.Builder()
	if err != nil {
		return err
	}
	settings := builder.Build()

	log := newLogger(c, cfg.LogLevel)

	// Resolve paths
	background := c.String("template")
	if background == "" {
		if background, err = cfg.Template(); err != nil {
			return err
		}
	}
	output := c.String("output")
	if output == "" {
		if output, err = textplate.NewOutputPath(cfg.OutputDir, settings.OutputFormat); err != nil {
			return err
		}
	}

	// Create adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	engine, err := textplate.NewEngine(settings, textplate.Dependencies{
		FileSystem: fs,
		Renderer:   renderer,
		Sink:       sink,
		Logger:     log,
	})
	if err != nil {
		return err
	}

	// Setup context with cancellation
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Rendering %s (%s format)...", background, settings.Format)

	result, err := engine.Render(ctx, text, background, output)
	if err != nil {
		return err
	}

	if path := c.String("summary"); path != "" {
		summary := summarizer.NewBuilder().
			WithInput(summarizer.InputInfo{
				Format:   string(settings.Format),
				Template: background,
				Font:     settings.FontPath,
				Shaping:  engine.Mode().String(),
			}).
			WithResult(result).
			Build()
		if err := summarizer.NewWriter(summarizer.NewMarkdownFormatter(), fs).Write(path, summary); err != nil {
			return err
		}
		log.Info("Summary saved to %s", path)
	}

	fmt.Fprintln(c.App.Writer, result.OutputPath)
	return nil
}

func runProbe(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	loader, err := fontcache.New(osfilesystem.New()).Loader(cfg.Font)
	if err != nil {
		return err
	}

	mode := ports.BasicShaping()
	if fontface.Probe(loader) {
		mode = ports.AdvancedShaping(ports.RightToLeft)
	}
	fmt.Fprintln(c.App.Writer, l10n.F("%s: %s shaping", loader.Name(), mode))
	return nil
}
