// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/textplate/pkg/ports"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveFitJSON saves the chosen fit candidate as JSON.
func (s *Sink) SaveFitJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "fit.json")
	return s.fs.WriteFile(path, data)
}

// SaveTextBlock saves the transparent text block.
func (s *Sink) SaveTextBlock(img image.Image) error {
	return s.savePNG("text-block.png", img)
}

// SaveLayout saves the annotated layout image.
func (s *Sink) SaveLayout(img image.Image) error {
	return s.savePNG("layout.png", img)
}

// SaveComposed saves the composed image before final encoding.
func (s *Sink) SaveComposed(img image.Image) error {
	return s.savePNG("composed.png", img)
}

func (s *Sink) savePNG(name string, img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, name), data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
