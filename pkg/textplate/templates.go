package textplate

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"

	"github.com/user/textplate/pkg/ports"
)

var templates = map[Format]string{
	FormatPost:  "IG-post-template.jpg",
	FormatStory: "IG-story-template.jpg",
}

// TemplateName returns the background file name of a layout preset.
func TemplateName(format Format) (string, error) {
	name, ok := templates[format]
	if !ok {
		_, err := ParseFormat(string(format))
		return "", err
	}
	return name, nil
}

// ResolveTemplate returns the background path of a layout preset inside
// the resources directory.
func ResolveTemplate(format Format, resourcesDir string) (string, error) {
	name, err := TemplateName(format)
	if err != nil {
		return "", err
	}
	return filepath.Join(resourcesDir, name), nil
}

// NewOutputName returns a random file name for an output image.
func NewOutputName(format ports.ImageFormat) (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("output name: %w", err)
	}
	ext := ".png"
	if format == ports.FormatJPEG {
		ext = ".jpg"
	}
	return hex.EncodeToString(b[:]) + ext, nil
}

// NewOutputPath returns a random output path inside dir.
func NewOutputPath(dir string, format ports.ImageFormat) (string, error) {
	name, err := NewOutputName(format)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
