// Package ports defines the interfaces the text layout core talks to.
// Fonts, images and files are reached only through these.
package ports

// FileSystem abstracts access to fonts, templates and output files.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating parent directories as needed.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error
}
