// Package fontcache caches parsed fonts by path and their faces by size.
package fontcache

import (
	"fmt"
	"sync"

	"github.com/user/textplate/pkg/adapters/fontface"
	"github.com/user/textplate/pkg/pipeline"
	"github.com/user/textplate/pkg/ports"
)

type faceKey struct {
	path string
	size int
}

// Cache reads fonts through a FileSystem once and hands out faces.
// It is safe for concurrent use.
type Cache struct {
	fs ports.FileSystem

	mu      sync.RWMutex
	loaders map[string]*fontface.Loader
	faces   map[faceKey]ports.TextFace
}

// New creates an empty cache reading through fs.
func New(fs ports.FileSystem) *Cache {
	return &Cache{
		fs:      fs,
		loaders: make(map[string]*fontface.Loader),
		faces:   make(map[faceKey]ports.TextFace),
	}
}

// Loader returns the parsed font at path, reading it on first use.
func (c *Cache) Loader(path string) (*fontface.Loader, error) {
	c.mu.RLock()
	l, ok := c.loaders[path]
	c.mu.RUnlock()
	if ok {
		return l, nil
	}

	data, err := c.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: font %s: %v", pipeline.ErrResourceMissing, path, err)
	}
	l, err = fontface.NewLoader(path, data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.loaders[path]; ok {
		return existing, nil
	}
	c.loaders[path] = l
	return l, nil
}

// Face returns the face of the font at path for size.
func (c *Cache) Face(path string, size int) (ports.TextFace, error) {
	key := faceKey{path: path, size: size}

	c.mu.RLock()
	face, ok := c.faces[key]
	c.mu.RUnlock()
	if ok {
		return face, nil
	}

	l, err := c.Loader(path)
	if err != nil {
		return nil, err
	}
	face, err = l.LoadFace(size)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.faces[key]; ok {
		return existing, nil
	}
	c.faces[key] = face
	return face, nil
}

// FontLoader returns a ports.FontLoader bound to the font at path. The font
// is read immediately so a missing file is reported here.
func (c *Cache) FontLoader(path string) (ports.FontLoader, error) {
	if _, err := c.Loader(path); err != nil {
		return nil, err
	}
	return boundLoader{cache: c, path: path}, nil
}

// Len returns the number of cached faces.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.faces)
}

type boundLoader struct {
	cache *Cache
	path  string
}

func (b boundLoader) LoadFace(size int) (ports.TextFace, error) {
	return b.cache.Face(b.path, size)
}
