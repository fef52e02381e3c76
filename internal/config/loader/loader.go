// Package loader reads document schema specs from configuration files.
//
// The loader package parses TOML, YAML and JSON files into generic maps and
// decodes those maps into model.SchemaSpec values. The format is chosen by
// file extension.
package loader

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/nodeedit/internal/engine/model"
)

// Loader is the interface for schema file loaders.
type Loader interface {
	// Load reads the configured source and returns a map.
	// Returns nil, nil if the source doesn't exist (not an error).
	Load() (map[string]any, error)
}

// FileLoader is the interface for loaders that read from files.
type FileLoader interface {
	Loader
	// LoadFrom reads a specific path.
	LoadFrom(path string) (map[string]any, error)
	// LoadFromReader reads from a reader.
	LoadFromReader(r io.Reader) (map[string]any, error)
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// ForPath returns the loader matching the extension of path.
func ForPath(fsys FileSystem, path string) (FileLoader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return NewTOMLLoaderWithFS(fsys, path), nil
	case ".yaml", ".yml":
		return NewYAMLLoaderWithFS(fsys, path), nil
	case ".json":
		return NewJSONLoaderWithFS(fsys, path), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadSchema reads the schema spec at path and compiles it.
func LoadSchema(fsys FileSystem, path string) (*model.Schema, error) {
	l, err := ForPath(fsys, path)
	if err != nil {
		return nil, err
	}
	raw, err := l.Load()
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, path)
	}
	return BuildSchema(raw)
}

// BuildSchema decodes a raw map and compiles the resulting spec.
func BuildSchema(raw map[string]any) (*model.Schema, error) {
	spec, err := DecodeSchemaSpec(raw)
	if err != nil {
		return nil, err
	}
	schema, err := model.NewSchema(spec)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return schema, nil
}

// readSource reads path, mapping a missing file to nil data.
func readSource(fsys FileSystem, path string) ([]byte, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // File doesn't exist, not an error
		}
		return nil, fmt.Errorf("reading schema file %s: %w", path, err)
	}
	return data, nil
}
