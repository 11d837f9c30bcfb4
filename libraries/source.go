package libraries

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reusee/smachine/insns"
	"github.com/reusee/smachine/macros"
)

// Source is the content of one library or program file.
type Source struct {
	Path    string
	Macros  map[string]*macros.Definition
	Program insns.Program
}

// Register adds the macros of the source to the registry, replacing same-named ones.
func (s *Source) Register(r *macros.Registry) error {
	if err := r.RegisterAll(s.Macros); err != nil {
		return fmt.Errorf("%s: %w", s.Path, err)
	}
	return nil
}

type Options struct {
	// Print receives the output of starlark print calls; if nil, output is dropped
	Print func(msg string)
}

// Load reads a .yaml, .yml or .star file.
func Load(path string, options Options) (*Source, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" && ext != ".star" {
		return nil, UnsupportedFormat{
			Path: path,
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, wrap(err)
	}

	if ext == ".star" {
		return ParseStarlark(path, content, options)
	}
	return ParseYAML(path, content)
}
