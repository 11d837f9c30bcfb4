package libraries

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/reusee/smachine/macros"
	"gopkg.in/yaml.v3"
)

type yamlFile struct {
	Macros  map[string]yamlMacro `yaml:"macros"`
	Program [][]string           `yaml:"program"`
}

type yamlMacro struct {
	Params []string   `yaml:"params"`
	Locals []string   `yaml:"locals"`
	Body   [][]string `yaml:"body"`
}

// ParseYAML reads a document of the form
//
//	macros:
//	  double:
//	    params: [y, x]
//	    body:
//	      - [add, y, x, x]
//	program:
//	  - [double, y, x]
func ParseYAML(path string, content []byte) (*Source, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)

	var file yamlFile
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, wrap(fmt.Errorf("parse %s: %w", path, err))
	}

	source := &Source{
		Path:   path,
		Macros: make(map[string]*macros.Definition, len(file.Macros)),
	}

	for name, macro := range file.Macros {
		body, err := ParseTuples(macro.Body)
		if err != nil {
			return nil, wrap(fmt.Errorf("%s: macro %s: %w", path, name, err))
		}
		source.Macros[name] = macros.Define(macro.Params, body, macro.Locals...)
	}

	program, err := ParseTuples(file.Program)
	if err != nil {
		return nil, wrap(fmt.Errorf("%s: program: %w", path, err))
	}
	source.Program = program

	return source, nil
}
