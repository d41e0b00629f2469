package module

import (
	"os"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var (
	// ErrManifestRead is returned when the modules manifest cannot be read.
	ErrManifestRead = zerr.New("failed to read modules manifest")

	// ErrManifestParse is returned when the modules manifest cannot be parsed.
	ErrManifestParse = zerr.New("failed to parse modules manifest")
)

type manifest struct {
	Modules []manifestEntry `yaml:"modules"`
}

type manifestEntry struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// LoadManifest reads a YAML manifest listing modules to embed:
//
//	modules:
//	  - name: fs
//	    path: src/js/fs.js
func LoadManifest(path string) ([]Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.Wrap(err, ErrManifestRead.Error())
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, zerr.Wrap(err, ErrManifestParse.Error())
	}

	var modules []Module
	for _, entry := range m.Modules {
		if entry.Name == "" || entry.Path == "" {
			return nil, zerr.With(ErrBadSpec, "name", entry.Name)
		}

		if !identifier.MatchString(entry.Name) {
			return nil, zerr.With(ErrInvalidName, "name", entry.Name)
		}

		modules = append(modules, Module{Name: entry.Name, Path: entry.Path})
	}

	return modules, nil
}
