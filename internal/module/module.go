// Package module handles parsing and ordering of the JS module list.
//
// Module names double as C identifier fragments in the generated code, so
// they are validated up front. The position of a module in the
// lexicographically sorted list is its registry index; reordering the input
// does not change indices.
package module

import (
	"regexp"
	"sort"
	"strings"

	"go.trai.ch/zerr"
)

var (
	// ErrBadSpec is returned when a module spec is not of the form name=path.
	ErrBadSpec = zerr.New("invalid module spec, expected format: name=path")

	// ErrInvalidName is returned when a module name is not a valid C identifier fragment.
	ErrInvalidName = zerr.New("module name must be a valid identifier")

	// ErrDuplicateName is returned when two modules share the same name.
	ErrDuplicateName = zerr.New("duplicate module name")
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Module is one named JS source file to embed.
type Module struct {
	Name string
	Path string
}

// SnapshotInfo records the per-module snapshot temp file and the registry
// index baked into the generated MODULE_<NAME>_IDX constants.
type SnapshotInfo struct {
	Name  string
	Path  string
	Index int
}

// ParseSpecs parses a list of name=path module specs.
func ParseSpecs(specs []string) ([]Module, error) {
	var modules []Module

	for _, spec := range specs {
		name, path, ok := strings.Cut(spec, "=")
		if !ok || name == "" || path == "" {
			return nil, zerr.With(ErrBadSpec, "spec", spec)
		}

		if !identifier.MatchString(name) {
			return nil, zerr.With(ErrInvalidName, "name", name)
		}

		modules = append(modules, Module{Name: name, Path: path})
	}

	return modules, nil
}

// Validate checks for duplicate module names across the whole build input.
func Validate(modules []Module) error {
	seen := make(map[string]struct{}, len(modules))

	for _, m := range modules {
		if _, ok := seen[m.Name]; ok {
			return zerr.With(ErrDuplicateName, "name", m.Name)
		}

		seen[m.Name] = struct{}{}
	}

	return nil
}

// Sort returns a copy of modules ordered by name. The position in the
// returned slice is the module's registry index.
func Sort(modules []Module) []Module {
	sorted := make([]Module, len(modules))
	copy(sorted, modules)

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	return sorted
}
