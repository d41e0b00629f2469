// Package build orchestrates the js2c pipeline: per-module payload
// production, snapshot aggregation, magic string collection and artifact
// emission. The pipeline is single-threaded and batch; every error aborts
// the run.
package build

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"github.com/jsembed/js2c/internal/cache"
	"github.com/jsembed/js2c/internal/codegen"
	"github.com/jsembed/js2c/internal/config"
	"github.com/jsembed/js2c/internal/magic"
	"github.com/jsembed/js2c/internal/minify"
	"github.com/jsembed/js2c/internal/module"
	"github.com/jsembed/js2c/internal/snapshot"
)

// Name of the combined payload emitted in snapshot mode.
const mergedModuleName = "iotjs_js_modules"

// Build runs one js2c invocation.
type Build struct {
	Config *config.Config

	// Tool drives the external snapshot executable; unused in no-snapshot mode.
	Tool snapshot.Tool

	// Cache may be nil to disable payload caching.
	Cache *cache.Cache

	// Out receives verbose progress output; defaults to os.Stdout.
	Out io.Writer
}

// Run converts the given modules into the three generated artifacts.
func (b *Build) Run(modules []module.Module) error {
	if err := module.Validate(modules); err != nil {
		return err
	}

	sorted := module.Sort(modules)

	// The magic string set is an explicit accumulator: each stage takes the
	// current set and returns the updated one.
	magicSet := magic.NewSet()
	if b.Config.MagicStringsHeader != "" {
		seeded, err := magic.LoadSeedHeader(b.Config.MagicStringsHeader, b.Config.MagicStringPrefix)
		if err != nil {
			return err
		}

		magicSet = magicSet.Union(seeded)
	}

	if err := os.MkdirAll(b.Config.OutputDir, 0o755); err != nil {
		return zerr.Wrap(err, "failed to create output directory")
	}

	w, err := codegen.NewWriter(b.Config.OutputDir)
	if err != nil {
		return err
	}

	if b.Config.SnapshotMode() {
		magicSet, err = b.runSnapshot(w, sorted, magicSet)
	} else {
		err = b.runSource(w, sorted)
	}

	if err != nil {
		w.Close()
		return err
	}

	return codegen.WriteMagicStrings(b.Config.OutputDir, magicSet)
}

// runSource embeds each module's (normalized) source text directly.
func (b *Build) runSource(w *codegen.Writer, sorted []module.Module) error {
	entries := make([]string, 0, len(sorted))

	for _, m := range sorted {
		b.logf("Processing module: %s", m.Name)

		payload, err := b.sourcePayload(m)
		if err != nil {
			return err
		}

		if err := w.SourceModule(m.Name, payload); err != nil {
			return err
		}

		entries = append(entries, codegen.SourceRegistryEntry(m.Name))
	}

	return w.Finish(false, entries)
}

// runSnapshot snapshots every module, merges the blobs into one combined
// payload and feeds its literal table into the magic string set.
func (b *Build) runSnapshot(w *codegen.Writer, sorted []module.Module, magicSet magic.Set) (magic.Set, error) {
	infos := make([]module.SnapshotInfo, 0, len(sorted))

	for idx, m := range sorted {
		b.logf("Processing module: %s", m.Name)

		path, err := b.snapshotPayload(m)
		if err != nil {
			return magicSet, err
		}

		infos = append(infos, module.SnapshotInfo{Name: m.Name, Path: path, Index: idx})

		if err := w.SnapshotModule(m.Name, idx); err != nil {
			return magicSet, err
		}
	}

	mergedPath := filepath.Join(b.Config.OutputDir, "merged.modules")
	blob, err := snapshot.MergeAll(b.Tool, infos, mergedPath)
	if err != nil {
		return magicSet, err
	}

	literals, err := snapshot.ParseLiterals(blob)
	if err != nil {
		return magicSet, err
	}

	magicSet = magicSet.Union(literals)

	if err := w.SourceModule(mergedModuleName, blob); err != nil {
		return magicSet, err
	}

	entries := make([]string, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, codegen.SnapshotRegistryEntry(info.Name))
	}

	return magicSet, w.Finish(true, entries)
}

// sourcePayload produces the text payload for one module, consulting the
// cache first.
func (b *Build) sourcePayload(m module.Module) ([]byte, error) {
	if b.Cache != nil {
		if entry, payload, err := b.Cache.Get(m.Path, b.Config); err == nil && entry != nil {
			return payload, nil
		}
	}

	raw, err := os.ReadFile(m.Path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read module source")
	}

	payload := []byte(minify.Normalize(string(raw), b.Config.BuildType == "debug"))

	if b.Cache != nil {
		if err := b.Cache.Store(m.Path, b.Config, m.Name, payload); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to cache %s: %v\n", m.Name, err)
		}
	}

	return payload, nil
}

// snapshotPayload produces the per-module snapshot temp file, consulting the
// cache first. The returned file is consumed (and removed) by the merge.
func (b *Build) snapshotPayload(m module.Module) (string, error) {
	if b.Cache != nil {
		if entry, payload, err := b.Cache.Get(m.Path, b.Config); err == nil && entry != nil {
			path := m.Path + ".snapshot"
			if err := os.WriteFile(path, payload, 0o644); err == nil {
				return path, nil
			}
		}
	}

	path, err := snapshot.GenerateModule(b.Tool, m.Name, m.Path, b.Config.EntryModule)
	if err != nil {
		return "", err
	}

	if b.Cache != nil {
		blob, err := os.ReadFile(path)
		if err == nil {
			err = b.Cache.Store(m.Path, b.Config, m.Name, blob)
		}

		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to cache %s: %v\n", m.Name, err)
		}
	}

	return path, nil
}

func (b *Build) logf(format string, args ...any) {
	if !b.Config.Verbose {
		return
	}

	out := b.Out
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintf(out, format+"\n", args...)
}
