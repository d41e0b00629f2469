package codegen

import (
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"github.com/jsembed/js2c/internal/magic"
)

// Writer emits the module header and source artifacts. Both files are created
// with truncation so a previous run's output can never merge into a new one.
// Writes are sequential; later sections reference identifiers defined earlier.
type Writer struct {
	header *os.File
	source *os.File
}

// NewWriter creates (or overwrites) the two module artifacts in dir and
// writes their prologues.
func NewWriter(dir string) (*Writer, error) {
	header, err := os.Create(filepath.Join(dir, HeaderFile))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create header artifact")
	}

	source, err := os.Create(filepath.Join(dir, SourceFile))
	if err != nil {
		header.Close()
		return nil, zerr.Wrap(err, "failed to create source artifact")
	}

	w := &Writer{header: header, source: source}

	if err := w.write(header, headerPrologue); err != nil {
		w.Close()
		return nil, err
	}

	if err := w.write(source, sourcePrologue); err != nil {
		w.Close()
		return nil, err
	}

	return w, nil
}

// SourceModule emits the declarations and definitions for one module payload,
// either normalized source text or the merged snapshot blob.
func (w *Writer) SourceModule(name string, payload []byte) error {
	if err := w.write(w.header, moduleDeclarations(name)); err != nil {
		return err
	}

	return w.write(w.source, moduleDefinitions(name, payload))
}

// SnapshotModule emits the name and registry index symbols for one module
// whose code lives in the merged snapshot blob.
func (w *Writer) SnapshotModule(name string, idx int) error {
	if err := w.write(w.header, snapshotDeclarations(name)); err != nil {
		return err
	}

	return w.write(w.source, snapshotDefinitions(name, idx))
}

// Finish writes the registry type, the sentinel-terminated registry array and
// the artifact epilogues, then closes both files.
func (w *Writer) Finish(snapshotMode bool, entries []string) error {
	registryType := sourceRegistryType
	sentinel := sourceRegistrySentinel
	if snapshotMode {
		registryType = snapshotRegistryType
		sentinel = snapshotRegistrySentinel
	}

	if err := w.write(w.header, registryType+headerEpilogue); err != nil {
		return err
	}

	entries = append(entries, sentinel)
	if err := w.write(w.source, registryDefinition(entries)+"\n"); err != nil {
		return err
	}

	return w.Close()
}

// Close closes both artifacts.
func (w *Writer) Close() error {
	headerErr := w.header.Close()
	sourceErr := w.source.Close()

	if headerErr != nil {
		return zerr.Wrap(headerErr, "failed to close header artifact")
	}

	if sourceErr != nil {
		return zerr.Wrap(sourceErr, "failed to close source artifact")
	}

	return nil
}

func (w *Writer) write(f *os.File, s string) error {
	if _, err := io.WriteString(f, s); err != nil {
		return zerr.Wrap(err, "failed to write artifact")
	}

	return nil
}

// WriteMagicStrings creates (or overwrites) the magic strings artifact in dir.
func WriteMagicStrings(dir string, set magic.Set) error {
	f, err := os.Create(filepath.Join(dir, MagicStringsFile))
	if err != nil {
		return zerr.Wrap(err, "failed to create magic strings artifact")
	}
	defer f.Close()

	if _, err := io.WriteString(f, banner); err != nil {
		return zerr.Wrap(err, "failed to write magic strings artifact")
	}

	if err := magic.WriteHeader(f, set); err != nil {
		return zerr.Wrap(err, "failed to write magic strings artifact")
	}

	return f.Close()
}
