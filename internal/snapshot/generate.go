package snapshot

import (
	"bytes"
	"os"

	"go.trai.ch/zerr"
)

// CommonJS-style wrapper applied before snapshotting. The entry module is the
// one module snapshotted unwrapped.
const (
	wrapperHead = "(function(exports, require, module, native) {\n"
	wrapperTail = "});\n"
)

// Wrap applies the module wrapper to source unless name is the entry module.
func Wrap(name, entryModule string, source []byte) []byte {
	if name == entryModule {
		return source
	}

	var buf bytes.Buffer
	buf.Grow(len(wrapperHead) + len(source) + len(wrapperTail))
	buf.WriteString(wrapperHead)
	buf.Write(source)
	buf.WriteString(wrapperTail)

	return buf.Bytes()
}

// GenerateModule wraps the module source, runs the tool's generate step and
// returns the path of the produced snapshot blob. The wrapped temp file is
// always removed; on failure the half-written snapshot is removed too.
func GenerateModule(tool Tool, name, sourcePath, entryModule string) (string, error) {
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return "", zerr.Wrap(err, "failed to read module source")
	}

	wrappedPath := sourcePath + ".wrapped"
	snapshotPath := sourcePath + ".snapshot"

	if err := os.WriteFile(wrappedPath, Wrap(name, entryModule, source), 0o644); err != nil {
		return "", zerr.Wrap(err, "failed to write wrapped source")
	}

	genErr := tool.Generate(wrappedPath, snapshotPath)
	os.Remove(wrappedPath)

	if genErr != nil {
		os.Remove(snapshotPath)
		return "", zerr.With(genErr, "module", name)
	}

	return snapshotPath, nil
}
