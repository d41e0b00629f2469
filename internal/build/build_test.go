package build

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsembed/js2c/internal/cache"
	"github.com/jsembed/js2c/internal/codegen"
	"github.com/jsembed/js2c/internal/config"
	"github.com/jsembed/js2c/internal/module"
	"github.com/jsembed/js2c/internal/snapshot"
)

// makeBlob assembles a valid snapshot blob whose literal table holds the
// given strings.
func makeBlob(literals ...string) []byte {
	blob := make([]byte, 16)
	binary.LittleEndian.PutUint32(blob[0:4], snapshot.Magic)
	binary.LittleEndian.PutUint32(blob[4:8], snapshot.Version)

	for _, lit := range literals {
		var length [2]byte
		binary.LittleEndian.PutUint16(length[:], uint16(len(lit)))
		blob = append(blob, length[:]...)
		blob = append(blob, lit...)

		if len(lit)%2 == 1 {
			blob = append(blob, 0)
		}
	}

	return blob
}

// fakeTool implements snapshot.Tool with canned outputs.
type fakeTool struct {
	mergedBlob []byte
	generates  int
	merges     int
}

func (f *fakeTool) Generate(sourcePath, outPath string) error {
	f.generates++
	return os.WriteFile(outPath, []byte("per-module blob"), 0o644)
}

func (f *fakeTool) Merge(outPath string, inputs []string) error {
	f.merges++
	return os.WriteFile(outPath, f.mergedBlob, 0o644)
}

func writeModule(t *testing.T, dir, name, content string) module.Module {
	t.Helper()

	path := filepath.Join(dir, name+".js")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return module.Module{Name: name, Path: path}
}

func readArtifact(t *testing.T, dir, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)

	return string(data)
}

func TestRun_SourceMode(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")

	cfg := &config.Config{
		BuildType:   "release",
		EntryModule: "iotjs",
		OutputDir:   out,
	}

	modules := []module.Module{
		writeModule(t, dir, "a", "x=1; // c\n"),
		writeModule(t, dir, "b", "y=2;"),
	}

	b := &Build{Config: cfg}
	require.NoError(t, b.Run(modules))

	source := readArtifact(t, out, codegen.SourceFile)

	// Comment-stripped payloads: "x=1;\n" and "y=2;".
	assert.Contains(t, source, "#define SIZE_A 5")
	assert.Contains(t, source, "  0x78, 0x3d, 0x31, 0x3b, 0x0a")
	assert.Contains(t, source, "#define SIZE_B 4")
	assert.Contains(t, source, "  0x79, 0x3d, 0x32, 0x3b")

	// Registry lists both modules and ends with the sentinel.
	assert.Contains(t, source, "  { a_n, a_s, SIZE_A },\n  { b_n, b_s, SIZE_B },\n  { NULL, NULL, 0 }")

	header := readArtifact(t, out, codegen.HeaderFile)
	assert.Contains(t, header, "extern const uint8_t a_s[];")
	assert.Contains(t, header, "extern const uint8_t b_s[];")

	// The magic strings artifact exists even without snapshots.
	magicOut := readArtifact(t, out, codegen.MagicStringsFile)
	assert.Contains(t, magicOut, "#define JERRY_MAGIC_STRING_ITEMS")
}

func TestRun_DebugModeKeepsSource(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")

	cfg := &config.Config{
		BuildType:   "debug",
		EntryModule: "iotjs",
		OutputDir:   out,
	}

	m := writeModule(t, dir, "a", "x=1; // kept\n")

	b := &Build{Config: cfg}
	require.NoError(t, b.Run([]module.Module{m}))

	source := readArtifact(t, out, codegen.SourceFile)
	assert.Contains(t, source, "#define SIZE_A 13")
}

func TestRun_SnapshotMode(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")

	cfg := &config.Config{
		BuildType:    "release",
		EntryModule:  "iotjs",
		OutputDir:    out,
		SnapshotTool: "/opt/jerry/snapshot-tool",
	}

	// Input order is reversed relative to name order.
	modules := []module.Module{
		writeModule(t, dir, "fs", "module.exports = {};\n"),
		writeModule(t, dir, "console", "module.exports = {};\n"),
	}

	tool := &fakeTool{mergedBlob: makeBlob("require", "ab")}
	b := &Build{Config: cfg, Tool: tool}
	require.NoError(t, b.Run(modules))

	assert.Equal(t, 2, tool.generates)
	assert.Equal(t, 1, tool.merges)

	source := readArtifact(t, out, codegen.SourceFile)

	// Indices follow lexical name order, not input order.
	assert.Contains(t, source, "#define MODULE_console_IDX (0)")
	assert.Contains(t, source, "#define MODULE_fs_IDX (1)")

	// The combined blob is emitted under the merged module name.
	assert.Contains(t, source, "#define SIZE_IOTJS_JS_MODULES")
	assert.Contains(t, source, "  { module_console, MODULE_console_IDX },\n  { module_fs, MODULE_fs_IDX },\n  { NULL, 0 }")

	// Literals recovered from the merged blob, ordered by (length, value).
	magicOut := readArtifact(t, out, codegen.MagicStringsFile)
	assert.Contains(t, magicOut, "MAGICSTR_EX_DEF(MAGIC_STR_0, \"ab\")")
	assert.Contains(t, magicOut, "MAGICSTR_EX_DEF(MAGIC_STR_1, \"require\")")

	// No snapshot temporaries survive.
	assert.NoFileExists(t, modules[0].Path+".snapshot")
	assert.NoFileExists(t, modules[1].Path+".snapshot")
	assert.NoFileExists(t, filepath.Join(out, "merged.modules"))
}

func TestRun_SnapshotMode_BadMergedBlob(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")

	cfg := &config.Config{
		BuildType:    "release",
		EntryModule:  "iotjs",
		OutputDir:    out,
		SnapshotTool: "/opt/jerry/snapshot-tool",
	}

	m := writeModule(t, dir, "fs", "module.exports = {};\n")

	tool := &fakeTool{mergedBlob: []byte("not a snapshot")}
	b := &Build{Config: cfg, Tool: tool}

	err := b.Run([]module.Module{m})
	assert.ErrorIs(t, err, snapshot.ErrTruncated)
}

func TestRun_SeedHeader(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")

	seedPath := filepath.Join(dir, "iotjs_magic_strings.h")
	seed := "#define IOTJS_MAGIC_STRING_EMIT \"emit\"\n#define IOTJS_MAGIC_STRING_FS \"fs\"\n"
	require.NoError(t, os.WriteFile(seedPath, []byte(seed), 0o644))

	cfg := &config.Config{
		BuildType:          "release",
		EntryModule:        "iotjs",
		OutputDir:          out,
		MagicStringsHeader: seedPath,
		MagicStringPrefix:  "IOTJS_MAGIC_STRING",
	}

	m := writeModule(t, dir, "a", "x=1;\n")

	b := &Build{Config: cfg}
	require.NoError(t, b.Run([]module.Module{m}))

	magicOut := readArtifact(t, out, codegen.MagicStringsFile)
	assert.Contains(t, magicOut, "MAGICSTR_EX_DEF(MAGIC_STR_0, \"fs\")")
	assert.Contains(t, magicOut, "MAGICSTR_EX_DEF(MAGIC_STR_1, \"emit\")")
}

func TestRun_DuplicateModuleNames(t *testing.T) {
	dir := t.TempDir()

	cfg := &config.Config{
		BuildType:   "release",
		EntryModule: "iotjs",
		OutputDir:   filepath.Join(dir, "out"),
	}

	modules := []module.Module{
		writeModule(t, dir, "a", "x=1;\n"),
		{Name: "a", Path: "other.js"},
	}

	b := &Build{Config: cfg}
	assert.ErrorIs(t, b.Run(modules), module.ErrDuplicateName)
}

func TestRun_MissingModuleSource(t *testing.T) {
	dir := t.TempDir()

	cfg := &config.Config{
		BuildType:   "release",
		EntryModule: "iotjs",
		OutputDir:   filepath.Join(dir, "out"),
	}

	b := &Build{Config: cfg}
	err := b.Run([]module.Module{{Name: "a", Path: filepath.Join(dir, "nope.js")}})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_CacheSkipsSnapshotGeneration(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")

	cfg := &config.Config{
		BuildType:    "release",
		EntryModule:  "iotjs",
		OutputDir:    out,
		SnapshotTool: "/opt/jerry/snapshot-tool",
	}

	store, err := cache.New(filepath.Join(dir, "cache"))
	require.NoError(t, err)
	defer store.Close()

	m := writeModule(t, dir, "fs", "module.exports = {};\n")

	tool := &fakeTool{mergedBlob: makeBlob("require")}
	b := &Build{Config: cfg, Tool: tool, Cache: store}

	require.NoError(t, b.Run([]module.Module{m}))
	assert.Equal(t, 1, tool.generates)

	// Second run: payload comes from the cache, merge still happens.
	require.NoError(t, b.Run([]module.Module{m}))
	assert.Equal(t, 1, tool.generates)
	assert.Equal(t, 2, tool.merges)
}

func TestRun_OverwritesStaleArtifacts(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(out, 0o755))

	stale := filepath.Join(out, codegen.MagicStringsFile)
	require.NoError(t, os.WriteFile(stale, []byte("stale"), 0o644))

	cfg := &config.Config{
		BuildType:   "release",
		EntryModule: "iotjs",
		OutputDir:   out,
	}

	m := writeModule(t, dir, "a", "x=1;\n")

	b := &Build{Config: cfg}
	require.NoError(t, b.Run([]module.Module{m}))

	assert.NotContains(t, readArtifact(t, out, codegen.MagicStringsFile), "stale")
}
