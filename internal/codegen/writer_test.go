package codegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsembed/js2c/internal/magic"
)

func TestWriter_SourceMode(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWriter(dir)
	require.NoError(t, err)

	require.NoError(t, w.SourceModule("a", []byte("x=1;\n")))
	require.NoError(t, w.SourceModule("b", []byte("y=2;")))
	require.NoError(t, w.Finish(false, []string{
		SourceRegistryEntry("a"),
		SourceRegistryEntry("b"),
	}))

	header, err := os.ReadFile(filepath.Join(dir, HeaderFile))
	require.NoError(t, err)
	source, err := os.ReadFile(filepath.Join(dir, SourceFile))
	require.NoError(t, err)

	assert.Contains(t, string(header), "#ifndef IOTJS_JS_H")
	assert.Contains(t, string(header), "extern const uint8_t a_s[];")
	assert.Contains(t, string(header), "extern const size_t b_l;")
	assert.Contains(t, string(header), "const void* code;")
	assert.Contains(t, string(header), "#endif")

	assert.Contains(t, string(source), `#include "iotjs_js.h"`)
	assert.Contains(t, string(source), "#define SIZE_A 5")
	assert.Contains(t, string(source), "#define SIZE_B 4")
	assert.Contains(t, string(source), "  0x78, 0x3d, 0x31, 0x3b, 0x0a")
	assert.Contains(t, string(source), "  0x79, 0x3d, 0x32, 0x3b")
	assert.Contains(t, string(source), "  { a_n, a_s, SIZE_A },\n  { b_n, b_s, SIZE_B },\n  { NULL, NULL, 0 }")
}

func TestWriter_SnapshotMode(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWriter(dir)
	require.NoError(t, err)

	require.NoError(t, w.SnapshotModule("console", 0))
	require.NoError(t, w.SnapshotModule("fs", 1))
	require.NoError(t, w.SourceModule("iotjs_js_modules", []byte{0x01, 0x02}))
	require.NoError(t, w.Finish(true, []string{
		SnapshotRegistryEntry("console"),
		SnapshotRegistryEntry("fs"),
	}))

	header, err := os.ReadFile(filepath.Join(dir, HeaderFile))
	require.NoError(t, err)
	source, err := os.ReadFile(filepath.Join(dir, SourceFile))
	require.NoError(t, err)

	assert.Contains(t, string(header), "extern const uint32_t module_console_idx;")
	assert.Contains(t, string(header), "const uint32_t idx;")

	assert.Contains(t, string(source), "#define MODULE_console_IDX (0)")
	assert.Contains(t, string(source), "#define MODULE_fs_IDX (1)")
	assert.Contains(t, string(source), "#define SIZE_IOTJS_JS_MODULES 2")
	assert.Contains(t, string(source), "  { module_console, MODULE_console_IDX },\n  { module_fs, MODULE_fs_IDX },\n  { NULL, 0 }")
}

func TestWriter_OverwritesPreviousRun(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, HeaderFile)
	require.NoError(t, os.WriteFile(stale, []byte("stale content from an old run"), 0o644))

	w, err := NewWriter(dir)
	require.NoError(t, err)
	require.NoError(t, w.Finish(false, nil))

	header, err := os.ReadFile(stale)
	require.NoError(t, err)
	assert.NotContains(t, string(header), "stale")
}

func TestWriteMagicStrings(t *testing.T) {
	dir := t.TempDir()

	set := magic.NewSet().Add("fs").Add("emit")
	require.NoError(t, WriteMagicStrings(dir, set))

	out, err := os.ReadFile(filepath.Join(dir, MagicStringsFile))
	require.NoError(t, err)

	assert.Contains(t, string(out), "#define JERRY_MAGIC_STRING_ITEMS \\\n")
	assert.Contains(t, string(out), `MAGICSTR_EX_DEF(MAGIC_STR_0, "fs")`)
	assert.Contains(t, string(out), `MAGICSTR_EX_DEF(MAGIC_STR_1, "emit")`)
}
