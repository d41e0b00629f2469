package codegen

import (
	"fmt"
	"strings"
)

// Generated artifact file names.
const (
	HeaderFile       = "iotjs_js.h"
	SourceFile       = "iotjs_js.c"
	MagicStringsFile = "iotjs_string_ext.inl.h"
)

const banner = `/* This file is generated by js2c. Do not modify. */
`

const headerPrologue = banner + `#ifndef IOTJS_JS_H
#define IOTJS_JS_H
`

const headerEpilogue = `
#endif
`

const sourcePrologue = banner + `#include <stdio.h>
#include <stdint.h>
#include "iotjs_js.h"
`

// Registry type exposed to the host: name/code/length triples in source mode,
// name/index pairs in snapshot mode. The array is sentinel-terminated.
const (
	sourceRegistryType = `
typedef struct {
  const char* name;
  const void* code;
  const size_t length;
} iotjs_js_module_t;

extern const iotjs_js_module_t js_modules[];
`

	snapshotRegistryType = `
typedef struct {
  const char* name;
  const uint32_t idx;
} iotjs_js_module_t;

extern const iotjs_js_module_t js_modules[];
`

	sourceRegistrySentinel   = "  { NULL, NULL, 0 }"
	snapshotRegistrySentinel = "  { NULL, 0 }"
)

func moduleDeclarations(name string) string {
	return fmt.Sprintf(`
extern const char %[1]s_n[];
extern const uint8_t %[1]s_s[];
extern const size_t %[1]s_l;
`, name)
}

func moduleDefinitions(name string, payload []byte) string {
	return fmt.Sprintf(`
#define SIZE_%[2]s %[3]d
const size_t %[1]s_l = SIZE_%[2]s;
const char %[1]s_n[] = "%[1]s";
const uint8_t %[1]s_s[] = {
%[4]s
};
`, name, strings.ToUpper(name), len(payload), FormatBytes(payload, 1))
}

func snapshotDeclarations(name string) string {
	return fmt.Sprintf(`
extern const char module_%[1]s[];
extern const uint32_t module_%[1]s_idx;
`, name)
}

func snapshotDefinitions(name string, idx int) string {
	return fmt.Sprintf(`
#define MODULE_%[1]s_IDX (%[2]d)
const char module_%[1]s[] = "%[1]s";
const uint32_t module_%[1]s_idx = MODULE_%[1]s_IDX;
`, name, idx)
}

// SourceRegistryEntry renders one registry row for source mode.
func SourceRegistryEntry(name string) string {
	return fmt.Sprintf("  { %[1]s_n, %[1]s_s, SIZE_%[2]s },", name, strings.ToUpper(name))
}

// SnapshotRegistryEntry renders one registry row for snapshot mode.
func SnapshotRegistryEntry(name string) string {
	return fmt.Sprintf("  { module_%[1]s, MODULE_%[1]s_IDX },", name)
}

func registryDefinition(entries []string) string {
	return fmt.Sprintf(`
const iotjs_js_module_t js_modules[] = {
%s
};
`, strings.Join(entries, "\n"))
}
