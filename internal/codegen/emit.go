// Package codegen renders the generated C artifacts: the module header, the
// module source with the embedded byte arrays, and the magic strings header.
package codegen

import (
	"fmt"
	"strings"
)

// FormatBytes renders data as lowercase two-digit hex literals, comma-and-space
// separated, ten values per line, each line indented two spaces per level.
func FormatBytes(data []byte, indent int) string {
	pad := strings.Repeat("  ", indent)

	var b strings.Builder
	b.Grow(len(data) * 6)

	for i, c := range data {
		switch {
		case i == 0:
			b.WriteString(pad)
		case i%10 == 0:
			b.WriteString(",\n")
			b.WriteString(pad)
		default:
			b.WriteString(", ")
		}

		fmt.Fprintf(&b, "0x%02x", c)
	}

	return b.String()
}
