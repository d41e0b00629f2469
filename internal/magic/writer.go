package magic

import (
	"fmt"
	"io"
)

const itemsHeader = "#define JERRY_MAGIC_STRING_ITEMS \\\n"

// WriteHeader renders the magic string table as one MAGICSTR_EX_DEF macro
// invocation per entry, indexed in (length, value) order.
func WriteHeader(w io.Writer, set Set) error {
	if _, err := io.WriteString(w, itemsHeader); err != nil {
		return err
	}

	for idx, value := range set.Sorted() {
		_, err := fmt.Fprintf(w, "  MAGICSTR_EX_DEF(MAGIC_STR_%d, \"%s\") \\\n", idx, escape(value))
		if err != nil {
			return err
		}
	}

	// trailing blank line avoids a compile warning in the consumer
	_, err := io.WriteString(w, "\n")

	return err
}
