// Package magic builds the deduplicated magic string table shared between
// the embedded modules and the host engine. Consumers reference entries by
// index only, so the (length, lexical value) ordering is a correctness
// requirement, not cosmetics.
package magic

import (
	"sort"
	"strings"
)

// Set accumulates the distinct magic strings discovered during a build. It is
// threaded through the pipeline explicitly: each stage takes the current set
// and returns the updated one.
type Set map[string]struct{}

// NewSet returns an empty set.
func NewSet() Set {
	return make(Set)
}

// Add records one string.
func (s Set) Add(value string) Set {
	s[value] = struct{}{}
	return s
}

// Union merges the given values into the set and returns it.
func (s Set) Union(values map[string]struct{}) Set {
	for v := range values {
		s[v] = struct{}{}
	}

	return s
}

// Sorted returns the entries ordered by length ascending, then lexically.
// The position in the returned slice is the entry's zero-based index.
func (s Set) Sorted() []string {
	entries := make([]string, 0, len(s))
	for v := range s {
		entries = append(entries, v)
	}

	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i]) != len(entries[j]) {
			return len(entries[i]) < len(entries[j])
		}

		return entries[i] < entries[j]
	})

	return entries
}

// escape backslash-escapes embedded double quotes. No other characters are
// escaped; a literal containing other control characters is emitted as-is.
func escape(value string) string {
	return strings.ReplaceAll(value, `"`, `\"`)
}
