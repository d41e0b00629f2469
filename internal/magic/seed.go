package magic

import (
	"bufio"
	"io"
	"os"
	"regexp"

	"go.trai.ch/zerr"
)

// ParseSeedHeader scans a C header for string constants of the shape
//
//	#define <prefix>_<NAME> "<value>"
//
// and returns their values. Lines that do not match are ignored.
func ParseSeedHeader(r io.Reader, prefix string) (Set, error) {
	pattern := regexp.MustCompile(`^#define ` + regexp.QuoteMeta(prefix) + `_\w+\s+"(\w+)"$`)

	set := NewSet()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		if m := pattern.FindStringSubmatch(scanner.Text()); m != nil {
			set.Add(m[1])
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, "failed to scan magic strings header")
	}

	return set, nil
}

// LoadSeedHeader reads the seed header from disk.
func LoadSeedHeader(path, prefix string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open magic strings header")
	}
	defer f.Close()

	return ParseSeedHeader(f, prefix)
}
