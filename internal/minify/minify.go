// Package minify strips comments and blank lines from JS source before it is
// embedded, shrinking the byte arrays baked into the host binary.
package minify

import (
	"regexp"
	"strings"
)

// Normalize returns src unchanged in debug mode. In release mode it removes
// comments and collapses blank-line runs.
func Normalize(src string, debug bool) string {
	if debug {
		return src
	}

	return collapseBlankLines(stripComments(src))
}

type scanState int

const (
	stateNormal scanState = iota
	stateSingleQuote
	stateDoubleQuote
	stateLineComment
	stateBlockComment
)

// stripComments removes // and /* */ comments in a single pass. String
// literals are scanned first, so comment-like sequences inside quotes are
// preserved verbatim. Unterminated strings and comments extend to the end of
// the input; degenerate input never fails, it just stops at EOF.
func stripComments(src string) string {
	var out strings.Builder
	out.Grow(len(src))

	state := stateNormal
	for i := 0; i < len(src); i++ {
		c := src[i]

		switch state {
		case stateNormal:
			switch {
			case c == '\'':
				state = stateSingleQuote
				out.WriteByte(c)
			case c == '"':
				state = stateDoubleQuote
				out.WriteByte(c)
			case c == '/' && i+1 < len(src) && src[i+1] == '/':
				state = stateLineComment
				i++
			case c == '/' && i+1 < len(src) && src[i+1] == '*':
				state = stateBlockComment
				i++
			default:
				out.WriteByte(c)
			}

		case stateSingleQuote, stateDoubleQuote:
			out.WriteByte(c)
			if c == '\\' && i+1 < len(src) {
				// escaped character, including \' and \"
				i++
				out.WriteByte(src[i])
			} else if (state == stateSingleQuote && c == '\'') ||
				(state == stateDoubleQuote && c == '"') {
				state = stateNormal
			}

		case stateLineComment:
			if c == '\n' {
				state = stateNormal
				out.WriteByte(c)
			}

		case stateBlockComment:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				state = stateNormal
				i++
			}
		}
	}

	return out.String()
}

var (
	trailingSpace = regexp.MustCompile(`[ \t]+\n`)
	newlineRun    = regexp.MustCompile(`\n\n+`)
)

// collapseBlankLines drops trailing whitespace at line ends and squeezes any
// run of blank lines down to a single newline.
func collapseBlankLines(src string) string {
	src = trailingSpace.ReplaceAllString(src, "\n")
	return newlineRun.ReplaceAllString(src, "\n")
}
