// Package snapshot reads the fixed binary layout produced by the external
// snapshot compiler and drives the tool that generates and merges blobs.
package snapshot

import (
	"encoding/binary"
	"fmt"

	"go.trai.ch/zerr"
)

const (
	// Magic identifies a snapshot blob ("JRRY" little-endian).
	Magic uint32 = 0x5952524A

	// Version is the only supported snapshot format version.
	Version uint32 = 10

	// headerSize covers the four little-endian uint32 header fields.
	headerSize = 16

	// maxLiteralLen is the table-entry discriminator of the producing format:
	// entries with a length at or above it are some other entry kind and are
	// skipped, not decoded as literals.
	maxLiteralLen = 32
)

// Header is the fixed snapshot blob header.
type Header struct {
	Magic              uint32
	Version            uint32
	GlobalOpts         uint32
	LiteralTableOffset uint32
}

// ParseHeader reads and validates the blob header.
func ParseHeader(blob []byte) (Header, error) {
	if len(blob) < headerSize {
		return Header{}, zerr.With(ErrTruncated, "size", len(blob))
	}

	h := Header{
		Magic:              binary.LittleEndian.Uint32(blob[0:4]),
		Version:            binary.LittleEndian.Uint32(blob[4:8]),
		GlobalOpts:         binary.LittleEndian.Uint32(blob[8:12]),
		LiteralTableOffset: binary.LittleEndian.Uint32(blob[12:16]),
	}

	if h.Magic != Magic {
		return Header{}, zerr.With(ErrBadMagic, "magic", fmt.Sprintf("0x%08x", h.Magic))
	}

	if h.Version != Version {
		return Header{}, zerr.With(ErrBadVersion, "version", h.Version)
	}

	return h, nil
}

// ParseLiterals scans the literal table of a snapshot blob and returns the
// set of distinct short string literals it contains.
//
// Each table entry starts with a 2-byte little-endian length L. L == 0 is a
// marker with no payload. L < 32 is a literal; L >= 32 is another entry kind
// whose payload is skipped. Entries are 2-byte aligned. There is no entry
// count; the scan runs until the cursor reaches the end of the blob, with
// every read bounds-checked.
func ParseLiterals(blob []byte) (map[string]struct{}, error) {
	h, err := ParseHeader(blob)
	if err != nil {
		return nil, err
	}

	cursor := int(h.LiteralTableOffset) + headerSize
	if cursor > len(blob) {
		return nil, zerr.With(ErrTruncated, "offset", cursor)
	}

	literals := make(map[string]struct{})

	for cursor < len(blob) {
		if cursor+2 > len(blob) {
			return nil, zerr.With(ErrTruncated, "offset", cursor)
		}

		length := int(binary.LittleEndian.Uint16(blob[cursor : cursor+2]))
		cursor += 2

		if length == 0 {
			continue
		}

		if cursor+length > len(blob) {
			return nil, zerr.With(ErrTruncated, "offset", cursor)
		}

		if length < maxLiteralLen {
			literals[string(blob[cursor:cursor+length])] = struct{}{}
		}

		cursor += length + length%2
	}

	return literals, nil
}
