package snapshot

import "go.trai.ch/zerr"

var (
	// ErrBadMagic is returned when a blob does not carry the snapshot magic number.
	ErrBadMagic = zerr.New("incorrect snapshot format, magic number mismatch")

	// ErrBadVersion is returned when a blob was produced by an unsupported
	// snapshot compiler version. No forward or backward compatibility is attempted.
	ErrBadVersion = zerr.New("unsupported snapshot version")

	// ErrTruncated is returned when the literal table scan would read past the
	// end of the blob.
	ErrTruncated = zerr.New("snapshot data truncated")

	// ErrToolFailed is returned when the external snapshot tool exits non-zero
	// or cannot be launched.
	ErrToolFailed = zerr.New("snapshot tool failed")
)
